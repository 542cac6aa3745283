// Package hints builds the one-line suggestions appended to CLI errors.
// Every hint renders as "\n  hint: <text>" so it can follow any message.
package hints

import (
	"strconv"
	"strings"

	"github.com/alnah/go-pdfdesk/internal/fileutil"
)

// dockerEnvFile is created by Docker in every container.
var dockerEnvFile = "/.dockerenv"

// DetectContainer reports whether the process runs in a container and which
// signal gave it away. PDFDESK_CONTAINER=1 forces detection.
func DetectContainer(getenv func(string) string) (bool, string) {
	if getenv("PDFDESK_CONTAINER") == "1" {
		return true, "PDFDESK_CONTAINER=1"
	}
	if fileutil.FileExists(dockerEnvFile) {
		return true, dockerEnvFile
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// InCI reports whether a CI system is visible in the environment.
func InCI(getenv func(string) string) bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a browser
// that fails to start.
func ForBrowserConnect(getenv func(string) string) string {
	var hints []string

	inContainer, _ := DetectContainer(getenv)
	if (inContainer || InCI(getenv)) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForEmptyRender returns a hint for documents whose body has no size.
func ForEmptyRender() string {
	return format("the body rendered with zero size; check for display:none or absolutely positioned content")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-pdfdesk/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains go-pdfdesk) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-pdfdesk") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForPageSelection returns a hint describing the page selection syntax.
func ForPageSelection(pageCount int) string {
	hint := `use comma-separated pages and ranges, e.g. "1,3-5"`
	if pageCount > 0 {
		hint += "; the document has " + strconv.Itoa(pageCount) + " pages"
	}
	return format(hint)
}

// ForPassword returns a hint for encrypted or wrongly unlocked documents.
func ForPassword() string {
	return format("pass the document password with --password, or run unlock first")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
