package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	pdfdesk "github.com/alnah/go-pdfdesk"
	"github.com/alnah/go-pdfdesk/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport holds every diagnostic the doctor command gathers.
type doctorReport struct {
	Status   string        `json:"status"`
	Browser  browserCheck  `json:"browser"`
	Env      envCheck      `json:"environment"`
	Pipeline pipelineCheck `json:"pipeline"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// browserCheck describes the headless browser used for rendering.
type browserCheck struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envCheck describes the host.
type envCheck struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CPUs          int    `json:"cpus"`
	PoolSize      int    `json:"pool_size"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// pipelineCheck covers the parts of the pipeline that run without a browser.
type pipelineCheck struct {
	TempWritable bool     `json:"temp_writable"`
	Composer     bool     `json:"composer"`
	Styles       []string `json:"styles"`
}

// runDoctorCmd runs the doctor command and returns an exit code:
// 0 when ready (warnings included), 1 when errors were found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	report := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all checks.
func runDoctor(env *Environment) *doctorReport {
	r := &doctorReport{
		Status: statusReady,
		Env: envCheck{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			CPUs:       runtime.GOMAXPROCS(0),
			PoolSize:   pdfdesk.ResolvePoolSize(0),
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkBrowser(r)
	checkEnvironment(r, env.Getenv)
	checkPipeline(r, env.Toolkit)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	}
	return r
}

// checkBrowser locates Chrome/Chromium and reads its version.
func checkBrowser(r *doctorReport) {
	path := r.Env.BrowserBin
	if path == "" {
		var found bool
		path, found = launcher.LookPath()
		if !found {
			r.Errors = append(r.Errors, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(path); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	r.Browser.Found = true
	r.Browser.Path = path

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or launcher
	if err == nil {
		r.Browser.Version = strings.TrimSpace(string(out))
	} else {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	r.Browser.Sandbox = r.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(r *doctorReport, getenv func(string) string) {
	r.Env.Container, r.Env.ContainerHint = hints.DetectContainer(getenv)

	r.Env.CI = hints.InCI(getenv)

	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.Warnings = append(r.Warnings, "Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkPipeline checks the temp directory, the built-in styles and that a
// PDF can be composed and read back.
func checkPipeline(r *doctorReport, tk *pdfdesk.Toolkit) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "pdfdesk-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		r.Pipeline.TempWritable = true
	}

	r.Pipeline.Styles = pdfdesk.Styles()
	if len(r.Pipeline.Styles) == 0 {
		r.Warnings = append(r.Warnings, "No built-in styles found")
	}

	if tk == nil {
		return
	}
	if err := composeProbe(tk); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("PDF composition failed: %v", err))
		return
	}
	r.Pipeline.Composer = true
}

// composeProbe builds a one-page PDF from a blank image and counts its pages.
func composeProbe(tk *pdfdesk.Toolkit) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		return err
	}
	doc, err := tk.ImagesToPDF([][]byte{buf.Bytes()})
	if err != nil {
		return err
	}
	n, err := tk.PageCount(doc)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("expected 1 page, got %d", n)
	}
	return nil
}

// printDoctorReport writes the human-readable report.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "pdfdesk doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Path)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
		}
		if r.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Workers: %d (GOMAXPROCS %d)\n", r.Env.PoolSize, r.Env.CPUs)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pipeline")
	if r.Pipeline.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.Pipeline.Composer {
		fmt.Fprintln(w, "  [OK] PDF composer: working")
	} else {
		fmt.Fprintln(w, "  [ERROR] PDF composer: not working")
	}
	if len(r.Pipeline.Styles) > 0 {
		fmt.Fprintf(w, "  [OK] Styles: %s\n", strings.Join(r.Pipeline.Styles, ", "))
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
