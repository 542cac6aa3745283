package pipeline

import "strings"

// SanitizeCSS escapes sequences that could close the enclosing <style> block.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
