package assets

// Built-in asset names.
const (
	// DefaultStyleName is the normalization style applied to every document.
	DefaultStyleName = "default"

	// DocumentStyleName is the typography style for converted Markdown.
	DocumentStyleName = "document"

	// SandboxTemplateName is the template wrapping content for rasterization.
	SandboxTemplateName = "sandbox"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name (without the .css extension).
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or dots.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name (without the .html extension).
// Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// Names lists the built-in styles and templates, sorted.
func Names() (styles, templates []string) {
	return defaultLoader.Styles(), defaultLoader.Templates()
}
