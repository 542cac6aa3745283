package pdfdesk

import (
	"fmt"

	"github.com/alnah/go-pdfdesk/internal/assets"
)

// Built-in style names.
const (
	// DefaultStyle is the normalization sheet every document is built on.
	DefaultStyle = assets.DefaultStyleName

	// DocumentStyle adds typography for prose documents.
	DocumentStyle = assets.DocumentStyleName
)

// AssetLoader loads CSS styles and the sandbox HTML template by name.
// Implementations may load from the filesystem, embedded assets, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}.html for templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// Styles lists the embedded style names.
func Styles() []string {
	styles, _ := assets.Names()
	return styles
}

var _ assets.AssetLoader = AssetLoader(nil)
