// Package assets provides the CSS styles and HTML templates used to build
// the sandbox document that gets rasterized.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled in with go:embed
//	    ├── FilesystemLoader  - assets from a directory on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// The built-in "default" style is the normalization sheet injected into every
// sandbox document: border-box sizing, white background, a 16px system font
// and images constrained to the page width. The "document" style adds
// readable typography for converted Markdown. The "sandbox" template wraps
// the user fragment into a complete HTML document.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
