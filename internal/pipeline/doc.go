// Package pipeline prepares HTML for the render sandbox.
//
// It covers the steps that happen before rendering:
//   - Markdown preprocessing and conversion to an HTML fragment via goldmark
//   - splitting a full HTML document into its title, styles and body
//   - inlining local images as data URIs, since the sandbox has no file access
//   - sanitizing user CSS for embedding in a <style> block
package pipeline
