package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alnah/go-pdfdesk/internal/assets"
)

// DocumentInput describes the sandbox document to build.
type DocumentInput struct {
	Body     string   // user HTML fragment, inserted verbatim
	CSS      string   // user CSS, applied after the base style
	Title    string   // document title
	Style    string   // base style name; empty means assets.DefaultStyleName
	Viewport Viewport // page size in CSS pixels
}

// documentData is the sandbox template context.
type documentData struct {
	Title    string
	BaseCSS  template.CSS
	CSS      template.CSS
	Body     template.HTML
	WidthPx  int
	HeightPx int
}

// BuildDocument wraps the input fragment into a complete HTML document whose
// body is exactly one page wide and at least one page tall.
// A nil loader uses the embedded assets.
func BuildDocument(loader assets.AssetLoader, in DocumentInput) (string, error) {
	if in.Viewport.Width <= 0 || in.Viewport.Height <= 0 {
		return "", fmt.Errorf("invalid viewport %dx%d", in.Viewport.Width, in.Viewport.Height)
	}
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	style := in.Style
	if style == "" {
		style = assets.DefaultStyleName
	}
	baseCSS, err := loader.LoadStyle(style)
	if err != nil {
		return "", err
	}

	// A non-default base style still sits on top of the normalization sheet.
	if style != assets.DefaultStyleName {
		normalize, err := loader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return "", err
		}
		baseCSS = normalize + "\n" + baseCSS
	}

	src, err := loader.LoadTemplate(assets.SandboxTemplateName)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(assets.SandboxTemplateName).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", assets.SandboxTemplateName, err)
	}

	data := documentData{
		Title:    in.Title,
		BaseCSS:  template.CSS(baseCSS),  // #nosec G203 -- trusted embedded or configured asset
		CSS:      template.CSS(in.CSS),   // #nosec G203 -- user styles for the user's own document
		Body:     template.HTML(in.Body), // #nosec G203 -- rendered in an isolated incognito context
		WidthPx:  in.Viewport.Width,
		HeightPx: in.Viewport.Height,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", assets.SandboxTemplateName, err)
	}
	return buf.String(), nil
}
