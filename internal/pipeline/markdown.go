package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Highlight placeholders use Private Use Area characters, which goldmark
// passes through unchanged; they become <mark> tags after conversion.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
)

// MarkdownPreprocessor prepares Markdown source before conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// HTMLConverter converts Markdown to an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// CommonMarkPreprocessor normalizes line endings, compresses blank lines and
// turns ==text== into highlight placeholders.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = highlightPattern.ReplaceAllString(content, markStart+"$1"+markEnd)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// GoldmarkConverter converts Markdown with GFM, footnotes and chroma
// syntax highlighting.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline colors; the sandbox has no chroma stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown to an HTML fragment.
// goldmark has no context support, so conversion runs in a goroutine and
// ctx only bounds the wait.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// MarkdownToHTML preprocesses and converts Markdown, then finalizes
// highlight marks. A nil converter uses a new GoldmarkConverter.
func MarkdownToHTML(ctx context.Context, conv HTMLConverter, content string) (string, error) {
	if conv == nil {
		conv = NewGoldmarkConverter()
	}
	content = (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, content)

	out, err := conv.ToHTML(ctx, content)
	if err != nil {
		return "", err
	}
	return convertMarkPlaceholders(out), nil
}

// convertMarkPlaceholders turns highlight placeholders into <mark> tags.
func convertMarkPlaceholders(content string) string {
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(content)
}

// Compile-time interface checks.
var (
	_ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)
	_ HTMLConverter        = (*GoldmarkConverter)(nil)
)
