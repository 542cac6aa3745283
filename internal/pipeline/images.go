package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxInlineImageSize is the largest local image embedded as a data URI.
const MaxInlineImageSize = 20 << 20

// ErrImageTooLarge indicates a local image over MaxInlineImageSize.
var ErrImageTooLarge = errors.New("image too large to inline")

// InlineImages replaces relative img[src] paths with data: URIs read from
// sourceDir. The sandbox document has no base URL, so relative paths would
// not resolve otherwise. If sourceDir is empty, content is returned unchanged.
//
// Not rewritten:
//   - absolute paths and URLs (http, https, file, data, protocol-relative)
//   - paths that escape sourceDir
//   - missing files, which render as broken images
func InlineImages(content, sourceDir string) (string, error) {
	if sourceDir == "" {
		return content, nil
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", err
	}

	if err := inlineNode(doc, absDir); err != nil {
		return "", err
	}
	return renderHTML(doc, isFragment)
}

// parseHTML parses a full document or a body fragment. Fragments are wrapped
// in a document node for uniform traversal.
func parseHTML(content string) (*html.Node, bool, error) {
	if isFullDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders doc; fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func inlineNode(n *html.Node, dir string) error {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isRelativePath(attr.Val) {
				continue
			}
			uri, err := dataURI(dir, attr.Val)
			if err != nil {
				return err
			}
			if uri != "" {
				n.Attr[i].Val = uri
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := inlineNode(c, dir); err != nil {
			return err
		}
	}
	return nil
}

// dataURI reads dir/rel and encodes it. Returns "" for paths it skips.
func dataURI(dir, rel string) (string, error) {
	// Query strings and fragments are not part of the file name.
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if !isPathUnderDir(path, dir) {
		return "", nil
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", nil
	}
	if info.Size() > MaxInlineImageSize {
		return "", fmt.Errorf("%w: %s (%d bytes)", ErrImageTooLarge, rel, info.Size())
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path checked against dir above
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", rel, err)
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// isRelativePath reports whether path is a relative file reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "blob:"} {
		if strings.HasPrefix(strings.ToLower(path), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir reports whether path is inside dir.
func isPathUnderDir(path, dir string) bool {
	cleanDir := filepath.Clean(dir) + string(filepath.Separator)
	return strings.HasPrefix(filepath.Clean(path)+string(filepath.Separator), cleanDir)
}
