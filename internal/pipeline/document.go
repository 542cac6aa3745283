package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parts is an HTML input split into what the sandbox document needs.
type Parts struct {
	Title string // text of <title>, if any
	CSS   string // contents of every <style> element, in document order
	Body  string // inner HTML of <body>, or the whole input for fragments
}

// SplitDocument separates a full HTML document into title, styles and body
// so it can be re-wrapped by the sandbox template. Fragments are returned
// unchanged as Body, with any <style> elements left in place.
func SplitDocument(content string) (Parts, error) {
	if !isFullDocument(content) {
		return Parts{Body: content}, nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return Parts{}, err
	}

	var parts Parts
	var styles []string
	var body *html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if parts.Title == "" {
					parts.Title = strings.TrimSpace(textContent(n))
				}
				return
			case atom.Style:
				styles = append(styles, textContent(n))
				if parent := n.Parent; parent != nil && parent.DataAtom == atom.Head {
					return
				}
			case atom.Body:
				body = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	parts.CSS = strings.Join(styles, "\n")
	if body != nil {
		// Body styles are already collected; drop them from the fragment.
		removeElements(body, atom.Style)
		var buf strings.Builder
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return Parts{}, err
			}
		}
		parts.Body = buf.String()
	}
	return parts, nil
}

// isFullDocument reports whether content starts like a complete document.
func isFullDocument(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

// textContent concatenates the text children of n.
func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// removeElements detaches every descendant element of n with the given atom.
func removeElements(n *html.Node, a atom.Atom) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.DataAtom == a {
			n.RemoveChild(c)
		} else {
			removeElements(c, a)
		}
		c = next
	}
}
