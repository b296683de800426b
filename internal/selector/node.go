package selector

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Text returns the trimmed inner text of a node, "" for nil.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(n))
}

// Attr reads one attribute value, "" when the node or attribute is absent.
func Attr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// FirstAttr returns the first non-empty value among the named attributes.
// Picture extraction uses it to fall through src, data-src and content.
func FirstAttr(n *html.Node, names ...string) string {
	for _, name := range names {
		if v := Attr(n, name); v != "" {
			return v
		}
	}
	return ""
}

// ElementChildren returns the direct element children of a node. The menu
// stage walks these to emit one category per entry.
func ElementChildren(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
