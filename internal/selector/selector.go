package selector

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Mode selects which query syntax configured selectors are written in.
// The whole run uses one mode; queries are compiled once at startup.
type Mode string

const (
	ModeCSS   Mode = "css"
	ModeXPath Mode = "xpath"
)

// Query is a compiled node-selection query: either a CSS selector group or
// an XPath expression, fixed at compile time. The zero value matches
// nothing, which is how optional selectors are left disabled.
type Query struct {
	raw  string
	css  cascadia.Selector
	expr *xpath.Expr
}

// Compile parses a raw selector in the given mode. An empty selector
// compiles to a query that never matches. Syntax errors are configuration
// errors and fail the run at startup.
func Compile(raw string, mode Mode) (Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}, nil
	}

	switch mode {
	case ModeXPath:
		expr, err := xpath.Compile(raw)
		if err != nil {
			return Query{}, fmt.Errorf("invalid xpath query %q: %w", raw, err)
		}
		return Query{raw: raw, expr: expr}, nil
	default:
		sel, err := cascadia.Compile(raw)
		if err != nil {
			return Query{}, fmt.Errorf("invalid css query %q: %w", raw, err)
		}
		return Query{raw: raw, css: sel}, nil
	}
}

// MustCompile is Compile for selectors known valid at authoring time.
func MustCompile(raw string, mode Mode) Query {
	q, err := Compile(raw, mode)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Query) IsZero() bool { return q.css == nil && q.expr == nil }

func (q Query) String() string { return q.raw }

// Select returns every node under scope matching the query, in document
// order, scope itself included. A zero query or nil scope yields nil.
func (q Query) Select(scope *html.Node) []*html.Node {
	if scope == nil {
		return nil
	}
	switch {
	case q.expr != nil:
		return htmlquery.QuerySelectorAll(scope, q.expr)
	case q.css != nil:
		nodes := goquery.NewDocumentFromNode(scope).FindMatcher(q.css).Nodes
		if scope.Type == html.ElementNode && q.css.Match(scope) {
			nodes = append([]*html.Node{scope}, nodes...)
		}
		return nodes
	default:
		return nil
	}
}

// SelectOne returns the first match in document order, nil when absent.
func (q Query) SelectOne(scope *html.Node) *html.Node {
	nodes := q.Select(scope)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
