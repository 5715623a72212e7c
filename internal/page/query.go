package page

import (
	"strings"

	"golang.org/x/net/html"
)

// Matcher reports whether an element node satisfies a structural predicate.
type Matcher interface {
	Match(n *html.Node) bool
}

// Query is a structural selector over one element: tag name, one attribute
// value and a set of class tokens. Zero fields are not constrained, so the
// zero Query matches every element.
type Query struct {
	Tag     string
	Attr    string
	Value   string
	Classes []string
}

// Match implements Matcher.
func (q Query) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if q.Tag != "" && !strings.EqualFold(n.Data, q.Tag) {
		return false
	}
	if q.Attr != "" {
		v, ok := attr(n, q.Attr)
		if !ok || v != q.Value {
			return false
		}
	}
	if len(q.Classes) > 0 {
		have := classTokens(n)
		for _, want := range q.Classes {
			if !containsToken(have, want) {
				return false
			}
		}
	}
	return true
}

// String renders q in CSS selector syntax for logs.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString(q.Tag)
	for _, c := range q.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	if q.Attr != "" {
		b.WriteString("[" + q.Attr + "=\"" + q.Value + "\"]")
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

// AnyOf matches an element when at least one of its members does.
type AnyOf []Matcher

// Match implements Matcher.
func (a AnyOf) Match(n *html.Node) bool {
	for _, m := range a {
		if m.Match(n) {
			return true
		}
	}
	return false
}

// Tag returns a Query that matches elements by name only.
func Tag(name string) Query { return Query{Tag: name} }

// WithAttr returns a Query matching elements named tag whose attribute key
// equals value.
func WithAttr(tag, key, value string) Query {
	return Query{Tag: tag, Attr: key, Value: value}
}

// WithClasses returns a Query matching any element carrying every class token.
func WithClasses(classes ...string) Query {
	return Query{Classes: classes}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func classTokens(n *html.Node) []string {
	v, ok := attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}
