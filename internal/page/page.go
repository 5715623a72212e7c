// Package page parses HTML responses into a navigable element tree and
// selects elements with typed structural queries.
package page

import (
	"bytes"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is one parsed response body. Parsing is best effort: malformed
// or empty input still yields a Document, at worst an empty one.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from body. contentType, when present, is used to
// decode non-UTF-8 bodies; an unknown or missing charset falls back to
// sniffing the markup.
func Parse(body []byte, contentType string) *Document {
	doc, err := goquery.NewDocumentFromReader(bodyReader(body, contentType))
	if err != nil || doc == nil {
		return &Document{doc: goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})}
	}
	return &Document{doc: doc}
}

// bodyReader leaves valid UTF-8 alone unless the server declared another
// charset. The sniffer only inspects the first 1024 bytes, which is not
// enough to recognise UTF-8 on pages whose head is plain ASCII.
func bodyReader(body []byte, contentType string) io.Reader {
	if utf8.Valid(body) && !declaresCharset(contentType) {
		return bytes.NewReader(body)
	}
	if r, err := charset.NewReader(bytes.NewReader(body), contentType); err == nil {
		return r
	}
	return bytes.NewReader(body)
}

func declaresCharset(contentType string) bool {
	_, params, err := mime.ParseMediaType(contentType)
	return err == nil && params["charset"] != ""
}

// Root is the whole document as an Element.
func (d *Document) Root() Element {
	return Element{sel: d.doc.Selection}
}

// First returns the first element matching m in document order.
func (d *Document) First(m Matcher) (Element, bool) {
	return d.Root().First(m)
}

// Select returns all elements matching m in document order.
func (d *Document) Select(m Matcher) []Element {
	return d.Root().Select(m)
}

// Scope returns the first element matching m, or the whole document when
// nothing matches.
func (d *Document) Scope(m Matcher) Element {
	if el, ok := d.First(m); ok {
		return el
	}
	return d.Root()
}

// Element is a single node of a Document.
type Element struct {
	sel *goquery.Selection
}

// Node exposes the underlying html node.
func (e Element) Node() *html.Node {
	if e.sel == nil {
		return nil
	}
	return e.sel.Get(0)
}

// Tag returns the lower-case element name, or "" for the document root.
func (e Element) Tag() string {
	n := e.Node()
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Matches reports whether the element itself satisfies m.
func (e Element) Matches(m Matcher) bool {
	return m.Match(e.Node())
}

// Select returns descendants of e matching m in document order. The element
// itself is never part of the result.
func (e Element) Select(m Matcher) []Element {
	if e.sel == nil {
		return nil
	}
	var out []Element
	e.sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if m.Match(s.Get(0)) {
			out = append(out, Element{sel: s})
		}
	})
	return out
}

// First returns the first descendant of e matching m.
func (e Element) First(m Matcher) (Element, bool) {
	if e.sel == nil {
		return Element{}, false
	}
	var found Element
	ok := false
	e.sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m.Match(s.Get(0)) {
			found = Element{sel: s}
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Text joins the element's trimmed, non-empty descendant text nodes with sep,
// then collapses whitespace runs to single spaces. Comments and the contents
// of script, style and template elements are skipped.
func (e Element) Text(sep string) string {
	n := e.Node()
	if n == nil {
		return ""
	}
	var parts []string
	collectText(n, &parts)
	joined := strings.Join(parts, sep)
	return strings.Join(strings.Fields(joined), " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch strings.ToLower(n.Data) {
		case "script", "style", "template":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
