package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/economist-mcp/internal/diag"
	"github.com/hyperifyio/economist-mcp/internal/page"
)

// MinTextLength is the shortest rendered output, in characters, that is
// accepted as real content rather than a login or paywall page.
const MinTextLength = 100

// TitleNotFound replaces a missing article title.
const TitleNotFound = "Title not found"

// Structural markers of the site's current markup.
var (
	ArticleContainer = page.WithAttr("article", "data-testid", "Article")
	BriefParagraph   = page.WithAttr("p", "data-component", "the-world-in-brief-paragraph")
	BriefHeading     = page.WithClasses("css-p09rkj", "e1pqka930")
	Paragraph        = page.WithAttr("p", "data-component", "paragraph")
	ArticleTitle     = page.WithClasses("css-1tik00t", "e1qjd5lc0")
	ArticleSubhead   = page.WithClasses("css-1fxcbca", "e6h2z500")
)

// Role is how a selected element is rendered.
type Role int

const (
	RoleParagraph Role = iota
	RoleHeading
)

type rule struct {
	query page.Query
	role  Role
}

// briefRules are tried in order; the first match decides the role.
var briefRules = []rule{
	{BriefParagraph, RoleParagraph},
	{BriefHeading, RoleHeading},
	{Paragraph, RoleParagraph},
}

func briefSelector() page.AnyOf {
	m := make(page.AnyOf, 0, len(briefRules))
	for _, r := range briefRules {
		m = append(m, r.query)
	}
	return m
}

func classify(el page.Element) Role {
	for _, r := range briefRules {
		if el.Matches(r.query) {
			return r.role
		}
	}
	return RoleParagraph
}

// Brief renders "The World in Brief" digest. Intro paragraphs, mini-article
// headings and their paragraphs are emitted in document order; headings are
// prefixed with "\n## " and every fragment is separated by a blank line.
func Brief(doc *page.Document) (string, error) {
	root := doc.Scope(ArticleContainer)
	elements := root.Select(briefSelector())
	if len(elements) == 0 {
		return "", diag.Absent(diag.OpBriefing, "no briefing elements")
	}

	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		text := el.Text(" ")
		if text == "" {
			continue
		}
		if classify(el) == RoleHeading {
			parts = append(parts, "\n## "+text)
			continue
		}
		parts = append(parts, text)
	}

	full := strings.Join(parts, "\n\n")
	if n := utf8.RuneCountInString(full); n < MinTextLength {
		return "", diag.TooShort(diag.OpBriefing, fmt.Sprintf("%d chars", n))
	}
	return full, nil
}

// Article renders a single article as a "Title:" line, an optional
// "Subheading:" line and a "Body:" section of blank-line separated
// paragraphs.
func Article(doc *page.Document) (string, error) {
	container, ok := doc.First(ArticleContainer)
	if !ok {
		return "", diag.Absent(diag.OpArticle, "no article container")
	}

	title := TitleNotFound
	if el, ok := container.First(ArticleTitle); ok {
		title = el.Text("")
	}
	var subheading string
	if el, ok := container.First(ArticleSubhead); ok {
		subheading = el.Text("")
	}

	var paragraphs []string
	for _, el := range container.Select(Paragraph) {
		if text := el.Text(" "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	lines := []string{"Title: " + title}
	if subheading != "" {
		lines = append(lines, "Subheading: "+subheading)
	}
	lines = append(lines, "\nBody:\n"+strings.Join(paragraphs, "\n\n"))
	full := strings.Join(lines, "\n")

	if len(paragraphs) == 0 {
		return "", diag.TooShort(diag.OpArticle, "no paragraphs")
	}
	if n := utf8.RuneCountInString(full); n < MinTextLength {
		return "", diag.TooShort(diag.OpArticle, fmt.Sprintf("%d chars", n))
	}
	return full, nil
}
