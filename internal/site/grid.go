package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/dom"
	"github.com/ziadkadry99/aidir/internal/i18n"
)

// summaryLength is the maximum number of runes of a description shown on a
// card's front face.
const summaryLength = 120

var cardFrontTmpl = template.Must(template.New("cards").Parse(cardFrontTemplate))

// cardFront is the view model of one card's front face.
type cardFront struct {
	ID           string
	Title        string
	Category     string
	CategoryKey  string
	CategoryName string
	DotStyle     template.CSS
	Summary      string
	Link         string
	IsFree       bool
	FlipLabel    string
}

// RenderGrid renders the front faces of tools as detached card elements,
// ready to be placed into the grid container.
func RenderGrid(tools []catalog.Tool, lang i18n.Language) ([]*html.Node, error) {
	fronts := make([]cardFront, 0, len(tools))
	for _, t := range tools {
		category := catalog.NormalizeCategory(string(t.Category))
		fronts = append(fronts, cardFront{
			ID:           string(t.ID),
			Title:        t.Title,
			Category:     string(category),
			CategoryKey:  "category." + string(category),
			CategoryName: i18n.Lookup(lang, "category."+string(category)),
			DotStyle:     template.CSS("background-color:" + category.Info().Color),
			Summary:      summarize(t.Description, summaryLength),
			Link:         t.Link,
			IsFree:       t.IsFree,
			FlipLabel:    i18n.Lookup(lang, "card.flip"),
		})
	}

	var buf bytes.Buffer
	if err := cardFrontTmpl.Execute(&buf, fronts); err != nil {
		return nil, fmt.Errorf("rendering cards: %w", err)
	}
	nodes, err := dom.ParseFragment(buf.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("parsing cards: %w", err)
	}
	return nodes, nil
}

// summarize shortens s to at most n runes, cutting at a word boundary.
func summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)[:n]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ParseQuery reads the grid filter from URL query values: q, category and
// free=1. Unknown categories are ignored rather than mapped to "other".
func ParseQuery(v url.Values) catalog.Query {
	q := catalog.Query{
		Text:     strings.TrimSpace(v.Get("q")),
		FreeOnly: v.Get("free") == "1" || v.Get("free") == "true",
		Sort:     v.Get("sort"),
	}
	want := strings.ToLower(strings.TrimSpace(v.Get("category")))
	for _, c := range catalog.Categories {
		if string(c) == want {
			q.Category = c
		}
	}
	if q.Sort != "title" && q.Sort != "rating" {
		q.Sort = ""
	}
	return q
}

// Filter returns the tools of snap selected by q.
func Filter(snap *catalog.Snapshot, q catalog.Query) []catalog.Tool {
	return snap.Filter(q)
}
