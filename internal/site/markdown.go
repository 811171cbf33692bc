package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// MarkdownPage is a content page authored in markdown (about, imprint, ...).
type MarkdownPage struct {
	Slug   string
	Title  string
	Source []byte
}

// Href returns the page's path relative to the site root.
func (p MarkdownPage) Href() string {
	return "pages/" + p.Slug + ".html"
}

// NewMarkdown returns the converter used for pages and tool details. Raw
// HTML in the source is not passed through.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// RenderMarkdown converts src to HTML.
func RenderMarkdown(md goldmark.Markdown, src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// LoadPages reads every markdown file under dir. A missing directory yields
// no pages.
func LoadPages(dir string) ([]MarkdownPage, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("listing pages in %s: %w", dir, err)
	}
	sort.Strings(matches)

	pages := make([]MarkdownPage, 0, len(matches))
	for _, rel := range matches {
		src, err := fs.ReadFile(os.DirFS(dir), rel)
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", rel, err)
		}
		pages = append(pages, MarkdownPage{
			Slug:   strings.TrimSuffix(rel, ".md"),
			Title:  extractTitle(string(src), rel),
			Source: src,
		})
	}
	return pages, nil
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}

// basePathFor returns the relative prefix leading from a page at rel back
// to the site root.
func basePathFor(rel string) string {
	return strings.Repeat("../", strings.Count(path.Clean(rel), "/"))
}
