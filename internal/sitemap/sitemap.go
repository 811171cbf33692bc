// Package sitemap builds the XML sitemap of the directory: one entry for
// the site root and one per tool detail page.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ziadkadry99/aidir/internal/catalog"
)

// Namespace is the sitemap protocol XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Fixed change frequencies and priorities per entry type.
const (
	RootChangeFreq = "daily"
	RootPriority   = "1.0"
	ToolChangeFreq = "weekly"
	ToolPriority   = "0.8"
)

// URL is a single <url> entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// URLSet is the sitemap document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// ToolURL returns the detail page URL of id under baseURL.
func ToolURL(baseURL string, id catalog.ID) string {
	return strings.TrimRight(baseURL, "/") + "/tool.html?id=" + url.QueryEscape(string(id))
}

// Build returns the sitemap for doc. Tool entries take their lastmod from
// the tool's added date, falling back to the document's last_updated.
// Tools without an id or with a duplicate id are skipped.
func Build(doc catalog.Document, baseURL string) URLSet {
	base := strings.TrimRight(baseURL, "/")
	fallback := NormalizeDate(doc.Meta.LastUpdated)

	set := URLSet{Xmlns: Namespace}
	set.URLs = append(set.URLs, URL{
		Loc:        base + "/",
		LastMod:    fallback,
		ChangeFreq: RootChangeFreq,
		Priority:   RootPriority,
	})

	snap := catalog.NewSnapshot(doc, 0)
	for _, t := range snap.Tools {
		lastmod := NormalizeDate(t.Added)
		if lastmod == "" {
			lastmod = fallback
		}
		set.URLs = append(set.URLs, URL{
			Loc:        ToolURL(base, t.ID),
			LastMod:    lastmod,
			ChangeFreq: ToolChangeFreq,
			Priority:   ToolPriority,
		})
	}
	return set
}

// Write encodes set as an indented XML document.
func Write(w io.Writer, set URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encoding sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes set to path, creating parent directories.
func WriteFile(path string, set URLSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sitemap %s: %w", path, err)
	}
	if err := Write(f, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// NormalizeDate converts the date formats found in catalogs to the W3C
// date form (YYYY-MM-DD) sitemaps use. Unparseable input yields "".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
