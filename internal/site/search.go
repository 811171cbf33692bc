package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/aidir/internal/catalog"
)

// SearchEntry is one tool in the client-side search index.
type SearchEntry struct {
	ID          catalog.ID       `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Category    catalog.Category `json:"category"`
	IsFree      bool             `json:"is_free"`
	Rating      float64          `json:"rating"`
	Tags        []string         `json:"tags,omitempty"`
	Link        string           `json:"link,omitempty"`
	Path        string           `json:"path"`
}

// BuildSearchIndex lists every tool of snap with the path of its detail page.
func BuildSearchIndex(snap *catalog.Snapshot) []SearchEntry {
	if snap == nil {
		return []SearchEntry{}
	}
	return SearchEntries(snap.Tools)
}

// SearchEntries converts tools to search index entries.
func SearchEntries(tools []catalog.Tool) []SearchEntry {
	entries := make([]SearchEntry, 0, len(tools))
	for _, t := range tools {
		entries = append(entries, SearchEntry{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			IsFree:      t.IsFree,
			Rating:      t.Rating,
			Tags:        t.Tags,
			Link:        t.Link,
			Path:        toolPath(t.ID),
		})
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
