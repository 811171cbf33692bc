package catalog

import (
	"sort"
	"strings"
)

// Query selects a subset of the catalog for the grid.
type Query struct {
	Text     string
	Category Category
	FreeOnly bool
	// Sort is "", "title" or "rating".
	Sort string
}

// Filter returns the tools of s matching q. Text matches case-insensitively
// against title, description and tags. Catalog order is kept unless q.Sort
// asks otherwise.
func (s *Snapshot) Filter(q Query) []Tool {
	if s == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	var out []Tool
	for _, t := range s.Tools {
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.FreeOnly && !t.IsFree {
			continue
		}
		if needle != "" && !matchesText(t, needle) {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case "title":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case "rating":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func matchesText(t Tool, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
