package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is one of the fixed tool categories.
type Category string

const (
	CategoryText  Category = "text"
	CategoryImage Category = "image"
	CategoryCode  Category = "code"
	CategoryAudio Category = "audio"
	CategoryVideo Category = "video"
	CategoryData  Category = "data"
	CategoryOther Category = "other"
)

// CategoryInfo is the display name and badge color of a category. Name is
// the English label; localized labels live in the i18n tables under
// "category.<key>".
type CategoryInfo struct {
	Name  string
	Color string
}

// categories maps every known category to its badge.
var categories = map[Category]CategoryInfo{
	CategoryText:  {Name: "Text", Color: "#3b82f6"},
	CategoryImage: {Name: "Image", Color: "#ec4899"},
	CategoryCode:  {Name: "Code", Color: "#10b981"},
	CategoryAudio: {Name: "Audio", Color: "#f59e0b"},
	CategoryVideo: {Name: "Video", Color: "#ef4444"},
	CategoryData:  {Name: "Data", Color: "#8b5cf6"},
	CategoryOther: {Name: "Other", Color: "#6b7280"},
}

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryText, CategoryImage, CategoryCode, CategoryAudio,
	CategoryVideo, CategoryData, CategoryOther,
}

// NormalizeCategory maps s to a known category; anything unrecognized
// becomes CategoryOther.
func NormalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categories[c]; ok {
		return c
	}
	return CategoryOther
}

// Info returns the badge for c, falling back to "Other".
func (c Category) Info() CategoryInfo {
	if info, ok := categories[c]; ok {
		return info
	}
	return categories[CategoryOther]
}

// ID identifies a tool. The JSON catalog carries either numbers or strings.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tool id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Tool is one catalog entry.
type Tool struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Rating      float64  `json:"rating,omitempty"`
	IsFree      bool     `json:"is_free"`
	Link        string   `json:"link,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Added       string   `json:"added,omitempty"`
	Details     string   `json:"details,omitempty"`
}

// normalize applies the catalog's defaulting rules in place.
func (t *Tool) normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Category = NormalizeCategory(string(t.Category))
	t.Rating = ClampRating(t.Rating)
	t.Link = strings.TrimSpace(t.Link)
}

// ClampRating bounds r to [0, 5].
func ClampRating(r float64) float64 {
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 5:
		return 5
	}
	return r
}

// Meta is the document-level metadata of a catalog file.
type Meta struct {
	LastUpdated string `json:"last_updated"`
}

// Document is the on-disk catalog format.
type Document struct {
	Meta  Meta   `json:"meta"`
	Tools []Tool `json:"tools"`
}
