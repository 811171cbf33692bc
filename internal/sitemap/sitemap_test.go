package sitemap

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/aidir/internal/catalog"
)

func testDoc() catalog.Document {
	return catalog.Document{
		Meta: catalog.Meta{LastUpdated: "2024-06-01"},
		Tools: []catalog.Tool{
			{ID: "1", Title: "ChatGPT", Added: "2023-01-15"},
			{ID: "2", Title: "Midjourney"},
			{ID: "a&b", Title: "Odd", Added: "2024-02-03T10:00:00Z"},
			{ID: "1", Title: "Duplicate"},
		},
	}
}

func TestBuild(t *testing.T) {
	got := Build(testDoc(), "https://tools.example.com/")
	want := []URL{
		{Loc: "https://tools.example.com/", LastMod: "2024-06-01", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: "https://tools.example.com/tool.html?id=1", LastMod: "2023-01-15", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "https://tools.example.com/tool.html?id=2", LastMod: "2024-06-01", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "https://tools.example.com/tool.html?id=a%26b", LastMod: "2024-02-03", ChangeFreq: "weekly", Priority: "0.8"},
	}
	if diff := cmp.Diff(want, got.URLs); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	if got.Xmlns != Namespace {
		t.Errorf("xmlns = %q", got.Xmlns)
	}
}

func TestBuildWithoutDates(t *testing.T) {
	set := Build(catalog.Document{Tools: []catalog.Tool{{ID: "1"}}}, "http://localhost")
	for _, u := range set.URLs {
		if u.LastMod != "" {
			t.Errorf("%s: lastmod = %q, want empty", u.Loc, u.LastMod)
		}
	}
	if len(set.URLs) != 2 {
		t.Errorf("entries = %d, want 2", len(set.URLs))
	}
}

func TestBuildFromFileWithUnidentifiedTool(t *testing.T) {
	doc, err := catalog.Decode(strings.NewReader(`{"tools":[{"title":"No ID"},{"id":7,"title":"Seven"}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	set := Build(doc, "https://tools.example.com")
	if len(set.URLs) != 2 || set.URLs[1].Loc != "https://tools.example.com/tool.html?id=7" {
		t.Errorf("URLs = %+v, want root and tool 7", set.URLs)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(testDoc(), "https://tools.example.com")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, xml.Header) {
		t.Errorf("missing XML header:\n%s", out)
	}
	for _, want := range []string{
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		`<loc>https://tools.example.com/tool.html?id=1</loc>`,
		`<changefreq>weekly</changefreq>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	var decoded URLSet
	if err := xml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if len(decoded.URLs) != 4 {
		t.Errorf("decoded %d entries, want 4", len(decoded.URLs))
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "sitemap.xml")
	if err := WriteFile(path, Build(testDoc(), "https://x.example")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<loc>https://x.example/</loc>")) {
		t.Errorf("unexpected sitemap:\n%s", data)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"2024-03-15":           "2024-03-15",
		" 2024-03-15 ":         "2024-03-15",
		"2024-03-15T08:30:00Z": "2024-03-15",
		"2024-03-15 08:30:00":  "2024-03-15",
		"15.03.2024":           "2024-03-15",
		"March 2024":           "",
		"":                     "",
	}
	for in, want := range tests {
		if got := NormalizeDate(in); got != want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}
