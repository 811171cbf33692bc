package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(Plan{Languages: []string{"de", "en"}, Tools: 1, Files: 1})
	r.Wrote(Output{Kind: KindIndex, Lang: "de", Name: "index.html"})
	r.Wrote(Output{Kind: KindTool, Lang: "de", Name: "ChatGPT"})
	r.Wrote(Output{Kind: KindIndex, Lang: "en", Name: "en/index.html"})
	r.Wrote(Output{Kind: KindFile, Name: "sitemap.xml"})
	r.Finish()

	want := "Building site: 2 languages, 1 tools, 0 pages (5 outputs)\n" +
		"[1/5] index [de] index.html\n" +
		"[2/5] tool [de] ChatGPT\n" +
		"[3/5] index [en] en/index.html\n" +
		"[4/5] file sitemap.xml\n" +
		"Site build complete (de: 2 pages, en: 1 pages, 1 files)\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTallyKeepsPlanOrder(t *testing.T) {
	var tally Tally
	tally.reset(Plan{Languages: []string{"en", "de"}})
	tally.add(Output{Kind: KindTool, Lang: "de", Name: "a"})
	tally.add(Output{Kind: KindTool, Lang: "de", Name: "b"})
	tally.add(Output{Kind: KindTool, Lang: "fr", Name: "c"})

	if got, want := tally.Summary(), "en: 0 pages, de: 2 pages, fr: 1 pages, 0 files"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if tally.Pages("de") != 2 || tally.Done() != 3 {
		t.Errorf("Pages(de) = %d, Done() = %d", tally.Pages("de"), tally.Done())
	}
}

func TestTerminalReporterSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Out: &buf}
	r.Start(Plan{Languages: []string{"de"}, Files: 1})
	r.Wrote(Output{Kind: KindIndex, Lang: "de", Name: "index.html"})
	r.Wrote(Output{Kind: KindFile, Name: "style.css"})
	r.Finish()

	if !strings.HasSuffix(buf.String(), "Wrote de: 1 pages, 1 files\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}
