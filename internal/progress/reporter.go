package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Kind classifies a file written by a site build.
type Kind string

const (
	KindIndex Kind = "index"
	KindTool  Kind = "tool"
	KindPage  Kind = "page"
	KindFile  Kind = "file" // search index, sitemap, stylesheet, script, assets
)

// Plan describes the build about to run.
type Plan struct {
	Languages []string
	Tools     int
	Pages     int // markdown pages, rendered once in the default language
	Files     int
}

// Total is the number of outputs the plan produces.
func (p Plan) Total() int {
	return len(p.Languages)*(1+p.Tools) + p.Pages + p.Files
}

// Output is one written file. Lang is empty for language-neutral files.
type Output struct {
	Kind Kind
	Lang string
	Name string
}

func (o Output) String() string {
	if o.Lang == "" {
		return o.Name
	}
	return "[" + o.Lang + "] " + o.Name
}

// Reporter provides progress feedback while the site is built.
type Reporter interface {
	Start(plan Plan)
	Wrote(out Output)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// Tally counts written outputs per language.
type Tally struct {
	order  []string
	byLang map[string]int
	files  int
	done   int
}

func (t *Tally) reset(plan Plan) {
	t.order = append([]string(nil), plan.Languages...)
	t.byLang = make(map[string]int, len(plan.Languages))
	t.files = 0
	t.done = 0
}

func (t *Tally) add(out Output) {
	t.done++
	if out.Lang == "" {
		t.files++
		return
	}
	if t.byLang == nil {
		t.byLang = make(map[string]int)
	}
	if !contains(t.order, out.Lang) {
		t.order = append(t.order, out.Lang)
	}
	t.byLang[out.Lang]++
}

// Done is the number of outputs recorded so far.
func (t *Tally) Done() int { return t.done }

// Pages returns the number of pages written for lang.
func (t *Tally) Pages(lang string) int { return t.byLang[lang] }

// Summary renders the counts, e.g. "de: 4 pages, en: 3 pages, 6 files".
func (t *Tally) Summary() string {
	parts := make([]string, 0, len(t.order)+1)
	for _, lang := range t.order {
		parts = append(parts, fmt.Sprintf("%s: %d pages", lang, t.byLang[lang]))
	}
	parts = append(parts, fmt.Sprintf("%d files", t.files))
	return strings.Join(parts, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	Out   io.Writer
	bar   *progressbar.ProgressBar
	tally Tally
}

func (r *TerminalReporter) Start(plan Plan) {
	r.tally.reset(plan)
	r.bar = progressbar.NewOptions(plan.Total(),
		progressbar.OptionSetWriter(out(r.Out)),
		progressbar.OptionSetDescription("Building site"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Wrote(o Output) {
	r.tally.add(o)
	if r.bar != nil {
		r.bar.Describe(o.String())
		_ = r.bar.Set(r.tally.Done())
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(out(r.Out), "Wrote %s\n", r.tally.Summary())
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	Out   io.Writer
	total int
	tally Tally
}

func (r *CIReporter) Start(plan Plan) {
	r.total = plan.Total()
	r.tally.reset(plan)
	fmt.Fprintf(out(r.Out), "Building site: %d languages, %d tools, %d pages (%d outputs)\n",
		len(plan.Languages), plan.Tools, plan.Pages, r.total)
}

func (r *CIReporter) Wrote(o Output) {
	r.tally.add(o)
	fmt.Fprintf(out(r.Out), "[%d/%d] %s %s\n", r.tally.Done(), r.total, o.Kind, o)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(out(r.Out), "Site build complete (%s)\n", r.tally.Summary())
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(Plan)   {}
func (Nop) Wrote(Output) {}
func (Nop) Finish()      {}
