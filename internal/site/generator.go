package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aidir/internal/i18n"
	"github.com/ziadkadry99/aidir/internal/progress"
	"github.com/ziadkadry99/aidir/internal/sitemap"
)

// Generator writes the static site: one grid page per language, a detail
// page per tool and language, the markdown pages, the search index, the
// sitemap and the static assets.
type Generator struct {
	Controller *Controller
	OutputDir  string
	BaseURL    string
	Default    i18n.Language
	AssetsRoot string
	Assets     []string
	Reporter   progress.Reporter

	logger *zap.Logger
}

// Result summarizes a build.
type Result struct {
	BuildID string
	Pages   int
	Tools   int
	Assets  int
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(c *Controller, outputDir, baseURL string, lang i18n.Language, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		Controller: c,
		OutputDir:  outputDir,
		BaseURL:    baseURL,
		Default:    lang,
		AssetsRoot: ".",
		Reporter:   progress.Nop{},
		logger:     logger.Named("generator"),
	}
}

// langPrefix is the output directory of lang: the default language lives
// at the root, the other one under its code.
func (g *Generator) langPrefix(lang i18n.Language) string {
	if lang == g.Default {
		return ""
	}
	return string(lang) + "/"
}

// Generate builds the full static site.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	c := g.Controller
	if c.BuildID == "" {
		c.BuildID = uuid.NewString()
	}
	res := Result{BuildID: c.BuildID}
	snap := c.Catalog.Snapshot()
	langs := []i18n.Language{g.Default, OtherLanguage(g.Default)}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, err
	}

	g.Reporter.Start(progress.Plan{
		Languages: []string{string(langs[0]), string(langs[1])},
		Tools:     snap.Len(),
		Pages:     len(c.Pages),
		Files:     6,
	})
	defer g.Reporter.Finish()
	wrote := func(kind progress.Kind, lang i18n.Language, name string) {
		g.Reporter.Wrote(progress.Output{Kind: kind, Lang: string(lang), Name: name})
	}

	for _, lang := range langs {
		prefix := g.langPrefix(lang)
		altPrefix := g.langPrefix(OtherLanguage(lang))

		base := basePathFor(prefix + "index.html")
		page, err := c.IndexHTML(ctx, View{Lang: lang, BasePath: base, LangPrefix: prefix, AltLangURL: base + altPrefix + "index.html"})
		if err != nil {
			return res, fmt.Errorf("rendering %sindex.html: %w", prefix, err)
		}
		if err := g.write(prefix+"index.html", page); err != nil {
			return res, err
		}
		res.Pages++
		wrote(progress.KindIndex, lang, prefix+"index.html")

		for _, t := range snap.Tools {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			rel := prefix + toolPath(t.ID)
			base := basePathFor(rel)
			page, err := c.ToolPage(View{Lang: lang, BasePath: base, LangPrefix: prefix, AltLangURL: base + altPrefix + toolPath(t.ID)}, t.ID)
			if err != nil {
				return res, err
			}
			if err := g.write(rel, page); err != nil {
				return res, err
			}
			res.Pages++
			wrote(progress.KindTool, lang, t.Title)
		}
	}
	res.Tools = snap.Len()

	for _, p := range c.Pages {
		rel := p.Href()
		base := basePathFor(rel)
		page, err := c.MarkdownPageHTML(View{
			Lang:       g.Default,
			BasePath:   base,
			AltLangURL: base + g.langPrefix(OtherLanguage(g.Default)) + "index.html",
		}, p.Slug)
		if err != nil {
			return res, err
		}
		if err := g.write(rel, page); err != nil {
			return res, err
		}
		res.Pages++
		wrote(progress.KindPage, g.Default, p.Title)
	}

	if err := g.write("tool.html", redirectPage); err != nil {
		return res, err
	}
	wrote(progress.KindFile, "", "tool.html")

	if err := WriteSearchIndex(BuildSearchIndex(snap), filepath.Join(g.OutputDir, "tools.json")); err != nil {
		return res, fmt.Errorf("writing search index: %w", err)
	}
	wrote(progress.KindFile, "", "tools.json")

	if err := sitemap.WriteFile(filepath.Join(g.OutputDir, "sitemap.xml"), sitemap.Build(snap.Document(), g.BaseURL)); err != nil {
		return res, err
	}
	wrote(progress.KindFile, "", "sitemap.xml")

	if err := g.write("style.css", cssContent); err != nil {
		return res, err
	}
	wrote(progress.KindFile, "", "style.css")
	if err := g.write("script.js", jsContent); err != nil {
		return res, err
	}
	wrote(progress.KindFile, "", "script.js")

	n, err := CopyAssets(g.AssetsRoot, g.OutputDir, g.Assets)
	if err != nil {
		return res, fmt.Errorf("copying assets: %w", err)
	}
	res.Assets = n
	wrote(progress.KindFile, "", "assets")

	g.logger.Info("site generated",
		zap.String("build_id", res.BuildID),
		zap.Int("pages", res.Pages),
		zap.Int("tools", res.Tools),
		zap.Int("assets", res.Assets))
	return res, nil
}

func (g *Generator) write(rel, content string) error {
	path := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
