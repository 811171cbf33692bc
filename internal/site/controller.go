package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/aidir/internal/cards"
	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/dom"
	"github.com/ziadkadry99/aidir/internal/i18n"
	"github.com/ziadkadry99/aidir/internal/sitemap"
)

// ErrPageNotFound is returned for unknown markdown page slugs.
var ErrPageNotFound = errors.New("page not found")

var (
	shellTmpl = template.Must(template.New("shell").Parse(shellTemplate))
	toolTmpl  = template.Must(template.New("tool").Parse(toolTemplate))
)

// Controller renders the pages of the directory. It plays the part of the
// page controller: it renders the shell, mounts the grid container, fills
// it with cards and hands the page to a cards.Session.
type Controller struct {
	SiteName     string
	Catalog      *catalog.Store
	Pages        []MarkdownPage
	BuildID      string
	LiveReload   bool
	ReadyTimeout time.Duration

	logger *zap.Logger
	md     goldmark.Markdown
	gate   *cards.ReadyGate
}

// NewController returns a controller rendering from store.
func NewController(siteName string, store *catalog.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		SiteName: siteName,
		Catalog:  store,
		logger:   logger.Named("site"),
		md:       NewMarkdown(),
		gate:     &cards.ReadyGate{},
	}
}

// View describes one rendering of a page.
type View struct {
	Lang  i18n.Language
	Query catalog.Query
	// Flip and Tool pre-apply interaction state: the card to show flipped
	// and the tool to show in the detail modal.
	Flip catalog.ID
	Tool catalog.ID
	// BasePath prefixes links to site-wide resources ("", "../" or "/").
	BasePath string
	// LangPrefix is the path of the page language's tree below BasePath
	// ("" for the default language, "en/" or "de/" otherwise).
	LangPrefix string
	AltLangURL string
	FormAction string
	ActivePage string
}

type navLink struct {
	Href   string
	Title  string
	Active bool
}

type categoryOption struct {
	Value    string
	Key      string
	Label    string
	Selected bool
}

type shellData struct {
	Lang        string
	SiteName    string
	Title       string
	Description string
	BasePath    string
	LangBase    string
	BuildID     string
	AltLang     string
	AltLangURL  string
	LiveReload  bool
	Nav         []navLink
	LastUpdated string
	T           func(key string) string

	Index      bool
	FormAction string
	Query      string
	Categories []categoryOption
	FreeOnly   bool
	Count      int

	Content template.HTML
}

type toolData struct {
	ID             string
	Title          string
	Description    string
	DescriptionKey string
	Category       string
	CategoryKey    string
	CategoryName   string
	CategoryStyle  template.CSS
	PriceClass     string
	PriceKey       string
	PriceStyle     template.CSS
	Rating         string
	Stars          string
	Details        template.HTML
	ModalDetail    template.HTML
	Tags           []string
	Link           string
	Added          string
	BackURL        string
	T              func(key string) string
}

// OtherLanguage returns the language the toggle switches to.
func OtherLanguage(lang i18n.Language) i18n.Language {
	if lang == i18n.English {
		return i18n.German
	}
	return i18n.English
}

func (c *Controller) shell(v View, snap *catalog.Snapshot) shellData {
	lang := v.Lang
	if lang == "" {
		lang = i18n.Default
	}
	alt := OtherLanguage(lang)
	d := shellData{
		Lang:        string(lang),
		SiteName:    c.SiteName,
		BasePath:    v.BasePath,
		LangBase:    v.BasePath + v.LangPrefix,
		BuildID:     c.BuildID,
		AltLang:     string(alt),
		AltLangURL:  v.AltLangURL,
		LiveReload:  c.LiveReload,
		LastUpdated: sitemap.NormalizeDate(snap.Meta.LastUpdated),
		T:           func(key string) string { return i18n.Lookup(lang, key) },
	}
	if d.SiteName == "" {
		d.SiteName = i18n.Lookup(lang, "site.title")
	}
	for _, p := range c.Pages {
		d.Nav = append(d.Nav, navLink{Href: v.BasePath + p.Href(), Title: p.Title, Active: p.Slug == v.ActivePage})
	}
	return d
}

func categoryOptions(lang i18n.Language, selected catalog.Category) []categoryOption {
	opts := make([]categoryOption, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		key := "category." + string(c)
		opts = append(opts, categoryOption{
			Value:    string(c),
			Key:      key,
			Label:    i18n.Lookup(lang, key),
			Selected: c == selected,
		})
	}
	return opts
}

// Index renders the directory grid for v and returns the live session
// over it. Callers must Close the session.
func (c *Controller) Index(ctx context.Context, v View) (*cards.Session, error) {
	if v.Lang == "" {
		v.Lang = i18n.Default
	}
	snap := c.Catalog.Snapshot()
	tools := Filter(snap, v.Query)

	data := c.shell(v, snap)
	data.Index = true
	data.FormAction = v.FormAction
	data.Query = v.Query.Text
	data.FreeOnly = v.Query.FreeOnly
	data.Count = len(tools)
	data.Categories = categoryOptions(v.Lang, v.Query.Category)

	doc, err := renderDoc(data)
	if err != nil {
		return nil, err
	}
	page, err := cards.NewPage(doc, c.logger)
	if err != nil {
		return nil, err
	}
	sess := cards.NewSession(page, cards.Options{
		Catalog:      c.Catalog,
		Translator:   i18n.New(v.Lang),
		Logger:       c.logger,
		ReadyTimeout: c.ReadyTimeout,
		Gate:         c.gate,
	})
	if err := sess.Init(ctx); err != nil {
		sess.Close()
		return nil, err
	}

	grid := dom.NewElement("div", "class", "tools-grid", "aria-live", "polite")
	if main := dom.Find(doc, dom.ByID("main")); main != nil {
		main.AppendChild(grid)
	}
	page.MountGrid(grid)

	nodes, err := RenderGrid(tools, v.Lang)
	if err != nil {
		sess.Close()
		return nil, err
	}
	page.ReplaceCards(nodes)

	if v.Flip != "" {
		if card := page.Card(v.Flip); card != nil {
			sess.Dispatch(cards.Event{Type: cards.Click, Target: card})
		}
	}
	if v.Tool != "" {
		sess.Modal.Open(v.Tool)
	}
	return sess, nil
}

// IndexHTML renders the directory grid for v to HTML.
func (c *Controller) IndexHTML(ctx context.Context, v View) (string, error) {
	sess, err := c.Index(ctx, v)
	if err != nil {
		return "", err
	}
	defer sess.Close()
	return sess.Page.Render(), nil
}

// ToolPage renders the standalone detail page of id. It wraps
// catalog.ErrNotFound for unknown ids.
func (c *Controller) ToolPage(v View, id catalog.ID) (string, error) {
	if v.Lang == "" {
		v.Lang = i18n.Default
	}
	t, err := c.Catalog.Get(id)
	if err != nil {
		return "", fmt.Errorf("tool %q: %w", id, err)
	}

	category := catalog.NormalizeCategory(string(t.Category))
	lookup := func(key string) string { return i18n.Lookup(v.Lang, key) }
	td := toolData{
		ID:            string(t.ID),
		Title:         t.Title,
		Description:   strings.TrimSpace(t.Description),
		Category:      string(category),
		CategoryKey:   "category." + string(category),
		CategoryName:  lookup("category." + string(category)),
		CategoryStyle: template.CSS("background-color:" + category.Info().Color),
		PriceClass:    "price-premium",
		PriceKey:      "card.premium",
		PriceStyle:    cards.PriceStyle(t.IsFree),
		Rating:        strconv.FormatFloat(catalog.ClampRating(t.Rating), 'f', 1, 64),
		Stars:         cards.Stars(catalog.ClampRating(t.Rating)),
		Tags:          t.Tags,
		Link:          t.Link,
		Added:         sitemap.NormalizeDate(t.Added),
		BackURL:       v.BasePath + v.LangPrefix + "index.html",
		T:             lookup,
	}
	if t.IsFree {
		td.PriceClass, td.PriceKey = "price-free", "card.free"
	}
	if td.Description == "" {
		td.DescriptionKey = "card.no_description"
		td.Description = lookup(td.DescriptionKey)
	}
	modal, err := cards.RenderDetail(t, v.Lang)
	if err != nil {
		return "", err
	}
	td.ModalDetail = modal
	if strings.TrimSpace(t.Details) != "" {
		details, err := RenderMarkdown(c.md, []byte(t.Details))
		if err != nil {
			return "", fmt.Errorf("tool %q details: %w", id, err)
		}
		td.Details = details
	}

	var body bytes.Buffer
	if err := toolTmpl.Execute(&body, td); err != nil {
		return "", fmt.Errorf("rendering tool %q: %w", id, err)
	}

	data := c.shell(v, c.Catalog.Snapshot())
	data.Title = t.Title
	data.Description = summarize(t.Description, 160)
	data.Content = template.HTML(body.String())
	return renderString(data)
}

// MarkdownPageHTML renders the content page with the given slug.
func (c *Controller) MarkdownPageHTML(v View, slug string) (string, error) {
	for _, p := range c.Pages {
		if p.Slug != slug {
			continue
		}
		content, err := RenderMarkdown(c.md, p.Source)
		if err != nil {
			return "", fmt.Errorf("page %s: %w", slug, err)
		}
		v.ActivePage = slug
		data := c.shell(v, c.Catalog.Snapshot())
		data.Title = p.Title
		data.Content = content
		return renderString(data)
	}
	return "", fmt.Errorf("%s: %w", slug, ErrPageNotFound)
}

// toolPath is the static path of a tool's pre-rendered detail page.
func toolPath(id catalog.ID) string {
	return "tools/" + url.PathEscape(string(id)) + ".html"
}

func renderString(data shellData) (string, error) {
	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}

func renderDoc(data shellData) (*html.Node, error) {
	src, err := renderString(data)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, nil
}
