// Package cards turns a rendered tool grid into interactive flip cards and
// drives the tool detail modal. All types here operate on one parsed
// document and are meant to be used from a single goroutine.
package cards

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/dom"
)

// Markup contract shared with the page controller.
const (
	GridID        = "tools-grid"
	CardClass     = "tool-card"
	FlippedClass  = "flipped"
	PreparedAttr  = "data-prepared"
	IDAttr        = "data-id"
	NameAttr      = "data-name"
	CategoryAttr  = "data-category"
	LinkAttr      = "data-link"
	NoScrollClass = "no-scroll"
)

// ErrNoBody is returned for documents without a <body> element.
var ErrNoBody = errors.New("document has no <body>")

// Catalog is the read side of the tool catalog the page core consumes.
type Catalog interface {
	Snapshot() *catalog.Snapshot
	Ready() <-chan struct{}
}

// Page owns one document and the notification channels around its grid
// container. It replaces ambient page state: everything that needs the
// grid, the body or change notifications gets it from here.
type Page struct {
	Doc  *html.Node
	Body *html.Node

	logger     *zap.Logger
	grid       *html.Node
	mountSubs  []func(grid *html.Node)
	changeSubs []func()
}

// NewPage wraps doc. The grid container (#tools-grid) is picked up if it is
// already part of the document; otherwise it becomes available through
// MountGrid.
func NewPage(doc *html.Node, logger *zap.Logger) (*Page, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	body := dom.Find(doc, dom.ByTag("body"))
	if body == nil {
		return nil, ErrNoBody
	}
	return &Page{
		Doc:    doc,
		Body:   body,
		logger: logger.Named("page"),
		grid:   dom.Find(body, dom.ByID(GridID)),
	}, nil
}

// Grid returns the mounted grid container, or nil.
func (p *Page) Grid() *html.Node {
	return p.grid
}

// MountGrid installs grid as the page's grid container, appending it to the
// body when it is detached, and announces it to mount subscribers.
func (p *Page) MountGrid(grid *html.Node) {
	if grid.Parent == nil {
		p.Body.AppendChild(grid)
	}
	dom.SetAttr(grid, "id", GridID)
	p.grid = grid
	for _, fn := range p.mountSubs {
		fn(grid)
	}
}

// ReplaceCards swaps the grid's children for cards and announces the
// change. This is how the page controller re-renders after filtering.
func (p *Page) ReplaceCards(cards []*html.Node) {
	if p.grid == nil {
		p.logger.Warn("replace cards without a mounted grid")
		return
	}
	dom.DetachChildren(p.grid)
	dom.AppendAll(p.grid, cards)
	p.NotifyChanged()
}

// NotifyChanged announces that the grid's children changed.
func (p *Page) NotifyChanged() {
	for _, fn := range p.changeSubs {
		fn()
	}
}

// OnGridMounted calls fn for every grid mount, immediately if a grid is
// already present.
func (p *Page) OnGridMounted(fn func(grid *html.Node)) {
	p.mountSubs = append(p.mountSubs, fn)
	if p.grid != nil {
		fn(p.grid)
	}
}

// OnGridChanged calls fn after every grid change notification.
func (p *Page) OnGridChanged(fn func()) {
	p.changeSubs = append(p.changeSubs, fn)
}

// Cards returns every card element in the grid, in document order.
func (p *Page) Cards() []*html.Node {
	if p.grid == nil {
		return nil
	}
	return dom.FindAll(p.grid, isCard)
}

// Card returns the grid card bound to id, or nil.
func (p *Page) Card(id catalog.ID) *html.Node {
	for _, c := range p.Cards() {
		if v, _ := dom.Attr(c, IDAttr); catalog.ID(v) == id {
			return c
		}
	}
	return nil
}

// ScrollLocked reports whether page scrolling is disabled.
func (p *Page) ScrollLocked() bool {
	return dom.HasClass(p.Body, NoScrollClass)
}

func (p *Page) setScrollLocked(locked bool) {
	dom.ToggleClass(p.Body, NoScrollClass, locked)
}

// Render serializes the whole document.
func (p *Page) Render() string {
	return dom.Render(p.Doc)
}

func isCard(n *html.Node) bool {
	if !dom.HasClass(n, CardClass) {
		return false
	}
	_, ok := dom.Attr(n, IDAttr)
	return ok
}

func isPrepared(n *html.Node) bool {
	v, _ := dom.Attr(n, PreparedAttr)
	return v == "true"
}

func isFlipped(n *html.Node) bool {
	return dom.HasClass(n, FlippedClass)
}
