package cards

import (
	"bytes"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/dom"
	"github.com/ziadkadry99/aidir/internal/i18n"
)

// Renderer turns plain grid cards into two-faced flip cards. It renders
// from a cached catalog snapshot that the Watcher refreshes.
type Renderer struct {
	snapshot *catalog.Snapshot
	tr       *i18n.Translator
	logger   *zap.Logger
}

// NewRenderer returns a renderer over snapshot (which may be nil).
func NewRenderer(snapshot *catalog.Snapshot, tr *i18n.Translator, logger *zap.Logger) *Renderer {
	if tr == nil {
		tr = i18n.New(i18n.Default)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{snapshot: snapshot, tr: tr, logger: logger.Named("renderer")}
}

// Refresh swaps the cached catalog snapshot.
func (r *Renderer) Refresh(snapshot *catalog.Snapshot) {
	r.snapshot = snapshot
}

// Prepare builds the flip structure of card in place:
//
//	card > .card-inner > (.card-front [original children], .card-back)
//
// It reports whether the card was changed; already prepared cards and
// non-card nodes are left alone.
func (r *Renderer) Prepare(card *html.Node) bool {
	if !isCard(card) || isPrepared(card) {
		return false
	}

	tool := r.lookup(card)
	var buf bytes.Buffer
	if err := backFaceTmpl.Execute(&buf, newFaceData(tool, r.tr.Language(), maxFaceTags)); err != nil {
		r.logger.Error("rendering back face", zap.String("id", string(tool.ID)), zap.Error(err))
		return false
	}
	back, err := dom.ParseFragment(buf.String(), nil)
	if err != nil {
		r.logger.Error("parsing back face", zap.String("id", string(tool.ID)), zap.Error(err))
		return false
	}

	front := dom.NewElement("div", "class", "card-front")
	dom.AppendAll(front, dom.DetachChildren(card))

	inner := dom.NewElement("div", "class", "card-inner")
	inner.AppendChild(front)
	dom.AppendAll(inner, back)

	card.AppendChild(inner)
	dom.SetAttr(card, PreparedAttr, "true")
	if _, ok := dom.Attr(card, "tabindex"); !ok {
		dom.SetAttr(card, "tabindex", "0")
	}
	return true
}

// PrepareAll prepares every card under root and returns how many changed.
func (r *Renderer) PrepareAll(root *html.Node) int {
	if root == nil {
		return 0
	}
	n := 0
	for _, card := range dom.FindAll(root, isCard) {
		if r.Prepare(card) {
			n++
		}
	}
	return n
}

// lookup resolves the card's tool, synthesizing a minimal record from the
// card's own attributes when the catalog has no match.
func (r *Renderer) lookup(card *html.Node) catalog.Tool {
	id := catalog.ID(dom.AttrOr(card, IDAttr, ""))
	if tool, ok := r.snapshot.Get(id); ok {
		return tool
	}
	r.logger.Debug("tool not in catalog, using card attributes", zap.String("id", string(id)))
	title := dom.AttrOr(card, NameAttr, "")
	if title == "" {
		title = string(id)
	}
	return catalog.Tool{
		ID:       id,
		Title:    title,
		Category: catalog.NormalizeCategory(dom.AttrOr(card, CategoryAttr, "")),
		Link:     dom.AttrOr(card, LinkAttr, ""),
	}
}
