package cards

import (
	"bytes"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/dom"
	"github.com/ziadkadry99/aidir/internal/i18n"
)

// ModalID is the element id of the detail modal singleton.
const ModalID = "tool-modal"

const visibleClass = "visible"

// Modal is the page's single detail overlay.
type Modal struct {
	page    *Page
	catalog Catalog
	tr      *i18n.Translator
	logger  *zap.Logger
	root    *html.Node
	current catalog.ID
}

// NewModal mounts the modal singleton at the end of the page body, reusing
// an existing #tool-modal if the document already has one.
func NewModal(page *Page, cat Catalog, tr *i18n.Translator, logger *zap.Logger) *Modal {
	if tr == nil {
		tr = i18n.New(i18n.Default)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Modal{page: page, catalog: cat, tr: tr, logger: logger.Named("modal")}

	if existing := dom.Find(page.Body, dom.ByID(ModalID)); existing != nil {
		m.root = existing
		return m
	}

	var buf bytes.Buffer
	err := modalShellTmpl.Execute(&buf, struct{ ID, CloseLabel string }{ModalID, tr.T("modal.close")})
	if err != nil {
		m.logger.Error("rendering modal shell", zap.Error(err))
		return m
	}
	nodes, err := dom.ParseFragment(buf.String(), page.Body)
	if err != nil || len(nodes) == 0 {
		m.logger.Error("parsing modal shell", zap.Error(err))
		return m
	}
	m.root = nodes[0]
	page.Body.AppendChild(m.root)
	return m
}

// Visible reports whether the modal is showing.
func (m *Modal) Visible() bool {
	return m.root != nil && dom.HasClass(m.root, visibleClass)
}

// Current returns the id of the tool on display, or "" when hidden.
func (m *Modal) Current() catalog.ID {
	if !m.Visible() {
		return ""
	}
	return m.current
}

// Open shows the detail view of id. Unknown ids and missing modal nodes are
// logged and leave the page untouched. It reports whether the modal opened.
func (m *Modal) Open(id catalog.ID) bool {
	body := m.bodyNode()
	if body == nil {
		m.logger.Warn("modal elements missing, cannot open", zap.String("id", string(id)))
		return false
	}
	var tool catalog.Tool
	ok := false
	if m.catalog != nil {
		tool, ok = m.catalog.Snapshot().Get(id)
	}
	if !ok {
		m.logger.Warn("tool not found", zap.String("id", string(id)))
		return false
	}

	detail, err := RenderDetail(tool, m.tr.Language())
	if err != nil {
		m.logger.Error("rendering modal body", zap.String("id", string(id)), zap.Error(err))
		return false
	}
	nodes, err := dom.ParseFragment(string(detail), body)
	if err != nil {
		m.logger.Error("parsing modal body", zap.String("id", string(id)), zap.Error(err))
		return false
	}

	dom.DetachChildren(body)
	dom.AppendAll(body, nodes)
	dom.AddClass(m.root, visibleClass)
	dom.SetAttr(m.root, "aria-hidden", "false")
	m.page.setScrollLocked(true)
	m.current = id
	return true
}

// Close hides the modal and restores page scrolling. Closing a hidden modal
// does nothing.
func (m *Modal) Close() {
	if !m.Visible() {
		return
	}
	if !m.attached() {
		m.logger.Warn("modal elements missing, cannot close")
		return
	}
	dom.RemoveClass(m.root, visibleClass)
	dom.SetAttr(m.root, "aria-hidden", "true")
	m.page.setScrollLocked(false)
	m.current = ""
}

// Handle reacts to close-button clicks, clicks on the overlay background
// and the Escape key. Escape is honored whether or not the modal is open.
func (m *Modal) Handle(ev Event) Outcome {
	switch ev.Type {
	case KeyDown:
		if ev.Key != KeyEscape {
			return Outcome{}
		}
		wasVisible := m.Visible()
		m.Close()
		return Outcome{Intent: IntentCloseModal, Handled: wasVisible}
	case Click:
		if !m.attached() || ev.Target == nil || !dom.Contains(m.root, ev.Target) {
			return Outcome{}
		}
		if dom.Closest(ev.Target, dom.ByClass("modal-close")) != nil ||
			dom.HasClass(ev.Target, "modal-overlay") {
			m.Close()
			return Outcome{Intent: IntentCloseModal, Handled: true}
		}
		if dom.Closest(ev.Target, isAnchor) != nil {
			return Outcome{Intent: IntentNavigateOut}
		}
	}
	return Outcome{}
}

// Contains reports whether n is part of the modal.
func (m *Modal) Contains(n *html.Node) bool {
	return m.root != nil && n != nil && dom.Contains(m.root, n)
}

func (m *Modal) attached() bool {
	return m.root != nil && dom.Contains(m.page.Doc, m.root)
}

func (m *Modal) bodyNode() *html.Node {
	if !m.attached() {
		return nil
	}
	return dom.Find(m.root, dom.ByClass("modal-body"))
}
