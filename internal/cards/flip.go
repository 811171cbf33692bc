package cards

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/dom"
)

// EventType distinguishes the interactions the page reacts to.
type EventType int

const (
	Click EventType = iota + 1
	KeyDown
)

// KeyEscape is the key value of the Escape key.
const KeyEscape = "Escape"

// Event is a user interaction aimed at a node of the page.
type Event struct {
	Type   EventType
	Target *html.Node
	Key    string
}

// Intent is what an event means to the card grid.
type Intent int

const (
	IntentNone Intent = iota
	IntentFlipOpen
	IntentFlipClose
	IntentCloseAll
	IntentNavigateOut
	IntentOpenDetail
	IntentCloseModal
)

var intentNames = map[Intent]string{
	IntentNone:        "none",
	IntentFlipOpen:    "flip-open",
	IntentFlipClose:   "flip-close",
	IntentCloseAll:    "close-all",
	IntentNavigateOut: "navigate-out",
	IntentOpenDetail:  "open-detail",
	IntentCloseModal:  "close-modal",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return "unknown"
}

// Outcome reports how an event was handled. Handled means the event was
// consumed: a browser would stop propagation and prevent the default
// action. Unhandled link clicks navigate normally.
type Outcome struct {
	Intent  Intent
	Card    *html.Node
	Handled bool
}

// FlipHandler routes grid events to flip state changes. One handler serves
// the whole grid, so cards added later need no extra wiring.
type FlipHandler struct {
	page     *Page
	logger   *zap.Logger
	routes   map[Intent]func(card *html.Node) bool
	onDetail func(id catalog.ID)
}

// NewFlipHandler attaches a handler to page's grid.
func NewFlipHandler(page *Page, logger *zap.Logger) *FlipHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &FlipHandler{page: page, logger: logger.Named("flip")}
	h.routes = map[Intent]func(card *html.Node) bool{
		IntentFlipOpen: func(card *html.Node) bool {
			h.Flip(card)
			return true
		},
		IntentFlipClose: func(card *html.Node) bool {
			h.Close(card)
			return true
		},
		IntentCloseAll: func(*html.Node) bool {
			return h.CloseAll() > 0
		},
		IntentNavigateOut: func(*html.Node) bool {
			return false
		},
		IntentOpenDetail: func(card *html.Node) bool {
			if h.onDetail == nil {
				return false
			}
			h.onDetail(catalog.ID(dom.AttrOr(card, IDAttr, "")))
			return true
		},
	}
	return h
}

// OnOpenDetail sets the callback for detail-button clicks.
func (h *FlipHandler) OnOpenDetail(fn func(id catalog.ID)) {
	h.onDetail = fn
}

// Resolve maps an event to an intent and the card it concerns, by walking
// the target's ancestry.
func (h *FlipHandler) Resolve(ev Event) (Intent, *html.Node) {
	switch ev.Type {
	case KeyDown:
		if ev.Key == KeyEscape {
			return IntentCloseAll, nil
		}
		return IntentNone, nil
	case Click:
	default:
		return IntentNone, nil
	}

	grid := h.page.Grid()
	if grid == nil || ev.Target == nil || !dom.Contains(grid, ev.Target) {
		return IntentNone, nil
	}
	card := dom.Closest(ev.Target, isCard)
	if card == nil {
		return IntentNone, nil
	}
	within := func(match func(*html.Node) bool) bool {
		n := dom.Closest(ev.Target, match)
		return n != nil && dom.Contains(card, n)
	}

	switch {
	case within(isAnchor):
		return IntentNavigateOut, card
	case !isPrepared(card):
		return IntentNone, card
	case within(dom.ByClass("card-close")):
		return IntentFlipClose, card
	case within(dom.ByClass("card-details")):
		return IntentOpenDetail, card
	case isFlipped(card):
		return IntentNone, card
	default:
		return IntentFlipOpen, card
	}
}

// Handle resolves ev and runs the matching route.
func (h *FlipHandler) Handle(ev Event) Outcome {
	intent, card := h.Resolve(ev)
	out := Outcome{Intent: intent, Card: card}
	if route, ok := h.routes[intent]; ok {
		out.Handled = route(card)
	}
	h.logger.Debug("grid event", zap.Stringer("intent", intent), zap.Bool("handled", out.Handled))
	return out
}

// Flip opens card, closing every other flipped card first.
func (h *FlipHandler) Flip(card *html.Node) {
	for _, other := range h.page.Cards() {
		if other != card {
			h.Close(other)
		}
	}
	dom.AddClass(card, FlippedClass)
	dom.SetAttr(card, "aria-expanded", "true")
}

// Close returns card to its front face.
func (h *FlipHandler) Close(card *html.Node) {
	if !isFlipped(card) {
		return
	}
	dom.RemoveClass(card, FlippedClass)
	dom.SetAttr(card, "aria-expanded", "false")
}

// CloseAll closes every flipped card and returns how many there were.
func (h *FlipHandler) CloseAll() int {
	n := 0
	for _, card := range h.page.Cards() {
		if isFlipped(card) {
			h.Close(card)
			n++
		}
	}
	return n
}

// Flipped returns the currently flipped cards.
func (h *FlipHandler) Flipped() []*html.Node {
	var out []*html.Node
	for _, card := range h.page.Cards() {
		if isFlipped(card) {
			out = append(out, card)
		}
	}
	return out
}

func isAnchor(n *html.Node) bool {
	if n.Data != "a" {
		return false
	}
	_, ok := dom.Attr(n, "href")
	return ok
}
