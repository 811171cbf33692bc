package cards

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Watcher keeps the grid prepared while the page controller replaces its
// cards. It listens for grid change notifications, refreshes the renderer's
// catalog snapshot and re-runs the (idempotent) preparation pass.
type Watcher struct {
	page     *Page
	renderer *Renderer
	catalog  Catalog
	logger   *zap.Logger

	started    bool
	subscribed bool
	passes     int
}

// NewWatcher returns a watcher that is inert until Start.
func NewWatcher(page *Page, renderer *Renderer, cat Catalog, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{page: page, renderer: renderer, catalog: cat, logger: logger.Named("watcher")}
}

// Start begins watching. If the grid is not mounted yet the watcher waits
// for the page's mount notification instead of polling for it. Calling
// Start again is a no-op.
func (w *Watcher) Start() {
	if w.started {
		return
	}
	w.started = true
	if w.page.Grid() == nil {
		w.logger.Debug("grid not mounted yet, waiting for mount")
	}
	w.page.OnGridMounted(func(*html.Node) {
		if !w.subscribed {
			w.page.OnGridChanged(func() { w.Sync() })
			w.subscribed = true
		}
		w.Sync()
	})
}

// Sync refreshes the catalog view and prepares every unprepared card. It
// returns the number of cards prepared in this pass.
func (w *Watcher) Sync() int {
	if w.catalog != nil {
		w.renderer.Refresh(w.catalog.Snapshot())
	}
	n := w.renderer.PrepareAll(w.page.Grid())
	w.passes++
	if n > 0 {
		w.logger.Debug("prepared cards", zap.Int("count", n), zap.Int("pass", w.passes))
	}
	return n
}

// Passes returns how many synchronization passes have run.
func (w *Watcher) Passes() int {
	return w.passes
}
