package cards

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/i18n"
)

// DefaultReadyTimeout bounds how long Init waits for the catalog before
// initializing anyway.
const DefaultReadyTimeout = 3 * time.Second

// Options configures a Session.
type Options struct {
	Catalog      Catalog
	Translator   *i18n.Translator
	Logger       *zap.Logger
	ReadyTimeout time.Duration
	// Gate is shared by sessions over the same catalog. Once one session
	// has fallen back after the ready timeout, later ones do not wait.
	Gate *ReadyGate
}

// ReadyGate remembers that the catalog missed its readiness deadline.
type ReadyGate struct {
	missed atomic.Bool
	warn   sync.Once
}

// Missed reports whether a session has already fallen back.
func (g *ReadyGate) Missed() bool {
	return g != nil && g.missed.Load()
}

func (g *ReadyGate) fallBack(logger *zap.Logger, timeout time.Duration) {
	if g == nil {
		logger.Warn("catalog not ready, initializing anyway", zap.Duration("timeout", timeout))
		return
	}
	g.missed.Store(true)
	g.warn.Do(func() {
		logger.Warn("catalog not ready, initializing without it until it loads", zap.Duration("timeout", timeout))
	})
}

// Session wires the renderer, flip handler, modal and watcher to one page.
type Session struct {
	Page     *Page
	Renderer *Renderer
	Flip     *FlipHandler
	Modal    *Modal
	Watcher  *Watcher

	tr           *i18n.Translator
	logger       *zap.Logger
	readyTimeout time.Duration
	gate         *ReadyGate
	initialized  bool
	unsubscribe  func()
}

// NewSession attaches the interactive components to page. The modal
// singleton is mounted immediately; cards are prepared by Init.
func NewSession(page *Page, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New(i18n.Default)
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = DefaultReadyTimeout
	}

	renderer := NewRenderer(nil, opts.Translator, opts.Logger)
	s := &Session{
		Page:         page,
		Renderer:     renderer,
		Flip:         NewFlipHandler(page, opts.Logger),
		Modal:        NewModal(page, opts.Catalog, opts.Translator, opts.Logger),
		Watcher:      NewWatcher(page, renderer, opts.Catalog, opts.Logger),
		tr:           opts.Translator,
		logger:       opts.Logger.Named("session"),
		readyTimeout: opts.ReadyTimeout,
		gate:         opts.Gate,
	}
	s.Flip.OnOpenDetail(func(id catalog.ID) { s.Modal.Open(id) })
	s.unsubscribe = opts.Translator.Subscribe(func(i18n.Language) {
		opts.Translator.Apply(page.Doc)
	})
	return s
}

// Init waits for the catalog's readiness signal, or for the ready timeout,
// then starts the watcher, which runs the first preparation pass as soon as
// the grid is mounted. After a fallback recorded in the gate it does not
// wait again. It only fails if ctx ends first.
func (s *Session) Init(ctx context.Context) error {
	if s.initialized {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var ready <-chan struct{}
	if s.Watcher.catalog != nil {
		ready = s.Watcher.catalog.Ready()
	}

	if s.gate.Missed() {
		select {
		case <-ready:
		default:
			s.logger.Debug("catalog still not ready, skipping wait")
		}
	} else {
		timer := time.NewTimer(s.readyTimeout)
		defer timer.Stop()

		select {
		case <-ready:
		case <-timer.C:
			s.gate.fallBack(s.logger, s.readyTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.initialized = true
	s.Watcher.Start()
	return nil
}

// Dispatch delivers an event the way a browser would: clicks go to the
// modal or the grid depending on where they land, Escape goes to both.
func (s *Session) Dispatch(ev Event) Outcome {
	switch ev.Type {
	case KeyDown:
		grid := s.Flip.Handle(ev)
		modal := s.Modal.Handle(ev)
		if modal.Handled {
			return modal
		}
		return grid
	case Click:
		if s.Modal.Contains(ev.Target) {
			return s.Modal.Handle(ev)
		}
		return s.Flip.Handle(ev)
	}
	return Outcome{}
}

// Close detaches the session from language change notifications.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
