package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned by lookups for identifiers not in the catalog.
var ErrNotFound = errors.New("tool not found")

// Snapshot is an immutable view of the catalog at one revision.
type Snapshot struct {
	Revision uint64
	Meta     Meta
	Tools    []Tool
	LoadedAt time.Time
	// Skipped counts records dropped for a missing or duplicate id.
	Skipped int
	byID     map[ID]int
}

// NewSnapshot indexes doc. Tools are normalized; entries without an id are
// dropped and a duplicate id keeps its first occurrence.
func NewSnapshot(doc Document, revision uint64) *Snapshot {
	s := &Snapshot{
		Revision: revision,
		Meta:     doc.Meta,
		Tools:    make([]Tool, 0, len(doc.Tools)),
		LoadedAt: time.Now(),
		byID:     make(map[ID]int, len(doc.Tools)),
	}
	for _, t := range doc.Tools {
		if t.ID == "" {
			s.Skipped++
			continue
		}
		if _, dup := s.byID[t.ID]; dup {
			s.Skipped++
			continue
		}
		t.normalize()
		s.byID[t.ID] = len(s.Tools)
		s.Tools = append(s.Tools, t)
	}
	return s
}

// Get returns the tool with the given id.
func (s *Snapshot) Get(id ID) (Tool, bool) {
	if s == nil {
		return Tool{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Tool{}, false
	}
	return s.Tools[i], true
}

// Len returns the number of tools.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tools)
}

// Document converts the snapshot back into its on-disk form.
func (s *Snapshot) Document() Document {
	tools := make([]Tool, len(s.Tools))
	copy(tools, s.Tools)
	return Document{Meta: s.Meta, Tools: tools}
}

// Store holds the current catalog snapshot. It is safe for concurrent use;
// readers always see a complete snapshot.
type Store struct {
	logger   *zap.Logger
	state    atomic.Value
	revision atomic.Uint64

	readyOnce sync.Once
	ready     chan struct{}

	subsMu sync.Mutex
	subs   map[chan *Snapshot]struct{}
}

// NewStore returns an empty store. Ready() stays open until the first
// Replace.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		logger: logger.Named("catalog"),
		ready:  make(chan struct{}),
		subs:   make(map[chan *Snapshot]struct{}),
	}
	s.state.Store(NewSnapshot(Document{}, 0))
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.state.Load().(*Snapshot)
}

// Get looks up a tool in the current snapshot.
func (s *Store) Get(id ID) (Tool, error) {
	t, ok := s.Snapshot().Get(id)
	if !ok {
		return Tool{}, ErrNotFound
	}
	return t, nil
}

// Ready is closed once the store holds its first loaded catalog.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Replace publishes doc as the new snapshot, signals readiness and notifies
// subscribers.
func (s *Store) Replace(doc Document) *Snapshot {
	next := NewSnapshot(doc, s.revision.Add(1))
	s.state.Store(next)
	s.readyOnce.Do(func() { close(s.ready) })
	if next.Skipped > 0 {
		s.logger.Warn("catalog records skipped",
			zap.Int("skipped", next.Skipped),
			zap.String("reason", "missing or duplicate id"))
	}
	s.logger.Debug("catalog replaced",
		zap.Uint64("revision", next.Revision),
		zap.Int("tools", next.Len()))
	s.broadcast(next)
	return next
}

// Subscribe returns a channel receiving every subsequent snapshot. Slow
// receivers miss intermediate revisions. The subscription ends with ctx.
func (s *Store) Subscribe(ctx context.Context) <-chan *Snapshot {
	ch := make(chan *Snapshot, 1)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subsMu.Lock()
		delete(s.subs, ch)
		s.subsMu.Unlock()
	}()
	return ch
}

func (s *Store) broadcast(snap *Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale pending value so the newest revision wins.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
