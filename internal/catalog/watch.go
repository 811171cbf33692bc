package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultReloadDebounce = 200 * time.Millisecond

// FileWatcher reloads a catalog file into a Store whenever it changes on
// disk. Bursts of events are coalesced.
type FileWatcher struct {
	path     string
	store    *Store
	logger   *zap.Logger
	debounce time.Duration
}

// NewFileWatcher returns a watcher for the catalog at path.
func NewFileWatcher(path string, store *Store, logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{
		path:     path,
		store:    store,
		logger:   logger.Named("catalog_watcher"),
		debounce: defaultReloadDebounce,
	}
}

// Run watches until ctx is done. The parent directory is watched rather
// than the file so editors that replace the file atomically keep working.
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *FileWatcher) reload() {
	doc, err := LoadFile(w.path)
	if err != nil {
		// Keep serving the previous snapshot; the file may be mid-write.
		w.logger.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	snap := w.store.Replace(doc)
	w.logger.Info("catalog reloaded",
		zap.String("path", w.path),
		zap.Uint64("revision", snap.Revision),
		zap.Int("tools", snap.Len()))
}
