// Package watcher feeds new scan files from a directory to a handler.
//
// Events are debounced per path: a file is handed over once no event has
// arrived for it within the settle window, so partially written scans are
// not read. Files are handled one at a time from the Run goroutine.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/dentract/internal/logger"
)

// DefaultSettle is how long a path must be quiet before it is handled.
const DefaultSettle = 500 * time.Millisecond

// Handler processes one settled file. Errors are logged and do not stop Run.
type Handler func(ctx context.Context, path string) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter limits handled files to those for which accept returns true.
func WithFilter(accept func(path string) bool) Option {
	return func(w *Watcher) {
		w.accept = accept
	}
}

// WithSettle sets the debounce window.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithExisting handles files already in the directory before watching.
func WithExisting() Option {
	return func(w *Watcher) {
		w.existing = true
	}
}

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	dir      string
	accept   func(path string) bool
	settle   time.Duration
	existing bool
	now      func() time.Time
}

// New creates a watcher for dir.
func New(dir string, opts ...Option) *Watcher {
	w := &Watcher{
		dir:    dir,
		accept: func(string) bool { return true },
		settle: DefaultSettle,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watching %s: not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s", w.dir)

	if w.existing {
		if err := w.handleExisting(ctx, handle); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path, keep := w.handleFsEvent(event)
			if path == "" {
				continue
			}
			if keep {
				pending[path] = w.now()
			} else {
				delete(pending, path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-ticker.C:
			w.flush(ctx, pending, handle)
		}
	}
}

// handleFsEvent maps an event to a path and whether it should be pending.
// An empty path means the event is ignored; keep false removes the path.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if isHidden(event.Name) {
		return "", false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return event.Name, false
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() || !w.accept(event.Name) {
			return "", false
		}
		return event.Name, true
	default:
		return "", false
	}
}

// flush hands over every pending path that has been quiet for the settle window.
func (w *Watcher) flush(ctx context.Context, pending map[string]time.Time, handle Handler) {
	cutoff := w.now().Add(-w.settle)

	var ready []string
	for path, last := range pending {
		if !last.After(cutoff) {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		delete(pending, path)
		w.dispatch(ctx, path, handle)
	}
}

func (w *Watcher) handleExisting(ctx context.Context, handle Handler) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.dir, err)
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil
		}
		path := filepath.Join(w.dir, entry.Name())
		if entry.IsDir() || isHidden(path) || !w.accept(path) {
			continue
		}
		w.dispatch(ctx, path, handle)
	}
	return nil
}

func (w *Watcher) dispatch(ctx context.Context, path string, handle Handler) {
	if err := handle(ctx, path); err != nil {
		logger.Warn("%s: %v", filepath.Base(path), err)
	}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
