// Package watch re-runs a function whenever one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDelay coalesces the burst of events an editor produces on save.
const DefaultDelay = 300 * time.Millisecond

// Watcher watches files through their parent directories, so files that are
// replaced by rename (as most editors do) keep being watched.
type Watcher struct {
	files map[string]bool
	dirs  []string
	delay time.Duration
	log   *zap.Logger
}

// New creates a Watcher for the given files. Empty paths are ignored.
func New(paths []string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Watcher{
		files: make(map[string]bool),
		delay: DefaultDelay,
		log:   log,
	}

	seenDirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	return w, nil
}

// SetDelay changes the quiet period before fn runs.
func (w *Watcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Files returns the number of watched files.
func (w *Watcher) Files() int {
	return len(w.files)
}

// Matches reports whether ev concerns one of the watched files.
func (w *Watcher) Matches(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Run calls fn each time a watched file changes, until ctx is done. Calls
// never overlap. An error from fn is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.log.Debug("watching directory", zap.String("dir", dir))
	}

	timer := time.NewTimer(w.delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.Matches(ev) {
				continue
			}
			w.log.Debug("change detected", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(w.delay)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if err := fn(); err != nil {
				w.log.Error("run after change failed", zap.Error(err))
			}
		}
	}
}
