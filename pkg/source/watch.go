package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports which directories changed on disk so the host can
// reload the matching tree nodes. Rapid bursts of events collapse into
// one notification per directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(dir string)

	ctx    context.Context
	cancel context.CancelFunc

	debounce  time.Duration
	lastEvent map[string]time.Time
}

// NewWatcher creates a watcher that invokes onChange with the directory
// containing each changed entry. onChange runs on the watch goroutine.
func NewWatcher(onChange func(dir string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:   fw,
		onChange:  onChange,
		ctx:       ctx,
		cancel:    cancel,
		debounce:  200 * time.Millisecond,
		lastEvent: make(map[string]time.Time),
	}
	go w.loop()
	return w, nil
}

// Add starts watching one directory. Call it for each directory the
// tree has loaded.
func (w *Watcher) Add(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Remove stops watching a directory, for nodes pruned from the tree.
func (w *Watcher) Remove(dir string) {
	// Best effort: the path may already be gone.
	_ = w.watcher.Remove(dir)
}

// Close shuts the watcher down.
func (w *Watcher) Close() {
	w.cancel()
	w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			dir := filepath.Dir(event.Name)
			now := time.Now()
			if now.Sub(w.lastEvent[dir]) < w.debounce {
				continue
			}
			w.lastEvent[dir] = now
			w.onChange(dir)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep the loop alive.
		}
	}
}
