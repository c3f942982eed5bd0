// Package watcher rebuilds the index when corpus files change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/icta-labs/lore-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last event
// before triggering a rebuild. Editors fire bursts of writes; one
// rebuild per burst is enough.
const DefaultDebounce = 2 * time.Second

// watchedExtensions mirrors what the corpus scanner accepts.
var watchedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// Watcher monitors a corpus root and invokes a rebuild callback after
// changes settle.
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  func(ctx context.Context) error
	fsw      *fsnotify.Watcher
}

// New creates a watcher over root. The rebuild callback is invoked
// once per settled burst of changes.
func New(root string, debounce time.Duration, rebuild func(ctx context.Context) error) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		rebuild:  rebuild,
		fsw:      fsw,
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks processing events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Change detected: %s (%s)", event.Name, event.Op)

			// New directories must be watched as they appear.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			logger.Info("Corpus changed, rebuilding index")
			if err := w.rebuild(ctx); err != nil {
				logger.Warn("Rebuild failed: %v", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// relevant filters events down to supported corpus files and
// directory changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	ext := filepath.Ext(event.Name)
	if ext == "" {
		// Possibly a directory.
		return true
	}
	return watchedExtensions[ext]
}

// addRecursive watches dir and every subdirectory beneath it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				logger.Warn("Cannot watch %s: %v", path, err)
			}
		}
		return nil
	})
}
