package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"go.trai.ch/vista/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 200 * time.Millisecond

// Watcher watches a fixed set of view definition files and reports changed
// paths, debounced, through a callback. Directories are watched rather than
// the files themselves so rename-based editor saves are not lost.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	log       ports.Logger
	window    time.Duration
	watched   map[string]struct{}
}

// NewWatcher creates a watcher. Watch must be called to arm it.
func NewWatcher(log ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		log:       log,
		window:    DefaultDebounceWindow,
		watched:   make(map[string]struct{}),
	}, nil
}

// Watch arms the watcher for the given files and starts event processing.
// onChange receives batches of changed file paths until ctx ends.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(paths []string)) error {
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		w.watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx, NewDebouncer(w.window, onChange))
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context, debouncer *Debouncer) {
	for {
		select {
		case <-ctx.Done():
			debouncer.Flush()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := w.watched[abs]; !ok {
				continue
			}
			debouncer.Add(abs)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", "error", err)
		}
	}
}
