package session

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is the cache surface the watcher clears on structural
// filesystem changes.
type Invalidator interface {
	InvalidateAll()
}

// Watcher bridges filesystem events to the engine's refresh machinery.
// Deletes and renames clear the project-count cache wholesale, since
// stale entries for removed paths would otherwise never be pruned; every
// event kicks the debounced refreshes.
type Watcher struct {
	fw      *fsnotify.Watcher
	cache   Invalidator
	project *Debouncer
	status  *Debouncer
	log     *slog.Logger
	done    chan struct{}
}

// NewWatcher starts watching. cache may be nil when there is no cache to
// clear; project and status debouncers may each be nil as well.
func NewWatcher(cache Invalidator, project, status *Debouncer, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	w := &Watcher{
		fw:      fw,
		cache:   cache,
		project: project,
		status:  status,
		log:     log,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add watches a workspace root. fsnotify watches are per directory, not
// recursive; add each directory of interest.
func (w *Watcher) Add(root string) error {
	return w.fw.Add(root)
}

// Close stops watching and waits for the event loop to drain.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Usually recoverable; keep watching.
			w.log.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		if w.cache != nil {
			w.cache.InvalidateAll()
		}
	}
	if w.project != nil {
		w.project.Trigger()
	}
	if w.status != nil && ev.Has(fsnotify.Write) {
		w.status.Trigger()
	}
}
