package importer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hmans/rolodex/internal/store"
)

const debounceDelay = 100 * time.Millisecond

// Watcher monitors a cards directory and re-imports changed cards into
// the directory store after a short debounce window.
type Watcher struct {
	dir      store.Directory
	cardsDir string
	onSync   func(*Result, error)

	mu       sync.Mutex
	watching bool
	done     chan struct{}
}

// NewWatcher creates a watcher for the given cards directory. The
// onSync callback is invoked after each debounced import pass; it may
// be nil.
func NewWatcher(dir store.Directory, cardsDir string, onSync func(*Result, error)) *Watcher {
	return &Watcher{dir: dir, cardsDir: cardsDir, onSync: onSync}
}

// Start begins filesystem monitoring. It returns immediately; imports
// run on a background goroutine until Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watching {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.cardsDir); err != nil {
		fsw.Close()
		return err
	}

	w.watching = true
	w.done = make(chan struct{})

	go w.watchLoop(ctx, fsw)
	return nil
}

// Stop ends filesystem monitoring.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watching {
		return
	}
	close(w.done)
	w.watching = false
}

func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			relevant := event.Op&fsnotify.Create != 0 ||
				event.Op&fsnotify.Write != 0 ||
				event.Op&fsnotify.Rename != 0
			if !relevant {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				result, err := Import(ctx, w.dir, w.cardsDir)
				if w.onSync != nil {
					w.onSync(result, err)
				}
			})

		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
