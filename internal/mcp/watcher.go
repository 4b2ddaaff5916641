package mcp

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloadable is an interface for components that can be reloaded.
type Reloadable interface {
	Reload(ctx context.Context) error
}

// tableWatcher watches a database directory for table rewrites and triggers
// a reload of the derived structures (search index, caller graph). Events
// are debounced because exports rewrite several CSV files in a burst.
type tableWatcher struct {
	reloadable   Reloadable
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// newTableWatcher creates a watcher over the database directory.
func newTableWatcher(reloadable Reloadable, dbDir string, debounce time.Duration) (*tableWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dbDir); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &tableWatcher{
		reloadable:   reloadable,
		watcher:      watcher,
		debounceTime: debounce,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching for table changes.
func (tw *tableWatcher) Start(ctx context.Context) {
	go tw.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (tw *tableWatcher) Stop() {
	tw.stopOnce.Do(func() {
		close(tw.stopCh)
		<-tw.doneCh
		tw.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (tw *tableWatcher) watch(ctx context.Context) {
	defer close(tw.doneCh)

	var debounceTimer *time.Timer
	reloadCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-tw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}

			// Only table rewrites matter; ignore everything else in the
			// database directory (logs, query outputs, the archive).
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isTableFile(event.Name) {
				continue
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(tw.debounceTime, func() {
				select {
				case reloadCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("table watcher error: %v", err)

		case <-reloadCh:
			if err := tw.reloadable.Reload(ctx); err != nil {
				// Keep serving from the previous state on failure.
				log.Printf("reload after table change failed: %v", err)
			}
		}
	}
}

// isTableFile reports whether a path names one of the CSV table exports.
func isTableFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
