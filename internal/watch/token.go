// Package watch notices when the GitHub token file changes so a
// credential dropped into the config directory enables the overlay
// without a restart.
package watch

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// TokenWatcher watches one file for create, write, rename or remove
// and triggers a debounced callback. The parent directory is watched
// rather than the file itself, which keeps working across the
// rename-replace dance editors do on save.
type TokenWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	name     string
	onChange func()
	debounce time.Duration
	stop     chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewTokenWatcher creates a watcher for the file at path. onChange
// fires on a timer goroutine; callers that live on an event loop
// should forward it through a channel.
func NewTokenWatcher(path string, onChange func()) (*TokenWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &TokenWatcher{
		watcher:  w,
		dir:      filepath.Dir(path),
		name:     filepath.Base(path),
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		stop:     make(chan struct{}),
	}, nil
}

// Start begins watching.
func (tw *TokenWatcher) Start() error {
	if err := tw.watcher.Add(tw.dir); err != nil {
		return err
	}

	log.Printf("chrono watch: watching %s for %s", tw.dir, tw.name)
	go tw.eventLoop()
	return nil
}

// Stop stops watching and cleans up resources.
func (tw *TokenWatcher) Stop() {
	tw.mu.Lock()
	if tw.stopped {
		tw.mu.Unlock()
		return
	}
	tw.stopped = true
	tw.mu.Unlock()

	close(tw.stop)
	tw.watcher.Close()
}

// eventLoop filters directory events down to the watched file and
// debounces bursts into a single callback.
func (tw *TokenWatcher) eventLoop() {
	var timer *time.Timer
	var timerMu sync.Mutex

	resetTimer := func() {
		timerMu.Lock()
		defer timerMu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(tw.debounce, func() {
			tw.mu.Lock()
			stopped := tw.stopped
			tw.mu.Unlock()

			if !stopped && tw.onChange != nil {
				tw.onChange()
			}
		})
	}

	for {
		select {
		case <-tw.stop:
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			return

		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != tw.name {
				continue
			}
			log.Printf("chrono watch: %s on %s", event.Op, event.Name)
			resetTimer()

		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("chrono watch: error: %v", err)
		}
	}
}
