// Package watcher provides a debounced file change watcher. taskboard uses
// it to notice external writes to the database file and invalidate the task
// cache, so long-running processes see changes made by other processes.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/taskboard/internal/log"
)

// DefaultDebounce collapses bursts of write events into one notification.
const DefaultDebounce = time.Second

// Watcher watches one file and invokes a callback after changes settle.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()

	fw     *fsnotify.Watcher
	mu     sync.Mutex
	timer  *time.Timer
	done   chan struct{}
	closed bool
}

// New starts watching path. onChange runs on the watcher goroutine after
// events stop arriving for the debounce window; it must not block for long.
// A non-positive debounce falls back to DefaultDebounce.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: sqlite swaps files around during WAL
	// checkpoints, and watching the file directly loses the watch on rename.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
		fw:       fw,
		done:     make(chan struct{}),
	}
	go w.loop()

	log.Debug(log.CatWatch, "Watching for changes", "path", path, "debounce", debounce)
	return w, nil
}

func (w *Watcher) loop() {
	base := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			// The db file plus its WAL/journal siblings all signal a write.
			name := filepath.Base(event.Name)
			if name != base && name != base+"-wal" && name != base+"-journal" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.bump()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatch, "Watch error", err, "path", w.path)
		case <-w.done:
			return
		}
	}
}

// bump restarts the debounce timer.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		log.Debug(log.CatWatch, "Change settled", "path", w.path)
		w.onChange()
	})
}

// Close stops the watcher. Pending debounced notifications are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.fw.Close()
}
