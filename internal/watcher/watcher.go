package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the drafts folder for new draft files.
// The watch is non-recursive; only direct children count.
type Watcher struct {
	dir     string
	fsw     *fsnotify.Watcher
	events  chan string
	done    chan struct{}
	stopped chan struct{}
}

// New creates a watcher for the drafts directory, creating it if missing
func New(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create drafts dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch drafts dir: %w", err)
	}

	return &Watcher{
		dir:     dir,
		fsw:     fsw,
		events:  make(chan string, 16),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Events returns the channel of detected draft paths
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Start runs the watch loop in a goroutine
func (w *Watcher) Start() {
	fmt.Printf("[Watcher] Watching %s\n", w.dir)
	go w.loop()
}

// Stop ends the watch loop and closes the events channel
func (w *Watcher) Stop() {
	close(w.done)
	w.fsw.Close()
	<-w.stopped
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	defer close(w.events)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsDraftFile(event.Name) {
				continue
			}
			// Skip directories that happen to match the name filter
			info, err := os.Stat(event.Name)
			if err != nil || info.IsDir() {
				continue
			}
			fmt.Printf("[Watcher] New draft detected: %s\n", event.Name)
			select {
			case w.events <- event.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// A broken watch cannot be resumed; stop watching and let
			// the rest of the process keep serving tracked drafts
			fmt.Printf("[Watcher] Fatal watch error: %v\n", err)
			return
		}
	}
}

// IsDraftFile reports whether a path names a reviewable draft:
// a .md or .txt file whose name contains "draft" (case-insensitive)
func IsDraftFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)
	if ext != ".md" && ext != ".txt" {
		return false
	}
	return strings.Contains(name, "draft")
}
