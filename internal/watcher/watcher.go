// Package watcher reloads the event set when files change on disk, so edits
// made outside the application (a text editor, a git pull) show up without a
// restart.
package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const debounceDelay = 500 * time.Millisecond

// Watcher observes one directory and invokes a callback after bursts of
// changes to markdown files settle down.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func()
	done     chan struct{}
}

func New(dir string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{fsw: fsw, onChange: onChange, done: make(chan struct{})}, nil
}

// Start runs the watch loop in the background until Close is called.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugf("file change detected: %s %s", ev.Op, ev.Name)
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
			pending = debounce.C
		case <-pending:
			pending = nil
			w.onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Errorf("file watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
