package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
)

// Watcher turns shared-directory file events into dashboard messages so
// the view refreshes the moment the daemon publishes a snapshot.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
}

// NewWatcher watches the shared-file tier directory.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
	}
	go w.loop()
	return w, nil
}

// loop coalesces bursts of write events into single change signals.
func (w *Watcher) loop() {
	var debounce *time.Timer
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case w.changes <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Debug("shared dir watch error", "error", err)
		}
	}
}

// WaitCmd blocks until the next coalesced change and emits a
// snapshotChangedMsg.
func (w *Watcher) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		<-w.changes
		return snapshotChangedMsg{}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
