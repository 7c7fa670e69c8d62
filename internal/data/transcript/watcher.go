package transcript

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"captionscroll/internal/util"
)

// Watcher signals when the transcript file changes on disk so the viewing
// session can rebuild its layout and time/offset map. It watches the
// containing directory because editors commonly replace files by rename.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan struct{}
	stop    chan struct{}
}

// NewWatcher starts watching the given transcript file.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		path:    abs,
		events:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	// Editors fire bursts of write events for one save; coalesce them.
	var pending *time.Timer
	var pendingC <-chan time.Time

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(200 * time.Millisecond)
				pendingC = pending.C
			} else {
				pending.Reset(200 * time.Millisecond)
			}

		case <-pendingC:
			pending = nil
			pendingC = nil
			util.LogInfof("Transcript changed on disk: %s", w.path)
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogWarnf("Transcript watcher error: %v", err)
		}
	}
}

// Events returns the change notification channel.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}
