package sink

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// WatchRotatePolicy is an event-driven alternative to InodeRotatePolicy: a
// fsnotify watch on path's directory flips a flag when the file is renamed,
// removed, or recreated, instead of stat-ing on every emit. Not named by
// the distilled spec; added because the library's own File sink has no
// other way to notice an external logrotate without polling, and fsnotify
// is exactly what the example corpus reaches for to watch a config file for
// exactly this class of rename-out-from-under-us event.
type WatchRotatePolicy struct {
	watcher *fsnotify.Watcher
	path    string
	flagged atomic.Bool
	done    chan struct{}
}

// NewWatchRotatePolicy watches path's containing directory for rename,
// remove, or create events naming path.
func NewWatchRotatePolicy(path string) (*WatchRotatePolicy, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	p := &WatchRotatePolicy{watcher: w, path: path, done: make(chan struct{})}
	go p.run()
	return p, nil
}

func (p *WatchRotatePolicy) run() {
	for {
		select {
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != p.path {
				continue
			}
			if ev.Op&(fsnotify.Rename|fsnotify.Remove|fsnotify.Create) != 0 {
				p.flagged.Store(true)
			}
		case _, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
		case <-p.done:
			return
		}
	}
}

func (p *WatchRotatePolicy) ShouldRotate(string) bool {
	return p.flagged.CompareAndSwap(true, false)
}

// Close stops the watch goroutine and releases the underlying fsnotify
// watcher.
func (p *WatchRotatePolicy) Close() error {
	close(p.done)
	return p.watcher.Close()
}

