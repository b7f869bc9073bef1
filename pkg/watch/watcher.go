// Package watch reports filesystem changes below a root and decides,
// with a quiet-period debounce, when a rescan is due.
package watch

import (
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const eventBuffer = 1024

var lstat = os.Lstat

// Watcher delivers batches of changed paths observed below a root.
type Watcher struct {
	fsw       *fsnotify.Watcher
	recursive bool
	events    chan []string
	done      chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	held []string
}

// New starts watching root. With recursive set every directory below root is
// registered, including directories created later.
func New(root string, recursive bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:       fsw,
		recursive: recursive,
		events:    make(chan []string, eventBuffer),
		done:      make(chan struct{}),
	}
	if recursive {
		err = w.addTree(root)
	} else {
		err = fsw.Add(root)
	}
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	var (
		mu   sync.Mutex
		dirs []string
	)
	err := fastwalk.Walk(&fastwalk.Config{Follow: false}, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			mu.Lock()
			dirs = append(dirs, path)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			if dir == root {
				return err
			}
			log.Debug().Err(err).Str("dir", dir).Msg("failed to watch directory")
		}
	}
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.recursive && event.Has(fsnotify.Create) {
				if info, err := lstat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Debug().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}
			select {
			case w.events <- []string{event.Name}:
			case <-w.done:
				return
			default:
				// buffer full: a refresh is already due
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Msg("watch error")
		}
	}
}

// CollectChangedPaths returns every path reported so far without blocking.
func (w *Watcher) CollectChangedPaths() []string {
	w.mu.Lock()
	paths := w.held
	w.held = nil
	w.mu.Unlock()
	for {
		select {
		case batch := <-w.events:
			paths = append(paths, batch...)
		default:
			return paths
		}
	}
}

// WaitForChange blocks until a change arrives. It returns false once the watcher is closed.
// The received paths stay available to CollectChangedPaths.
func (w *Watcher) WaitForChange() bool {
	select {
	case batch := <-w.events:
		w.hold(batch)
		return true
	case <-w.done:
		return false
	}
}

// WaitForChangeTimeout is WaitForChange bounded by timeout.
func (w *Watcher) WaitForChangeTimeout(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case batch := <-w.events:
		w.hold(batch)
		return true
	case <-timer.C:
		return false
	case <-w.done:
		return false
	}
}

// WaitSettled blocks until a change arrives and then no further change follows within quiet.
// It returns false once the watcher is closed.
func (w *Watcher) WaitSettled(quiet time.Duration) bool {
	if !w.WaitForChange() {
		return false
	}
	for w.WaitForChangeTimeout(quiet) {
	}
	return !w.isClosed()
}

// Drain discards everything reported so far.
func (w *Watcher) Drain() {
	_ = w.CollectChangedPaths()
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) hold(batch []string) {
	w.mu.Lock()
	w.held = append(w.held, batch...)
	w.mu.Unlock()
}

func (w *Watcher) isClosed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}
