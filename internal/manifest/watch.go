package manifest

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change to the
// manifest before re-parsing it. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-parses a manifest whenever its file changes. Each reload builds
// a fresh Manifest; nothing is carried over from the previous tree.
type Watcher struct {
	Updates <-chan *Manifest
	Errors  <-chan error

	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	updates  chan *Manifest
	errs     chan error
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWatcher starts watching the manifest at path. The parent directory is
// watched so that atomic saves (write to temp file, rename over) are seen.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		updates:  make(chan *Manifest, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.Updates = w.updates
	w.Errors = w.errs

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher and closes the Updates and Errors channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.updates)
		close(w.errs)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendErr(fmt.Errorf("watching manifest: %w", err))

		case <-fire:
			fire = nil
			m, err := ParseFile(w.path)
			if err != nil {
				w.sendErr(err)
				continue
			}
			select {
			case w.updates <- m:
			case <-w.done:
				return
			}
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errs <- err:
	case <-w.done:
	}
}
