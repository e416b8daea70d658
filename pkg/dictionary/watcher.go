package dictionary

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/bastiangx/hsnserve/internal/logger"
	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the bursts of events editors emit per save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a single code table file. It watches the parent
// directory so files replaced by rename are still seen.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex
	logger   *log.Logger
}

// NewWatcher creates a watcher for path. A debounce <= 0 uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:       fw,
		path:     abs,
		debounce: debounce,
		done:     make(chan struct{}),
		logger:   logger.New("watch"),
	}, nil
}

// Watch starts monitoring. onChange runs once per settled burst of writes,
// creates, renames or removals of the file, on its own goroutine.
func (w *Watcher) Watch(onChange func(path string)) error {
	if err := w.fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go func() {
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				w.logger.Debug("code table changed", "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(w.debounce, func() { onChange(w.path) })

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", "err", err)

			case <-w.done:
				return
			}
		}
	}()
	return nil
}

// Stop ends monitoring. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// WatchTable reloads the table at path whenever it changes and passes each
// successfully loaded table to apply. A failed reload is logged and the
// caller keeps whatever table it had.
func WatchTable(path string, debounce time.Duration, apply func(*codes.Table)) (*Watcher, error) {
	w, err := NewWatcher(path, debounce)
	if err != nil {
		return nil, err
	}
	err = w.Watch(func(p string) {
		table, stats, err := LoadFile(p)
		if err != nil {
			w.logger.Error("reload failed, keeping previous table", "path", p, "err", err)
			return
		}
		w.logger.Info("code table reloaded", "records", stats.Records, "skipped", stats.Skipped)
		apply(table)
	})
	if err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
