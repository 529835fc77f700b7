// Package watch imports panel files dropped into a folder.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"door-import/log"
	"door-import/panel"
)

// DefaultDebounce is how long a file must stay quiet before it is parsed.
// Copying a large file produces a burst of write events.
const DefaultDebounce = 200 * time.Millisecond

// ErrWatcherFailed indicates the filesystem watcher failed to initialize
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// Event reports a parsed panel file, or the error parsing it.
type Event struct {
	Path  string
	Panel *panel.Panel
	Err   error
}

// Watcher parses supported files created or rewritten in a directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	events   chan Event
	stop     chan struct{}
	once     sync.Once

	mu      sync.Mutex
	pending map[string]*pendingFile
	gen     uint64
	wg      sync.WaitGroup
}

// pendingFile is a file waiting out the debounce interval. Only the timer of
// the latest generation may emit it.
type pendingFile struct {
	timer *time.Timer
	gen   uint64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for dir. Call Start to begin watching.
func New(dir string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	w := &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		watcher:  fw,
		events:   make(chan Event, 16),
		stop:     make(chan struct{}),
		pending:  make(map[string]*pendingFile),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins watching in a background goroutine. Events arrive on Events()
// until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	log.Logger().Info("watching drop folder", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	w.wg.Add(1)
	go w.processEvents(ctx)
	return nil
}

// Events returns the channel of parsed files.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()

		w.mu.Lock()
		for path, pf := range w.pending {
			pf.timer.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()

		w.wg.Wait()
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !panel.Supported(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Logger().Warn("watch error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

// schedule parses path once it has been quiet for the debounce interval.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scheduleLocked(path)
}

// scheduleLocked replaces any pending timer for path. A timer that already
// fired and is waiting for w.mu sees a newer generation and does nothing.
func (w *Watcher) scheduleLocked(path string) {
	if pf, ok := w.pending[path]; ok {
		pf.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.pending[path] = &pendingFile{
		gen: gen,
		timer: time.AfterFunc(w.debounce, func() {
			w.mu.Lock()
			pf, ok := w.pending[path]
			if !ok || pf.gen != gen {
				w.mu.Unlock()
				return
			}
			delete(w.pending, path)
			w.mu.Unlock()
			w.emit(path)
		}),
	}
}

func (w *Watcher) emit(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		// Removed or renamed before it settled.
		return
	}

	p, err := panel.ParseFile(path)
	ev := Event{Path: path, Panel: p, Err: err}
	if err != nil {
		log.Logger().Warn("failed to parse dropped file", zap.String("path", path), zap.Error(err))
	} else {
		log.Logger().Info("imported dropped file",
			zap.String("path", path),
			zap.Int("holes", len(p.Holes)),
			zap.Int("invalid_holes", p.InvalidHoleCount()))
	}

	select {
	case w.events <- ev:
	case <-w.stop:
	}
}
