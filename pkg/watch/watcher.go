// Package watch rebuilds outputs when registry, theme or source files change.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/figmagen/pkg/util"
)

// DefaultDebounce groups bursts of events such as editor save sequences.
const DefaultDebounce = 200 * time.Millisecond

// DefaultIgnore lists editor and VCS noise.
var DefaultIgnore = []string{
	"**/*.swp",
	"**/*.tmp",
	"**/*~",
	"**/.git/**",
	"**/node_modules/**",
}

// Options configure a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration

	// Ignore are doublestar patterns matched against slash-separated paths.
	// nil uses DefaultIgnore.
	Ignore []string

	// Filter selects the files that matter. nil accepts every file.
	Filter func(path string) bool
}

// Batch is the set of files changed during one debounce window, sorted.
type Batch struct {
	Files []string
}

// Handler receives batches. Calls are serialised.
type Handler func(Batch)

// Stats reports watcher activity.
type Stats struct {
	Watched int
	Pending int
	Batches int
	Running bool
}

// Watcher debounces fsnotify events into batches.
type Watcher struct {
	fsw     *fsnotify.Watcher
	handler Handler
	opts    Options
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]bool
	timer     *time.Timer
	batches   int
	watched   map[string]bool

	handleMu sync.Mutex

	mu       sync.Mutex
	stopChan chan struct{}
	started  bool
	stopped  bool
	done     sync.WaitGroup
}

// New creates a watcher. Add roots, then Start.
func New(handler Handler, opts Options, logger *slog.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch handler is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Ignore == nil {
		opts.Ignore = DefaultIgnore
	}
	if err := util.ValidatePatterns("ignore", opts.Ignore); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		handler:  handler,
		opts:     opts,
		logger:   util.OrDefault(logger),
		pending:  make(map[string]bool),
		watched:  make(map[string]bool),
		stopChan: make(chan struct{}),
	}, nil
}

// Add watches path. Directories are watched recursively; for a file its
// parent directory is watched.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.addDir(filepath.Dir(abs))
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != abs && w.ignored(p) {
			return filepath.SkipDir
		}
		return w.addDir(p)
	})
}

func (w *Watcher) addDir(dir string) error {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.watched[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.watched[dir] = true
	return nil
}

// Start runs the event loop in the background.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return nil
	}
	w.started = true
	w.done.Add(1)
	go w.eventLoop()
	w.logger.Info("file watcher started", "dirs", len(w.watched), "debounce", w.opts.Debounce)
	return nil
}

// Stop ends the event loop, drops pending changes and waits for a running
// handler to return. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()

	// Wait out a handler already running; later flushes see stopped.
	w.handleMu.Lock()
	w.handleMu.Unlock()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer w.done.Done()
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.ignored(path) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.Add(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if w.opts.Filter != nil && !w.opts.Filter(path) {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)
	w.schedule(path)
}

// schedule adds path to the pending set and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]bool)
	w.batches++
	w.pendingMu.Unlock()

	sort.Strings(files)

	w.handleMu.Lock()
	defer w.handleMu.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}
	w.handler(Batch{Files: files})
}

func (w *Watcher) ignored(path string) bool {
	return util.MatchAny(w.opts.Ignore, strings.TrimPrefix(filepath.ToSlash(path), "/"))
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() Stats {
	w.pendingMu.Lock()
	s := Stats{Watched: len(w.watched), Pending: len(w.pending), Batches: w.batches}
	w.pendingMu.Unlock()

	w.mu.Lock()
	s.Running = w.started && !w.stopped
	w.mu.Unlock()
	return s
}
