// Package watcher reports saved Python files under a project tree.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pycoding/pycoding/internal/adapters/outbound/scanner"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Handler receives the distinct Python files saved during one debounce window,
// in the order they were first saved.
type Handler func(ctx context.Context, files []string)

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// Exclude lists directory names or root-relative paths never watched.
	Exclude []string
}

// Watcher watches a directory tree with fsnotify.
type Watcher struct {
	root     string
	handler  Handler
	debounce time.Duration
	exclude  map[string]bool

	fsw      *fsnotify.Watcher
	stopOnce sync.Once
}

// New creates a watcher over root. Call Run to start delivering events.
func New(root string, handler Handler, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		root:     abs,
		handler:  handler,
		debounce: opts.Debounce,
		exclude:  make(map[string]bool, len(opts.Exclude)),
		fsw:      fsw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	for _, e := range opts.Exclude {
		w.exclude[filepath.Clean(e)] = true
	}
	if err := w.addRecursive(abs); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	var (
		pending []string
		seen    = map[string]bool{}
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	flush := func() {
		if len(pending) > 0 && w.handler != nil {
			w.handler(ctx, pending)
		}
		pending = nil
		seen = map[string]bool{}
		timer, timerC = nil, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			path, ok := w.accept(event)
			if !ok {
				continue
			}
			if !seen[path] {
				seen[path] = true
				pending = append(pending, path)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			flush()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() {
	w.stopOnce.Do(func() {
		w.fsw.Close()
	})
}

// accept filters an event down to a saved Python file. New directories are
// added to the watch list as a side effect.
func (w *Watcher) accept(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	if w.ignored(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Debug("watch new directory", slog.String("dir", event.Name), slog.String("error", err.Error()))
			}
		}
		return "", false
	}
	if !scanner.IsPythonFile(event.Name) {
		return "", false
	}
	return event.Name, true
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for p := rel; p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		base := filepath.Base(p)
		if w.exclude[p] || w.exclude[base] || scanner.IsSkippedDir(base) {
			return true
		}
	}
	return false
}
