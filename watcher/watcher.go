// Package watcher reports debounced file changes under a directory tree.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the debounce window for disk events.
const DefaultInterval = 100 * time.Millisecond

// Filter excludes paths, given relative to the watched root.
type Filter interface {
	Ignore(rel string, isDir bool) bool
}

// Watcher watches root and every non-ignored directory below it.
type Watcher struct {
	root      string
	filter    Filter
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger
}

// New registers watches on root and its subdirectories.
func New(root string, filter Filter, interval time.Duration, logger *slog.Logger) (*Watcher, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}
	w := &Watcher{
		root:      root,
		filter:    filter,
		fs:        fsw,
		debouncer: NewDebouncer(interval),
		logger:    logger,
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.filter.Ignore(w.rel(p), true) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			w.logger.Warn("failed to watch directory", "path", p, "error", err)
		}
		return nil
	})
}

// Events delivers debounced batches.
func (w *Watcher) Events() <-chan []Event {
	return w.debouncer.Output()
}

// Run consumes fsnotify events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	rel := w.rel(ev.Name)

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !w.filter.Ignore(rel, true) {
				// files created before the watch was added are picked up by the walk
				if err := w.addTree(ev.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", ev.Name, "error", err)
				}
			}
			return
		}
	}
	if w.filter.Ignore(rel, false) {
		return
	}

	var op Op
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpWrite
	case ev.Has(fsnotify.Remove):
		op = OpRemove
	case ev.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}
	w.debouncer.Add(rel, op)
}

func (w *Watcher) rel(p string) string {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// Close stops watching and drops pending events.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	return w.fs.Close()
}
