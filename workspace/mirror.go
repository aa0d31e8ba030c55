package workspace

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lexandro/codestudio-mcp/ignore"
	"github.com/lexandro/codestudio-mcp/watcher"
)

// Mirror applies changes made under a directory to the project as they happen.
type Mirror struct {
	root    string
	target  Target
	matcher *ignore.Matcher
	watcher *watcher.Watcher
	logger  *slog.Logger
}

// NewMirror imports root into target and starts watching it. Call Run to
// apply changes and Close to stop.
func NewMirror(ctx context.Context, root string, target Target, matcher *ignore.Matcher, interval time.Duration, logger *slog.Logger) (*Mirror, error) {
	w, err := watcher.New(root, matcher, interval, logger)
	if err != nil {
		return nil, err
	}
	if _, err := Import(ctx, root, target, matcher, logger); err != nil {
		w.Close()
		return nil, err
	}
	return &Mirror{root: root, target: target, matcher: matcher, watcher: w, logger: logger}, nil
}

// Run applies change batches until ctx is done.
func (m *Mirror) Run(ctx context.Context) {
	go m.watcher.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-m.watcher.Events():
			m.apply(batch)
		}
	}
}

func (m *Mirror) apply(batch []watcher.Event) {
	for _, ev := range batch {
		if m.matcher.IsIgnoreFile(ev.Rel) {
			m.matcher.Reload()
			m.logger.Info("ignore rules reloaded", "file", ev.Rel)
		}
	}

	for _, ev := range batch {
		if m.matcher.Ignore(ev.Rel, false) {
			continue
		}
		treePath, err := TreePath(ev.Rel)
		if err != nil {
			continue
		}

		abs := filepath.Join(m.root, filepath.FromSlash(ev.Rel))
		info, err := os.Stat(abs)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// removed, or the old name of a rename
			if _, err := m.target.DeleteFile(treePath); err != nil {
				m.logger.Warn("mirror delete failed", "path", treePath, "error", err)
			}
		case err != nil:
			m.logger.Warn("mirror stat failed", "path", abs, "error", err)
		case info.Mode().IsRegular():
			err := putFromDisk(abs, ev.Rel, m.target, m.matcher)
			if err != nil && !errors.Is(err, errTooLarge) && !errors.Is(err, errBinary) {
				m.logger.Warn("mirror update failed", "path", treePath, "error", err)
			}
		}
		m.logger.Debug("mirror applied", "path", treePath, "op", ev.Op)
	}
}

// Close stops watching.
func (m *Mirror) Close() error {
	return m.watcher.Close()
}
