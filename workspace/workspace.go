// Package workspace moves project files between the in-memory tree and a
// directory on disk: one-shot import and export, and a live mirror.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lexandro/codestudio-mcp/ignore"
	"github.com/lexandro/codestudio-mcp/language"
	"github.com/lexandro/codestudio-mcp/vfs"
)

// Target receives files read from disk. session.Session implements it, so
// imported files go through the same mediation as edits.
type Target interface {
	PutFile(path, content string) error
	DeleteFile(path string) (bool, error)
}

// ImportStats counts what an import did with each file it saw.
type ImportStats struct {
	Imported int
	Ignored  int
	TooLarge int
	Binary   int
	Failed   int
}

// TreePath maps a slash-separated relative disk path to a tree path.
func TreePath(rel string) (string, error) {
	return vfs.NormalizePath(filepath.ToSlash(rel))
}

// Import copies every eligible file under root into target.
func Import(ctx context.Context, root string, target Target, matcher *ignore.Matcher, logger *slog.Logger) (ImportStats, error) {
	var stats ImportStats

	info, err := os.Stat(root)
	if err != nil {
		return stats, fmt.Errorf("import %s: %w", root, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("import %s: not a directory", root)
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			logger.Debug("skipping unreadable entry", "path", p, "error", walkErr)
			return nil
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.Ignore(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher.Ignore(rel, false) {
			stats.Ignored++
			return nil
		}

		switch err := putFromDisk(p, rel, target, matcher); err {
		case nil:
			stats.Imported++
		case errTooLarge:
			stats.TooLarge++
		case errBinary:
			stats.Binary++
		default:
			stats.Failed++
			logger.Warn("import failed for file", "path", rel, "error", err)
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walking %s: %w", root, err)
	}

	logger.Info("import complete", "root", root, "imported", stats.Imported, "ignored", stats.Ignored,
		"too_large", stats.TooLarge, "binary", stats.Binary, "failed", stats.Failed)
	return stats, nil
}

type skipReason string

func (r skipReason) Error() string { return string(r) }

const (
	errTooLarge skipReason = "file too large"
	errBinary   skipReason = "binary file"
)

func putFromDisk(abs, rel string, target Target, matcher *ignore.Matcher) error {
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if matcher.TooLarge(info.Size()) {
		return errTooLarge
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	if language.IsBinaryContent(data) {
		return errBinary
	}
	treePath, err := TreePath(rel)
	if err != nil {
		return err
	}
	return target.PutFile(treePath, string(data))
}
