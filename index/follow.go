package index

import (
	"log/slog"

	"github.com/lexandro/codestudio-mcp/vfs"
)

// Follow indexes the current tree and keeps ci in step with every change.
// The returned function stops following.
func Follow(tree *vfs.Tree, ci *ContentIndex, logger *slog.Logger) (func(), error) {
	if err := ci.Rebuild(tree.Nodes()); err != nil {
		return nil, err
	}
	cancel := tree.Subscribe(func(c vfs.Change) {
		if err := apply(tree, ci, c); err != nil {
			logger.Error("index update failed", "op", c.Op, "path", c.Path, "error", err)
		}
	})
	return cancel, nil
}

func apply(tree *vfs.Tree, ci *ContentIndex, c vfs.Change) error {
	switch c.Op {
	case vfs.OpCreate, vfs.OpWrite:
		if content, ok := tree.Read(c.Path); ok {
			return ci.Put(c.Path, content)
		}
	case vfs.OpDelete:
		return ci.Remove(c.Path)
	case vfs.OpRename:
		if err := ci.Remove(c.OldPath); err != nil {
			return err
		}
		if content, ok := tree.Read(c.Path); ok {
			return ci.Put(c.Path, content)
		}
		// a folder moved over an indexed file
		return ci.Remove(c.Path)
	case vfs.OpReset:
		return ci.Rebuild(tree.Nodes())
	}
	return nil
}
