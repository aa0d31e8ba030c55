package workspace

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/lexandro/codestudio-mcp/vfs"
)

// ErrExportConflict is returned when a file node sits where another node
// needs a directory. Nothing is written in that case.
var ErrExportConflict = errors.New("export conflict")

// Export writes nodes below dir. Folders become directories and files are
// replaced atomically. Files on disk that are not in nodes are left alone.
func Export(dir string, nodes []vfs.FileNode) (int, error) {
	if err := checkConflicts(nodes); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dir, err)
	}

	written := 0
	for _, node := range nodes {
		dest := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(node.Path, vfs.Separator)))
		if node.Type == vfs.TypeFolder {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return written, fmt.Errorf("creating %s: %w", dest, err)
			}
			continue
		}
		if err := writeFileAtomic(dest, []byte(node.Content)); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// checkConflicts reports the first node whose ancestor is a file node.
func checkConflicts(nodes []vfs.FileNode) error {
	files := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		if node.Type != vfs.TypeFolder {
			files[node.Path] = true
		}
	}
	for _, node := range nodes {
		for parent := path.Dir(node.Path); parent != vfs.Separator && parent != "."; parent = path.Dir(parent) {
			if files[parent] {
				return fmt.Errorf("%w: %s is a file but %s needs it as a directory", ErrExportConflict, parent, node.Path)
			}
		}
	}
	return nil
}

// writeFileAtomic writes to a temp file next to dest and renames it into place.
func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".codestudio-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, dest, err)
	}
	return nil
}
