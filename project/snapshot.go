package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lexandro/codestudio-mcp/vfs"
)

// ErrCorruptProjectData is returned when a stored snapshot is not a valid project.
var ErrCorruptProjectData = errors.New("corrupt project data")

type snapshotNode struct {
	Name    string        `json:"name"`
	Path    string        `json:"path"`
	Type    *vfs.NodeType `json:"type"`
	Content *string       `json:"content,omitempty"`
}

type snapshot struct {
	ID        string                  `json:"id"`
	Name      *string                 `json:"name"`
	Files     map[string]snapshotNode `json:"files"`
	CreatedAt *time.Time              `json:"createdAt"`
	UpdatedAt *time.Time              `json:"updatedAt"`
}

// Encode serializes p into its snapshot form.
func Encode(p *Project) (string, error) {
	nodes := p.Files.Nodes()
	snap := snapshot{
		ID:        p.ID,
		Name:      &p.Name,
		Files:     make(map[string]snapshotNode, len(nodes)),
		CreatedAt: &p.CreatedAt,
		UpdatedAt: &p.UpdatedAt,
	}
	for _, n := range nodes {
		nodeType := n.Type
		entry := snapshotNode{Name: n.Name, Path: n.Path, Type: &nodeType}
		if n.IsFile() {
			content := n.Content
			entry.Content = &content
		}
		snap.Files[n.Path] = entry
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encoding project %s: %w", p.ID, err)
	}
	return string(data), nil
}

// Decode parses a snapshot. Any missing required field or inconsistent node
// yields ErrCorruptProjectData instead of a partial project.
func Decode(data string) (*Project, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProjectData, err)
	}

	switch {
	case snap.ID == "":
		return nil, fmt.Errorf("%w: missing id", ErrCorruptProjectData)
	case snap.Name == nil:
		return nil, fmt.Errorf("%w: missing name", ErrCorruptProjectData)
	case snap.Files == nil:
		return nil, fmt.Errorf("%w: missing files", ErrCorruptProjectData)
	case snap.CreatedAt == nil || snap.UpdatedAt == nil:
		return nil, fmt.Errorf("%w: missing timestamps", ErrCorruptProjectData)
	}

	nodes := make([]vfs.FileNode, 0, len(snap.Files))
	for key, entry := range snap.Files {
		if entry.Path != key {
			return nil, fmt.Errorf("%w: node key %q does not match path %q", ErrCorruptProjectData, key, entry.Path)
		}
		if entry.Type == nil {
			return nil, fmt.Errorf("%w: node %q has no type", ErrCorruptProjectData, entry.Path)
		}
		if entry.Name != vfs.LastSegment(entry.Path) {
			return nil, fmt.Errorf("%w: node %q has name %q", ErrCorruptProjectData, entry.Path, entry.Name)
		}
		node := vfs.FileNode{Path: entry.Path, Name: entry.Name, Type: *entry.Type}
		if node.Type == vfs.TypeFile && entry.Content != nil {
			node.Content = *entry.Content
		}
		nodes = append(nodes, node)
	}

	tree := vfs.NewTree()
	if err := tree.Reset(nodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProjectData, err)
	}

	return &Project{
		ID:        snap.ID,
		Name:      *snap.Name,
		Files:     tree,
		CreatedAt: *snap.CreatedAt,
		UpdatedAt: *snap.UpdatedAt,
	}, nil
}
