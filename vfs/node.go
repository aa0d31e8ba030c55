// Package vfs holds the in-memory file tree of a project: a flat mapping of
// absolute paths to file and folder nodes, with change notifications.
package vfs

import (
	"errors"
	"fmt"
)

var (
	// ErrPathConflict is returned when creating a node at a path that is already taken.
	ErrPathConflict = errors.New("path already exists")
	// ErrNotAFile is returned when a file operation targets a folder or a missing node.
	ErrNotAFile = errors.New("not a file")
	// ErrInvalidPath is returned for paths that are not absolute, clean and non-root.
	ErrInvalidPath = errors.New("invalid path")
)

// NodeType distinguishes files from folders.
type NodeType int

const (
	TypeFile NodeType = iota
	TypeFolder
)

func (t NodeType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeFolder:
		return "folder"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// ParseNodeType accepts "file" or "folder".
func ParseNodeType(s string) (NodeType, error) {
	switch s {
	case "file":
		return TypeFile, nil
	case "folder":
		return TypeFolder, nil
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

// MarshalText encodes the type as "file" or "folder".
func (t NodeType) MarshalText() ([]byte, error) {
	switch t {
	case TypeFile, TypeFolder:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("unknown node type %d", int(t))
}

// UnmarshalText decodes "file" or "folder".
func (t *NodeType) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FileNode is one entry of the tree. Content is only meaningful for files;
// folders always carry an empty Content.
type FileNode struct {
	Path    string
	Name    string
	Type    NodeType
	Content string
}

// IsFile reports whether the node is a file.
func (n FileNode) IsFile() bool { return n.Type == TypeFile }
