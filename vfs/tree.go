package vfs

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// ChangeOp identifies the kind of mutation reported to subscribers.
type ChangeOp int

const (
	OpCreate ChangeOp = iota
	OpWrite
	OpDelete
	OpRename
	OpReset
)

func (op ChangeOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	case OpReset:
		return "reset"
	}
	return fmt.Sprintf("ChangeOp(%d)", int(op))
}

// Change describes one completed mutation. OldPath is only set for OpRename;
// Path is empty for OpReset.
type Change struct {
	Op      ChangeOp
	Path    string
	OldPath string
}

// Listener is called after every mutation, outside the tree lock.
type Listener func(Change)

// Tree is the path -> node mapping of a project. Parents are implicit: creating
// "/src/App.tsx" does not require a "/src" folder node, and deleting a folder
// leaves its descendants in place.
type Tree struct {
	mu          sync.RWMutex
	nodes       map[string]*FileNode
	sortedPaths []string // sorted for consistent iteration

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes:       make(map[string]*FileNode),
		sortedPaths: make([]string, 0),
		listeners:   make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications and returns a function that removes it.
func (t *Tree) Subscribe(fn Listener) func() {
	t.lmu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.lmu.Unlock()

	return func() {
		t.lmu.Lock()
		delete(t.listeners, id)
		t.lmu.Unlock()
	}
}

func (t *Tree) notify(change Change) {
	t.lmu.Lock()
	ids := make([]int, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, t.listeners[id])
	}
	t.lmu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// Create adds a node at path. Files start with empty content.
func (t *Tree) Create(path string, nodeType NodeType) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if nodeType != TypeFile && nodeType != TypeFolder {
		return fmt.Errorf("create %s: unknown node type %d", path, int(nodeType))
	}

	t.mu.Lock()
	if _, exists := t.nodes[path]; exists {
		t.mu.Unlock()
		return fmt.Errorf("create %s: %w", path, ErrPathConflict)
	}
	t.nodes[path] = &FileNode{Path: path, Name: LastSegment(path), Type: nodeType}
	t.insertPath(path)
	t.mu.Unlock()

	t.notify(Change{Op: OpCreate, Path: path})
	return nil
}

// Delete removes the node at path. Missing paths are a no-op; descendants are
// not touched. Reports whether a node was removed.
func (t *Tree) Delete(path string) bool {
	t.mu.Lock()
	if _, exists := t.nodes[path]; !exists {
		t.mu.Unlock()
		return false
	}
	delete(t.nodes, path)
	t.removePath(path)
	t.mu.Unlock()

	t.notify(Change{Op: OpDelete, Path: path})
	return true
}

// Rename moves the node at oldPath to newPath, overwriting any node already at
// newPath. A missing oldPath, or oldPath == newPath, is a no-op. Descendant
// paths are not rewritten.
func (t *Tree) Rename(oldPath, newPath string) (bool, error) {
	if err := ValidatePath(newPath); err != nil {
		return false, err
	}

	t.mu.Lock()
	node, exists := t.nodes[oldPath]
	if !exists || oldPath == newPath {
		t.mu.Unlock()
		return false, nil
	}
	moved := *node
	moved.Path = newPath
	moved.Name = LastSegment(newPath)

	delete(t.nodes, oldPath)
	t.removePath(oldPath)
	if _, taken := t.nodes[newPath]; !taken {
		t.insertPath(newPath)
	}
	t.nodes[newPath] = &moved
	t.mu.Unlock()

	t.notify(Change{Op: OpRename, Path: newPath, OldPath: oldPath})
	return true, nil
}

// Write replaces the content of the file at path. A missing path is a no-op;
// writing to a folder fails with ErrNotAFile.
func (t *Tree) Write(path string, content string) (bool, error) {
	t.mu.Lock()
	node, exists := t.nodes[path]
	if !exists {
		t.mu.Unlock()
		return false, nil
	}
	if node.Type != TypeFile {
		t.mu.Unlock()
		return false, fmt.Errorf("write %s: %w", path, ErrNotAFile)
	}
	node.Content = content
	t.mu.Unlock()

	t.notify(Change{Op: OpWrite, Path: path})
	return true, nil
}

// Read returns the content of the file at path. Folders and missing paths report false.
func (t *Tree) Read(path string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node, exists := t.nodes[path]
	if !exists || node.Type != TypeFile {
		return "", false
	}
	return node.Content, true
}

// Get returns a copy of the node at path.
func (t *Tree) Get(path string) (FileNode, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node, exists := t.nodes[path]
	if !exists {
		return FileNode{}, false
	}
	return *node, true
}

// IsFile reports whether path names an existing file.
func (t *Tree) IsFile(path string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	node, exists := t.nodes[path]
	return exists && node.Type == TypeFile
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Nodes returns copies of all nodes in path order.
func (t *Tree) Nodes() []FileNode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]FileNode, 0, len(t.sortedPaths))
	for _, path := range t.sortedPaths {
		result = append(result, *t.nodes[path])
	}
	return result
}

// FirstFile returns the first file path in path order.
func (t *Tree) FirstFile() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, path := range t.sortedPaths {
		if t.nodes[path].Type == TypeFile {
			return path, true
		}
	}
	return "", false
}

// Glob returns nodes whose path matches a doublestar pattern. The pattern is
// matched without the leading separator, so "**/*.tsx" and "src/*" behave as
// they would against a project directory.
func (t *Tree) Glob(pattern string, maxResults int) ([]FileNode, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	pattern = strings.TrimPrefix(strings.ReplaceAll(pattern, "\\", "/"), Separator)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var results []FileNode
	for _, path := range t.sortedPaths {
		if len(results) >= maxResults {
			break
		}
		matched, err := doublestar.Match(pattern, strings.TrimPrefix(path, Separator))
		if err != nil || !matched {
			continue
		}
		results = append(results, *t.nodes[path])
	}
	return results, nil
}

// Reset replaces the whole tree with nodes. Every node is validated; names are
// rederived from paths and folder content is dropped.
func (t *Tree) Reset(nodes []FileNode) error {
	replacement := make(map[string]*FileNode, len(nodes))
	paths := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if err := ValidatePath(n.Path); err != nil {
			return err
		}
		if _, dup := replacement[n.Path]; dup {
			return fmt.Errorf("reset %s: %w", n.Path, ErrPathConflict)
		}
		node := FileNode{Path: n.Path, Name: LastSegment(n.Path), Type: n.Type}
		switch n.Type {
		case TypeFile:
			node.Content = n.Content
		case TypeFolder:
		default:
			return fmt.Errorf("reset %s: unknown node type %d", n.Path, int(n.Type))
		}
		replacement[n.Path] = &node
		paths = append(paths, n.Path)
	}
	sort.Strings(paths)

	t.mu.Lock()
	t.nodes = replacement
	t.sortedPaths = paths
	t.mu.Unlock()

	t.notify(Change{Op: OpReset})
	return nil
}

func (t *Tree) insertPath(path string) {
	idx := sort.SearchStrings(t.sortedPaths, path)
	t.sortedPaths = append(t.sortedPaths, "")
	copy(t.sortedPaths[idx+1:], t.sortedPaths[idx:])
	t.sortedPaths[idx] = path
}

func (t *Tree) removePath(path string) {
	idx := sort.SearchStrings(t.sortedPaths, path)
	if idx < len(t.sortedPaths) && t.sortedPaths[idx] == path {
		t.sortedPaths = append(t.sortedPaths[:idx], t.sortedPaths[idx+1:]...)
	}
}
