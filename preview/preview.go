// Package preview turns a project's file tree into the path -> source map a
// live-preview renderer consumes, and republishes it on every tree change.
package preview

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/lexandro/codestudio-mcp/vfs"
)

// Files projects nodes onto the renderer's file map. Folders are skipped.
func Files(nodes []vfs.FileNode) map[string]string {
	files := make(map[string]string, len(nodes))
	for _, node := range nodes {
		if node.IsFile() {
			files[node.Path] = node.Content
		}
	}
	return files
}

// Sink receives every published file set. It must not mutate files or the
// projected tree.
type Sink interface {
	Render(files map[string]string, theme settings.Theme)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(files map[string]string, theme settings.Theme)

func (f SinkFunc) Render(files map[string]string, theme settings.Theme) { f(files, theme) }

// Projector keeps the latest projection of a tree and pushes it to a Sink.
type Projector struct {
	tree   *vfs.Tree
	sink   Sink
	logger *slog.Logger

	// pubMu orders publications so a stale snapshot never replaces a newer one.
	pubMu sync.Mutex

	mu          sync.Mutex
	files       map[string]string
	theme       settings.Theme
	version     uint64
	unsubscribe func()
}

// NewProjector publishes the current tree immediately and then after every change.
// sink may be nil when only Latest is needed.
func NewProjector(tree *vfs.Tree, sink Sink, theme settings.Theme, logger *slog.Logger) *Projector {
	p := &Projector{tree: tree, sink: sink, theme: theme, logger: logger}
	p.publish()
	p.unsubscribe = tree.Subscribe(func(vfs.Change) { p.publish() })
	return p
}

// SetTheme republishes the current files under theme.
func (p *Projector) SetTheme(theme settings.Theme) {
	p.mu.Lock()
	p.theme = theme
	p.mu.Unlock()
	p.publish()
}

// Latest returns a copy of the last published file map, its theme and a
// counter that increases with every publication.
func (p *Projector) Latest() (map[string]string, settings.Theme, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.files), p.theme, p.version
}

// Close stops following the tree.
func (p *Projector) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

func (p *Projector) publish() {
	p.pubMu.Lock()
	defer p.pubMu.Unlock()

	files := Files(p.tree.Nodes())

	p.mu.Lock()
	p.files = files
	p.version++
	theme := p.theme
	version := p.version
	p.mu.Unlock()

	p.logger.Debug("preview published", "files", len(files), "theme", theme, "version", version)
	if p.sink != nil {
		p.sink.Render(maps.Clone(files), theme)
	}
}
