// Package project defines the persisted unit of work: a file tree plus
// metadata, its snapshot format and its storage under "project:{id}" keys.
package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexandro/codestudio-mcp/vfs"
)

// DefaultID is the id of the starter project used when nothing was loaded.
const DefaultID = "default"

// DefaultName is the display name of the starter project.
const DefaultName = "My React App"

const starterApp = `export default function App() {
  return (
    <div className="min-h-screen bg-gradient-to-br from-blue-500 to-purple-600 flex items-center justify-center">
      <div className="text-center text-white">
        <h1 className="text-5xl font-bold mb-4">Welcome to CodeStudio</h1>
        <p className="text-xl">Start building your React app!</p>
      </div>
    </div>
  )
}`

const starterStyles = `body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', 'Oxygen',
    'Ubuntu', 'Cantarell', 'Fira Sans', 'Droid Sans', 'Helvetica Neue',
    sans-serif;
  -webkit-font-smoothing: antialiased;
  -moz-osx-font-smoothing: grayscale;
}`

// StarterFiles returns the files every new project begins with.
func StarterFiles() []vfs.FileNode {
	return []vfs.FileNode{
		{Path: "/App.tsx", Name: "App.tsx", Type: vfs.TypeFile, Content: starterApp},
		{Path: "/styles.css", Name: "styles.css", Type: vfs.TypeFile, Content: starterStyles},
	}
}

// StarterActiveFile is the file selected when a starter project opens.
const StarterActiveFile = "/App.tsx"

// Project is a named file tree with creation and modification times.
type Project struct {
	ID        string
	Name      string
	Files     *vfs.Tree
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default returns the starter project with both timestamps set to now.
func Default(now time.Time) *Project {
	return newStarter(DefaultID, DefaultName, now)
}

// LoadDefault returns the starter project stamped with the current time.
func LoadDefault() *Project {
	return Default(time.Now().UTC())
}

// New returns a starter project under a fresh random id.
func New(name string, now time.Time) *Project {
	if name == "" {
		name = DefaultName
	}
	return newStarter(uuid.NewString(), name, now)
}

func newStarter(id, name string, now time.Time) *Project {
	tree := vfs.NewTree()
	if err := tree.Reset(StarterFiles()); err != nil {
		panic(fmt.Sprintf("starter files are invalid: %v", err))
	}
	return &Project{
		ID:        id,
		Name:      name,
		Files:     tree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a mutation at now.
func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now
}

// ReplaceWith makes p a copy of other while keeping p's tree instance, so
// subscribers attached to p.Files keep receiving changes.
func (p *Project) ReplaceWith(other *Project) error {
	if err := p.Files.Reset(other.Files.Nodes()); err != nil {
		return err
	}
	p.ID = other.ID
	p.Name = other.Name
	p.CreatedAt = other.CreatedAt
	p.UpdatedAt = other.UpdatedAt
	return nil
}
