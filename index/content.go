// Package index keeps a bleve full-text index of a project's file contents.
// Documents are keyed by tree path ("/src/App.tsx").
package index

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/lexandro/codestudio-mcp/language"
	"github.com/lexandro/codestudio-mcp/vfs"
)

// ContentIndex is an in-memory bleve index plus the raw text of every
// indexed file, which is needed to report matching lines.
type ContentIndex struct {
	mu       sync.RWMutex
	index    bleve.Index
	contents map[string]string
}

type fileDocument struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Language string `json:"language"`
}

// NewContentIndex creates an empty index.
func NewContentIndex() (*ContentIndex, error) {
	idx, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &ContentIndex{index: idx, contents: make(map[string]string)}, nil
}

func newMapping() *mapping.IndexMappingImpl {
	doc := bleve.NewDocumentMapping()

	content := bleve.NewTextFieldMapping()
	content.Store = false
	doc.AddFieldMappingsAt("content", content)

	path := bleve.NewKeywordFieldMapping()
	path.Store = true
	path.IncludeInAll = false
	doc.AddFieldMappingsAt("path", path)

	lang := bleve.NewKeywordFieldMapping()
	lang.Store = true
	lang.IncludeInAll = false
	doc.AddFieldMappingsAt("language", lang)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Put indexes or reindexes the file at path.
func (ci *ContentIndex) Put(path, content string) error {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	doc := fileDocument{Content: content, Path: path, Language: language.DetectLanguage(path)}
	if err := ci.index.Index(path, doc); err != nil {
		return fmt.Errorf("indexing %s: %w", path, err)
	}
	ci.contents[path] = content
	return nil
}

// Remove drops path from the index. Unknown paths are ignored.
func (ci *ContentIndex) Remove(path string) error {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	if _, ok := ci.contents[path]; !ok {
		return nil
	}
	delete(ci.contents, path)
	if err := ci.index.Delete(path); err != nil {
		return fmt.Errorf("removing %s from index: %w", path, err)
	}
	return nil
}

// Rebuild replaces the whole index with the files among nodes.
func (ci *ContentIndex) Rebuild(nodes []vfs.FileNode) error {
	fresh, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return fmt.Errorf("creating bleve index: %w", err)
	}

	batch := fresh.NewBatch()
	contents := make(map[string]string, len(nodes))
	for _, node := range nodes {
		if !node.IsFile() {
			continue
		}
		doc := fileDocument{Content: node.Content, Path: node.Path, Language: language.DetectLanguage(node.Path)}
		if err := batch.Index(node.Path, doc); err != nil {
			fresh.Close()
			return fmt.Errorf("indexing %s: %w", node.Path, err)
		}
		contents[node.Path] = node.Content
	}
	if err := fresh.Batch(batch); err != nil {
		fresh.Close()
		return fmt.Errorf("applying index batch: %w", err)
	}

	ci.mu.Lock()
	old := ci.index
	ci.index = fresh
	ci.contents = contents
	ci.mu.Unlock()

	return old.Close()
}

// DocumentCount returns the number of indexed files.
func (ci *ContentIndex) DocumentCount() uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	count, _ := ci.index.DocCount()
	return count
}

// Close releases the bleve index.
func (ci *ContentIndex) Close() error {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	return ci.index.Close()
}
