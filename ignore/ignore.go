// Package ignore decides which files of a disk directory take part in
// import and mirroring: built-in rules, .gitignore, .codestudioignore and
// user supplied patterns.
package ignore

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Ignore files read from the root directory.
const (
	GitIgnoreFile    = ".gitignore"
	StudioIgnoreFile = ".codestudioignore"
)

// DefaultMaxFileSize caps imported files at 1 MiB.
const DefaultMaxFileSize int64 = 1 << 20

// Options configures a Matcher.
type Options struct {
	Root        string
	Exclude     []string // doublestar patterns against the relative path or base name
	MaxFileSize int64
}

// Matcher is safe for concurrent use; Reload swaps the ignore-file rules.
type Matcher struct {
	root        string
	exclude     []string
	maxFileSize int64

	mu    sync.RWMutex
	files []gitignore.GitIgnore
}

// NewMatcher reads the ignore files under opts.Root. Missing files are fine.
func NewMatcher(opts Options) *Matcher {
	m := &Matcher{
		root:        opts.Root,
		exclude:     opts.Exclude,
		maxFileSize: opts.MaxFileSize,
	}
	if m.maxFileSize <= 0 {
		m.maxFileSize = DefaultMaxFileSize
	}
	m.files = m.readIgnoreFiles()
	return m
}

// Ignore reports whether rel, a slash-separated path relative to the root,
// is excluded.
func (m *Matcher) Ignore(rel string, isDir bool) bool {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if rel == "" || rel == "." {
		return false
	}

	for _, part := range strings.Split(rel, "/") {
		if skipDirs[part] {
			return true
		}
	}

	base := path.Base(rel)
	if !isDir {
		for _, pattern := range defaultPatterns {
			if ok, _ := doublestar.Match(pattern, strings.ToLower(base)); ok {
				return true
			}
		}
	}

	for _, pattern := range m.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, gi := range m.files {
		if match := gi.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

// TooLarge reports whether a file of size bytes exceeds the limit.
func (m *Matcher) TooLarge(size int64) bool {
	return size > m.maxFileSize
}

// MaxFileSize returns the configured size limit.
func (m *Matcher) MaxFileSize() int64 {
	return m.maxFileSize
}

// IsIgnoreFile reports whether rel is one of the ignore files, so a watcher
// knows to call Reload.
func (m *Matcher) IsIgnoreFile(rel string) bool {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	return rel == GitIgnoreFile || rel == StudioIgnoreFile
}

// Reload re-reads the ignore files.
func (m *Matcher) Reload() {
	files := m.readIgnoreFiles()
	m.mu.Lock()
	m.files = files
	m.mu.Unlock()
}

func (m *Matcher) readIgnoreFiles() []gitignore.GitIgnore {
	var files []gitignore.GitIgnore
	for _, name := range []string{GitIgnoreFile, StudioIgnoreFile} {
		if gi := load(filepath.Join(m.root, name), m.root); gi != nil {
			files = append(files, gi)
		}
	}
	return files
}

func load(file, base string) gitignore.GitIgnore {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, base, nil)
}
