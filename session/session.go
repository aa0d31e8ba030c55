// Package session implements the editor session: the active file, the
// mediation of every project mutation and the debounced autosave.
//
// All mutations go through Session so the active-file invariant holds after
// each one: the active path is either empty or names an existing file.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lexandro/codestudio-mcp/language"
	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/project"
	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/lexandro/codestudio-mcp/vfs"
)

// DefaultAutoSaveDelay is the quiescence window before an autosave fires.
const DefaultAutoSaveDelay = 2 * time.Second

var (
	ErrNoFileSelected = fmt.Errorf("no file selected: %w", vfs.ErrNotAFile)
	ErrSessionClosed  = errors.New("session closed")
)

// ThemeListener is told about theme changes, typically the preview projector.
type ThemeListener interface {
	SetTheme(theme settings.Theme)
}

// Options configures a Session. Projects, Settings and Logger are required.
type Options struct {
	Projects      *project.Store
	Settings      *settings.Settings
	Logger        *slog.Logger
	AutoSaveDelay time.Duration
	Now           func() time.Time
	// OnAutoSave is called after every autosave attempt, outside the session lock.
	OnAutoSave func(err error)
	Theme      ThemeListener
}

// Session owns the current project. It is safe for concurrent use; the
// autosave timer fires on its own goroutine.
type Session struct {
	mu         sync.Mutex
	project    *project.Project
	projects   *project.Store
	settings   *settings.Settings
	logger     *slog.Logger
	delay      time.Duration
	now        func() time.Time
	onAutoSave func(error)
	theme      ThemeListener

	activeFile string
	closed     bool

	timer      *time.Timer
	generation uint64

	saved         bool
	savedPrint    uint64
	lastSave      time.Time
	lastSaveError error
}

// New starts a session on p. The starter file is selected when present,
// otherwise the first file in path order.
func New(p *project.Project, opts Options) *Session {
	s := &Session{
		project:    p,
		projects:   opts.Projects,
		settings:   opts.Settings,
		logger:     opts.Logger,
		delay:      opts.AutoSaveDelay,
		now:        opts.Now,
		onAutoSave: opts.OnAutoSave,
		theme:      opts.Theme,
	}
	if s.delay <= 0 {
		s.delay = DefaultAutoSaveDelay
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Files.IsFile(project.StarterActiveFile) {
		s.activeFile = project.StarterActiveFile
	} else {
		s.activeFile, _ = p.Files.FirstFile()
	}
	metrics.SetProjectNodes(p.Files.Len())
	s.armLocked()
	return s
}

// Tree returns the live file tree. Mutate it only through the session.
func (s *Session) Tree() *vfs.Tree {
	return s.project.Files
}

// ActiveFile returns the selected path, or false when nothing is selected.
func (s *Session) ActiveFile() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFile, s.activeFile != ""
}

// SelectFile makes path the active file. Folders and missing paths fail with
// vfs.ErrNotAFile and leave the selection unchanged.
func (s *Session) SelectFile(path string) (string, error) {
	normalized, err := vfs.NormalizePath(path)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.project.Files.IsFile(normalized) {
		return "", fmt.Errorf("select %s: %w", normalized, vfs.ErrNotAFile)
	}
	s.activeFile = normalized
	s.logger.Debug("file selected", "path", normalized)
	return normalized, nil
}

// ApplyEdit replaces the content of the active file.
func (s *Session) ApplyEdit(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.activeFile == "" {
		return ErrNoFileSelected
	}
	changed, err := s.project.Files.Write(s.activeFile, content)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("edit %s: %w", s.activeFile, ErrNoFileSelected)
	}
	metrics.RecordEdit()
	s.mutatedLocked("edit")
	return nil
}

// EditFile selects path and replaces its content under one lock hold.
func (s *Session) EditFile(path, content string) (string, error) {
	normalized, err := vfs.NormalizePath(path)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}
	if !s.project.Files.IsFile(normalized) {
		return "", fmt.Errorf("edit %s: %w", normalized, vfs.ErrNotAFile)
	}
	if _, err := s.project.Files.Write(normalized, content); err != nil {
		return "", err
	}
	s.activeFile = normalized
	metrics.RecordEdit()
	s.mutatedLocked("edit")
	return normalized, nil
}

// CreateFile adds a node and returns its normalized path. The selection does
// not change.
func (s *Session) CreateFile(path string, nodeType vfs.NodeType) (string, error) {
	normalized, err := vfs.NormalizePath(path)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}
	if err := s.project.Files.Create(normalized, nodeType); err != nil {
		return "", err
	}
	s.mutatedLocked("create")
	return normalized, nil
}

// DeleteFile removes the node at path. Missing paths are a no-op. Deleting
// the active file selects the first remaining file, or nothing.
func (s *Session) DeleteFile(path string) (bool, error) {
	normalized, err := vfs.NormalizePath(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}
	if !s.project.Files.Delete(normalized) {
		s.logger.Debug("delete of missing path ignored", "path", normalized)
		return false, nil
	}
	s.onFileDeletedLocked(normalized)
	s.mutatedLocked("delete")
	return true, nil
}

// RenameFile moves oldPath to newPath, overwriting newPath. The active file
// follows the rename.
func (s *Session) RenameFile(oldPath, newPath string) (bool, error) {
	from, err := vfs.NormalizePath(oldPath)
	if err != nil {
		return false, err
	}
	to, err := vfs.NormalizePath(newPath)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}
	moved, err := s.project.Files.Rename(from, to)
	if err != nil || !moved {
		return false, err
	}
	s.onFileRenamedLocked(from, to)
	s.mutatedLocked("rename")
	return true, nil
}

// PutFile writes content to path, creating the file first when missing.
// Used when files arrive from disk.
func (s *Session) PutFile(path, content string) error {
	normalized, err := vfs.NormalizePath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	tree := s.project.Files
	if node, ok := tree.Get(normalized); ok {
		if !node.IsFile() {
			return fmt.Errorf("put %s: %w", normalized, vfs.ErrNotAFile)
		}
		if node.Content == content {
			return nil
		}
	} else if err := tree.Create(normalized, vfs.TypeFile); err != nil {
		return err
	}
	if _, err := tree.Write(normalized, content); err != nil {
		return err
	}
	s.mutatedLocked("put")
	return nil
}

func (s *Session) onFileDeletedLocked(path string) {
	if path == s.activeFile {
		s.activeFile, _ = s.project.Files.FirstFile()
		s.logger.Debug("active file reassigned", "deleted", path, "active", s.activeFile)
	}
}

func (s *Session) onFileRenamedLocked(oldPath, newPath string) {
	switch {
	case oldPath == s.activeFile:
		s.activeFile = newPath
	case newPath == s.activeFile && !s.project.Files.IsFile(newPath):
		// a folder was moved over the active file
		s.activeFile, _ = s.project.Files.FirstFile()
	}
}

// mutatedLocked runs after every successful change to the project.
func (s *Session) mutatedLocked(op string) {
	s.project.Touch(s.now())
	metrics.RecordFileOp(op)
	metrics.SetProjectNodes(s.project.Files.Len())
	s.armLocked()
}

// View is what the text editor needs to show the active file.
type View struct {
	Path     string
	Name     string
	Content  string
	Language language.Hint
	Theme    settings.Theme
}

// ActiveView returns the editor view of the active file.
func (s *Session) ActiveView() (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeFile == "" {
		return View{}, false
	}
	node, ok := s.project.Files.Get(s.activeFile)
	if !ok {
		return View{}, false
	}
	return View{
		Path:     node.Path,
		Name:     node.Name,
		Content:  node.Content,
		Language: language.EditorHint(node.Path),
		Theme:    s.settings.Theme(),
	}, true
}

// SetTheme changes the editor and preview theme.
func (s *Session) SetTheme(theme settings.Theme) {
	s.settings.SetTheme(theme)
	if s.theme != nil {
		s.theme.SetTheme(theme)
	}
	s.logger.Info("theme changed", "theme", theme)
}

// Close cancels any pending autosave. Later mutations fail with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelLocked()
	s.logger.Info("session closed", "project", s.project.ID)
}
