package session

import (
	"time"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/project"
)

// Save stores the current project under its id. It reads the tree as it is
// at the moment of the call, so edits applied before Save are always included.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.cancelLocked()
	return s.saveLocked("manual")
}

func (s *Session) saveLocked(trigger string) error {
	start := time.Now()
	err := s.projects.Save(s.project)
	metrics.RecordSave(trigger, time.Since(start), err == nil)

	s.lastSaveError = err
	if err != nil {
		s.logger.Error("project save failed", "project", s.project.ID, "trigger", trigger, "error", err)
		return err
	}
	s.saved = true
	s.savedPrint = project.Fingerprint(s.project)
	s.lastSave = s.now()
	s.logger.Info("project saved", "project", s.project.ID, "trigger", trigger, "nodes", s.project.Files.Len())
	return nil
}

// Load replaces the current project with the one stored under id and selects
// its first file. On error the session is left untouched.
func (s *Session) Load(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	loaded, err := s.projects.Load(id)
	metrics.RecordLoad(err == nil)
	if err != nil {
		s.logger.Error("project load failed", "project", id, "error", err)
		return err
	}
	if err := s.project.ReplaceWith(loaded); err != nil {
		return err
	}

	s.activeFile, _ = s.project.Files.FirstFile()
	s.saved = true
	s.savedPrint = project.Fingerprint(s.project)
	metrics.SetProjectNodes(s.project.Files.Len())
	s.armLocked()

	s.logger.Info("project loaded", "project", id, "nodes", s.project.Files.Len(), "active", s.activeFile)
	return nil
}

// NewProject replaces the current project with a fresh starter project.
func (s *Session) NewProject(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}
	fresh := project.New(name, s.now())
	if err := s.project.ReplaceWith(fresh); err != nil {
		return "", err
	}

	s.activeFile = project.StarterActiveFile
	s.saved = false
	metrics.SetProjectNodes(s.project.Files.Len())
	s.armLocked()

	s.logger.Info("project created", "project", fresh.ID, "name", fresh.Name)
	return fresh.ID, nil
}

// SetAutoSave persists the flag. Enabling arms the timer; disabling cancels
// any pending autosave.
func (s *Session) SetAutoSave(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.SetAutoSave(enabled); err != nil {
		return err
	}
	if enabled {
		s.armLocked()
	} else {
		s.cancelLocked()
	}
	s.logger.Info("autosave changed", "enabled", enabled)
	return nil
}

// armLocked restarts the quiescence window when autosave is enabled.
// Each call supersedes the previous timer, so a burst of changes yields one save.
func (s *Session) armLocked() {
	if s.closed || !s.settings.AutoSave() {
		return
	}
	s.cancelLocked()
	gen := s.generation
	s.timer = time.AfterFunc(s.delay, func() { s.autoSave(gen) })
}

func (s *Session) cancelLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) autoSave(gen uint64) {
	s.mu.Lock()
	// A timer that was stopped too late to prevent firing sees a newer generation.
	if s.closed || gen != s.generation || !s.settings.AutoSave() {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	err := s.saveLocked("auto")
	hook := s.onAutoSave
	s.mu.Unlock()

	if hook != nil {
		hook(err)
	}
}
