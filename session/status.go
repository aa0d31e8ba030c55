package session

import (
	"time"

	"github.com/lexandro/codestudio-mcp/project"
	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/lexandro/codestudio-mcp/vfs"
)

// Status is a point-in-time summary of the session.
type Status struct {
	ProjectID     string
	ProjectName   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ActiveFile    string
	Files         int
	Folders       int
	AutoSave      bool
	AutoSaveDelay time.Duration
	Theme         settings.Theme
	Dirty         bool
	LastSave      time.Time
	LastSaveError string
	Closed        bool
}

// Status reports the project and persistence state. Dirty is true when the
// project differs from what was last saved or loaded.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		ProjectID:     s.project.ID,
		ProjectName:   s.project.Name,
		CreatedAt:     s.project.CreatedAt,
		UpdatedAt:     s.project.UpdatedAt,
		ActiveFile:    s.activeFile,
		AutoSave:      s.settings.AutoSave(),
		AutoSaveDelay: s.delay,
		Theme:         s.settings.Theme(),
		Dirty:         !s.saved || project.Fingerprint(s.project) != s.savedPrint,
		LastSave:      s.lastSave,
		Closed:        s.closed,
	}
	if s.lastSaveError != nil {
		st.LastSaveError = s.lastSaveError.Error()
	}
	for _, node := range s.project.Files.Nodes() {
		if node.Type == vfs.TypeFolder {
			st.Folders++
		} else {
			st.Files++
		}
	}
	return st
}
