package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lexandro/codestudio-mcp/kv"
)

// brokenStore fails project writes but keeps everything else working.
type brokenStore struct {
	*kv.MemoryStore
}

func (b brokenStore) Set(key, value string) error {
	if strings.HasPrefix(key, "project:") {
		return errors.New("quota exceeded")
	}
	return b.MemoryStore.Set(key, value)
}

func Test_SaveHandler_SavesAndLoadHandlerRestores(t *testing.T) {
	store := kv.NewMemoryStore()
	s := newTestSession(t, store)
	save := &SaveHandler{Session: s, Logger: testLogger()}
	load := &LoadHandler{Session: s, Logger: testLogger()}

	s.ApplyEdit("export default 1")
	result, _, _ := save.Handle(context.Background(), nil, SaveArgs{})
	if text := resultText(t, result); text != `Saved project "My React App" (default)` {
		t.Errorf("unexpected output: %s", text)
	}

	s.ApplyEdit("export default 2")
	result, _, _ = load.Handle(context.Background(), nil, LoadArgs{ID: "default"})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}
	if content, _ := s.Tree().Read("/App.tsx"); content != "export default 1" {
		t.Errorf("expected saved content restored, got %q", content)
	}
}

func Test_SaveHandler_ReportsFailure(t *testing.T) {
	s := newTestSession(t, brokenStore{kv.NewMemoryStore()})
	h := &SaveHandler{Session: s, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, SaveArgs{})
	if !result.IsError {
		t.Fatal("expected IsError when the store fails")
	}
	if !strings.Contains(resultText(t, result), "quota exceeded") {
		t.Errorf("expected cause in message, got: %s", resultText(t, result))
	}
}

func Test_LoadHandler_Missing(t *testing.T) {
	s := newTestSession(t, nil)
	h := &LoadHandler{Session: s, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, LoadArgs{ID: "nope"})
	if !result.IsError {
		t.Fatal("expected IsError for missing project")
	}
	if text := resultText(t, result); text != "Error: project nope not found" {
		t.Errorf("unexpected message: %s", text)
	}
	if s.Status().ProjectID != "default" {
		t.Error("current project must be kept")
	}
}

func Test_NewProjectHandler_StartsFresh(t *testing.T) {
	s := newTestSession(t, nil)
	h := &NewProjectHandler{Session: s, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, NewProjectArgs{Name: "Dashboard"})
	text := resultText(t, result)
	if !strings.HasPrefix(text, `Created project "Dashboard"`) {
		t.Errorf("unexpected output: %s", text)
	}
	st := s.Status()
	if st.ProjectID == "default" || st.ProjectName != "Dashboard" {
		t.Errorf("expected fresh project, got %s %s", st.ProjectID, st.ProjectName)
	}
	if st.ActiveFile != "/App.tsx" {
		t.Errorf("expected starter active file, got %s", st.ActiveFile)
	}
}
