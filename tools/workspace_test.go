package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_WorkspaceHandler_ImportThenExport(t *testing.T) {
	src := t.TempDir()
	os.MkdirAll(filepath.Join(src, "src"), 0755)
	os.MkdirAll(filepath.Join(src, "node_modules", "react"), 0755)
	os.WriteFile(filepath.Join(src, "src", "Button.tsx"), []byte("export const Button = 1"), 0644)
	os.WriteFile(filepath.Join(src, "node_modules", "react", "index.js"), []byte("x"), 0644)

	s := newTestSession(t, nil)
	h := &WorkspaceHandler{Session: s, Logger: testLogger()}

	result, _, _ := h.HandleImport(context.Background(), nil, ImportArgs{Dir: src})
	if result.IsError {
		t.Fatalf("unexpected import error: %s", resultText(t, result))
	}
	if !strings.HasPrefix(resultText(t, result), "Imported 1 files") {
		t.Errorf("unexpected import output: %s", resultText(t, result))
	}
	if content, _ := s.Tree().Read("/src/Button.tsx"); content != "export const Button = 1" {
		t.Errorf("expected imported content, got %q", content)
	}

	dest := t.TempDir()
	result, _, _ = h.HandleExport(context.Background(), nil, ExportArgs{Dir: dest})
	if !strings.HasPrefix(resultText(t, result), "Exported 3 files") {
		t.Errorf("unexpected export output: %s", resultText(t, result))
	}
	data, err := os.ReadFile(filepath.Join(dest, "App.tsx"))
	if err != nil || !strings.Contains(string(data), "Welcome to CodeStudio") {
		t.Errorf("expected App.tsx exported, got %q err=%v", data, err)
	}
}

func Test_WorkspaceHandler_MissingDir(t *testing.T) {
	h := &WorkspaceHandler{Session: newTestSession(t, nil), Logger: testLogger()}

	result, _, _ := h.HandleImport(context.Background(), nil, ImportArgs{})
	if !result.IsError {
		t.Error("expected IsError without dir")
	}
	result, _, _ = h.HandleImport(context.Background(), nil, ImportArgs{Dir: filepath.Join(t.TempDir(), "absent")})
	if !result.IsError {
		t.Error("expected IsError for a missing directory")
	}
}
