package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/lexandro/codestudio-mcp/vfs"
)

func newTestFilesHandler(t *testing.T) *FilesHandler {
	t.Helper()
	s := newTestSession(t, nil)
	s.CreateFile("/src", vfs.TypeFolder)
	s.PutFile("/src/Button.tsx", "export const Button = () => <button/>")
	return &FilesHandler{Session: s, MaxResults: 50, Logger: testLogger()}
}

func Test_FilesHandler_ListsEverythingByDefault(t *testing.T) {
	h := newTestFilesHandler(t)

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Found 4 entries") {
		t.Errorf("expected 4 entries, got: %s", text)
	}
	if !strings.Contains(text, "/src/  (folder)") {
		t.Errorf("expected folder entry, got: %s", text)
	}
	if !strings.Contains(text, "/App.tsx  (TypeScript") {
		t.Errorf("expected App.tsx with language, got: %s", text)
	}
}

func Test_FilesHandler_PatternAndNameOnly(t *testing.T) {
	h := newTestFilesHandler(t)

	result, _, _ := h.Handle(context.Background(), nil, FilesArgs{Pattern: "**/*.tsx", NameOnly: true})
	text := resultText(t, result)

	if !strings.Contains(text, "/App.tsx\n") || !strings.Contains(text, "/src/Button.tsx\n") {
		t.Errorf("expected both tsx paths, got: %s", text)
	}
	if strings.Contains(text, "styles.css") {
		t.Errorf("css should not match, got: %s", text)
	}
}

func Test_FilesHandler_InvalidPattern(t *testing.T) {
	h := newTestFilesHandler(t)

	result, _, _ := h.Handle(context.Background(), nil, FilesArgs{Pattern: "[oops"})
	if !result.IsError {
		t.Error("expected IsError for invalid pattern")
	}
}

func Test_FilesHandler_NoMatch(t *testing.T) {
	h := newTestFilesHandler(t)

	result, _, _ := h.Handle(context.Background(), nil, FilesArgs{Pattern: "**/*.go"})
	if text := resultText(t, result); text != "No files matched." {
		t.Errorf("unexpected output: %s", text)
	}
}
