package tools

import (
	"context"
	"strings"
	"testing"
)

func Test_ReadHandler_DefaultsToActiveFile(t *testing.T) {
	h := &ReadHandler{Session: newTestSession(t, nil), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "── /App.tsx (typescript,") {
		t.Errorf("expected App.tsx header, got: %s", text)
	}
	if !strings.Contains(text, "1│ export default function App() {") {
		t.Errorf("expected numbered first line, got: %s", text)
	}
}

func Test_ReadHandler_ByPath(t *testing.T) {
	h := &ReadHandler{Session: newTestSession(t, nil), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ReadArgs{Path: "styles.css"})
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "/styles.css (css,") {
		t.Errorf("expected css header, got: %s", text)
	}
}

func Test_ReadHandler_Missing(t *testing.T) {
	h := &ReadHandler{Session: newTestSession(t, nil), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ReadArgs{Path: "/nope.ts"})
	if !result.IsError {
		t.Fatal("expected IsError for missing file")
	}
	if !strings.Contains(resultText(t, result), "file not found: /nope.ts") {
		t.Errorf("unexpected message: %s", resultText(t, result))
	}
}

func Test_ReadHandler_NothingSelected(t *testing.T) {
	s := newTestSession(t, nil)
	s.DeleteFile("/App.tsx")
	s.DeleteFile("/styles.css")
	h := &ReadHandler{Session: s, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ReadArgs{})
	if !result.IsError {
		t.Error("expected IsError with no active file")
	}
}
