package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/codestudio-mcp/account"
	"github.com/lexandro/codestudio-mcp/index"
	"github.com/lexandro/codestudio-mcp/kv"
)

func Test_StatusHandler_Report(t *testing.T) {
	ci, err := index.NewContentIndex()
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	t.Cleanup(func() { ci.Close() })

	store := kv.NewMemoryStore()
	s := newTestSession(t, store)
	stop, err := index.Follow(s.Tree(), ci, testLogger())
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	t.Cleanup(stop)

	h := &StatusHandler{
		Session:      s,
		ContentIndex: ci,
		Accounts:     account.NewService(store, testLogger()),
		StartTime:    time.Now().Add(-90 * time.Second),
		Logger:       testLogger(),
	}

	result, _, _ := h.Handle(context.Background(), nil, StatusArgs{})
	text := resultText(t, result)

	for _, want := range []string{
		"=== codestudio-mcp Status ===",
		"Project: My React App (default)",
		"Active file: /App.tsx",
		"Entries: 2 files, 0 folders",
		"Content-indexed documents: 2",
		"Unsaved changes: yes",
		"Autosave: off",
		"Theme: dark",
		"Account: not logged in",
		"Uptime: 1m30s",
		"TypeScript",
		"CSS",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in status, got:\n%s", want, text)
		}
	}
}
