package tools

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lexandro/codestudio-mcp/kv"
	"github.com/lexandro/codestudio-mcp/project"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestSession returns a session on the starter project backed by store.
func newTestSession(t *testing.T, store kv.Store) *session.Session {
	t.Helper()
	if store == nil {
		store = kv.NewMemoryStore()
	}
	prefs, err := settings.Load(store, settings.ThemeDark)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	s := session.New(project.Default(testNow), session.Options{
		Projects:      project.NewStore(store),
		Settings:      prefs,
		Logger:        testLogger(),
		AutoSaveDelay: time.Hour,
	})
	t.Cleanup(s.Close)
	return s
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected a result with content")
	}
	return result.Content[0].(*mcp.TextContent).Text
}
