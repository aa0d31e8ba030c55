package server

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/codestudio-mcp/account"
	"github.com/lexandro/codestudio-mcp/index"
	"github.com/lexandro/codestudio-mcp/kv"
	"github.com/lexandro/codestudio-mcp/preview"
	"github.com/lexandro/codestudio-mcp/project"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/lexandro/codestudio-mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestClient(t *testing.T) *mcp.ClientSession {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewMemoryStore()

	prefs, err := settings.Load(store, settings.ThemeDark)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	s := session.New(project.LoadDefault(), session.Options{
		Projects:      project.NewStore(store),
		Settings:      prefs,
		Logger:        logger,
		AutoSaveDelay: time.Hour,
	})
	t.Cleanup(s.Close)

	ci, err := index.NewContentIndex()
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	t.Cleanup(func() { ci.Close() })
	stop, err := index.Follow(s.Tree(), ci, logger)
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	t.Cleanup(stop)

	projector := preview.NewProjector(s.Tree(), nil, settings.ThemeDark, logger)
	t.Cleanup(projector.Close)
	accounts := account.NewService(store, logger)

	srv := Setup(Handlers{
		Files:     &tools.FilesHandler{Session: s, MaxResults: 50, Logger: logger},
		Read:      &tools.ReadHandler{Session: s, Logger: logger},
		Select:    &tools.SelectHandler{Session: s, Logger: logger},
		Edit:      &tools.EditHandler{Session: s, Logger: logger},
		Create:    &tools.CreateHandler{Session: s, Logger: logger},
		Delete:    &tools.DeleteHandler{Session: s, Logger: logger},
		Rename:    &tools.RenameHandler{Session: s, Logger: logger},
		Save:      &tools.SaveHandler{Session: s, Logger: logger},
		Load:      &tools.LoadHandler{Session: s, Logger: logger},
		New:       &tools.NewProjectHandler{Session: s, Logger: logger},
		Search:    &tools.SearchHandler{ContentIndex: ci, MaxResults: 50, Logger: logger},
		Preview:   &tools.PreviewHandler{Projector: projector, Logger: logger},
		Settings:  &tools.SettingsHandler{Session: s, Logger: logger},
		Status:    &tools.StatusHandler{Session: s, ContentIndex: ci, Accounts: accounts, StartTime: time.Now(), Logger: logger},
		Account:   &tools.AccountHandler{Accounts: accounts, Logger: logger},
		Workspace: &tools.WorkspaceHandler{Session: s, Logger: logger},
	})

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := srv.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { clientSession.Close() })
	return clientSession
}

func Test_Setup_RegistersAllTools(t *testing.T) {
	cs := newTestClient(t)

	result, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)

	expected := []string{
		"studio_create", "studio_delete", "studio_edit", "studio_export", "studio_files",
		"studio_import", "studio_load", "studio_login", "studio_logout", "studio_new",
		"studio_preview", "studio_read", "studio_register", "studio_rename", "studio_save",
		"studio_search", "studio_select", "studio_settings", "studio_status",
	}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("unexpected tools:\n got %v\nwant %v", names, expected)
	}
}

func Test_Setup_EditThenRead(t *testing.T) {
	cs := newTestClient(t)
	ctx := context.Background()

	_, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "studio_edit",
		Arguments: map[string]any{"content": "export default function App() { return null }"},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	result, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "studio_read", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "return null") {
		t.Errorf("expected edited content, got: %s", text)
	}
}
