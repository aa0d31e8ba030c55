package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/codestudio-mcp/kv"
	"github.com/lexandro/codestudio-mcp/project"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_openProject_FallsBackToStarter(t *testing.T) {
	projects := project.NewStore(kv.NewMemoryStore())

	p, err := openProject(projects, "work", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "work" || p.Name != project.DefaultName {
		t.Errorf("expected starter project under id work, got %s %s", p.ID, p.Name)
	}
	if !p.Files.IsFile(project.StarterActiveFile) {
		t.Error("expected starter files")
	}
}

func Test_openProject_LoadsSaved(t *testing.T) {
	projects := project.NewStore(kv.NewMemoryStore())
	saved := project.New("Dashboard", time.Now().UTC())
	if err := projects.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err := openProject(projects, saved.ID, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Dashboard" {
		t.Errorf("expected saved project, got %s", p.Name)
	}
}

func Test_openProject_CorruptIsError(t *testing.T) {
	mem := kv.NewMemoryStore()
	mem.Set(project.Key("broken"), "{{{")

	_, err := openProject(project.NewStore(mem), "broken", testLogger())
	if !errors.Is(err, project.ErrCorruptProjectData) {
		t.Errorf("expected ErrCorruptProjectData, got %v", err)
	}
}

func Test_setupLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "codestudio-mcp.log")

	logger, closeLog := setupLogger("debug", path)
	logger.Debug("hello", "k", "v")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello k=v") {
		t.Errorf("unexpected log content: %s", data)
	}
}

func Test_RegisterCommand_ProjectScope(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"register", "project", dir, "--name", "studio", "--", "--store", "memory"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), `Registered "studio"`) {
		t.Errorf("unexpected output: %s", out.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, ".mcp.json"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	var config struct {
		MCPServers map[string]struct {
			Args []string `json:"args"`
		} `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &config); err != nil {
		t.Fatalf("parsing config: %v", err)
	}
	args := config.MCPServers["studio"].Args
	if len(args) < 2 || args[len(args)-2] != "--store" || args[len(args)-1] != "memory" {
		t.Errorf("expected forwarded server args, got %v", args)
	}
}

func Test_RegisterCommand_UnknownScope(t *testing.T) {
	rootCmd.SetArgs([]string{"register", "global"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for unknown scope")
	}
}
