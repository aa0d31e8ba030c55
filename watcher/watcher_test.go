package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type prefixFilter string

func (p prefixFilter) Ignore(rel string, isDir bool) bool {
	return strings.HasPrefix(rel, string(p))
}

func Test_Watcher_ReportsRelativePaths(t *testing.T) {
	root := t.TempDir()
	os.Mkdir(filepath.Join(root, "src"), 0755)
	os.Mkdir(filepath.Join(root, "node_modules"), 0755)

	w, err := New(root, prefixFilter("node_modules"), testInterval, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	os.WriteFile(filepath.Join(root, "node_modules", "x.js"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(root, "src", "App.tsx"), []byte("app"), 0644)

	batch := receiveBatch(t, w.Events(), 2*time.Second)
	for _, ev := range batch {
		if strings.HasPrefix(ev.Rel, "node_modules") {
			t.Errorf("ignored path reported: %s", ev.Rel)
		}
	}
	found := false
	for _, ev := range batch {
		if ev.Rel == "src/App.tsx" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected src/App.tsx in batch, got %v", batch)
	}
}
