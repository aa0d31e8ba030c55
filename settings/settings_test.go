package settings

import (
	"errors"
	"testing"

	"github.com/lexandro/codestudio-mcp/kv"
)

type failingSetStore struct{ *kv.MemoryStore }

func (failingSetStore) Set(string, string) error { return errors.New("read-only") }

func Test_Settings_DefaultsWhenMissing(t *testing.T) {
	s, err := Load(kv.NewMemoryStore(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.AutoSave() {
		t.Error("expected autosave disabled by default")
	}
	if s.Theme() != ThemeDark {
		t.Errorf("expected dark theme, got %s", s.Theme())
	}
}

func Test_Settings_AutoSavePersists(t *testing.T) {
	store := kv.NewMemoryStore()
	s, _ := Load(store, ThemeLight)

	if err := s.SetAutoSave(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, ok, _ := store.Get(AutoSaveKey)
	if !ok || raw != "true" {
		t.Errorf("expected stored true, got %q (ok=%v)", raw, ok)
	}

	reloaded, err := Load(store, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.AutoSave() {
		t.Error("expected autosave to survive reload")
	}
}

func Test_Settings_FailedWriteKeepsValue(t *testing.T) {
	s, _ := Load(failingSetStore{kv.NewMemoryStore()}, "")

	if err := s.SetAutoSave(true); err == nil {
		t.Fatal("expected write error")
	}
	if s.AutoSave() {
		t.Error("flag must not change when the write fails")
	}
}

func Test_Settings_CorruptFlag(t *testing.T) {
	store := kv.NewMemoryStore()
	store.Set(AutoSaveKey, "maybe")
	if _, err := Load(store, ""); err == nil {
		t.Error("expected decode error")
	}
}

func Test_ParseTheme(t *testing.T) {
	tests := []struct {
		input    string
		expected Theme
		wantErr  bool
	}{
		{"dark", ThemeDark, false},
		{" LIGHT ", ThemeLight, false},
		{"solarized", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTheme(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
