// Package settings holds process-wide editor preferences: the autosave flag,
// persisted under "autosaveEnabled", and the preview theme, kept in memory.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/lexandro/codestudio-mcp/kv"
)

// AutoSaveKey is the storage key of the autosave flag.
const AutoSaveKey = "autosaveEnabled"

// Theme selects the preview and editor color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
}

// Settings is safe for concurrent use.
type Settings struct {
	mu       sync.RWMutex
	store    kv.Store
	autoSave bool
	theme    Theme
}

// Load reads the persisted autosave flag. A missing key means disabled.
func Load(store kv.Store, theme Theme) (*Settings, error) {
	if theme == "" {
		theme = ThemeDark
	}
	s := &Settings{store: store, theme: theme}

	raw, ok, err := store.Get(AutoSaveKey)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", AutoSaveKey, err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.autoSave); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", AutoSaveKey, err)
		}
	}
	return s, nil
}

// AutoSave reports whether autosave is enabled.
func (s *Settings) AutoSave() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoSave
}

// SetAutoSave persists the flag. The in-memory value only changes when the
// write succeeds.
func (s *Settings) SetAutoSave(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, _ := json.Marshal(enabled)
	if err := s.store.Set(AutoSaveKey, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", AutoSaveKey, err)
	}
	s.autoSave = enabled
	return nil
}

func (s *Settings) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Settings) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}
