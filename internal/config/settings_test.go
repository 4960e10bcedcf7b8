package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv("BLOCKPAD_CONFIG_DIR", t.TempDir())

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("missing settings must not error: %v", err)
	}
	if s != (Settings{}) {
		t.Fatalf("expected zero settings, got %+v", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("BLOCKPAD_CONFIG_DIR", t.TempDir())

	want := Settings{
		DefaultTheme:    "light",
		HistoryCapacity: 50,
		ContextWindow:   32,
		ExportDir:       "/tmp/exports",
	}
	if err := SaveSettings(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip changed settings:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadSettingsParseError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BLOCKPAD_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSettings(); err == nil {
		t.Fatalf("expected a parse error")
	}
}
