package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"blockpad/internal/errdef"
)

// Settings are the persisted user preferences. Zero values mean "use the
// built-in default".
type Settings struct {
	DefaultTheme    string `toml:"default_theme,omitempty"`
	HistoryCapacity int    `toml:"history_capacity,omitempty"`
	ContextWindow   int    `toml:"context_window,omitempty"`
	ExportDir       string `toml:"export_dir,omitempty"`
}

// LoadSettings reads the settings file, returning zero settings when the
// file does not exist.
func LoadSettings() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, errdef.Wrap(errdef.CodeConfig, err, "read settings")
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, errdef.Wrap(errdef.CodeConfig, err, "parse settings")
	}
	return s, nil
}

// SaveSettings atomically writes the settings file.
func SaveSettings(s Settings) error {
	path := SettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create config dir")
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "encode settings")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write settings tmp")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "replace settings file")
	}

	return nil
}
