package config

import (
	"os"
	"path/filepath"
	"runtime"
)

func Dir() string {
	if override := os.Getenv("BLOCKPAD_CONFIG_DIR"); override != "" {
		return override
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".blockpad"
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "blockpad")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "blockpad")
	default:
		return filepath.Join(home, ".config", "blockpad")
	}
}

func HistoryPath() string {
	return filepath.Join(Dir(), "history.json")
}

func PatternsPath() string {
	return filepath.Join(Dir(), "patterns.json")
}

func SettingsPath() string {
	return filepath.Join(Dir(), "settings.toml")
}
