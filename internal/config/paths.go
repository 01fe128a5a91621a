package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName        = "dropbox-uploader"
	configFileName = "config.toml"
)

// DefaultConfigPath is where the config file is looked up when neither
// --config nor DROPBOX_UPLOADER_CONFIG names one. Empty when the home
// directory is unknown, which LoadOrDefault treats as "no file".
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}

	return filepath.Join(dir, configFileName)
}

// DefaultConfigDir is the per-user directory holding config.toml.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return configDirFor(runtime.GOOS, home, os.Getenv("XDG_CONFIG_HOME"))
}

// configDirFor picks the config directory for goos. macOS keeps settings
// under Application Support; everything else follows XDG, where
// XDG_CONFIG_HOME replaces ~/.config when set.
func configDirFor(goos, home, xdgConfigHome string) string {
	if goos == "darwin" {
		return filepath.Join(home, "Library", "Application Support", appName)
	}

	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName)
	}

	return filepath.Join(home, ".config", appName)
}
