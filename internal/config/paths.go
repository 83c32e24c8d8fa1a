package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/pact-cli/config.yml
// - macOS: ~/Library/Application Support/pact-cli/config.yml
// - Windows: %APPDATA%\pact-cli\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pact-cli", "config.yml"), nil
}

// LegacyConfigPath returns the path to the legacy JSON config file at
// ~/.pact/config.json, kept for backward compatibility.
func LegacyConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".pact", "config.json"), nil
}
