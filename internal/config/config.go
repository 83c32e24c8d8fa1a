// Package config provides hierarchical configuration management for
// pact-cli using koanf. Configuration is loaded with priority: environment
// variables > user config (~/.config/pact-cli/config.yml) > legacy JSON
// config (~/.pact/config.json) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the pact-cli extension settings.
type Configuration struct {
	// ExtensionsHome is the directory holding installed extension binaries
	// and the registry document. Can be set via PACT_CLI_EXTENSIONS_HOME.
	ExtensionsHome string `koanf:"extensions_home"`

	// AIBaseURL is the base URL of the pactflow-ai distribution endpoint.
	AIBaseURL string `koanf:"ai_base_url"`

	// StandaloneBaseURL is the base URL for pact-standalone release archives.
	StandaloneBaseURL string `koanf:"standalone_base_url"`

	// StandaloneAPIURL is the releases-metadata endpoint used to resolve
	// the latest pact-standalone version.
	StandaloneAPIURL string `koanf:"standalone_api_url"`

	// HTTPTimeoutSeconds bounds every version-resolution and download
	// request. Can be set via PACT_CLI_HTTP_TIMEOUT_SECONDS.
	HTTPTimeoutSeconds int `koanf:"http_timeout_seconds"`
}

// Load loads configuration from defaults, config files, and environment.
func Load() (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if userPath, err := UserConfigPath(); err == nil && fileExists(userPath) {
		if err := k.Load(file.Provider(userPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading user config %s: %w", userPath, err)
		}
	} else if legacyPath, err := LegacyConfigPath(); err == nil && fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("loading legacy config %s: %w", legacyPath, err)
		}
	}

	if err := k.Load(env.Provider("PACT_CLI_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ExtensionsHome = expandHomePath(cfg.ExtensionsHome)
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}

	return &cfg, nil
}

// HTTPTimeout returns the configured request timeout as a duration.
func (c *Configuration) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// envTransform converts environment variable names to config keys.
// Example: PACT_CLI_EXTENSIONS_HOME -> extensions_home
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "PACT_CLI_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
