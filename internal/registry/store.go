package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/YOU54F/pact-cli/internal/platform"
)

// Store reads and writes the persisted registry document under the
// extensions home directory.
type Store struct {
	home string
	plat platform.Info
}

// NewStore creates a Store rooted at the given extensions home.
func NewStore(home string, plat platform.Info) *Store {
	return &Store{home: home, plat: plat}
}

// Home returns the extensions home directory.
func (s *Store) Home() string {
	return s.home
}

// ConfigPath returns the path of the registry document.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.home, "config.json")
}

// BinDir returns the directory holding extension binaries and aliases.
func (s *Store) BinDir() string {
	return filepath.Join(s.home, "bin")
}

// BundleDir returns the extraction directory owned by the master bundle record.
func (s *Store) BundleDir() string {
	return filepath.Join(s.home, MasterBundleName)
}

// BinaryPath returns the conventional binary path for an extension name.
func (s *Store) BinaryPath(name string) string {
	return filepath.Join(s.BinDir(), name+s.plat.ExecutableExt())
}

// EnsureDirs creates the extensions home and bin directories.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.BinDir(), 0o755)
}

// Load reads the persisted registry. A missing or unparseable document
// yields an empty registry rather than an error, so prior config loss
// never blocks an install.
func (s *Store) Load() Registry {
	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		return Registry{}
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return Registry{}
	}
	if reg == nil {
		return Registry{}
	}
	return reg
}

// Save writes the full registry document. The write goes to a temp file in
// the same directory and is renamed over the target, so a failure leaves
// the prior document intact rather than a truncated one.
func (s *Store) Save(reg Registry) error {
	if err := os.MkdirAll(s.home, 0o755); err != nil {
		return fmt.Errorf("preparing extensions home: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	configPath := s.ConfigPath()
	tmp, err := os.CreateTemp(s.home, "config-*.json.tmp")
	if err != nil {
		return fmt.Errorf("creating temp registry file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp registry file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp registry file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		return fmt.Errorf("replacing registry file: %w", err)
	}
	return nil
}

// List returns the persisted registry merged with synthesized entries for
// builtin names not already present. Synthesized entries recompute
// Installed from a filesystem existence check of the conventional path.
func (s *Store) List() Registry {
	reg := s.Load()

	for _, b := range builtinNames {
		if _, ok := reg[b.name]; ok {
			continue
		}
		binaryPath := s.BinaryPath(b.name)
		reg[b.name] = Record{
			Name:       b.name,
			Version:    "latest",
			BinaryPath: binaryPath,
			Kind:       b.kind,
			Installed:  fileExists(binaryPath),
		}
	}

	return reg
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
