package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/registry"
)

// legacyMappings is the fixed table bridging bundled tool binaries to
// their individually addressable command names.
var legacyMappings = []struct {
	source string
	target string
}{
	{"pact-broker", "pact-broker-legacy"},
	{"pactflow", "pactflow-legacy"},
	{"pact-message", "message-legacy"},
	{"pact-mock-service", "mock-legacy"},
	{"pact-provider-verifier", "verifier-legacy"},
	{"pact-stub-service", "stub-legacy"},
}

// bridgeBundle exposes each tool binary found in the extracted bundle under
// its canonical command name and returns the registry records to persist:
// one derived record per created alias plus the master record owning the
// extraction directory. Tools absent from the extracted tree are silently
// skipped; older and newer bundle layouts may omit them.
func (i *Installer) bridgeBundle(version string) ([]registry.Record, error) {
	binDir := i.store.BinDir()
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return nil, errors.WrapWithMessage(err, errors.Filesystem, "preparing bin directory")
	}

	bundleBin := filepath.Join(i.store.BundleDir(), "bin")
	exeExt := i.plat.ExecutableExt()

	records := []registry.Record{{
		Name:       registry.MasterBundleName,
		Version:    version,
		BinaryPath: i.store.BundleDir(),
		Kind:       registry.KindRubyStandalone,
		Installed:  dirExists(i.store.BundleDir()),
	}}

	for _, m := range legacyMappings {
		sourcePath := filepath.Join(bundleBin, m.source+exeExt)
		if _, err := os.Stat(sourcePath); err != nil {
			continue
		}

		targetPath := filepath.Join(binDir, m.target+exeExt)
		if err := createAlias(sourcePath, targetPath); err != nil {
			return nil, errors.WrapWithMessage(err, errors.Filesystem, fmt.Sprintf("creating alias for %s", m.target))
		}
		fmt.Fprintf(i.out, "Created legacy mapping: %s -> %s\n", m.target, m.source)

		records = append(records, registry.Record{
			Name:       m.target,
			Version:    version,
			BinaryPath: targetPath,
			Kind:       registry.KindRubyStandalone,
			Installed:  true,
		})
	}

	return records, nil
}

// createAlias links target to source, replacing any prior alias. Symlinks
// are preferred; a file copy is the fallback where the platform or
// environment lacks symlink support.
func createAlias(source, target string) error {
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing prior alias: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Symlink(source, target); err == nil {
			return nil
		}
	}
	return copyExecutable(source, target)
}

func copyExecutable(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
