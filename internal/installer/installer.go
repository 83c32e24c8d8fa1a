// Package installer downloads release artifacts, places them on disk, and
// keeps the registry in step. Single-binary extensions are written straight
// to the conventional binary path; the legacy bundle is extracted and
// bridged into individually invocable commands.
package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/YOU54F/pact-cli/internal/config"
	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/platform"
	"github.com/YOU54F/pact-cli/internal/progress"
	"github.com/YOU54F/pact-cli/internal/registry"
	"github.com/YOU54F/pact-cli/internal/resolver"
)

// Installer performs extension install, update, and uninstall operations.
type Installer struct {
	cfg      *config.Configuration
	plat     platform.Info
	store    *registry.Store
	resolver *resolver.Resolver
	client   *http.Client
	out      io.Writer
	spin     *progress.Spinner
}

// New creates an Installer. Messages are written to out.
func New(cfg *config.Configuration, plat platform.Info, store *registry.Store, res *resolver.Resolver, out io.Writer) *Installer {
	return &Installer{
		cfg:      cfg,
		plat:     plat,
		store:    store,
		resolver: res,
		client:   &http.Client{Timeout: cfg.HTTPTimeout()},
		out:      out,
		spin:     progress.New(out),
	}
}

// InstallAI installs the pactflow-ai single binary. An empty version means
// "latest" and is resolved against the remote endpoint.
func (i *Installer) InstallAI(ctx context.Context, version string) error {
	if err := i.plat.CheckSupported(); err != nil {
		return err
	}

	target, err := i.plat.AITarget()
	if err != nil {
		return err
	}

	release, err := acquireLock(ctx, i.store.Home(), "install "+registry.AIExtensionName)
	if err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}
	defer release()

	if err := i.store.EnsureDirs(); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "preparing extensions directory")
	}

	if version == "" {
		version, err = i.resolver.LatestAIVersion(ctx, target)
		if err != nil {
			return err
		}
	}

	url := fmt.Sprintf("%s/%s/%s/pactflow-ai", strings.TrimRight(i.cfg.AIBaseURL, "/"), target, version)
	binaryPath := i.store.BinaryPath(registry.AIExtensionName)

	fmt.Fprintf(i.out, "Downloading %s %s from %s\n", registry.AIExtensionName, version, url)
	stop := i.spin.Start("Downloading " + registry.AIExtensionName)
	err = i.download(ctx, url, binaryPath)
	stop()
	if err != nil {
		return err
	}

	if i.plat.OS != "windows" {
		if err := os.Chmod(binaryPath, 0o755); err != nil {
			return errors.WrapWithMessage(err, errors.Filesystem, "setting executable permission")
		}
	}

	reg := i.store.Load()
	reg[registry.AIExtensionName] = registry.Record{
		Name:       registry.AIExtensionName,
		Version:    version,
		BinaryPath: binaryPath,
		Kind:       registry.KindPactflowAI,
		Installed:  true,
	}
	if err := i.store.Save(reg); err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}

	fmt.Fprintf(i.out, "Successfully installed %s %s\n", registry.AIExtensionName, version)
	return nil
}

// InstallStandalone installs the legacy multi-tool bundle and bridges its
// tools into individually named commands. An empty version means "latest".
func (i *Installer) InstallStandalone(ctx context.Context, version string) error {
	if err := i.plat.CheckSupported(); err != nil {
		return err
	}

	target, err := i.plat.StandaloneTarget()
	if err != nil {
		return err
	}

	release, err := acquireLock(ctx, i.store.Home(), "install "+registry.MasterBundleName)
	if err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}
	defer release()

	if err := i.store.EnsureDirs(); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "preparing extensions directory")
	}

	if version == "" {
		version, err = i.resolver.LatestStandaloneVersion(ctx)
		if err != nil {
			return err
		}
	}

	archiveExt := i.plat.ArchiveExt()
	url := fmt.Sprintf("%s/%s/pact-%s-%s.%s",
		strings.TrimRight(i.cfg.StandaloneBaseURL, "/"),
		version, strings.TrimPrefix(version, "v"), target, archiveExt)
	archivePath := filepath.Join(i.store.Home(), registry.MasterBundleName+"."+archiveExt)

	fmt.Fprintf(i.out, "Downloading %s %s from %s\n", registry.MasterBundleName, version, url)
	stop := i.spin.Start("Downloading " + registry.MasterBundleName)
	err = i.download(ctx, url, archivePath)
	stop()
	if err != nil {
		return err
	}
	defer os.Remove(archivePath)

	fmt.Fprintf(i.out, "Extracting %s...\n", registry.MasterBundleName)
	if err := extractArchive(archivePath, i.store.BundleDir()); err != nil {
		return err
	}

	records, err := i.bridgeBundle(version)
	if err != nil {
		return err
	}

	reg := i.store.Load()
	for _, rec := range records {
		reg[rec.Name] = rec
	}
	if err := i.store.Save(reg); err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}

	fmt.Fprintf(i.out, "Successfully installed %s tools\n", registry.MasterBundleName)
	return nil
}

// Uninstall removes an extension and its registry record. Removing the
// master bundle record removes every derived record and its backing alias,
// the extraction directory, and persists the registry once.
func (i *Installer) Uninstall(ctx context.Context, name string) error {
	release, err := acquireLock(ctx, i.store.Home(), "uninstall "+name)
	if err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}
	defer release()

	reg := i.store.Load()

	if name == registry.MasterBundleName {
		return i.uninstallBundle(reg)
	}

	rec, ok := reg[name]
	if !ok {
		return errors.New(errors.NotInstalled,
			fmt.Sprintf("extension '%s' is not installed", name),
			"Run 'pact-cli extension list' to see installed extensions")
	}

	if err := removeArtifact(rec); err != nil {
		return err
	}

	delete(reg, name)
	if err := i.store.Save(reg); err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}

	fmt.Fprintf(i.out, "Successfully uninstalled extension: %s\n", name)
	return nil
}

// uninstallBundle removes the master record, every derived record, their
// aliases, and the extraction directory, then saves once.
func (i *Installer) uninstallBundle(reg registry.Registry) error {
	fmt.Fprintf(i.out, "Uninstalling %s and all legacy tools...\n", registry.MasterBundleName)

	for name, rec := range reg {
		if rec.Kind != registry.KindRubyStandalone || name == registry.MasterBundleName {
			continue
		}
		if err := removeArtifact(rec); err != nil {
			return err
		}
		delete(reg, name)
		fmt.Fprintf(i.out, "Removed legacy tool: %s\n", name)
	}

	if err := os.RemoveAll(i.store.BundleDir()); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "removing bundle directory")
	}

	delete(reg, registry.MasterBundleName)
	if err := i.store.Save(reg); err != nil {
		return errors.Wrap(err, errors.Filesystem)
	}

	fmt.Fprintf(i.out, "Successfully uninstalled %s and all legacy tools\n", registry.MasterBundleName)
	return nil
}

// removeArtifact deletes the on-disk artifact backing a record. A path
// that is already gone is not an error.
func removeArtifact(rec registry.Record) error {
	info, err := os.Lstat(rec.BinaryPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "inspecting "+rec.BinaryPath)
	}

	if info.IsDir() {
		err = os.RemoveAll(rec.BinaryPath)
	} else {
		err = os.Remove(rec.BinaryPath)
	}
	if err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "removing "+rec.BinaryPath)
	}
	return nil
}
