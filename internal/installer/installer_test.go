package installer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YOU54F/pact-cli/internal/config"
	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/platform"
	"github.com/YOU54F/pact-cli/internal/registry"
	"github.com/YOU54F/pact-cli/internal/resolver"
)

var testPlat = platform.Info{OS: "linux", Arch: "x86_64"}

func newTestInstaller(t *testing.T, plat platform.Info, baseURL string) (*Installer, *registry.Store) {
	t.Helper()
	cfg := &config.Configuration{
		ExtensionsHome:     t.TempDir(),
		AIBaseURL:          baseURL,
		StandaloneBaseURL:  baseURL,
		StandaloneAPIURL:   baseURL + "/releases/latest",
		HTTPTimeoutSeconds: 5,
	}
	store := registry.NewStore(cfg.ExtensionsHome, plat)
	inst := New(cfg, plat, store, resolver.New(cfg), io.Discard)
	return inst, store
}

// makeBundleTarGz builds a bundle archive containing the given tool
// binaries under the conventional pact/bin/ layout.
func makeBundleTarGz(t *testing.T, tools []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, tool := range tools {
		body := []byte("#!/bin/sh\nexit 0\n")
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     "pact/bin/" + tool,
			Mode:     0o755,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write(body)
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestInstallAI_ExplicitVersion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x86_64-unknown-linux-gnu/2.0.0/pactflow-ai", r.URL.Path)
		w.Write([]byte("binary-bytes"))
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallAI(context.Background(), "2.0.0"))

	reg := store.Load()
	require.Len(t, reg, 1)
	rec := reg[registry.AIExtensionName]
	assert.Equal(t, "2.0.0", rec.Version)
	assert.True(t, rec.Installed)
	assert.Equal(t, registry.KindPactflowAI, rec.Kind)

	info, err := os.Stat(rec.BinaryPath)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.NotZero(t, info.Mode()&0o111, "executable bit should be set")
	}
}

func TestInstallAI_ResolvesLatestWhenVersionEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/x86_64-unknown-linux-gnu/latest":
			w.Write([]byte("1.11.4\n"))
		case "/x86_64-unknown-linux-gnu/1.11.4/pactflow-ai":
			w.Write([]byte("binary-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallAI(context.Background(), ""))
	assert.Equal(t, "1.11.4", store.Load()[registry.AIExtensionName].Version)
}

func TestInstallAI_UnsupportedPlatformMakesNoNetworkCalls(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, platform.Info{OS: "freebsd", Arch: "x86_64"}, srv.URL)
	err := inst.InstallAI(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.UnsupportedPlatform))
	assert.Equal(t, int32(0), calls.Load())
	assert.Empty(t, store.Load())

	err = inst.InstallStandalone(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.UnsupportedPlatform))
	assert.Equal(t, int32(0), calls.Load())
}

func TestInstallAI_FailedDownloadLeavesNoRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	err := inst.InstallAI(context.Background(), "2.0.0")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.RemoteStatus))
	assert.Contains(t, err.Error(), "500")
	assert.Empty(t, store.Load())
	assert.NoFileExists(t, store.BinaryPath(registry.AIExtensionName))
}

func TestInstallAI_Idempotent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("binary-bytes"))
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallAI(context.Background(), "2.0.0"))
	require.NoError(t, inst.InstallAI(context.Background(), "2.0.0"))

	reg := store.Load()
	assert.Len(t, reg, 1, "no duplicate records after reinstall")
}

func TestInstallStandalone_PartialBundle(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("tar.gz fixture exercises the unix bundle path")
	}

	archive := makeBundleTarGz(t, []string{"pact-broker", "pact-mock-service"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.5.2/pact-2.5.2-linux-x86_64.tar.gz", r.URL.Path)
		w.Write(archive)
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallStandalone(context.Background(), "v2.5.2"))

	reg := store.Load()
	// 2 derived records plus 1 master; absent tools are skipped entirely,
	// not recorded as uninstalled.
	require.Len(t, reg, 3)

	master := reg[registry.MasterBundleName]
	assert.Equal(t, registry.KindRubyStandalone, master.Kind)
	assert.Equal(t, store.BundleDir(), master.BinaryPath)
	assert.True(t, master.Installed)

	for _, name := range []string{"pact-broker-legacy", "mock-legacy"} {
		rec, ok := reg[name]
		require.True(t, ok, "derived record %s", name)
		assert.Equal(t, "v2.5.2", rec.Version)
		assert.True(t, rec.Installed)
		assert.FileExists(t, rec.BinaryPath)
	}

	for _, absent := range []string{"pactflow-legacy", "message-legacy", "verifier-legacy", "stub-legacy"} {
		_, ok := reg[absent]
		assert.False(t, ok, "%s should be absent from the registry", absent)
	}

	// Temp archive is cleaned up after extraction.
	assert.NoFileExists(t, store.Home()+"/pact-legacy.tar.gz")
}

func TestInstallStandalone_ReinstallOverwritesAliases(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("tar.gz fixture exercises the unix bundle path")
	}

	archive := makeBundleTarGz(t, []string{"pact-broker"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallStandalone(context.Background(), "v2.5.2"))
	require.NoError(t, inst.InstallStandalone(context.Background(), "v2.5.2"))

	reg := store.Load()
	assert.Len(t, reg, 2)
	assert.FileExists(t, reg["pact-broker-legacy"].BinaryPath)
}

func TestUninstall_MasterRemovesDerivedRecordsAndAliases(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("tar.gz fixture exercises the unix bundle path")
	}

	archive := makeBundleTarGz(t, []string{"pact-broker", "pact-mock-service", "pact-stub-service"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallStandalone(context.Background(), "v2.5.2"))

	aliasPath := store.Load()["mock-legacy"].BinaryPath
	require.NoError(t, inst.Uninstall(context.Background(), registry.MasterBundleName))

	assert.Empty(t, store.Load())
	assert.NoFileExists(t, aliasPath)
	assert.NoDirExists(t, store.BundleDir())

	listed := store.List()
	for _, name := range registry.DerivedBundleNames() {
		assert.False(t, listed[name].Installed, "%s should list as not installed", name)
	}
}

func TestUninstall_SingleBinary(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("binary-bytes"))
	}))
	defer srv.Close()

	inst, store := newTestInstaller(t, testPlat, srv.URL)
	require.NoError(t, inst.InstallAI(context.Background(), "2.0.0"))

	binaryPath := store.Load()[registry.AIExtensionName].BinaryPath
	require.NoError(t, inst.Uninstall(context.Background(), registry.AIExtensionName))

	assert.Empty(t, store.Load())
	assert.NoFileExists(t, binaryPath)
}

func TestUninstall_UnknownName(t *testing.T) {
	t.Parallel()

	inst, _ := newTestInstaller(t, testPlat, "http://unused.invalid")
	err := inst.Uninstall(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.NotInstalled))
}

func TestUninstall_MissingArtifactIsIdempotent(t *testing.T) {
	t.Parallel()

	inst, store := newTestInstaller(t, testPlat, "http://unused.invalid")
	require.NoError(t, store.Save(registry.Registry{
		"pactflow-ai": {Name: "pactflow-ai", Version: "2.0.0", BinaryPath: store.BinaryPath("pactflow-ai"), Kind: registry.KindPactflowAI, Installed: true},
	}))

	// Binary was never written; uninstall still removes the record.
	require.NoError(t, inst.Uninstall(context.Background(), "pactflow-ai"))
	assert.Empty(t, store.Load())
}
