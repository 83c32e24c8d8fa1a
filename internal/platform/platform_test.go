package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YOU54F/pact-cli/internal/errors"
)

func TestSupported_Matrix(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		os   string
		arch string
		want bool
	}{
		"darwin aarch64":    {os: "darwin", arch: "aarch64", want: true},
		"darwin x86_64":     {os: "darwin", arch: "x86_64", want: true},
		"windows aarch64":   {os: "windows", arch: "aarch64", want: true},
		"windows x86_64":    {os: "windows", arch: "x86_64", want: true},
		"linux aarch64":     {os: "linux", arch: "aarch64", want: true},
		"linux x86_64":      {os: "linux", arch: "x86_64", want: true},
		"freebsd x86_64":    {os: "freebsd", arch: "x86_64", want: false},
		"linux riscv64":     {os: "linux", arch: "riscv64", want: false},
		"unnormalized arch": {os: "linux", arch: "amd64", want: false},
		"empty":             {os: "", arch: "", want: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := Info{OS: tt.os, Arch: tt.arch}
			assert.Equal(t, tt.want, p.Supported())
		})
	}
}

func TestCheckSupported_UnsupportedNamesPair(t *testing.T) {
	t.Parallel()

	p := Info{OS: "plan9", Arch: "mips"}
	err := p.CheckSupported()
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.UnsupportedPlatform))
	assert.Contains(t, err.Error(), "plan9-mips")
}

func TestCheckSupported_SupportedReturnsNil(t *testing.T) {
	t.Parallel()

	p := Info{OS: "linux", Arch: "x86_64"}
	assert.NoError(t, p.CheckSupported())
}

func TestAITarget(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		os   string
		arch string
		want string
	}{
		"darwin aarch64":  {os: "darwin", arch: "aarch64", want: "aarch64-apple-darwin"},
		"darwin x86_64":   {os: "darwin", arch: "x86_64", want: "x86_64-apple-darwin"},
		"windows aarch64": {os: "windows", arch: "aarch64", want: "aarch64-pc-windows-msvc"},
		"windows x86_64":  {os: "windows", arch: "x86_64", want: "x86_64-pc-windows-msvc"},
		"linux aarch64":   {os: "linux", arch: "aarch64", want: "aarch64-unknown-linux-gnu"},
		"linux x86_64":    {os: "linux", arch: "x86_64", want: "x86_64-unknown-linux-gnu"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			target, err := Info{OS: tt.os, Arch: tt.arch}.AITarget()
			require.NoError(t, err)
			assert.Equal(t, tt.want, target)
		})
	}
}

func TestStandaloneTarget(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		os   string
		arch string
		want string
	}{
		"darwin aarch64": {os: "darwin", arch: "aarch64", want: "osx-arm64"},
		"darwin x86_64":  {os: "darwin", arch: "x86_64", want: "osx-x86_64"},
		// No arm64 bundle is published for Windows.
		"windows aarch64": {os: "windows", arch: "aarch64", want: "windows-x86_64"},
		"windows x86_64":  {os: "windows", arch: "x86_64", want: "windows-x86_64"},
		"linux aarch64":   {os: "linux", arch: "aarch64", want: "linux-arm64"},
		"linux x86_64":    {os: "linux", arch: "x86_64", want: "linux-x86_64"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			target, err := Info{OS: tt.os, Arch: tt.arch}.StandaloneTarget()
			require.NoError(t, err)
			assert.Equal(t, tt.want, target)
		})
	}
}

func TestTargets_UnsupportedPair(t *testing.T) {
	t.Parallel()

	p := Info{OS: "freebsd", Arch: "x86_64"}

	_, err := p.AITarget()
	assert.True(t, errors.IsCategory(err, errors.UnsupportedPlatform))

	_, err = p.StandaloneTarget()
	assert.True(t, errors.IsCategory(err, errors.UnsupportedPlatform))
}

func TestDetect_NormalizesArch(t *testing.T) {
	t.Parallel()

	p := Detect()
	assert.NotEmpty(t, p.OS)
	assert.NotContains(t, []string{"arm64", "amd64"}, p.Arch, "Detect should normalize Go arch names")
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".exe", Info{OS: "windows"}.ExecutableExt())
	assert.Equal(t, "", Info{OS: "linux"}.ExecutableExt())
	assert.Equal(t, "zip", Info{OS: "windows"}.ArchiveExt())
	assert.Equal(t, "tar.gz", Info{OS: "darwin"}.ArchiveExt())
}
