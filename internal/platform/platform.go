// Package platform detects the running operating system and CPU
// architecture and maps them to the artifact naming conventions used by
// each extension family. The two families publish under different target
// conventions, so each mapping is an independent finite table.
package platform

import (
	"runtime"

	"github.com/YOU54F/pact-cli/internal/errors"
)

// Info holds the canonical os and arch labels for the running host.
type Info struct {
	OS   string
	Arch string
}

type pair struct {
	os   string
	arch string
}

// supportedMatrix is the explicit set of installable platforms.
var supportedMatrix = map[pair]struct{}{
	{"darwin", "aarch64"}:  {},
	{"darwin", "x86_64"}:   {},
	{"windows", "aarch64"}: {},
	{"windows", "x86_64"}:  {},
	{"linux", "aarch64"}:   {},
	{"linux", "x86_64"}:    {},
}

// aiTargets maps canonical (os, arch) pairs to the pactflow-ai release
// target triple convention.
var aiTargets = map[pair]string{
	{"darwin", "aarch64"}:  "aarch64-apple-darwin",
	{"darwin", "x86_64"}:   "x86_64-apple-darwin",
	{"windows", "aarch64"}: "aarch64-pc-windows-msvc",
	{"windows", "x86_64"}:  "x86_64-pc-windows-msvc",
	{"linux", "aarch64"}:   "aarch64-unknown-linux-gnu",
	{"linux", "x86_64"}:    "x86_64-unknown-linux-gnu",
}

// standaloneTargets maps canonical (os, arch) pairs to the pact-standalone
// bundle target convention. Windows arm64 has no published bundle, so it
// maps to the x86_64 artifact.
var standaloneTargets = map[pair]string{
	{"darwin", "aarch64"}:  "osx-arm64",
	{"darwin", "x86_64"}:   "osx-x86_64",
	{"windows", "aarch64"}: "windows-x86_64",
	{"windows", "x86_64"}:  "windows-x86_64",
	{"linux", "aarch64"}:   "linux-arm64",
	{"linux", "x86_64"}:    "linux-x86_64",
}

// Detect returns Info for the running host. Known architectures are
// normalized to the release naming convention; unrecognized values pass
// through unchanged as a best effort and are rejected by Supported.
func Detect() Info {
	arch := runtime.GOARCH
	switch arch {
	case "arm64":
		arch = "aarch64"
	case "amd64":
		arch = "x86_64"
	}
	return Info{OS: runtime.GOOS, Arch: arch}
}

// Supported reports whether the (os, arch) pair is in the supported matrix.
func (p Info) Supported() bool {
	_, ok := supportedMatrix[pair{p.OS, p.Arch}]
	return ok
}

// CheckSupported returns an UnsupportedPlatform error naming the pair when
// the host is outside the supported matrix. Callers run this before any
// network access.
func (p Info) CheckSupported() error {
	if p.Supported() {
		return nil
	}
	return errors.Newf(errors.UnsupportedPlatform, "unsupported platform: %s-%s", p.OS, p.Arch)
}

// AITarget returns the pactflow-ai target triple for this platform.
func (p Info) AITarget() (string, error) {
	target, ok := aiTargets[pair{p.OS, p.Arch}]
	if !ok {
		return "", errors.Newf(errors.UnsupportedPlatform, "no pactflow-ai release target for platform %s-%s", p.OS, p.Arch)
	}
	return target, nil
}

// StandaloneTarget returns the pact-standalone bundle target for this platform.
func (p Info) StandaloneTarget() (string, error) {
	target, ok := standaloneTargets[pair{p.OS, p.Arch}]
	if !ok {
		return "", errors.Newf(errors.UnsupportedPlatform, "no pact-standalone release target for platform %s-%s", p.OS, p.Arch)
	}
	return target, nil
}

// ExecutableExt returns the executable filename suffix for this platform.
func (p Info) ExecutableExt() string {
	if p.OS == "windows" {
		return ".exe"
	}
	return ""
}

// ArchiveExt returns the bundle archive extension for this platform.
func (p Info) ArchiveExt() string {
	if p.OS == "windows" {
		return "zip"
	}
	return "tar.gz"
}
