// Package invoker resolves an extension name to an executable and runs it
// as a transparent process relay: arguments are forwarded unaltered, the
// standard streams are inherited, and the child's exit status is returned
// verbatim.
package invoker

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/registry"
)

// PathPrefix is the naming convention for external binaries resolved from
// PATH when a name has no registry entry.
const PathPrefix = "pact-"

// Invoker runs installed extensions.
type Invoker struct {
	store *registry.Store
}

// New creates an Invoker backed by the given registry store.
func New(store *registry.Store) *Invoker {
	return &Invoker{store: store}
}

// Run resolves name and executes it with args, returning the child's exit
// code. Resolution order: registry record, then the PATH convention
// PathPrefix+name. The child's own nonzero exit is not an error here; it is
// carried in the returned code.
func (inv *Invoker) Run(name string, args []string) (int, error) {
	reg := inv.store.Load()

	if rec, ok := reg[name]; ok {
		// The installed flag can go stale if the binary is removed
		// out-of-band; re-verify against disk at invocation time only.
		if !rec.Installed || !fileExists(rec.BinaryPath) {
			return 0, errors.New(errors.NotInstalled,
				fmt.Sprintf("extension '%s' is not installed", name),
				fmt.Sprintf("Run 'pact-cli extension install %s' first", name))
		}
		return runBinary(rec.BinaryPath, args)
	}

	external := PathPrefix + name
	binaryPath, err := exec.LookPath(external)
	if err != nil {
		return 0, errors.New(errors.NotFound,
			fmt.Sprintf("extension '%s' not found", name),
			"Run 'pact-cli extension list' to see available extensions")
	}
	return runBinary(binaryPath, args)
}

// Installed reports whether name resolves to a runnable extension, either
// as an installed registry record or via the PATH convention.
func (inv *Invoker) Installed(name string) bool {
	reg := inv.store.Load()
	if rec, ok := reg[name]; ok {
		return rec.Installed && fileExists(rec.BinaryPath)
	}
	_, err := exec.LookPath(PathPrefix + name)
	return err == nil
}

// runBinary executes path with args, inheriting the parent's standard
// streams, and translates the process result to an exit code.
func runBinary(path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// Terminated by signal; report a generic failure code.
		return 1, nil
	}

	return 0, errors.WrapWithMessage(err, errors.Filesystem, fmt.Sprintf("executing %s", path))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
