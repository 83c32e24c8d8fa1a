// Package cli wires the pact-cli command tree: extension lifecycle
// commands, relays for the wrapped legacy tools, and the router that
// forwards unknown top-level tokens to installed extensions.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YOU54F/pact-cli/internal/config"
	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/installer"
	"github.com/YOU54F/pact-cli/internal/invoker"
	"github.com/YOU54F/pact-cli/internal/platform"
	"github.com/YOU54F/pact-cli/internal/registry"
	"github.com/YOU54F/pact-cli/internal/resolver"
)

// Command group IDs for help output.
const (
	GroupExtensions = "extensions"
	GroupTools      = "tools"
)

var rootCmd = &cobra.Command{
	Use:   "pact-cli",
	Short: "Pact CLI with managed command extensions",
	Long: `pact-cli manages optional command extensions for the Pact toolchain.

Extensions are downloaded per platform, recorded in a local registry,
and invoked either explicitly (pact-cli extension <name>) or directly
by name (pact-cli <name>). The legacy Ruby standalone tools install as
a single bundle and surface as individual commands.`,
	Example: `  pact-cli extension list
  pact-cli extension install pactflow-ai
  pact-cli extension install pact-legacy --version v2.5.2
  pact-cli pactflow-ai --help
  pact-cli broker list-latest-pact-versions`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupExtensions, Title: "Extension Management:"},
		&cobra.Group{ID: GroupTools, Title: "Wrapped Tools:"},
	)
}

// app bundles the wired-up services the commands share.
type app struct {
	cfg       *config.Configuration
	plat      platform.Info
	store     *registry.Store
	resolver  *resolver.Resolver
	installer *installer.Installer
	invoker   *invoker.Invoker
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	plat := platform.Detect()
	store := registry.NewStore(cfg.ExtensionsHome, plat)
	res := resolver.New(cfg)
	return &app{
		cfg:       cfg,
		plat:      plat,
		store:     store,
		resolver:  res,
		installer: installer.New(cfg, plat, store, res, cmd.OutOrStdout()),
		invoker:   invoker.New(store),
	}, nil
}

// Execute routes and runs the CLI, returning the process exit code.
// Extension tokens are resolved before cobra dispatch so that relayed
// arguments reach the child process verbatim.
func Execute() int {
	args := os.Args[1:]

	if code, handled := routeArgs(args); handled {
		return code
	}

	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if stderrors.As(err, &exitErr) {
			return exitErr.Code
		}
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.FprintError(os.Stderr, cliErr)
			return ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArguments
	}
	return ExitSuccess
}

// routeArgs handles the invocations cobra must not parse: direct
// extension tokens and the explicit extension passthrough form.
func routeArgs(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}

	// pact-cli extension <name> [args...] where <name> is not a
	// lifecycle subcommand relays to the named extension.
	if args[0] == "extension" && len(args) > 1 && !isLifecycleSubcommand(args[1]) {
		return relay(args[1], args[2:]), true
	}

	store, err := routeStore()
	if err != nil {
		return 0, false
	}
	switch ResolveRoute(rootCmd, store, args[0]) {
	case RouteRegisteredExtension, RoutePathExternalBinary:
		return relay(args[0], args[1:]), true
	default:
		return 0, false
	}
}

func isLifecycleSubcommand(token string) bool {
	switch token {
	case "list", "install", "update", "uninstall", "help", "-h", "--help":
		return true
	}
	return false
}

func routeStore() (*registry.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return registry.NewStore(cfg.ExtensionsHome, platform.Detect()), nil
}

// relay runs the named extension and maps the result to an exit code.
// A child's nonzero exit is relayed as-is, not treated as a CLI error.
func relay(name string, args []string) int {
	store, err := routeStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFailure
	}
	code, err := invoker.New(store).Run(name, args)
	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.FprintError(os.Stderr, cliErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return ExitFailure
	}
	return code
}
