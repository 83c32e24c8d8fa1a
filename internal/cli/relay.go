package cli

import (
	"github.com/spf13/cobra"

	"github.com/YOU54F/pact-cli/internal/invoker"
)

// relaySpec describes one wrapped tool: the command name exposed on
// pact-cli and the registry extension tried before falling back to the
// pact-<name> PATH convention.
type relaySpec struct {
	use       string
	short     string
	extension string
}

var relaySpecs = []relaySpec{
	{"broker", "Run the Pact Broker client", "pact-broker-legacy"},
	{"verifier", "Run the Pact provider verifier", "verifier-legacy"},
	{"mock", "Run the Pact mock service", "mock-legacy"},
	{"stub", "Run the Pact stub service", "stub-legacy"},
	{"plugin", "Run the Pact plugin CLI", ""},
	{"pactflow", "Run the PactFlow client", "pactflow-legacy"},
}

func init() {
	for _, spec := range relaySpecs {
		rootCmd.AddCommand(newRelayCmd(spec))
	}
}

// newRelayCmd builds an opaque relay: flag parsing is disabled so every
// argument reaches the child process verbatim.
func newRelayCmd(spec relaySpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:                spec.use + " [args...]",
		Short:              spec.short,
		GroupID:            GroupTools,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelay(cmd, spec, args)
		},
	}
	return cmd
}

func runRelay(cmd *cobra.Command, spec relaySpec, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	name, args := relayTarget(a.invoker, spec, args)
	code, err := a.invoker.Run(name, args)
	if err != nil {
		return err
	}
	if code != ExitSuccess {
		return NewExitError(code)
	}
	return nil
}

// relayTarget picks the extension the relay forwards to. The pactflow
// container additionally routes a nested token to an installed
// pactflow-<token> extension, so `pact-cli pactflow ai ...` reaches
// pactflow-ai.
func relayTarget(inv *invoker.Invoker, spec relaySpec, args []string) (string, []string) {
	if spec.use == "pactflow" && len(args) > 0 {
		if nested := "pactflow-" + args[0]; inv.Installed(nested) {
			return nested, args[1:]
		}
	}
	if spec.extension != "" && inv.Installed(spec.extension) {
		return spec.extension, args
	}
	return spec.use, args
}
