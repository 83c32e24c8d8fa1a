package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/output"
	"github.com/YOU54F/pact-cli/internal/registry"
)

var updateAllFlag bool

var extensionUpdateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update an installed extension to the latest version",
	Long: `Update an installed extension to the latest published version.

An update reinstalls the extension at the latest version, which may be
the one already installed. Updating an extension that is not installed
is an error. Extensions of the External kind are not managed here and
are skipped with a warning.

Examples:
  pact-cli extension update pactflow-ai
  pact-cli extension update --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtensionUpdate(cmd, args)
	},
}

func init() {
	extensionCmd.AddCommand(extensionUpdateCmd)

	extensionUpdateCmd.Flags().BoolVar(&updateAllFlag, "all", false, "Update every installed extension")
}

func runExtensionUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if updateAllFlag {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --all with an extension name")
		}
		return updateAll(cmd, a)
	}

	if len(args) == 0 {
		return fmt.Errorf("an extension name or --all is required")
	}
	return updateOne(cmd, a, args[0])
}

func updateOne(cmd *cobra.Command, a *app, name string) error {
	rec, ok := a.store.List()[name]
	if !ok {
		return errors.Newf(errors.NotFound, "unknown extension %q", name).
			WithRemediation("Run 'pact-cli extension list' to see known extensions")
	}
	if !rec.Installed {
		return errors.Newf(errors.NotInstalled, "extension %q is not installed", name).
			WithRemediation(fmt.Sprintf("Run 'pact-cli extension install %s' first", installName(rec)))
	}

	switch rec.Kind {
	case registry.KindPactflowAI:
		return a.installer.InstallAI(cmd.Context(), "")
	case registry.KindRubyStandalone:
		return a.installer.InstallStandalone(cmd.Context(), "")
	default:
		output.PrintWarning(cmd.OutOrStdout(),
			fmt.Sprintf("%s is an external binary and is not updated by pact-cli", name))
		return nil
	}
}

// updateAll reinstalls each installed family once: the AI extension on
// its own, the legacy bundle once regardless of how many derived
// records are installed. External records are skipped with a warning.
func updateAll(cmd *cobra.Command, a *app) error {
	var updateAI, updateBundle bool
	for name, rec := range a.store.List() {
		if !rec.Installed {
			continue
		}
		switch rec.Kind {
		case registry.KindPactflowAI:
			updateAI = true
		case registry.KindRubyStandalone:
			updateBundle = true
		default:
			output.PrintWarning(cmd.OutOrStdout(),
				fmt.Sprintf("%s is an external binary and is not updated by pact-cli", name))
		}
	}

	if !updateAI && !updateBundle {
		fmt.Fprintln(cmd.OutOrStdout(), "No installed extensions to update.")
		return nil
	}
	if updateAI {
		if err := a.installer.InstallAI(cmd.Context(), ""); err != nil {
			return err
		}
	}
	if updateBundle {
		return a.installer.InstallStandalone(cmd.Context(), "")
	}
	return nil
}

// installName maps a record to the name accepted by extension install:
// derived bundle records install via the master bundle.
func installName(rec registry.Record) string {
	if rec.Kind == registry.KindRubyStandalone {
		return registry.MasterBundleName
	}
	return rec.Name
}
