package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YOU54F/pact-cli/internal/registry"
)

var uninstallAllFlag bool

var extensionUninstallCmd = &cobra.Command{
	Use:   "uninstall [name]",
	Short: "Uninstall an extension",
	Long: `Uninstall an extension and remove its artifacts.

Uninstalling pact-legacy removes the whole bundle: every derived tool
command, the bundle directory, and all associated registry records.

Examples:
  pact-cli extension uninstall pactflow-ai
  pact-cli extension uninstall pact-legacy
  pact-cli extension uninstall --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtensionUninstall(cmd, args)
	},
}

func init() {
	extensionCmd.AddCommand(extensionUninstallCmd)

	extensionUninstallCmd.Flags().BoolVar(&uninstallAllFlag, "all", false, "Uninstall every installed extension")
}

func runExtensionUninstall(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if uninstallAllFlag {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --all with an extension name")
		}
		return uninstallAll(cmd, a)
	}

	if len(args) == 0 {
		return fmt.Errorf("an extension name or --all is required")
	}
	return a.installer.Uninstall(cmd.Context(), args[0])
}

// uninstallAll removes every persisted record, collapsing derived
// bundle records into a single master bundle uninstall.
func uninstallAll(cmd *cobra.Command, a *app) error {
	var names []string
	bundle := false
	for name, rec := range a.store.Load() {
		if rec.Kind == registry.KindRubyStandalone {
			bundle = true
			continue
		}
		names = append(names, name)
	}
	if bundle {
		names = append(names, registry.MasterBundleName)
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No installed extensions to uninstall.")
		return nil
	}
	for _, name := range names {
		if err := a.installer.Uninstall(cmd.Context(), name); err != nil {
			return err
		}
	}
	return nil
}
