package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/YOU54F/pact-cli/internal/errors"
	"github.com/YOU54F/pact-cli/internal/registry"
)

var (
	installAllFlag     bool
	installVersionFlag string
)

var extensionInstallCmd = &cobra.Command{
	Use:   "install [name]",
	Short: "Install an extension",
	Long: `Install an extension for the current platform.

Installable names are pactflow-ai and pact-legacy. Without --version
the latest published version is resolved and installed. Installing an
already-installed extension replaces it.

Examples:
  pact-cli extension install pactflow-ai
  pact-cli extension install pact-legacy --version v2.5.2
  pact-cli extension install --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtensionInstall(cmd, args)
	},
}

func init() {
	extensionCmd.AddCommand(extensionInstallCmd)

	extensionInstallCmd.Flags().BoolVar(&installAllFlag, "all", false, "Install every installable extension")
	extensionInstallCmd.Flags().StringVar(&installVersionFlag, "version", "", "Version to install (default: latest)")
}

func runExtensionInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if installAllFlag {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --all with an extension name")
		}
		if installVersionFlag != "" {
			return fmt.Errorf("cannot combine --all with --version")
		}
		if err := a.installer.InstallAI(cmd.Context(), ""); err != nil {
			return err
		}
		return a.installer.InstallStandalone(cmd.Context(), "")
	}

	if len(args) == 0 {
		return fmt.Errorf("an extension name or --all is required")
	}

	switch name := args[0]; name {
	case registry.AIExtensionName:
		return a.installer.InstallAI(cmd.Context(), installVersionFlag)
	case registry.MasterBundleName:
		return a.installer.InstallStandalone(cmd.Context(), installVersionFlag)
	default:
		if slices.Contains(registry.DerivedBundleNames(), name) {
			return errors.Newf(errors.NotFound, "%q is part of the legacy tool bundle and cannot be installed on its own", name).
				WithRemediation(fmt.Sprintf("Run 'pact-cli extension install %s' to install the bundle", registry.MasterBundleName))
		}
		return errors.Newf(errors.NotFound, "unknown extension %q", name).
			WithRemediation(
				fmt.Sprintf("Installable extensions: %s, %s", registry.AIExtensionName, registry.MasterBundleName),
			)
	}
}
