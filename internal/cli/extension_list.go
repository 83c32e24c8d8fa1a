package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YOU54F/pact-cli/internal/output"
	"github.com/YOU54F/pact-cli/internal/registry"
)

var listInstalledFlag bool

var extensionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extensions and their installed and latest versions",
	Long: `List extensions and their installed and latest versions.

Latest versions for the two extension families are looked up remotely;
a failed lookup degrades that column to "unknown" without failing the
listing.

Examples:
  pact-cli extension list
  pact-cli extension list --installed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtensionList(cmd)
	},
}

func init() {
	extensionCmd.AddCommand(extensionListCmd)

	extensionListCmd.Flags().BoolVar(&listInstalledFlag, "installed", false, "Show only installed extensions")
}

func runExtensionList(cmd *cobra.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	latest := map[registry.Kind]string{
		registry.KindPactflowAI:     "unknown",
		registry.KindRubyStandalone: "unknown",
	}
	if !listInstalledFlag {
		fetchLatestVersions(cmd.Context(), a, latest)
	}

	var rows []output.ListRow
	for name, rec := range a.store.List() {
		if listInstalledFlag && !rec.Installed {
			continue
		}
		row := output.ListRow{
			Name:             name,
			Kind:             rec.Kind,
			InstalledVersion: "-",
			LatestVersion:    "-",
			Installed:        rec.Installed,
		}
		if rec.Installed {
			row.InstalledVersion = rec.Version
		}
		if v, ok := latest[rec.Kind]; ok && !listInstalledFlag {
			row.LatestVersion = v
		}
		rows = append(rows, row)
	}

	output.PrintExtensionTable(cmd.OutOrStdout(), rows)
	return nil
}

// fetchLatestVersions resolves the two families' latest versions
// concurrently. Failures leave the "unknown" placeholder in place.
func fetchLatestVersions(ctx context.Context, a *app, latest map[registry.Kind]string) {
	var aiVersion, standaloneVersion string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		target, err := a.plat.AITarget()
		if err != nil {
			return nil
		}
		if v, err := a.resolver.LatestAIVersion(ctx, target); err == nil {
			aiVersion = v
		}
		return nil
	})
	g.Go(func() error {
		if v, err := a.resolver.LatestStandaloneVersion(ctx); err == nil {
			standaloneVersion = v
		}
		return nil
	})
	_ = g.Wait()

	if aiVersion != "" {
		latest[registry.KindPactflowAI] = aiVersion
	}
	if standaloneVersion != "" {
		latest[registry.KindRubyStandalone] = standaloneVersion
	}
}
