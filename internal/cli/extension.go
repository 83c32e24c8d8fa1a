package cli

import "github.com/spf13/cobra"

var extensionCmd = &cobra.Command{
	Use:   "extension",
	Short: "Manage pact-cli extensions",
	Long: `Manage pact-cli extensions.

Installable extensions:
  pactflow-ai   PactFlow AI single-binary extension
  pact-legacy   Legacy Ruby standalone tool bundle

Installing pact-legacy surfaces each bundled tool as its own command
(pact-broker-legacy, verifier-legacy, ...). An extension name given in
place of a subcommand invokes that extension directly:

  pact-cli extension pactflow-ai --help`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	extensionCmd.GroupID = GroupExtensions
	rootCmd.AddCommand(extensionCmd)
}
