package main

import (
	"github.com/carlwgeorge/toleo/internal/report"
	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Print the AUR version of each package",
	Long: `Query the AUR RPC interface and print the version currently
published for each package.

Examples:
  toleo repo                     Check all packages in the default collection
  toleo repo --debug             Show RPC details while checking`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(report.ModeRepo)
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
}
