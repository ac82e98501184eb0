package main

import (
	"github.com/carlwgeorge/toleo/internal/report"
	"github.com/spf13/cobra"
)

var upstreamCmd = &cobra.Command{
	Use:   "upstream",
	Short: "Print the latest upstream version of each package",
	Long: `Scrape each package's upstream page and print the latest released
version found there.

Examples:
  toleo upstream                 Check all packages in the default collection
  toleo upstream -c extras       Check the "extras" collection
  toleo upstream -l foo          Only packages whose name contains "foo"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(report.ModeUpstream)
	},
}

func init() {
	rootCmd.AddCommand(upstreamCmd)
}
