package main

import (
	"github.com/carlwgeorge/toleo/internal/report"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Print upstream and AUR versions side by side",
	Long: `Resolve both the upstream and AUR version of each package and print
them in sequence so the delta is visible at a glance.

Examples:
  toleo compare                  Compare all packages in the default collection
  toleo compare -c extras -l ng  Compare "extras" packages containing "ng"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(report.ModeCompare)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
