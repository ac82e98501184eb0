package main

import (
	"context"
	"fmt"
	"os"

	"github.com/carlwgeorge/toleo/internal/aur"
	"github.com/carlwgeorge/toleo/internal/collection"
	"github.com/carlwgeorge/toleo/internal/common/httpclient"
	"github.com/carlwgeorge/toleo/internal/common/logger"
	"github.com/carlwgeorge/toleo/internal/common/output"
	"github.com/carlwgeorge/toleo/internal/report"
	"github.com/carlwgeorge/toleo/internal/upstream"
	"github.com/spf13/cobra"
)

var (
	debug          bool
	quiet          bool
	collectionName string
	pathOverride   string
	limit          string
	noColor        bool
	concurrency    int
)

var rootCmd = &cobra.Command{
	Use:   "toleo",
	Short: "Track software package versions",
	Long: `Track software package versions by scraping upstream pages and
querying the AUR, then print a comparison report for human review.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Default().SetDebug(debug)
		logger.Default().SetQuiet(quiet)
		if noColor {
			output.NoColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress everything but errors")
	rootCmd.PersistentFlags().StringVarP(&collectionName, "collection", "c", "default", "Collection to load")
	rootCmd.PersistentFlags().StringVar(&pathOverride, "path-override", os.Getenv("TOLEO_CONFIG_HOME"), "Directory to load collections from (env: TOLEO_CONFIG_HOME)")
	rootCmd.PersistentFlags().StringVarP(&limit, "limit", "l", "", "Only include packages whose name contains this substring")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", report.DefaultConcurrency, "Number of packages to resolve in parallel")
}

// runReport loads the collection and runs the selected report mode.
// Exit codes: 1 for config errors, 2 when any package failed to resolve.
func runReport(mode report.Mode) {
	coll, err := collection.Load(collectionName, pathOverride, limit)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	client := httpclient.New()
	runner := report.NewRunner(
		coll,
		upstream.NewResolver(client),
		aur.NewClient(client),
		report.WithConcurrency(concurrency),
	)

	outcomes := runner.Run(context.Background(), mode)
	report.Render(os.Stdout, mode, outcomes)

	if failed := report.CountFailed(outcomes); failed > 0 {
		logger.Default().Warn("%d package(s) failed to resolve", failed)
		os.Exit(2)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
