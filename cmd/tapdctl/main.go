// Command tapdctl exposes the tapdlens analysis engine's operations as
// cobra subcommands: one concrete, ambient-stack-appropriate binding over
// the underlying typed-input/typed-output packages, not the contract
// itself.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tapdlens/internal/config"
	"tapdlens/internal/logging"
)

var (
	verbose   bool
	workspace string
	timeout   time.Duration

	paths *config.Paths
	cfg   *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tapdctl",
	Short: "tapdlens - issue-tracker analysis engine",
	Long: `tapdctl ingests TAPD-shaped issue data and runs the analysis engine's
operations against it: keyword extraction, time-trend charts, LLM project
overviews, vector search, and AI-assisted test-case evaluation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.Init(verbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = l

		p, err := config.DiscoverPaths(workspace)
		if err != nil {
			return fmt.Errorf("discover project paths: %w", err)
		}
		paths = p

		c, err := config.Load(p.ConfigDir() + "/tapdlens.yaml")
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "project root (default: discovered by walking up from cwd)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "operation timeout")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
