// Package cli provides the command-line interface for shopai.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopai/shopai-go/internal/config"
	"github.com/shopai/shopai-go/internal/gateway"
	"github.com/shopai/shopai-go/internal/llm"
	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and logger teardown
	cfg      config.Config
	closeLog func() error

	// Lazy-initialized AI components
	collector *metrics.Collector
	searchGW  gateway.Searcher
	compareGW gateway.Comparer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shopai",
	Short: "AI shopping comparison assistant",
	Long: `ShopAI is an AI-powered shopping assistant that searches products across
Amazon, Flipkart, Myntra, Ajio and more, scores them, and compares deals
side by side.

Chat with it, run one-off searches, or ask for a head-to-head verdict.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, closeFn := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		closeLog = closeFn
		slog.SetDefault(logger)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// getGateways builds the AI gateways on first use. Commands that never call
// the model (deals, stats) skip the provider setup entirely.
func getGateways(ctx context.Context) (gateway.Searcher, gateway.Comparer, error) {
	if searchGW != nil {
		return searchGW, compareGW, nil
	}

	searchModel, err := llm.NewModel(ctx, cfg, cfg.SearchModel)
	if err != nil {
		return nil, nil, fmt.Errorf("init search model: %w", err)
	}
	compareModel, err := llm.NewModel(ctx, cfg, cfg.CompareModel)
	if err != nil {
		return nil, nil, fmt.Errorf("init compare model: %w", err)
	}

	collector = metrics.NewCollector()
	searchGW = gateway.NewSearchGateway(searchModel, nil, collector)
	compareGW = gateway.NewComparisonGateway(compareModel, nil, collector)
	return searchGW, compareGW, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(dealsCmd)
	rootCmd.AddCommand(statsCmd)
}
