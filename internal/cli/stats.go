package cli

import (
	"context"
	"fmt"

	"github.com/shopai/shopai-go/internal/client"
	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show runtime statistics from a running server",
	Long: `Show in-memory runtime statistics from the shopai server.

Statistics reset on server restart. The server URL comes from config or
the SHOPAI_SERVER_URL env var.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	c := client.New(cfg.ServerURL)
	snap, err := c.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get server stats: %w", err)
	}

	fmt.Printf("Server Statistics (in-memory, since restart)\n")
	fmt.Printf("═══════════════════════════════════════════════\n")
	fmt.Printf("Uptime: %.1f seconds\n", snap.UptimeSeconds)

	if snap.Search != nil {
		fmt.Printf("\nAI Search:\n")
		printOpStats(snap.Search)
	}

	if snap.Compare != nil {
		fmt.Printf("\nAI Compare:\n")
		printOpStats(snap.Compare)
	}

	if snap.HTTPRequest != nil {
		fmt.Printf("\nHTTP Requests:\n")
		printOpStats(snap.HTTPRequest)
	}

	return nil
}

// printOpStats displays timing statistics for an operation.
func printOpStats(op *metrics.OperationSnapshot) {
	fmt.Printf("  Calls: %d, Failures: %d, Total: %dms\n", op.Count, op.Failures, op.TotalTimeMs)
	fmt.Printf("  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
