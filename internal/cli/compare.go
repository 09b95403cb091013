package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopai/shopai-go/internal/session"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <query>",
	Short: "Compare matching products side by side",
	Long: `Search for products and get an AI verdict comparing them head to head.

The verdict calls out the best value, best performance, and best budget
pick from the result set.

Examples:
  shopai compare "iPhone 15 vs Pixel 8"
  shopai compare "27 inch 4k monitors under 40000"`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	search, compare, err := getGateways(ctx)
	if err != nil {
		return fmt.Errorf("init gateways: %w", err)
	}

	comp := session.NewComparison(search, compare, nil)
	defer comp.Close()

	fmt.Println("Searching for products to compare...")
	comp.Run(ctx, query)
	snap := comp.Snapshot()

	theme := defaultTheme
	if snap.State == session.StateError {
		fmt.Println(theme.errorStyle().Render(snap.Error))
		return nil
	}

	fmt.Printf("\nComparing %d products:\n\n", len(snap.Products))
	for _, p := range snap.Products {
		bar := priceBar(p.Price, snap.MaxPrice, 20)
		fmt.Printf("  %-35s %s ₹%.0f  (AI score %.0f)\n", p.Name, bar, p.Price, p.AIScore)
	}

	fmt.Println()
	fmt.Println(theme.assistantStyle().Render("Verdict"))
	fmt.Println(snap.Verdict)

	return nil
}

// priceBar renders a fixed-width relative price bar. The fill is clamped to
// [0, width]; a zero or NaN ratio renders an empty bar.
func priceBar(price, max float64, width int) string {
	filled := 0
	if max > 0 {
		filled = int(price / max * float64(width))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
