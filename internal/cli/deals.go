package cli

import (
	"fmt"
	"strings"

	"github.com/shopai/shopai-go/internal/catalog"
	"github.com/spf13/cobra"
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Show today's curated deals and trending searches",
	RunE:  runDeals,
}

func runDeals(cmd *cobra.Command, args []string) error {
	theme := defaultTheme

	fmt.Println(theme.assistantStyle().Render("Today's Deals"))
	fmt.Println()
	for _, d := range catalog.Deals() {
		discount := 0.0
		if d.OriginalPrice > 0 {
			discount = (1 - d.Price/d.OriginalPrice) * 100
		}
		price := theme.priceStyle().Render(fmt.Sprintf("₹%.0f", d.Price))
		fmt.Printf("  %s [%s] %s", d.Name, d.Platform, price)
		if discount > 0 {
			fmt.Printf(" %s", theme.successStyle().Render(fmt.Sprintf("(%.0f%% off)", discount)))
		}
		fmt.Println()
		if verbose {
			for _, pp := range d.PlatformPrices {
				fmt.Printf("    %-10s ₹%.0f\n", pp.Platform, pp.Price)
			}
		}
	}

	fmt.Println()
	fmt.Println(theme.assistantStyle().Render("Trending"))
	for _, q := range catalog.Trending() {
		fmt.Printf("  • %s\n", q)
	}

	fmt.Println()
	names := make([]string, 0, 6)
	for _, c := range catalog.Categories() {
		names = append(names, c.Icon+" "+c.Name)
	}
	fmt.Println(theme.hintStyle().Render("Categories: " + strings.Join(names, "  ")))

	return nil
}
