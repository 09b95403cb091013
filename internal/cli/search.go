package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopai/shopai-go/internal/models"
	"github.com/spf13/cobra"
)

var (
	searchPlatforms []string
	searchMinBudget float64
	searchMaxBudget float64
	searchUseCase   string
	searchBrands    []string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for products across shopping platforms",
	Long: `Search for products with AI-powered scoring and deal analysis.

Results span Amazon, Flipkart, Myntra, Ajio and more, ranked by an AI
match score. Use preference flags to steer the search.

Examples:
  shopai search "wireless earbuds under 5000"
  shopai search "gaming laptop" --max-budget 80000
  shopai search "running shoes" --platforms Myntra,Ajio --use-case marathon
  shopai search "smartwatch" --brands "Samsung,Garmin"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchPlatforms, "platforms", "p", nil, "restrict to platforms")
	searchCmd.Flags().Float64Var(&searchMinBudget, "min-budget", 0, "minimum budget in ₹")
	searchCmd.Flags().Float64Var(&searchMaxBudget, "max-budget", 0, "maximum budget in ₹")
	searchCmd.Flags().StringVar(&searchUseCase, "use-case", "", "what the product is for")
	searchCmd.Flags().StringSliceVar(&searchBrands, "brands", nil, "preferred brands")
}

// searchPreferences builds a Preferences from the flag set, or nil when no
// preference flag was used.
func searchPreferences() *models.Preferences {
	if len(searchPlatforms) == 0 && searchMinBudget == 0 && searchMaxBudget == 0 &&
		searchUseCase == "" && len(searchBrands) == 0 {
		return nil
	}

	prefs := &models.Preferences{
		Budget:  [2]float64{searchMinBudget, searchMaxBudget},
		UseCase: searchUseCase,
		Brands:  searchBrands,
	}
	for _, p := range searchPlatforms {
		prefs.Platforms = append(prefs.Platforms, models.ParsePlatform(p))
	}
	return prefs
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	search, _, err := getGateways(ctx)
	if err != nil {
		return fmt.Errorf("init gateways: %w", err)
	}

	res := search.Search(ctx, query, searchPreferences())

	theme := defaultTheme
	fmt.Println(res.Answer)
	if len(res.Products) == 0 {
		return nil
	}

	fmt.Printf("\nFound %d products:\n\n", len(res.Products))
	for i, p := range res.Products {
		price := theme.priceStyle().Render(fmt.Sprintf("₹%.0f", p.Price))
		fmt.Printf("%d. %s [%s] %s (AI score %.0f)\n", i+1, p.Name, p.Platform, price, p.AIScore)
		if p.OriginalPrice > p.Price {
			fmt.Printf("   was ₹%.0f\n", p.OriginalPrice)
		}
		if p.BestValue {
			fmt.Printf("   %s\n", theme.successStyle().Render("★ Best value"))
		}
		if verbose {
			if len(p.Features) > 0 {
				fmt.Printf("   Features: %s\n", strings.Join(p.Features, ", "))
			}
			if len(p.Pros) > 0 {
				fmt.Printf("   Pros: %s\n", strings.Join(p.Pros, ", "))
			}
			if len(p.Cons) > 0 {
				fmt.Printf("   Cons: %s\n", strings.Join(p.Cons, ", "))
			}
		}
		fmt.Println()
	}

	return nil
}
