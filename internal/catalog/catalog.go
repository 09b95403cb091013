// Package catalog serves the static browse data for the home view:
// categories, trending queries, and a curated deals list.
package catalog

import "github.com/shopai/shopai-go/internal/models"

// Category is a browsable product grouping.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var categories = []Category{
	{ID: "laptops", Name: "Laptops", Icon: "💻"},
	{ID: "mobiles", Name: "Mobiles", Icon: "📱"},
	{ID: "fashion", Name: "Fashion", Icon: "👕"},
	{ID: "electronics", Name: "Audio", Icon: "🎧"},
	{ID: "home", Name: "Home", Icon: "🏠"},
	{ID: "beauty", Name: "Beauty", Icon: "💄"},
}

var trending = []string{
	"Best camera phone under 30k",
	"Best noise cancelling headphones",
	"Mechanical keyboards for office",
}

// deals is the curated "today's deals" set shown before any search happens.
var deals = []models.Product{
	{
		ID:            "deal-1",
		Name:          "MacBook Air M2",
		Price:         89900,
		OriginalPrice: 114900,
		Platform:      models.PlatformAmazon,
		Rating:        4.8,
		ReviewsCount:  1240,
		ImageURL:      models.PlaceholderImageURL("MacBook Air M2"),
		Features:      []string{"8-core CPU", "10-core GPU", "8GB Unified Memory", "256GB SSD"},
		Description:   "Strikingly thin and fast, the MacBook Air M2 brings power and efficiency in a silent, fanless design.",
		AIScore:       94,
		BestValue:     true,
		Pros:          []string{"Great battery life", "Excellent display", "Lightweight"},
		Cons:          []string{"Limited ports", "Expensive upgrade options"},
		PlatformPrices: []models.PlatformPrice{
			{Platform: models.PlatformAmazon, Price: 89900},
			{Platform: models.PlatformFlipkart, Price: 92499},
			{Platform: models.PlatformOther, Price: 94900},
		},
		Category: "laptops",
	},
	{
		ID:            "deal-2",
		Name:          "Samsung Galaxy S23 Ultra",
		Price:         94999,
		OriginalPrice: 124999,
		Platform:      models.PlatformFlipkart,
		Rating:        4.7,
		ReviewsCount:  850,
		ImageURL:      models.PlaceholderImageURL("Samsung Galaxy S23 Ultra"),
		Features:      []string{"200MP Camera", "S-Pen included", "Snapdragon 8 Gen 2", "5000mAh battery"},
		Description:   "The ultimate flagship phone with the best camera system on Android.",
		AIScore:       91,
		Pros:          []string{"Insane zoom capabilities", "Powerful performance", "Beautiful screen"},
		Cons:          []string{"Large footprint", "Slow charging compared to peers"},
		PlatformPrices: []models.PlatformPrice{
			{Platform: models.PlatformFlipkart, Price: 94999},
			{Platform: models.PlatformAmazon, Price: 98900},
		},
		Category: "mobiles",
	},
	{
		ID:            "deal-3",
		Name:          "Sony WH-1000XM5",
		Price:         24990,
		OriginalPrice: 34990,
		Platform:      models.PlatformAmazon,
		Rating:        4.9,
		ReviewsCount:  2100,
		ImageURL:      models.PlaceholderImageURL("Sony WH-1000XM5"),
		Features:      []string{"Industry-leading ANC", "30-hour battery", "Multi-point connection"},
		Description:   "The best noise cancelling headphones for audiophiles and travelers.",
		AIScore:       96,
		BestValue:     true,
		Pros:          []string{"Top-tier ANC", "Great call quality", "Comfortable"},
		Cons:          []string{"No folding design", "Touch controls can be finicky"},
		PlatformPrices: []models.PlatformPrice{
			{Platform: models.PlatformAmazon, Price: 24990},
			{Platform: models.PlatformFlipkart, Price: 26990},
			{Platform: models.PlatformAjio, Price: 28990},
		},
		Category: "electronics",
	},
}

// Categories returns the browsable category set.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Trending returns the trending query strings.
func Trending() []string {
	out := make([]string, len(trending))
	copy(out, trending)
	return out
}

// Deals returns the curated deals list.
func Deals() []models.Product {
	out := make([]models.Product, len(deals))
	copy(out, deals)
	return out
}
