// Package models defines the data shapes shared by the ShopAI gateways and sessions.
package models

// Platform identifies the storefront an offer was found on.
type Platform string

// Known storefronts. Anything the AI returns outside this set maps to PlatformOther.
const (
	PlatformAmazon   Platform = "Amazon"
	PlatformFlipkart Platform = "Flipkart"
	PlatformMyntra   Platform = "Myntra"
	PlatformAjio     Platform = "Ajio"
	PlatformMeesho   Platform = "Meesho"
	PlatformOther    Platform = "Other"
)

// FocusPlatforms is the storefront set every search is scoped to.
var FocusPlatforms = []Platform{
	PlatformAmazon,
	PlatformFlipkart,
	PlatformMyntra,
	PlatformAjio,
	PlatformMeesho,
}

// PlatformPrice is the price for the same logical product on another storefront.
type PlatformPrice struct {
	Platform Platform `json:"platform"`
	Price    float64  `json:"price"`
	URL      string   `json:"url,omitempty"`
}

// Product is a single offer for a purchasable item. Instances are created
// fresh on every search response and never mutated afterwards.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          float64         `json:"price"`
	OriginalPrice  float64         `json:"originalPrice,omitempty"`
	Platform       Platform        `json:"platform"`
	Rating         float64         `json:"rating"`
	ReviewsCount   int             `json:"reviewsCount"`
	ImageURL       string          `json:"imageUrl"`
	Features       []string        `json:"features,omitempty"`
	Description    string          `json:"description,omitempty"`
	AIScore        float64         `json:"aiScore"`
	BestValue      bool            `json:"bestValue"`
	Link           string          `json:"link,omitempty"`
	Pros           []string        `json:"pros,omitempty"`
	Cons           []string        `json:"cons,omitempty"`
	PlatformPrices []PlatformPrice `json:"platformPrices,omitempty"`
	Category       string          `json:"category,omitempty"`
}

// Preferences carries optional hints the user attaches to a search.
type Preferences struct {
	Budget    [2]float64 `json:"budget,omitempty"`
	Platforms []Platform `json:"platforms,omitempty"`
	UseCase   string     `json:"useCase,omitempty"`
	Brands    []string   `json:"brands,omitempty"`
}
