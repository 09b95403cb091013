package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports a single malformed product entry in an AI response.
// Callers drop the offending entry; the rest of the batch is unaffected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product: %s %s", e.Field, e.Reason)
}

// rawProduct mirrors the response schema with pointers on the required fields
// so that absence can be told apart from zero values.
type rawProduct struct {
	ID             *string         `json:"id"`
	Name           *string         `json:"name"`
	Price          *float64        `json:"price"`
	OriginalPrice  float64         `json:"originalPrice"`
	Platform       *string         `json:"platform"`
	Rating         float64         `json:"rating"`
	ReviewsCount   int             `json:"reviewsCount"`
	ImageURL       string          `json:"imageUrl"`
	Features       []string        `json:"features"`
	Description    string          `json:"description"`
	AIScore        *float64        `json:"aiScore"`
	BestValue      bool            `json:"bestValue"`
	Link           string          `json:"link"`
	Pros           []string        `json:"pros"`
	Cons           []string        `json:"cons"`
	PlatformPrices []PlatformPrice `json:"platformPrices"`
	Category       string          `json:"category"`
}

// NormalizeProduct validates one untrusted array element from an AI response
// and repairs the fields the model tends to leave out: a missing id gets a
// generated token, a missing image URL gets a deterministic placeholder
// derived from the product name.
//
// It fails only when a required field (name, price, platform, aiScore) is
// absent or of the wrong primitive type. Everything else passes through as
// provided; aiScore is not clamped and platformPrices are not deduplicated.
//
// This is the only place a Product may be built from external input.
func NormalizeProduct(raw json.RawMessage) (Product, error) {
	var rp rawProduct
	if err := json.Unmarshal(raw, &rp); err != nil {
		return Product{}, &ValidationError{Field: "entry", Reason: "is not a well-formed product object"}
	}

	switch {
	case rp.Name == nil || *rp.Name == "":
		return Product{}, &ValidationError{Field: "name", Reason: "missing"}
	case rp.Price == nil:
		return Product{}, &ValidationError{Field: "price", Reason: "missing"}
	case rp.Platform == nil || *rp.Platform == "":
		return Product{}, &ValidationError{Field: "platform", Reason: "missing"}
	case rp.AIScore == nil:
		return Product{}, &ValidationError{Field: "aiScore", Reason: "missing"}
	}

	p := Product{
		Name:           *rp.Name,
		Price:          *rp.Price,
		OriginalPrice:  rp.OriginalPrice,
		Platform:       ParsePlatform(*rp.Platform),
		Rating:         rp.Rating,
		ReviewsCount:   rp.ReviewsCount,
		ImageURL:       rp.ImageURL,
		Features:       rp.Features,
		Description:    rp.Description,
		AIScore:        *rp.AIScore,
		BestValue:      rp.BestValue,
		Link:           rp.Link,
		Pros:           rp.Pros,
		Cons:           rp.Cons,
		PlatformPrices: rp.PlatformPrices,
		Category:       rp.Category,
	}

	if rp.ID != nil && *rp.ID != "" {
		p.ID = *rp.ID
	} else {
		p.ID = "gen-" + uuid.NewString()
	}
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImageURL(p.Name)
	}

	return p, nil
}

// ParsePlatform maps a storefront string onto the known platform set,
// ignoring case. Unrecognized storefronts become PlatformOther.
func ParsePlatform(s string) Platform {
	for _, p := range append(FocusPlatforms, PlatformOther) {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return PlatformOther
}

// PlaceholderImageURL builds a deterministic image placeholder seeded by the
// product name with whitespace removed.
func PlaceholderImageURL(name string) string {
	seed := strings.Join(strings.Fields(name), "")
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/400", seed)
}
