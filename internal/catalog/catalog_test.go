package catalog

import (
	"strings"
	"testing"
)

func TestAccessorsReturnCopies(t *testing.T) {
	cats := Categories()
	cats[0].Name = "mutated"
	if Categories()[0].Name == "mutated" {
		t.Error("Categories() returned shared backing array")
	}

	queries := Trending()
	queries[0] = "mutated"
	if Trending()[0] == "mutated" {
		t.Error("Trending() returned shared backing array")
	}

	deals := Deals()
	deals[0].Name = "mutated"
	if Deals()[0].Name == "mutated" {
		t.Error("Deals() returned shared backing array")
	}
}

func TestDealsAreRenderable(t *testing.T) {
	for _, d := range Deals() {
		if d.ID == "" || d.Name == "" {
			t.Errorf("deal missing identity: %+v", d)
		}
		if d.Price <= 0 || d.OriginalPrice < d.Price {
			t.Errorf("deal %q has no discount: price %.0f, original %.0f", d.Name, d.Price, d.OriginalPrice)
		}
		if !strings.HasPrefix(d.ImageURL, "https://picsum.photos/seed/") {
			t.Errorf("deal %q has unexpected image URL %q", d.Name, d.ImageURL)
		}
		if len(d.PlatformPrices) == 0 {
			t.Errorf("deal %q has no platform prices", d.Name)
		}
	}
}

func TestCategoryIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Categories() {
		if seen[c.ID] {
			t.Errorf("duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
	}
}
