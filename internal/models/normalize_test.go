package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNormalizeProduct(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "complete product",
			raw:  `{"id":"p1","name":"Sony WH-1000XM5","price":24990,"platform":"Amazon","aiScore":96,"imageUrl":"https://img/x.jpg"}`,
		},
		{
			name: "missing name",
			raw:  `{"id":"p1","price":24990,"platform":"Amazon","aiScore":96}`,

			wantErr: "name",
		},
		{
			name:    "missing price",
			raw:     `{"name":"x","platform":"Amazon","aiScore":96}`,
			wantErr: "price",
		},
		{
			name:    "missing platform",
			raw:     `{"name":"x","price":1,"aiScore":96}`,
			wantErr: "platform",
		},
		{
			name:    "missing aiScore",
			raw:     `{"name":"x","price":1,"platform":"Amazon"}`,
			wantErr: "aiScore",
		},
		{
			name:    "price has wrong primitive type",
			raw:     `{"name":"x","price":"24990","platform":"Amazon","aiScore":96}`,
			wantErr: "well-formed",
		},
		{
			name:    "entry is not an object",
			raw:     `"just a string"`,
			wantErr: "well-formed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NormalizeProduct(json.RawMessage(tt.raw))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NormalizeProduct() error = %v, want nil", err)
				}
				if p.Name == "" || p.ID == "" || p.ImageURL == "" {
					t.Errorf("normalized product has empty required field: %+v", p)
				}
				return
			}
			if err == nil {
				t.Fatalf("NormalizeProduct() = %+v, want error containing %q", p, tt.wantErr)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error is %T, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeProductFillsMissingID(t *testing.T) {
	raw := json.RawMessage(`{"name":"MacBook Air M2","price":89900,"platform":"Amazon","aiScore":94}`)

	a, err := NormalizeProduct(raw)
	if err != nil {
		t.Fatalf("NormalizeProduct() error = %v", err)
	}
	b, err := NormalizeProduct(raw)
	if err != nil {
		t.Fatalf("NormalizeProduct() error = %v", err)
	}

	if !strings.HasPrefix(a.ID, "gen-") {
		t.Errorf("generated ID %q should carry the gen- prefix", a.ID)
	}
	if a.ID == b.ID {
		t.Errorf("generated IDs should be unique, got %q twice", a.ID)
	}
}

func TestNormalizeProductPlaceholderImage(t *testing.T) {
	raw := json.RawMessage(`{"name":"Galaxy S23 Ultra","price":94999,"platform":"Flipkart","aiScore":91}`)

	p, err := NormalizeProduct(raw)
	if err != nil {
		t.Fatalf("NormalizeProduct() error = %v", err)
	}
	want := "https://picsum.photos/seed/GalaxyS23Ultra/400/400"
	if p.ImageURL != want {
		t.Errorf("ImageURL = %q, want %q", p.ImageURL, want)
	}
}

func TestNormalizeProductPermissiveFields(t *testing.T) {
	// Out-of-range scores and duplicate platform prices pass through untouched.
	raw := json.RawMessage(`{
		"name":"x","price":100,"originalPrice":50,"platform":"amazon","aiScore":140,
		"platformPrices":[{"platform":"Amazon","price":100},{"platform":"Amazon","price":90}]
	}`)

	p, err := NormalizeProduct(raw)
	if err != nil {
		t.Fatalf("NormalizeProduct() error = %v", err)
	}
	if p.AIScore != 140 {
		t.Errorf("AIScore = %v, want 140 (no clamping)", p.AIScore)
	}
	if p.OriginalPrice != 50 {
		t.Errorf("OriginalPrice = %v, want 50 (no ordering check)", p.OriginalPrice)
	}
	if len(p.PlatformPrices) != 2 {
		t.Errorf("PlatformPrices length = %d, want 2 (no deduplication)", len(p.PlatformPrices))
	}
	if p.Platform != PlatformAmazon {
		t.Errorf("Platform = %q, want case-insensitive match to Amazon", p.Platform)
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"Amazon", PlatformAmazon},
		{"flipkart", PlatformFlipkart},
		{"MYNTRA", PlatformMyntra},
		{"Ajio", PlatformAjio},
		{"meesho", PlatformMeesho},
		{"Other", PlatformOther},
		{"Croma", PlatformOther},
		{"", PlatformOther},
	}

	for _, tt := range tests {
		if got := ParsePlatform(tt.in); got != tt.want {
			t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
