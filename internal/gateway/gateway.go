// Package gateway wraps the external AI service calls. Each gateway issues a
// single request/response call, normalizes the result into domain types, and
// absorbs every failure into a well-formed fallback value so callers never
// handle transport errors themselves.
package gateway

import (
	"context"
	"strings"

	"github.com/shopai/shopai-go/internal/models"
)

// TextGenerator is the AI-service surface the gateways depend on.
// *llm.Model implements it; tests substitute doubles.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Result is a search outcome: a short natural-language answer plus the
// validated product listings.
type Result struct {
	Answer   string           `json:"answer"`
	Products []models.Product `json:"products"`
}

// Searcher is the search boundary the sessions consume.
type Searcher interface {
	Search(ctx context.Context, query string, prefs *models.Preferences) Result
}

// Comparer is the comparison boundary the comparison session consumes.
type Comparer interface {
	Compare(ctx context.Context, products []models.Product) string
}

// stripCodeFence removes a markdown code fence wrapped around a JSON body.
// Several providers fence structured output even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
