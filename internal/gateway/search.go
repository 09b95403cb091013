package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/shopai/shopai-go/internal/models"
)

// FallbackAnswer is returned whenever a search cannot produce live results.
// The chat must always have something renderable to say.
const FallbackAnswer = "I'm sorry, I'm having trouble fetching live deals right now. Please try again."

// SearchGateway turns a free-text query into an answer plus product listings
// via one structured AI call.
type SearchGateway struct {
	gen     TextGenerator
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewSearchGateway creates a search gateway. logger and mc may be nil.
func NewSearchGateway(gen TextGenerator, logger *slog.Logger, mc *metrics.Collector) *SearchGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchGateway{gen: gen, logger: logger, metrics: mc}
}

// searchEnvelope is the response schema the AI service is asked to honor.
// Products stay raw so one malformed element cannot sink the batch.
type searchEnvelope struct {
	Answer   string            `json:"answer"`
	Products []json.RawMessage `json:"products"`
}

// Search issues one atomic request/response call for the query. It never
// returns an error: any failure collapses into the fixed fallback Result.
// Blank queries short-circuit to the fallback without a network call.
func (g *SearchGateway) Search(ctx context.Context, query string, prefs *models.Preferences) Result {
	if strings.TrimSpace(query) == "" {
		return Result{Answer: FallbackAnswer}
	}

	start := time.Now()
	text, err := g.gen.GenerateJSON(ctx, buildSearchPrompt(query, prefs))
	if err != nil {
		g.logger.Warn("search call failed", "query", query, "error", err)
		g.record(false, start)
		return Result{Answer: FallbackAnswer}
	}

	var env searchEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &env); err != nil {
		g.logger.Warn("search response is not valid JSON", "query", query, "error", err)
		g.record(false, start)
		return Result{Answer: FallbackAnswer}
	}

	products := make([]models.Product, 0, len(env.Products))
	for i, raw := range env.Products {
		p, err := models.NormalizeProduct(raw)
		if err != nil {
			// One bad entry never rejects the batch.
			g.logger.Warn("dropping malformed product entry", "index", i, "error", err)
			continue
		}
		products = append(products, p)
	}

	g.record(true, start)
	g.logger.Info("search completed", "query", truncate(query, 60), "products", len(products))
	return Result{Answer: env.Answer, Products: products}
}

func (g *SearchGateway) record(ok bool, start time.Time) {
	if g.metrics == nil {
		return
	}
	if ok {
		g.metrics.RecordTiming(metrics.OpSearch, time.Since(start))
	} else {
		g.metrics.RecordFailure(metrics.OpSearch, time.Since(start))
	}
}

// buildSearchPrompt assembles the single structured instruction for a search.
func buildSearchPrompt(query string, prefs *models.Preferences) string {
	prefsJSON := "{}"
	if prefs != nil {
		if data, err := json.Marshal(prefs); err == nil {
			prefsJSON = string(data)
		}
	}

	platforms := make([]string, len(models.FocusPlatforms))
	for i, p := range models.FocusPlatforms {
		platforms[i] = string(p)
	}

	return fmt.Sprintf(`Search for products related to: %q.
Platform focus: %s.
For each product, also find the prices for that EXACT MODEL on at least 2 other platforms to allow for visualization.
Current context/preferences: %s.
Provide a list of realistic search results across these platforms.
Respond with a single JSON object of the form
{"answer": string, "products": [{"id": string, "name": string, "price": number, "originalPrice": number, "platform": string, "rating": number, "reviewsCount": number, "imageUrl": string, "features": [string], "description": string, "aiScore": number, "bestValue": boolean, "link": string, "pros": [string], "cons": [string], "platformPrices": [{"platform": string, "price": number, "url": string}], "category": string}]}
where "answer" is a concise friendly summary recommending the best match, and
id, name, price, platform and aiScore are required for every product.`,
		query, strings.Join(platforms, ", "), prefsJSON)
}

// truncate shortens a string for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
