package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/shopai/shopai-go/internal/models"
)

// Fixed verdict texts. The comparison call is best-effort: a failed or empty
// response still yields renderable text, never an error.
const (
	FallbackVerdict = "Failed to generate detailed comparison."
	EmptyVerdict    = "Comparison data unavailable."
)

// ComparisonGateway produces a free-text verdict for an already-resolved
// product set. Callers must not invoke it with zero products.
type ComparisonGateway struct {
	gen     TextGenerator
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewComparisonGateway creates a comparison gateway. logger and mc may be nil.
func NewComparisonGateway(gen TextGenerator, logger *slog.Logger, mc *metrics.Collector) *ComparisonGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComparisonGateway{gen: gen, logger: logger, metrics: mc}
}

// Compare issues one call asking for a best-value / best-performance /
// best-budget verdict over the given products. The verdict comes back as
// lightweight markdown and is passed through un-parsed.
func (g *ComparisonGateway) Compare(ctx context.Context, products []models.Product) string {
	summaries := make([]string, len(products))
	for i, p := range products {
		summaries[i] = fmt.Sprintf("%s on %s for ₹%.0f", p.Name, p.Platform, p.Price)
	}

	prompt := fmt.Sprintf(`Analyze these products for a side-by-side comparison: %s.
Give me a clear verdict on which one is the "Best Value", "Best Performance", and "Best Budget".
Format your response in friendly Markdown.`, strings.Join(summaries, ", "))

	start := time.Now()
	verdict, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("comparison call failed", "products", len(products), "error", err)
		if g.metrics != nil {
			g.metrics.RecordFailure(metrics.OpCompare, time.Since(start))
		}
		return FallbackVerdict
	}
	if g.metrics != nil {
		g.metrics.RecordTiming(metrics.OpCompare, time.Since(start))
	}

	if strings.TrimSpace(verdict) == "" {
		return EmptyVerdict
	}
	return verdict
}
