package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/shopai/shopai-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator is a scripted TextGenerator double.
type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f.Generate(ctx, prompt)
}

func TestSearchGatewaySuccess(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"answer": "Found 2 options",
		"products": [
			{"id":"a","name":"Monitor A","price":9999,"platform":"Amazon","aiScore":92},
			{"id":"b","name":"Monitor B","price":10999,"platform":"Flipkart","aiScore":88}
		]
	}`}
	g := NewSearchGateway(gen, nil, nil)

	res := g.Search(context.Background(), "Cheapest monitor on Amazon", nil)

	assert.Equal(t, "Found 2 options", res.Answer)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "Monitor A", res.Products[0].Name)
	assert.Equal(t, models.PlatformFlipkart, res.Products[1].Platform)
}

func TestSearchGatewayDropsMalformedEntries(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"answer": "ok",
		"products": [
			{"id":"a","name":"Good","price":100,"platform":"Amazon","aiScore":90},
			{"id":"bad","price":100,"platform":"Amazon","aiScore":90},
			{"id":"worse","name":"NoScore","price":100,"platform":"Amazon"},
			{"id":"b","name":"Also Good","price":200,"platform":"Meesho","aiScore":80}
		]
	}`}
	g := NewSearchGateway(gen, nil, nil)

	res := g.Search(context.Background(), "headphones", nil)

	require.Len(t, res.Products, 2, "exactly the valid entries survive")
	assert.Equal(t, "Good", res.Products[0].Name)
	assert.Equal(t, "Also Good", res.Products[1].Name)
}

func TestSearchGatewayFallbackOnServiceError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	mc := metrics.NewCollector()
	g := NewSearchGateway(gen, nil, mc)

	res := g.Search(context.Background(), "anything", nil)

	assert.Equal(t, FallbackAnswer, res.Answer)
	assert.Empty(t, res.Products)

	snap := mc.Snapshot()
	require.NotNil(t, snap.Search)
	assert.Equal(t, int64(1), snap.Search.Failures)
}

func TestSearchGatewayFallbackOnMalformedJSON(t *testing.T) {
	gen := &fakeGenerator{response: "I could not find anything, sorry!"}
	g := NewSearchGateway(gen, nil, nil)

	res := g.Search(context.Background(), "anything", nil)

	assert.Equal(t, FallbackAnswer, res.Answer)
	assert.Empty(t, res.Products)
}

func TestSearchGatewayBlankQuerySkipsCall(t *testing.T) {
	gen := &fakeGenerator{response: `{"answer":"x","products":[]}`}
	g := NewSearchGateway(gen, nil, nil)

	res := g.Search(context.Background(), "   \t ", nil)

	assert.Equal(t, FallbackAnswer, res.Answer)
	assert.Zero(t, gen.calls, "no network call for blank input")
}

func TestSearchGatewayStripsCodeFence(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"answer\":\"fenced\",\"products\":[]}\n```"}
	g := NewSearchGateway(gen, nil, nil)

	res := g.Search(context.Background(), "tv", nil)

	assert.Equal(t, "fenced", res.Answer)
}

func TestSearchGatewayPromptCarriesPreferences(t *testing.T) {
	gen := &fakeGenerator{response: `{"answer":"x","products":[]}`}
	g := NewSearchGateway(gen, nil, nil)

	prefs := &models.Preferences{
		Budget:  [2]float64{5000, 30000},
		UseCase: "office",
		Brands:  []string{"Dell"},
	}
	g.Search(context.Background(), "monitor", prefs)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"useCase":"office"`)
	assert.Contains(t, gen.prompts[0], "Amazon, Flipkart, Myntra, Ajio, Meesho")
}

func TestComparisonGatewayVerdict(t *testing.T) {
	gen := &fakeGenerator{response: "**Best Value**: Monitor A"}
	g := NewComparisonGateway(gen, nil, nil)

	products := []models.Product{
		{Name: "Monitor A", Platform: models.PlatformAmazon, Price: 9999},
		{Name: "Monitor B", Platform: models.PlatformFlipkart, Price: 10999},
	}
	verdict := g.Compare(context.Background(), products)

	assert.Equal(t, "**Best Value**: Monitor A", verdict)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Monitor A on Amazon for ₹9999")
	assert.Contains(t, gen.prompts[0], "Monitor B on Flipkart for ₹10999")
}

func TestComparisonGatewayFallbacks(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		g := NewComparisonGateway(&fakeGenerator{err: errors.New("boom")}, nil, nil)
		verdict := g.Compare(context.Background(), []models.Product{{Name: "x"}})
		assert.Equal(t, FallbackVerdict, verdict)
	})

	t.Run("empty response", func(t *testing.T) {
		g := NewComparisonGateway(&fakeGenerator{response: "  \n"}, nil, nil)
		verdict := g.Compare(context.Background(), []models.Product{{Name: "x"}})
		assert.Equal(t, EmptyVerdict, verdict)
	})
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{}\n```  ", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
