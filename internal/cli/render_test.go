package cli

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopai/shopai-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assistantMessage() models.Message {
	return models.Message{
		Role:    models.RoleAssistant,
		Content: "Found a great deal",
		Products: []models.Product{
			{ID: "a", Name: "Monitor A", Price: 9999, Platform: models.PlatformAmazon, AIScore: 92},
		},
		Suggestions: []string{"Show cheaper options"},
		Timestamp:   time.Now(),
	}
}

func TestRenderMessageFormatsAIScore(t *testing.T) {
	m := chatModel{theme: defaultTheme}

	out := m.renderMessage(assistantMessage())
	assert.Contains(t, out, "AI score 92")
	assert.NotContains(t, out, "%!")
}

func TestPrintPlainMessageFormatsAIScore(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	printPlainMessage(assistantMessage())
	os.Stdout = orig
	w.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Monitor A [Amazon] ₹9999 (AI score 92)")
	assert.NotContains(t, string(out), "%!")
}

func TestPriceBar(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		max    float64
		filled int
	}{
		{"half", 50, 100, 10},
		{"full", 100, 100, 20},
		{"over max", 150, 100, 20},
		{"zero price", 0, 100, 0},
		{"all prices zero", 0, 0, 0},
		{"negative price", -10, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := priceBar(tt.price, tt.max, 20)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, 20-tt.filled, strings.Count(bar, "░"))
		})
	}
}
