package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShippingText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		cost     *float64
		free     bool
		delivery string
	}{
		{
			name:     "paid french",
			text:     "Livraison : 4,99 € - livré en 2 jours",
			cost:     ptr(4.99),
			delivery: "2 jours",
		},
		{
			name:     "paid english",
			text:     "$5.99 shipping, arrives in 3-5 business days",
			cost:     ptr(5.99),
			delivery: "3-5 business days",
		},
		{
			name: "free with threshold price",
			text: "Livraison gratuite dès 50,00 €",
			free: true,
		},
		{
			name: "free english with threshold price",
			text: "Free shipping on orders over $35",
			free: true,
		},
		{
			name: "nothing recognised",
			text: "Shipping calculated at checkout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseShippingText(tt.text)

			assert.Equal(t, tt.text, got.info)
			assert.Equal(t, tt.free, got.free)
			assert.Equal(t, tt.delivery, got.delivery)
			if tt.cost == nil {
				assert.Nil(t, got.cost)
				return
			}
			require.NotNil(t, got.cost)
			assert.InDelta(t, *tt.cost, *got.cost, 0.001)
		})
	}
}

func ptr(v float64) *float64 { return &v }
