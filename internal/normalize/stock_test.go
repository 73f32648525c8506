package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/internal/types"
)

func TestMapAvailability(t *testing.T) {
	tests := map[string]types.StockStatus{
		"https://schema.org/InStock":       types.StockInStock,
		"http://schema.org/OutOfStock":     types.StockOutOfStock,
		"SoldOut":                          types.StockOutOfStock,
		"https://schema.org/PreOrder":      types.StockPreorder,
		"LimitedAvailability":              types.StockLowStock,
		"https://schema.org/BackOrder":     types.StockBackorder,
		"Discontinued":                     types.StockDiscontinued,
		"instock":                          types.StockInStock,
		"https://schema.org/SomethingElse": types.StockUnknown,
		"":                                 types.StockUnknown,
	}
	for input, want := range tests {
		assert.Equal(t, want, MapAvailability(input), input)
	}
}

func TestClassifyStockText(t *testing.T) {
	tests := []struct {
		text string
		want types.StockStatus
	}{
		{"En stock", types.StockInStock},
		{"In Stock.", types.StockInStock},
		{"Rupture de stock", types.StockOutOfStock},
		{"Article indisponible", types.StockOutOfStock},
		{"Currently unavailable.", types.StockOutOfStock},
		{"Sold out", types.StockOutOfStock},
		{"Disponible en précommande", types.StockPreorder},
		{"Pre-order now", types.StockPreorder},
		{"Stock limité", types.StockLowStock},
		{"Only 3 left in stock - order soon.", types.StockLowStock},
		{"Plus que 2 exemplaires", types.StockLowStock},
		{"Available on backorder", types.StockBackorder},
	}
	for _, tt := range tests {
		got, ok := ClassifyStockText(tt.text)
		require.True(t, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}

	_, ok := ClassifyStockText("Livraison rapide")
	assert.False(t, ok)
}

func TestExtractQuantity(t *testing.T) {
	tests := map[string]int{
		"Only 3 left in stock":    3,
		"Plus que 2 exemplaires":  2,
		"12 en stock":             12,
		"5 restants":              5,
		"Stock : 40":              40,
		"Quantité disponible : 7": 7,
		"100 pièces":              100,
	}
	for text, want := range tests {
		got, ok := ExtractQuantity(text)
		require.True(t, ok, text)
		assert.Equal(t, want, got, text)
	}

	_, ok := ExtractQuantity("En stock")
	assert.False(t, ok)
}

func TestStockStatus_Available(t *testing.T) {
	in, known := types.StockLowStock.Available()
	assert.True(t, in)
	assert.True(t, known)

	in, known = types.StockPreorder.Available()
	assert.False(t, in)
	assert.True(t, known)

	_, known = types.StockUnknown.Available()
	assert.False(t, known)
}
