package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanBrand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Visiter la boutique Sony", "Sony"},
		{"Visit the Anker Store", "Anker"},
		{"Brand: Nike", "Nike"},
		{"Marque : Samsung", "Samsung"},
		{"by Apple", "Apple"},
		{"Par  Decathlon", "Decathlon"},
		{"Bybrand", "Bybrand"},
		{"Parker", "Parker"},
		{"  Levi's \n", "Levi's"},
	}
	for _, tt := range tests {
		got, ok := CleanBrand(tt.input)
		assert.True(t, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestCleanBrand_Rejects(t *testing.T) {
	for _, input := range []string{"", "X", "Brand:", strings.Repeat("a", 120)} {
		_, ok := CleanBrand(input)
		assert.False(t, ok, input)
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Widget Pro 2", CleanText("  Widget\n\tPro   2 "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hé", Truncate("héllo", 2))
	assert.Equal(t, "abc", Truncate("abc", 10))
}
