package normalize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://shop.example.com/products/widget"

func TestCleanImageURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"size tokens and double slash", "http://cdn.example.com//img_350x350_.jpg", "https://cdn.example.com/img.jpg"},
		{"amazon resize marker", "https://m.media-amazon.com/images/I/71abcXYZ._AC_SX679_.jpg", "https://m.media-amazon.com/images/I/71abcXYZ.jpg"},
		{"aliexpress double extension", "https://ae01.alicdn.com/kf/Habc123.jpg_350x350q90.jpg_.webp", "https://ae01.alicdn.com/kf/Habc123.jpg"},
		{"shopify width suffix and query", "//cdn.shopify.com/s/files/1/products/shirt_600x.jpg?v=1681234", "https://cdn.shopify.com/s/files/1/products/shirt.jpg"},
		{"retina suffix", "https://cdn.example.com/p/shoe@2x.png", "https://cdn.example.com/p/shoe.png"},
		{"thumb suffix", "https://cdn.example.com/p/shoe_thumb.jpg", "https://cdn.example.com/p/shoe.jpg"},
		{"root relative", "/media/catalog/product/bag.jpg", "https://shop.example.com/media/catalog/product/bag.jpg"},
		{"relative", "images/bag-large.webp", "https://shop.example.com/products/images/bag-large.webp"},
		{"ebay size", "https://i.ebayimg.com/images/g/abc/s-l300.jpg", "https://i.ebayimg.com/images/g/abc/s-l1600.jpg"},
		{"cloudinary transformation", "https://res.cloudinary.com/demo/image/upload/c_fill,w_200,h_200/v1/sample.jpg", "https://res.cloudinary.com/demo/image/upload/v1/sample.jpg"},
		{"extensionless keeps identifying query", "https://img.example.com/render?id=42&utm_source=x&width=300", "https://img.example.com/render?id=42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanImageURL(tt.input, pageURL)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanImageURL_Rejects(t *testing.T) {
	for _, input := range []string{
		"",
		"/a.jpg",
		"https://cdn.example.com/assets/placeholder.png",
		"https://cdn.example.com/assets/sprite-nav.png",
		"https://cdn.example.com/badges/prime-badge.png",
		"https://cdn.example.com/images/arrow.svg",
		"data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP",
		"ftp://files.example.com/image.jpg",
	} {
		_, ok := CleanImageURL(input, pageURL)
		assert.False(t, ok, input)
	}

	_, ok := CleanImageURL("images/bag.jpg", "")
	assert.False(t, ok, "relative URL without base")
}

func TestCleanImageURL_Idempotent(t *testing.T) {
	inputs := []string{
		"http://cdn.example.com//img_350x350_.jpg",
		"https://m.media-amazon.com/images/I/71abcXYZ._AC_SX679_.jpg",
		"https://ae01.alicdn.com/kf/Habc123.jpg_350x350q90.jpg_.webp",
		"//cdn.shopify.com/s/files/1/products/shirt_600x600@2x.jpg?v=1681234",
		"https://img.example.com/render?id=42&utm_source=x&width=300",
		"https://cdn.example.com/a%20b/photo_small.jpg#zoom",
		"/media/catalog/product/cache/1/image/200x200/bag.jpg",
		"https://i.ebayimg.com/images/g/abc/s-l64.jpg",
		"https://cdn.example.com/img" + strings.Repeat("_10x10", 12) + "_.jpg",
	}
	for _, input := range inputs {
		once, ok := CleanImageURL(input, pageURL)
		require.True(t, ok, input)
		twice, ok := CleanImageURL(once, pageURL)
		require.True(t, ok, once)
		assert.Equal(t, once, twice, input)
	}
}

func TestCleanImageURL_StackedSizeTokens(t *testing.T) {
	got, ok := CleanImageURL("https://cdn.example.com/img"+strings.Repeat("_10x10", 12)+"_.jpg", pageURL)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/img.jpg", got)

	got, ok = CleanImageURL("https://cdn.example.com/bag_600x600_300x300q80.png", pageURL)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/bag.png", got)
}

func TestUpsizeImageURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/large/bag.jpg", UpsizeImageURL("https://cdn.example.com/thumbs/bag.jpg"))
	assert.Equal(t, "https://cdn.example.com/large/bag.jpg", UpsizeImageURL("https://cdn.example.com/small/bag.jpg"))
}

func TestParseSrcset(t *testing.T) {
	got := ParseSrcset("https://cdn.example.com/a-400.jpg 400w, https://cdn.example.com/a-800.jpg 800w,https://cdn.example.com/a-1200.jpg 2x")
	assert.Equal(t, []string{
		"https://cdn.example.com/a-400.jpg",
		"https://cdn.example.com/a-800.jpg",
		"https://cdn.example.com/a-1200.jpg",
	}, got)

	assert.Empty(t, ParseSrcset(""))
}

func TestExtractStyleURLs(t *testing.T) {
	got := ExtractStyleURLs(`background-image: url("https://cdn.example.com/bg.jpg"); background: url(/x/y.png)`)
	assert.Equal(t, []string{"https://cdn.example.com/bg.jpg", "/x/y.png"}, got)
}

func TestURLSet(t *testing.T) {
	set := NewURLSet(20)
	for i := 0; i < 30; i++ {
		set.Add(fmt.Sprintf("https://cdn.example.com/%d.jpg", i%25))
	}
	assert.Equal(t, 20, set.Len())
	assert.True(t, set.Full())

	seen := map[string]bool{}
	for _, u := range set.Items() {
		assert.False(t, seen[u], u)
		seen[u] = true
	}
	assert.False(t, set.Add("https://cdn.example.com/new.jpg"))
}
