package extractor

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/adapters"
	"product-extractor/internal/types"
)

func parseTestProduct(t *testing.T, html string) node {
	t.Helper()
	doc, err := adapters.ParseHTML(html)
	require.NoError(t, err)
	return parseStructuredProduct(doc, logrus.New())
}

func TestParseStructuredProduct_Graph(t *testing.T) {
	product := parseTestProduct(t, `<html><head>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@type": "WebSite", "name": "Shop"}</script>
<script type="application/ld+json">{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "BreadcrumbList"},
    {"@type": ["Product", "Thing"], "name": "Lamp", "sku": 1234}
  ]
}</script></head></html>`)

	require.NotNil(t, product)
	name, ok := product.str("name")
	assert.True(t, ok)
	assert.Equal(t, "Lamp", name)
	sku, ok := product.str("sku")
	assert.True(t, ok)
	assert.Equal(t, "1234", sku)
}

func TestParseStructuredProduct_MainEntity(t *testing.T) {
	product := parseTestProduct(t, `<script type="application/ld+json">
{"@type": "ItemPage", "mainEntity": {"@type": "ProductGroup", "name": "Shirt"}}
</script>`)

	name, ok := product.str("name")
	assert.True(t, ok)
	assert.Equal(t, "Shirt", name)
}

func TestParseStructuredProduct_None(t *testing.T) {
	assert.Nil(t, parseTestProduct(t, `<html><body><p>nothing here</p></body></html>`))
	assert.Nil(t, parseTestProduct(t, `<script type="application/ld+json">[1, 2</script>`))
}

func TestNode_NilSafe(t *testing.T) {
	var n node

	_, ok := n.str("name")
	assert.False(t, ok)
	_, ok = n.num("price")
	assert.False(t, ok)
	_, ok = n.child("offers")
	assert.False(t, ok)
	_, ok = n.offer()
	assert.False(t, ok)
	assert.Nil(t, n.children("review"))
	assert.Nil(t, n.urls("image"))
}

func TestNode_Accessors(t *testing.T) {
	n := node{
		"brand":  map[string]interface{}{"@type": "Brand", "name": "Acme"},
		"price":  "1 299,00",
		"rating": 4.5,
		"image": []interface{}{
			"https://cdn.example.com/a.jpg",
			map[string]interface{}{"@type": "ImageObject", "contentUrl": "https://cdn.example.com/b.jpg"},
		},
		"offers": map[string]interface{}{
			"@type":  "AggregateOffer",
			"offers": []interface{}{map[string]interface{}{"price": 12.5}},
		},
		"negative": -3.0,
	}

	brand, ok := n.str("brand")
	assert.True(t, ok)
	assert.Equal(t, "Acme", brand)

	price, ok := n.num("price")
	assert.True(t, ok)
	assert.Equal(t, 1299.0, price)

	rating, ok := n.num("missing", "rating")
	assert.True(t, ok)
	assert.Equal(t, 4.5, rating)

	_, ok = n.num("negative")
	assert.False(t, ok)

	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, n.urls("image"))

	offer, ok := n.offer()
	require.True(t, ok)
	inner, ok := offer.num("price")
	assert.True(t, ok)
	assert.Equal(t, 12.5, inner)
}

func TestExtract_StructuredRichProduct(t *testing.T) {
	page := &fakePage{
		url: "https://store.example.org/p/kettle",
		contents: []string{`<html><head><script type="application/ld+json">{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "Kettle  Pro",
  "description": "Boils\nwater",
  "sku": "KP-1",
  "gtin13": "3700000000001",
  "brand": {"@type": "Brand", "name": "Brand: Heatly"},
  "category": "Kitchen > Kettles",
  "image": ["//cdn.example.org/kettle_800x800.jpg", "https://cdn.example.org/kettle-side.jpg"],
  "aggregateRating": {"ratingValue": "4.6", "reviewCount": "128"},
  "review": [{"author": {"name": "Marc"}, "reviewBody": "Fast", "reviewRating": {"ratingValue": 5}}],
  "additionalProperty": [{"name": "Capacity", "value": "1.7 L"}],
  "hasVariant": [{"color": "Black"}, {"color": "White"}, {"color": "black"}],
  "offers": {
    "@type": "Offer",
    "price": 59.9,
    "priceCurrency": "EUR",
    "availability": "https://schema.org/LimitedAvailability",
    "inventoryLevel": {"value": 4},
    "shippingDetails": {
      "shippingRate": {"value": 0, "currency": "EUR"},
      "deliveryTime": {"transitTime": {"minValue": 2, "maxValue": 4, "unitCode": "DAY"}}
    }
  }
}</script></head><body></body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, "Kettle Pro", record.Title)
	assert.Equal(t, "Boils water", record.Description)
	assert.Equal(t, "KP-1", record.SKU)
	assert.Equal(t, "3700000000001", record.GTIN)
	assert.Equal(t, "Heatly", record.Brand)
	assert.Equal(t, "Kitchen > Kettles", record.Category)

	require.NotNil(t, record.Price)
	assert.Equal(t, 59.9, *record.Price)
	assert.Equal(t, "EUR", record.Currency)

	assert.Equal(t, types.StockLowStock, record.StockStatus)
	require.NotNil(t, record.StockQuantity)
	assert.Equal(t, 4, *record.StockQuantity)

	assert.True(t, record.FreeShipping)
	assert.Equal(t, "2-4 days", record.DeliveryTime)

	assert.Equal(t, []string{"https://cdn.example.org/kettle.jpg", "https://cdn.example.org/kettle-side.jpg"}, record.Images)

	require.NotNil(t, record.Rating)
	assert.Equal(t, 4.6, *record.Rating)
	require.NotNil(t, record.ReviewCount)
	assert.Equal(t, 128, *record.ReviewCount)
	require.Len(t, record.Reviews, 1)
	assert.Equal(t, "Marc", record.Reviews[0].Author)

	assert.Equal(t, map[string]string{"Capacity": "1.7 L"}, record.Specifications)
	assert.Equal(t, []types.Variant{
		{Name: "color", Value: "Black", Type: "color"},
		{Name: "color", Value: "White", Type: "color"},
	}, record.Variants)
}
