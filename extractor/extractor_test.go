package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

// fakePage serves contents[0] until the first activation, then contents[1]
type fakePage struct {
	url         string
	contents    []string
	err         error
	interactive bool

	mu          sync.Mutex
	activations []string
}

var _ types.Page = (*fakePage)(nil)

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Content(_ context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.activations) > 0 && len(p.contents) > 1 {
		return p.contents[1], nil
	}
	return p.contents[0], nil
}

func (p *fakePage) Activate(_ context.Context, selector string, index int) error {
	if !p.interactive {
		return perrors.ErrNotInteractive
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activations = append(p.activations, fmt.Sprintf("%s[%d]", selector, index))
	return nil
}

func newTestExtractor(opts ...Option) *Extractor {
	config := types.DefaultConfig()
	config.ExpansionDelay = time.Millisecond
	config.FieldTimeout = time.Second
	return NewExtractor(config, logrus.New(), opts...)
}

func TestNewExtractor(t *testing.T) {
	config := types.DefaultConfig()
	logger := logrus.New()

	extractor := NewExtractor(config, logger)

	assert.NotNil(t, extractor)
	assert.Equal(t, config, extractor.config)
	assert.Equal(t, logger, extractor.logger)
	assert.NotNil(t, extractor.registry)
	assert.IsType(t, &DefaultVariantExtractor{}, extractor.variants)
	assert.IsType(t, &DefaultReviewExtractor{}, extractor.reviews)
}

func TestExtract_StructuredWidget(t *testing.T) {
	page := &fakePage{
		url: "https://shop.example.com/products/widget",
		contents: []string{`<html><head>
<script type="application/ld+json">{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "Widget",
  "offers": {
    "@type": "Offer",
    "price": "19.99",
    "priceCurrency": "USD",
    "availability": "https://schema.org/InStock"
  }
}</script></head><body><h1>Something else</h1></body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, "Widget", record.Title)
	require.NotNil(t, record.Price)
	assert.InDelta(t, 19.99, *record.Price, 0.0001)
	assert.Equal(t, "USD", record.Currency)
	assert.Equal(t, types.StockInStock, record.StockStatus)
	require.NotNil(t, record.InStock)
	assert.True(t, *record.InStock)
	assert.Equal(t, "https://shop.example.com/products/widget", record.URL)
	assert.Equal(t, "generic", record.Platform)
	assert.False(t, record.ScrapedAt.IsZero())
}

func TestExtract_DisabledAddToCart(t *testing.T) {
	page := &fakePage{
		url:      "https://shop.example.com/item",
		contents: []string{`<html><body><h1>Thing</h1><button class="add-to-cart" disabled>Add to cart</button></body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, types.StockUnknown, record.StockStatus)
	assert.Nil(t, record.InStock)
	assert.Nil(t, record.Price)
	assert.Empty(t, record.Images)
}

func TestExtract_EnabledAddToCart(t *testing.T) {
	page := &fakePage{
		url:      "https://shop.example.com/item",
		contents: []string{`<html><body><h1>Thing</h1><button class="add-to-cart">Add to cart</button></body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, types.StockInStock, record.StockStatus)
	require.NotNil(t, record.InStock)
	assert.True(t, *record.InStock)
}

func TestExtract_GenericPage(t *testing.T) {
	page := &fakePage{
		url: "https://shop.example.com/p/turbo-3000",
		contents: []string{`<html><head>
<meta property="og:image" content="https://cdn.example.com/og.jpg">
</head><body>
<nav class="breadcrumb"><a href="/">Home</a> &gt; <a href="/kitchen">Kitchen</a> &gt; <a href="/kitchen/blenders">Blenders</a> &gt; <span>Turbo 3000</span></nav>
<h1 class="product-title">Turbo 3000</h1>
<div class="product-brand">by Blendix</div>
<div class="product-price"><span class="price">1.234,56 €</span><span class="old-price">1.499,00 €</span></div>
<p class="availability">Plus que 3 en stock</p>
<div class="shipping-info">Livraison gratuite en 3 à 5 jours ouvrés</div>
<div class="product-gallery">
  <img src="/media/turbo_350x350.jpg">
  <img data-zoom-image="https://cdn.example.com/turbo-zoom.jpg" src="https://cdn.example.com/turbo-zoom_small.jpg">
</div>
<label for="size">Taille</label>
<select id="size"><option value="">Choisir une taille</option><option value="s">S</option><option value="m">M</option></select>
<div class="specifications"><table><tr><th>Puissance</th><td>1200 W</td></tr></table></div>
<div itemprop="review" itemscope>
  <span itemprop="author">Alice</span>
  <meta itemprop="ratingValue" content="4">
  <p itemprop="reviewBody">Great blender</p>
</div>
<iframe src="https://www.youtube.com/embed/abc123"></iframe>
</body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, "Turbo 3000", record.Title)
	assert.Equal(t, "Blendix", record.Brand)
	assert.Equal(t, "Blenders > Turbo 3000", record.Category)

	require.NotNil(t, record.Price)
	assert.InDelta(t, 1234.56, *record.Price, 0.0001)
	require.NotNil(t, record.OriginalPrice)
	assert.InDelta(t, 1499.0, *record.OriginalPrice, 0.0001)
	assert.Equal(t, "EUR", record.Currency)

	assert.Equal(t, types.StockLowStock, record.StockStatus)
	require.NotNil(t, record.StockQuantity)
	assert.Equal(t, 3, *record.StockQuantity)
	require.NotNil(t, record.InStock)
	assert.True(t, *record.InStock)

	assert.True(t, record.FreeShipping)
	require.NotNil(t, record.ShippingCost)
	assert.Equal(t, 0.0, *record.ShippingCost)
	assert.Equal(t, "3 à 5 jours ouvrés", record.DeliveryTime)

	assert.Equal(t, []string{
		"https://shop.example.com/media/turbo.jpg",
		"https://cdn.example.com/turbo-zoom.jpg",
		"https://cdn.example.com/og.jpg",
	}, record.Images)
	assert.Equal(t, []string{"https://www.youtube.com/embed/abc123"}, record.Videos)

	assert.Equal(t, []types.Variant{
		{Name: "Taille", Value: "S", Type: "size"},
		{Name: "Taille", Value: "M", Type: "size"},
	}, record.Variants)

	assert.Equal(t, map[string]string{"Puissance": "1200 W"}, record.Specifications)

	require.Len(t, record.Reviews, 1)
	assert.Equal(t, "Alice", record.Reviews[0].Author)
	assert.Equal(t, "Great blender", record.Reviews[0].Text)
	require.NotNil(t, record.Reviews[0].Rating)
	assert.Equal(t, 4.0, *record.Reviews[0].Rating)
	assert.Nil(t, record.Rating)
}

func TestExtract_OriginalPriceMustExceedPrice(t *testing.T) {
	page := &fakePage{
		url:      "https://shop.example.com/item",
		contents: []string{`<html><body><div class="product-price"><span class="price">$49.99</span><span class="old-price">$39.99</span></div></body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	require.NotNil(t, record.Price)
	assert.InDelta(t, 49.99, *record.Price, 0.0001)
	assert.Nil(t, record.OriginalPrice)
	assert.Equal(t, "USD", record.Currency)
}

func TestExtract_ImagesCappedAndUnique(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><div class="product-gallery">`)
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, `<img src="https://cdn.example.com/p/%d.jpg">`, i)
		fmt.Fprintf(&b, `<img src="https://cdn.example.com/p/%d_200x200.jpg?v=2">`, i)
	}
	b.WriteString(`</div></body></html>`)

	page := &fakePage{url: "https://shop.example.com/item", contents: []string{b.String()}}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Len(t, record.Images, 20)
	seen := map[string]bool{}
	for _, u := range record.Images {
		assert.False(t, seen[u], u)
		seen[u] = true
	}
	assert.Equal(t, "https://cdn.example.com/p/0.jpg", record.Images[0])
}

func TestExtract_ReviewsCappedWhenLimitUnset(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><head><script type="application/ld+json">{"@type":"Product","name":"Widget","review":[`)
	for i := 0; i < 60; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"@type":"Review","reviewBody":"Review number %d","reviewRating":{"ratingValue":4}}`, i)
	}
	b.WriteString(`]}</script></head><body></body></html>`)

	for _, limit := range []int{0, -1} {
		t.Run(fmt.Sprintf("max %d", limit), func(t *testing.T) {
			config := types.DefaultConfig()
			config.FieldTimeout = time.Second
			config.MaxReviews = limit
			page := &fakePage{url: "https://shop.example.com/item", contents: []string{b.String()}}

			record, err := NewExtractor(config, logrus.New()).Extract(context.Background(), page)
			require.NoError(t, err)

			assert.Len(t, record.Reviews, types.DefaultMaxReviews)
			assert.Equal(t, "Review number 0", record.Reviews[0].Text)
		})
	}
}

func TestExtract_GalleryExpansion(t *testing.T) {
	before := `<html><body>
<ul class="thumbnails"><li>1</li><li>2</li></ul>
<div class="product-gallery"><img src="https://cdn.example.com/p/front.jpg"></div>
</body></html>`
	after := `<html><body>
<ul class="thumbnails"><li>1</li><li>2</li></ul>
<div class="product-gallery">
  <img src="https://cdn.example.com/p/front.jpg">
  <img data-large="https://cdn.example.com/p/back-large.jpg" src="https://cdn.example.com/p/back_thumb.jpg">
</div>
</body></html>`

	page := &fakePage{url: "https://shop.example.com/item", contents: []string{before, after}, interactive: true}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, []string{".thumbnails li[0]", ".thumbnails li[1]"}, page.activations)
	assert.Contains(t, record.Images, "https://cdn.example.com/p/front.jpg")
	assert.Contains(t, record.Images, "https://cdn.example.com/p/back-large.jpg")
}

func TestExtract_StaticPageSkipsExpansion(t *testing.T) {
	page := &fakePage{
		url:      "https://shop.example.com/item",
		contents: []string{`<html><body><ul class="thumbnails"><li>1</li></ul></body></html>`},
	}

	_, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)
	assert.Empty(t, page.activations)
}

type panickingVariants struct{}

func (panickingVariants) ExtractVariants(context.Context, *Snapshot) []types.Variant {
	panic("boom")
}

type blockingReviews struct{}

func (blockingReviews) ExtractReviews(ctx context.Context, _ *Snapshot) []types.Review {
	<-ctx.Done()
	return []types.Review{{Text: "too late"}}
}

func TestExtract_FailingFieldDoesNotAbort(t *testing.T) {
	config := types.DefaultConfig()
	config.FieldTimeout = 50 * time.Millisecond
	extractor := NewExtractor(config, logrus.New(),
		WithVariantExtractor(panickingVariants{}),
		WithReviewExtractor(blockingReviews{}),
	)

	page := &fakePage{
		url:      "https://shop.example.com/item",
		contents: []string{`<html><body><h1>Still here</h1><select id="color"><option>Red</option></select></body></html>`},
	}

	record, err := extractor.Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, "Still here", record.Title)
	assert.Empty(t, record.Variants)
	assert.Empty(t, record.Reviews)
}

func TestExtract_PageUnavailable(t *testing.T) {
	extractor := newTestExtractor()

	_, err := extractor.Extract(context.Background(), &fakePage{url: "https://x.example.com", err: errors.New("tab crashed")})
	assert.ErrorIs(t, err, perrors.ErrPageUnavailable)

	_, err = extractor.Extract(context.Background(), &fakePage{url: "https://x.example.com", contents: []string{"  "}})
	assert.ErrorIs(t, err, perrors.ErrPageUnavailable)

	_, err = extractor.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, perrors.ErrPageUnavailable)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := &fakePage{url: "https://shop.example.com/item", contents: []string{`<html><body><h1>x</h1></body></html>`}}
	_, err := newTestExtractor().Extract(ctx, page)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_AmazonPlatform(t *testing.T) {
	page := &fakePage{
		url: "https://www.amazon.fr/dp/B000TEST",
		contents: []string{`<html><body>
<h1 id="title"><span id="productTitle"> Casque Audio X </span></h1>
<a id="bylineInfo">Visiter la boutique Sony</a>
<div id="corePrice_feature_div"><span class="a-offscreen">89,99 €</span></div>
<div id="availability"><span>Il ne reste plus que 2 exemplaire(s) en stock.</span></div>
<div id="imgTagWrapperId"><img id="landingImage" data-a-dynamic-image='{"https://m.media-amazon.com/images/I/71abc._AC_SX300_.jpg":[300,300],"https://m.media-amazon.com/images/I/71abc._AC_SL1500_.jpg":[1500,1500]}' src="https://m.media-amazon.com/images/I/71abc._AC_SX300_.jpg"></div>
<div data-hook="review"><span class="a-profile-name">Bob</span><i data-hook="review-star-rating" class="a-icon a-icon-star a-star-4"><span class="a-icon-alt">4,0 sur 5 étoiles</span></i><span data-hook="review-body">Très bon son</span></div>
</body></html>`},
	}

	record, err := newTestExtractor().Extract(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, "amazon", record.Platform)
	assert.Equal(t, "Casque Audio X", record.Title)
	assert.Equal(t, "Sony", record.Brand)
	require.NotNil(t, record.Price)
	assert.InDelta(t, 89.99, *record.Price, 0.0001)
	assert.Equal(t, "EUR", record.Currency)
	assert.Equal(t, types.StockLowStock, record.StockStatus)
	require.NotNil(t, record.StockQuantity)
	assert.Equal(t, 2, *record.StockQuantity)
	assert.Equal(t, []string{"https://m.media-amazon.com/images/I/71abc.jpg"}, record.Images)

	require.Len(t, record.Reviews, 1)
	assert.Equal(t, "Bob", record.Reviews[0].Author)
	require.NotNil(t, record.Reviews[0].Rating)
	assert.Equal(t, 4.0, *record.Reviews[0].Rating)
}
