package types

import (
	"context"
	"time"
)

// StockStatus is the closed set of availability states a product can be in
type StockStatus string

const (
	StockInStock      StockStatus = "in_stock"
	StockOutOfStock   StockStatus = "out_of_stock"
	StockPreorder     StockStatus = "preorder"
	StockLowStock     StockStatus = "low_stock"
	StockBackorder    StockStatus = "backorder"
	StockDiscontinued StockStatus = "discontinued"
	StockUnknown      StockStatus = "unknown"
)

// Available reports whether the status means the product can ship now.
// The second return value is false for StockUnknown.
func (s StockStatus) Available() (bool, bool) {
	switch s {
	case StockInStock, StockLowStock:
		return true, true
	case StockOutOfStock, StockDiscontinued, StockPreorder, StockBackorder:
		return false, true
	default:
		return false, false
	}
}

// Variant represents one selectable option of a product
type Variant struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Review represents a single customer review
type Review struct {
	Author string   `json:"author,omitempty"`
	Rating *float64 `json:"rating"`
	Text   string   `json:"text,omitempty"`
	Date   string   `json:"date,omitempty"`
	Images []string `json:"images,omitempty"`
}

// ProductRecord is the output of one extraction. Every field other than
// URL, Platform and ScrapedAt may be empty; empty means "not found".
type ProductRecord struct {
	URL       string    `json:"url"`
	Platform  string    `json:"platform"`
	ScrapedAt time.Time `json:"scrapedAt"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	SKU         string `json:"sku,omitempty"`
	GTIN        string `json:"gtin,omitempty"`
	MPN         string `json:"mpn,omitempty"`
	Brand       string `json:"brand,omitempty"`

	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Currency      string   `json:"currency,omitempty"`

	StockStatus   StockStatus `json:"stockStatus"`
	StockQuantity *int        `json:"stockQuantity"`
	InStock       *bool       `json:"inStock"`

	ShippingCost *float64 `json:"shippingCost"`
	FreeShipping bool     `json:"freeShipping"`
	DeliveryTime string   `json:"deliveryTime,omitempty"`
	ShippingInfo string   `json:"shippingInfo,omitempty"`

	Category string `json:"category,omitempty"`

	Images         []string          `json:"images"`
	Videos         []string          `json:"videos"`
	Variants       []Variant         `json:"variants"`
	Reviews        []Review          `json:"reviews"`
	Specifications map[string]string `json:"specifications"`

	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"reviewCount"`
}

// StockSnapshot is one entry of a watched product's stock history
type StockSnapshot struct {
	Status   StockStatus `json:"status"`
	Quantity *int        `json:"quantity"`
	Date     time.Time   `json:"date"`
}

// WatchEntry is a product under periodic stock re-checking
type WatchEntry struct {
	ID            string          `json:"id"`
	URL           string          `json:"url"`
	Title         string          `json:"title"`
	Image         string          `json:"image,omitempty"`
	Platform      string          `json:"platform"`
	LastStock     StockStatus     `json:"lastStock"`
	LastQuantity  *int            `json:"lastQuantity"`
	AddedAt       time.Time       `json:"addedAt"`
	LastCheckedAt time.Time       `json:"lastCheckedAt"`
	StockHistory  []StockSnapshot `json:"stockHistory"`
}

// Page gives read access to a rendered product page and lets the engine
// activate elements on it (thumbnail clicks during gallery expansion).
type Page interface {
	// URL returns the address of the page
	URL() string

	// Content returns the current rendered HTML, script tags included
	Content(ctx context.Context) (string, error)

	// Activate dispatches a click on the index-th element matching selector
	Activate(ctx context.Context, selector string, index int) error
}

// Config holds the configuration for the extractor
type Config struct {
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	MaxConcurrentRequests int
	UseHeadlessBrowser    bool
	UserAgent             string

	// FieldTimeout bounds a single field extractor
	FieldTimeout time.Duration
	// ExpandGallery enables thumbnail activation before reading images
	ExpandGallery bool
	// ExpansionDelay is the settle delay after each activation
	ExpansionDelay time.Duration

	MaxImages  int
	MaxVideos  int
	MaxReviews int

	MonitorInterval    time.Duration
	MonitorConcurrency int
}

// DefaultMaxReviews is the review cap used when none is configured
const DefaultMaxReviews = 50

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 5,
		UseHeadlessBrowser:    true,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		FieldTimeout:          5 * time.Second,
		ExpandGallery:         true,
		ExpansionDelay:        300 * time.Millisecond,
		MaxImages:             20,
		MaxVideos:             10,
		MaxReviews:            DefaultMaxReviews,
		MonitorInterval:       30 * time.Minute,
		MonitorConcurrency:    1,
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
