package extractor

import (
	"context"
	"sync"
	"time"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

// patch writes one field extractor's results into the merged record
type patch func(r *types.ProductRecord)

// field is one independently running field extractor
type field struct {
	name string
	run  func(ctx context.Context, s *Snapshot) (patch, error)
	// extra is added to the soft timeout for extractors that wait on the page
	extra time.Duration
}

// VariantExtractor finds the selectable options of a product
type VariantExtractor interface {
	ExtractVariants(ctx context.Context, s *Snapshot) []types.Variant
}

// ReviewExtractor finds customer reviews
type ReviewExtractor interface {
	ExtractReviews(ctx context.Context, s *Snapshot) []types.Review
}

// Extractor turns a rendered product page into a ProductRecord
type Extractor struct {
	config   *types.Config
	logger   types.Logger
	registry *adapters.Registry
	variants VariantExtractor
	reviews  ReviewExtractor
}

// Option configures an Extractor
type Option func(*Extractor)

// WithVariantExtractor replaces the built-in variant extraction
func WithVariantExtractor(v VariantExtractor) Option {
	return func(e *Extractor) {
		e.variants = v
	}
}

// WithReviewExtractor replaces the built-in review extraction
func WithReviewExtractor(r ReviewExtractor) Option {
	return func(e *Extractor) {
		e.reviews = r
	}
}

// WithRegistry replaces the built-in platform tables
func WithRegistry(r *adapters.Registry) Option {
	return func(e *Extractor) {
		e.registry = r
	}
}

// NewExtractor creates a new extractor
func NewExtractor(config *types.Config, logger types.Logger, opts ...Option) *Extractor {
	if config == nil {
		config = types.DefaultConfig()
	}
	e := &Extractor{
		config:   config,
		logger:   logger,
		registry: adapters.NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.variants == nil {
		e.variants = &DefaultVariantExtractor{}
	}
	if e.reviews == nil {
		e.reviews = &DefaultReviewExtractor{Max: e.maxReviews()}
	}
	return e
}

// maxReviews never lets a zero or negative setting lift the review cap
func (e *Extractor) maxReviews() int {
	if e.config.MaxReviews <= 0 {
		return types.DefaultMaxReviews
	}
	return e.config.MaxReviews
}

// Extract reads the page once, runs every field extractor concurrently and
// merges their results. Only an unusable page makes it fail; a field that
// errors, panics or times out is left empty.
func (e *Extractor) Extract(ctx context.Context, page types.Page) (*types.ProductRecord, error) {
	if page == nil {
		return nil, perrors.ErrPageUnavailable
	}
	startTime := time.Now()

	snap, err := e.snapshot(ctx, page)
	if err != nil {
		return nil, err
	}
	e.logger.Debugf("Extracting %s (platform %s, structured data: %t)", snap.URL, snap.Platform.Name, snap.structured != nil)

	fields := e.fields()
	patches := make([]patch, len(fields))

	var wg sync.WaitGroup
	for i, f := range fields {
		wg.Add(1)
		go func(i int, f field) {
			defer wg.Done()
			patches[i] = e.runField(ctx, f, snap)
		}(i, f)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := &types.ProductRecord{
		URL:       snap.URL,
		Platform:  snap.Platform.Name,
		ScrapedAt: time.Now().UTC(),
	}
	for _, p := range patches {
		if p != nil {
			p(record)
		}
	}
	e.finalize(record)

	e.logger.Infof("Extracted %s in %v: title=%q price=%v stock=%s images=%d",
		record.URL, time.Since(startTime), record.Title, formatPrice(record.Price), record.StockStatus, len(record.Images))
	return record, nil
}

// fields lists the field extractors in merge order
func (e *Extractor) fields() []field {
	return []field{
		{name: "basic", run: e.extractBasic},
		{name: "brand", run: e.extractBrand},
		{name: "pricing", run: e.extractPricing},
		{name: "stock", run: e.extractStock},
		{name: "shipping", run: e.extractShipping},
		{name: "category", run: e.extractCategory},
		{name: "images", run: e.extractImages, extra: time.Duration(e.config.MaxImages) * e.config.ExpansionDelay},
		{name: "videos", run: e.extractVideos},
		{name: "variants", run: e.extractVariants},
		{name: "reviews", run: e.extractReviews},
		{name: "specifications", run: e.extractSpecifications},
	}
}

type fieldResult struct {
	patch patch
	err   error
}

// runField runs one extractor under a soft timeout and recovers its panics
func (e *Extractor) runField(ctx context.Context, f field, snap *Snapshot) patch {
	timeout := e.config.FieldTimeout
	if timeout <= 0 {
		timeout = types.DefaultConfig().FieldTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout+f.extra)
	defer cancel()

	done := make(chan fieldResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fieldResult{err: perrors.NewPanic(f.name, r)}
			}
		}()
		p, err := f.run(ctx, snap)
		done <- fieldResult{patch: p, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			e.logger.Warnf("Field extractor %s failed: %v", f.name, res.err)
			return nil
		}
		return res.patch
	case <-ctx.Done():
		e.logger.Warnf("%v", perrors.NewTimeout(f.name, ctx.Err()))
		return nil
	}
}

// finalize enforces the record invariants after merging
func (e *Extractor) finalize(r *types.ProductRecord) {
	if r.Price != nil && *r.Price < 0 {
		r.Price = nil
	}
	if r.OriginalPrice != nil && (r.Price == nil || *r.OriginalPrice <= *r.Price) {
		r.OriginalPrice = nil
	}
	if r.StockQuantity != nil && *r.StockQuantity < 0 {
		r.StockQuantity = nil
	}
	if r.StockStatus == "" {
		r.StockStatus = types.StockUnknown
	}
	if in, known := r.StockStatus.Available(); known {
		r.InStock = &in
	} else {
		r.InStock = nil
	}
	if r.FreeShipping {
		zero := 0.0
		r.ShippingCost = &zero
	}

	r.Images = capUnique(r.Images, e.config.MaxImages)
	r.Videos = capUnique(r.Videos, e.config.MaxVideos)
	if r.Variants == nil {
		r.Variants = []types.Variant{}
	}
	if r.Reviews == nil {
		r.Reviews = []types.Review{}
	}
	if limit := e.maxReviews(); len(r.Reviews) > limit {
		r.Reviews = r.Reviews[:limit]
	}
	if r.Specifications == nil {
		r.Specifications = map[string]string{}
	}
}

func capUnique(urls []string, limit int) []string {
	set := normalize.NewURLSet(limit)
	for _, u := range urls {
		set.Add(u)
	}
	return set.Items()
}
