package extractor

import (
	"context"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const (
	maxTitleLength       = 500
	maxDescriptionLength = 5000
)

// extractBasic finds title, description and product identifiers
func (e *Extractor) extractBasic(_ context.Context, s *Snapshot) (patch, error) {
	title, _ := firstOf(
		func() (string, bool) { return s.structured.str("name") },
		func() (string, bool) { return adapters.Meta(s.Doc, "og:title", "twitter:title") },
		func() (string, bool) {
			return s.text(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Title }))
		},
	)

	description, _ := firstOf(
		func() (string, bool) { return s.structured.str("description") },
		func() (string, bool) {
			return adapters.Meta(s.Doc, "og:description", "twitter:description", "description")
		},
		func() (string, bool) {
			return s.text(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Description }))
		},
	)

	sku, _ := firstOf(
		func() (string, bool) { return s.structured.str("sku", "productID") },
		func() (string, bool) { return s.itemprop("sku", "productID") },
	)
	gtin, _ := firstOf(
		func() (string, bool) { return s.structured.str("gtin13", "gtin12", "gtin14", "gtin8", "gtin") },
		func() (string, bool) { return s.itemprop("gtin13", "gtin12", "gtin14", "gtin8", "gtin") },
	)
	mpn, _ := firstOf(
		func() (string, bool) { return s.structured.str("mpn") },
		func() (string, bool) { return s.itemprop("mpn") },
	)

	return func(r *types.ProductRecord) {
		r.Title = normalize.Truncate(normalize.CleanText(title), maxTitleLength)
		r.Description = normalize.Truncate(normalize.CleanText(description), maxDescriptionLength)
		r.SKU = normalize.CleanText(sku)
		r.GTIN = normalize.CleanText(gtin)
		r.MPN = normalize.CleanText(mpn)
	}, nil
}
