package extractor

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

func (e *Extractor) extractBrand(_ context.Context, s *Snapshot) (patch, error) {
	brand, ok := firstOf(
		func() (string, bool) {
			raw, ok := s.structured.str("brand", "manufacturer")
			if !ok {
				return "", false
			}
			return normalize.CleanBrand(raw)
		},
		func() (string, bool) {
			raw, ok := adapters.Meta(s.Doc, "product:brand", "og:brand")
			if !ok {
				return "", false
			}
			return normalize.CleanBrand(raw)
		},
		func() (string, bool) {
			return s.firstClean(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Brand }), normalize.CleanBrand)
		},
	)
	if !ok {
		return nil, nil
	}
	return func(r *types.ProductRecord) {
		r.Brand = brand
	}, nil
}

// firstClean returns the first element value accepted by clean, trying every
// element of every selector in order
func (s *Snapshot) firstClean(selectors []string, clean func(string) (string, bool)) (string, bool) {
	for _, selector := range selectors {
		var out string
		s.Doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			v, ok := clean(adapters.ValueOf(sel, "content", "data-brand"))
			if ok {
				out = v
			}
			return !ok
		})
		if out != "" {
			return out, true
		}
	}
	return "", false
}
