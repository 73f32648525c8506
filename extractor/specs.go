package extractor

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const maxSpecifications = 100

func (e *Extractor) extractSpecifications(_ context.Context, s *Snapshot) (patch, error) {
	specs, ok := firstOf(
		func() (map[string]string, bool) {
			out := make(map[string]string)
			for _, prop := range s.structured.children("additionalProperty") {
				name, hasName := prop.str("name", "propertyID")
				value, hasValue := prop.str("value")
				if hasName && hasValue {
					out[normalize.CleanText(name)] = normalize.CleanText(value)
				}
			}
			return out, len(out) > 0
		},
		func() (map[string]string, bool) {
			return s.firstTable(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Specs }))
		},
	)
	if !ok {
		return nil, nil
	}
	if len(specs) > maxSpecifications {
		trimmed := make(map[string]string, maxSpecifications)
		for k, v := range specs {
			if len(trimmed) == maxSpecifications {
				break
			}
			trimmed[k] = v
		}
		specs = trimmed
	}
	return func(r *types.ProductRecord) {
		r.Specifications = specs
	}, nil
}

// firstTable returns the pairs of the first table-like element yielding any
func (s *Snapshot) firstTable(selectors []string) (map[string]string, bool) {
	for _, selector := range selectors {
		var pairs map[string]string
		s.Doc.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			pairs = adapters.LabelValues(el)
			return len(pairs) == 0
		})
		if len(pairs) > 0 {
			return pairs, true
		}
	}
	return nil, false
}
