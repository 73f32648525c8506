package extractor

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

type stockHit struct {
	status   types.StockStatus
	quantity *int
}

func (e *Extractor) extractStock(_ context.Context, s *Snapshot) (patch, error) {
	offer, _ := s.structured.offer()

	hit, ok := firstOf(
		// structured availability; unrecognized values fall through
		func() (stockHit, bool) {
			raw, ok := offer.str("availability")
			if !ok {
				return stockHit{}, false
			}
			status := normalize.MapAvailability(raw)
			if status == types.StockUnknown {
				e.logger.Debugf("Unrecognized availability %q on %s", raw, s.URL)
				return stockHit{}, false
			}
			return stockHit{status: status, quantity: inventoryLevel(offer)}, true
		},
		func() (stockHit, bool) {
			raw, ok := s.itemprop("availability")
			if !ok {
				return stockHit{}, false
			}
			status := normalize.MapAvailability(raw)
			return stockHit{status: status}, status != types.StockUnknown
		},
		func() (stockHit, bool) {
			return s.stockFromText(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Stock }))
		},
		func() (stockHit, bool) {
			selectors := s.Selectors(func(sel *adapters.Selectors) []string { return sel.AddToCart })
			if s.enabledControl(selectors) {
				return stockHit{status: types.StockInStock}, true
			}
			return stockHit{}, false
		},
	)
	if !ok {
		return nil, nil
	}

	return func(r *types.ProductRecord) {
		r.StockStatus = hit.status
		r.StockQuantity = hit.quantity
	}, nil
}

// inventoryLevel reads offers.inventoryLevel as a number or QuantitativeValue
func inventoryLevel(offer node) *int {
	if q, ok := offer.num("inventoryLevel"); ok {
		n := int(q)
		return &n
	}
	if level, ok := offer.child("inventoryLevel"); ok {
		if q, ok := level.num("value"); ok {
			n := int(q)
			return &n
		}
	}
	return nil
}

// stockFromText classifies the text of the first stock element that carries
// a recognizable keyword
func (s *Snapshot) stockFromText(selectors []string) (stockHit, bool) {
	for _, selector := range selectors {
		var hit stockHit
		found := false
		s.Doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if v, ok := adapters.AttrOf(sel, "content", "href"); ok {
				if status := normalize.MapAvailability(v); status != types.StockUnknown {
					hit = stockHit{status: status}
					found = true
					return false
				}
			}
			text := normalize.CleanText(sel.Text())
			for _, candidate := range []string{sel.AttrOr("data-stock", ""), sel.AttrOr("aria-label", ""), text} {
				status, ok := normalize.ClassifyStockText(candidate)
				if !ok {
					continue
				}
				hit = stockHit{status: status}
				if q, ok := normalize.ExtractQuantity(candidate + " " + text); ok {
					hit.quantity = &q
				}
				found = true
				return false
			}
			return true
		})
		if found {
			return hit, true
		}
	}
	return stockHit{}, false
}

// enabledControl reports whether any add-to-cart control exists and is enabled
func (s *Snapshot) enabledControl(selectors []string) bool {
	for _, selector := range selectors {
		enabled := false
		s.Doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			enabled = isEnabled(sel)
			return !enabled
		})
		if enabled {
			return true
		}
	}
	return false
}

func isEnabled(sel *goquery.Selection) bool {
	if _, disabled := sel.Attr("disabled"); disabled {
		return false
	}
	if v, _ := sel.Attr("aria-disabled"); strings.EqualFold(v, "true") {
		return false
	}
	class, _ := sel.Attr("class")
	class = strings.ToLower(class)
	return !strings.Contains(class, "disabled") && !strings.Contains(class, "sold-out")
}
