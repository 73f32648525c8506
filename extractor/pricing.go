package extractor

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

// elements read per price selector before moving on
const maxPriceCandidates = 5

var priceAttrs = []string{"content", "data-price", "data-price-amount", "data-value"}

type priceHit struct {
	price normalize.Price
	text  string
}

func (e *Extractor) extractPricing(_ context.Context, s *Snapshot) (patch, error) {
	offer, _ := s.structured.offer()

	current, ok := firstOf(
		func() (priceHit, bool) {
			amount, ok := offer.num("price", "lowPrice", "highPrice")
			if !ok || amount <= 0 {
				if spec, found := offer.child("priceSpecification"); found {
					amount, ok = spec.num("price")
				}
			}
			if !ok || amount <= 0 {
				return priceHit{}, false
			}
			return priceHit{price: normalize.Price{Amount: amount}}, true
		},
		func() (priceHit, bool) {
			raw, ok := adapters.Meta(s.Doc, "product:price:amount", "og:price:amount")
			if !ok {
				return priceHit{}, false
			}
			p, ok := normalize.ParsePrice(raw)
			return priceHit{price: p, text: raw}, ok && p.Amount > 0
		},
		func() (priceHit, bool) {
			return s.firstPrice(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Price }), 0)
		},
	)
	if !ok {
		return nil, nil
	}

	price := current.price.Amount
	var original *float64
	if was, ok := s.firstPrice(s.Selectors(func(sel *adapters.Selectors) []string { return sel.OriginalPrice }), price); ok {
		original = &was.price.Amount
	}

	currency, _ := firstOf(
		func() (string, bool) {
			c, ok := offer.str("priceCurrency")
			if !ok {
				if spec, found := offer.child("priceSpecification"); found {
					c, ok = spec.str("priceCurrency")
				}
			}
			return strings.ToUpper(c), ok
		},
		func() (string, bool) {
			c, ok := adapters.Meta(s.Doc, "product:price:currency", "og:price:currency", "priceCurrency")
			return strings.ToUpper(c), ok
		},
		func() (string, bool) { return s.itemprop("priceCurrency") },
		func() (string, bool) { return current.price.Currency, current.price.Currency != "" },
		func() (string, bool) { return normalize.DetectCurrency(current.text) },
		func() (string, bool) { return normalize.SniffCurrency(current.text + " " + s.BodyText()), true },
	)

	return func(r *types.ProductRecord) {
		r.Price = &price
		r.OriginalPrice = original
		r.Currency = currency
	}, nil
}

// firstPrice returns the first parsed price above floor, reading attributes
// before text for every candidate element
func (s *Snapshot) firstPrice(selectors []string, floor float64) (priceHit, bool) {
	for _, selector := range selectors {
		var hit priceHit
		found := false
		s.Doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= maxPriceCandidates {
				return false
			}
			for _, raw := range priceCandidates(sel) {
				p, ok := normalize.ParsePrice(raw)
				if ok && p.Amount > floor {
					hit = priceHit{price: p, text: raw}
					found = true
					return false
				}
			}
			return true
		})
		if found {
			return hit, true
		}
	}
	return priceHit{}, false
}

func priceCandidates(sel *goquery.Selection) []string {
	var out []string
	for _, attr := range priceAttrs {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	if text := normalize.CleanText(sel.Text()); text != "" {
		out = append(out, text)
	}
	return out
}

func formatPrice(p *float64) string {
	if p == nil {
		return "none"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
