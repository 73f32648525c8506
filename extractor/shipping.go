package extractor

import (
	"context"
	"fmt"
	"regexp"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const maxShippingInfoLength = 300

var (
	freeShippingRe = regexp.MustCompile(`(?i)livraison\s+(?:offerte|gratuite|incluse)|frais\s+de\s+(?:port|livraison)\s+offerts|port\s+gratuit|free\s+(?:standard\s+)?(?:shipping|delivery)|ships?\s+free|envío\s+gratis|kostenloser\s+versand`)
	deliveryTimeRe = regexp.MustCompile(`(?i)\d+(?:\s*(?:-|–|à|to|a)\s*\d+)?\s*(?:jours?(?:\s+ouvr[ée]s)?|business\s+days?|working\s+days?|days?|semaines?|weeks?)`)
	shippingCostRe = regexp.MustCompile(`(?:[€£$]\s*\d[\d.,]*|\d[\d.,]*\s*(?:€|£|\$|EUR|USD|GBP|CHF))`)
)

// unit codes of schema.org transit times
var transitUnits = map[string]string{"DAY": "days", "d": "days", "WEE": "weeks", "wk": "weeks", "HUR": "hours"}

type shippingInfo struct {
	cost     *float64
	free     bool
	delivery string
	info     string
}

func (e *Extractor) extractShipping(_ context.Context, s *Snapshot) (patch, error) {
	offer, _ := s.structured.offer()

	info, ok := firstOf(
		func() (shippingInfo, bool) { return structuredShipping(offer) },
		func() (shippingInfo, bool) {
			text, ok := s.text(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Shipping }))
			if !ok {
				return shippingInfo{}, false
			}
			return parseShippingText(text), true
		},
	)
	if !ok {
		return nil, nil
	}

	return func(r *types.ProductRecord) {
		r.ShippingCost = info.cost
		r.FreeShipping = info.free
		r.DeliveryTime = info.delivery
		r.ShippingInfo = normalize.Truncate(info.info, maxShippingInfoLength)
	}, nil
}

func structuredShipping(offer node) (shippingInfo, bool) {
	details, ok := offer.child("shippingDetails")
	if !ok {
		return shippingInfo{}, false
	}
	var out shippingInfo
	if rate, ok := details.child("shippingRate"); ok {
		if cost, ok := rate.num("value", "price"); ok {
			out.cost = &cost
			out.free = cost == 0
		}
	}
	if delivery, ok := details.child("deliveryTime"); ok {
		if transit, ok := delivery.child("transitTime"); ok {
			out.delivery = formatTransit(transit)
		}
	}
	if out.cost == nil && out.delivery == "" {
		return shippingInfo{}, false
	}
	return out, true
}

func formatTransit(t node) string {
	lo, hasLo := t.num("minValue")
	hi, hasHi := t.num("maxValue")
	unit := "days"
	if code, ok := t.str("unitCode"); ok {
		if u, known := transitUnits[code]; known {
			unit = u
		}
	}
	switch {
	case hasLo && hasHi && lo != hi:
		return fmt.Sprintf("%g-%g %s", lo, hi, unit)
	case hasHi:
		return fmt.Sprintf("%g %s", hi, unit)
	case hasLo:
		return fmt.Sprintf("%g %s", lo, unit)
	}
	return ""
}

// parseShippingText applies the free-shipping, delivery-time and cost
// patterns to shipping text
func parseShippingText(text string) shippingInfo {
	out := shippingInfo{info: text}
	out.free = freeShippingRe.MatchString(text)
	out.delivery = normalize.CleanText(deliveryTimeRe.FindString(text))
	if !out.free {
		if tagged := shippingCostRe.FindString(text); tagged != "" {
			if p, ok := normalize.ParsePrice(tagged); ok {
				cost := p.Amount
				out.cost = &cost
			}
		}
	}
	return out
}
