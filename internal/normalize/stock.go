package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"product-extractor/internal/types"
)

// availabilityTable maps schema.org availability values. Matching is by
// substring so both "InStock" and "https://schema.org/InStock" resolve.
var availabilityTable = []struct {
	token  string
	status types.StockStatus
}{
	{"outofstock", types.StockOutOfStock},
	{"soldout", types.StockOutOfStock},
	{"discontinued", types.StockDiscontinued},
	{"preorder", types.StockPreorder},
	{"presale", types.StockPreorder},
	{"backorder", types.StockBackorder},
	{"limitedavailability", types.StockLowStock},
	{"instoreonly", types.StockInStock},
	{"onlineonly", types.StockInStock},
	{"instock", types.StockInStock},
}

// keyword sets are checked in order: negative and qualified states come
// before plain "in stock" because "indisponible" contains "disponible" and
// "only 2 left in stock" contains "in stock".
var stockKeywords = []struct {
	status   types.StockStatus
	keywords []string
}{
	{types.StockOutOfStock, []string{
		"rupture", "épuisé", "epuise", "indisponible", "non disponible", "plus disponible",
		"out of stock", "out-of-stock", "sold out", "soldout", "unavailable", "not available",
		"currently unavailable", "agotado", "ausverkauft", "nicht verfügbar",
	}},
	{types.StockDiscontinued, []string{
		"discontinued", "no longer available", "n'est plus fabriqué", "fin de série",
	}},
	{types.StockPreorder, []string{
		"précommande", "precommande", "pré-commande", "pre-order", "preorder", "pre order", "vorbestellen",
	}},
	{types.StockBackorder, []string{
		"backorder", "back-order", "on back order", "en réapprovisionnement", "réassort",
	}},
	{types.StockLowStock, []string{
		"stock limité", "quantité limitée", "limité", "plus que", "derniers articles", "dernier article",
		"low stock", "limited stock", "only a few left", "few left", "left in stock", "almost gone",
	}},
	{types.StockInStock, []string{
		"en stock", "disponible", "expédié sous", "in stock", "instock", "available", "ships today",
		"ready to ship", "auf lager", "lieferbar", "en existencia",
	}},
}

var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:only|plus que|seulement|nur noch)\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:en stock|in stock|auf lager)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:left|restants?|disponibles?|available|remaining)`),
	regexp.MustCompile(`(?i)stock\s*:\s*(\d+)`),
	regexp.MustCompile(`(?i)quantit[ée]\s*(?:disponible)?\s*:\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:pièces?|pieces?|articles?|items?|units?|unités?)`),
}

// MapAvailability maps a structured availability value to a StockStatus
func MapAvailability(value string) types.StockStatus {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return types.StockUnknown
	}
	for _, entry := range availabilityTable {
		if strings.Contains(v, entry.token) {
			return entry.status
		}
	}
	return types.StockUnknown
}

// ClassifyStockText classifies freeform availability text in French or English
func ClassifyStockText(text string) (types.StockStatus, bool) {
	t := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if t == "" {
		return types.StockUnknown, false
	}
	for _, set := range stockKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(t, kw) {
				return set.status, true
			}
		}
	}
	return types.StockUnknown, false
}

// ExtractQuantity returns the first quantity-shaped number in text
func ExtractQuantity(text string) (int, bool) {
	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 0 {
			continue
		}
		return n, true
	}
	return 0, false
}
