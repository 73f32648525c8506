package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Price is a parsed monetary amount
type Price struct {
	Amount   float64
	Currency string
}

var (
	// space-grouped numbers ("1 234,56") are tried before plain ones. A
	// whitespace group only counts when it has a decimal part or sits next to
	// a currency, so "99 100 left" reads as 99.
	priceNumberRe = regexp.MustCompile(`\d{1,3}(?:[ \x{00a0}\x{202f}']\d{3})+(?:[.,]\d+)?|\d[\d.,]*`)
	plainNumberRe = regexp.MustCompile(`\d[\d.,]*`)
	decimalTailRe = regexp.MustCompile(`[.,]\d+$`)

	isoCodeRe = regexp.MustCompile(`\b(EUR|USD|GBP|CHF|CAD|AUD|JPY|CNY|INR|PLN|SEK|NOK|DKK|CZK|HUF|RON|BRL|MXN|TRY|RUB|KRW|HKD|SGD|NZD|ZAR|AED|SAR|MAD)\b`)

	// longer symbols first so "R$" is not read as "$"
	currencySymbols = []struct {
		symbol string
		code   string
	}{
		{"R$", "BRL"},
		{"CA$", "CAD"},
		{"C$", "CAD"},
		{"AU$", "AUD"},
		{"A$", "AUD"},
		{"HK$", "HKD"},
		{"US$", "USD"},
		{"€", "EUR"},
		{"£", "GBP"},
		{"¥", "JPY"},
		{"₹", "INR"},
		{"₩", "KRW"},
		{"₽", "RUB"},
		{"₺", "TRY"},
		{"zł", "PLN"},
		{"$", "USD"},
	}
)

// ParsePrice turns freeform localized price text into an amount and, when
// the text carries one, a currency code.
//
// Separator handling is a heuristic: with both "." and "," present the last
// one is the decimal separator; with a single separator followed by exactly
// three digits (and a short non-zero integer part) it is a thousands
// separator; otherwise it is the decimal separator.
func ParsePrice(text string) (Price, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Price{}, false
	}

	loc := priceNumberRe.FindStringIndex(text)
	if loc == nil {
		return Price{}, false
	}
	raw := text[loc[0]:loc[1]]
	if strings.ContainsAny(raw, " \u00a0\u202f") && !decimalTailRe.MatchString(raw) &&
		!currencyNextTo(text[:loc[0]], text[loc[1]:]) {
		raw = plainNumberRe.FindString(raw)
	}

	amount, ok := parseNumber(raw)
	if !ok {
		return Price{}, false
	}

	currency, _ := DetectCurrency(text)
	return Price{Amount: amount, Currency: currency}, true
}

func currencyNextTo(before, after string) bool {
	before = strings.TrimRight(before, " \u00a0\u202f")
	after = strings.TrimLeft(after, " \u00a0\u202f")
	for _, cs := range currencySymbols {
		if strings.HasSuffix(before, cs.symbol) || strings.HasPrefix(after, cs.symbol) {
			return true
		}
	}
	if loc := isoCodeRe.FindStringIndex(after); loc != nil && loc[0] == 0 {
		return true
	}
	codes := isoCodeRe.FindAllStringIndex(before, -1)
	return len(codes) > 0 && codes[len(codes)-1][1] == len(before)
}

// ParseAmount is ParsePrice without the currency
func ParseAmount(text string) (float64, bool) {
	p, ok := ParsePrice(text)
	return p.Amount, ok
}

func parseNumber(raw string) (float64, bool) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, raw)
	s = strings.Trim(s, ".,")
	if s == "" {
		return 0, false
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		s = resolveSingleSeparator(s, ".")
	case lastComma >= 0:
		s = resolveSingleSeparator(s, ",")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func resolveSingleSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}

	idx := strings.Index(s, sep)
	intPart := s[:idx]
	fraction := s[idx+1:]
	if len(fraction) == 3 && len(intPart) <= 3 && strings.TrimLeft(intPart, "0") != "" {
		return intPart + fraction
	}
	return intPart + "." + fraction
}

// DetectCurrency returns the currency named in text by ISO code or symbol
func DetectCurrency(text string) (string, bool) {
	if m := isoCodeRe.FindString(text); m != "" {
		return m, true
	}
	for _, cs := range currencySymbols {
		if strings.Contains(text, cs.symbol) {
			return cs.code, true
		}
	}
	return "", false
}

// SniffCurrency is the last-resort currency guess over page text
func SniffCurrency(text string) string {
	switch {
	case strings.Contains(text, "$"):
		return "USD"
	case strings.Contains(text, "£"):
		return "GBP"
	default:
		return "EUR"
	}
}
