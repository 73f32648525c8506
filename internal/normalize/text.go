package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minBrandLength = 2
	maxBrandLength = 99
)

// brandPrefixes are stripped from the start of brand text, longest first
var brandPrefixes = []string{
	"visiter la boutique", "visit the", "brand:", "brand :", "marque:", "marque :",
	"by:", "by", "par", "marque", "visit", "de la marque", "brand",
}

var brandSuffixRe = regexp.MustCompile(`(?i)\s+(?:store|boutique|shop)$`)

// CleanText collapses whitespace runs into single spaces
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanBrand strips marketing prefixes from brand text and bounds its length
func CleanBrand(raw string) (string, bool) {
	s := CleanText(raw)
	for {
		stripped := false
		lower := strings.ToLower(s)
		for _, p := range brandPrefixes {
			if !strings.HasPrefix(lower, p) {
				continue
			}
			rest := s[len(p):]
			// "by" must be a whole word: keep "Bybrand"
			if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasSuffix(p, ":") {
				continue
			}
			s = strings.TrimSpace(strings.TrimLeft(rest, " :-"))
			stripped = true
			break
		}
		if !stripped {
			break
		}
	}
	s = brandSuffixRe.ReplaceAllString(s, "")
	s = strings.Trim(s, " :-|,")

	n := utf8.RuneCountInString(s)
	if n < minBrandLength || n > maxBrandLength {
		return "", false
	}
	return s, true
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
