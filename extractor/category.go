package extractor

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const categorySeparator = " > "

var (
	breadcrumbSeparators = map[string]bool{">": true, "/": true, "›": true, "»": true, "|": true, "-": true, "•": true, "→": true, "<": true, "‹": true}
	breadcrumbHome       = map[string]bool{"home": true, "accueil": true, "home page": true, "startseite": true, "inicio": true}
)

func (e *Extractor) extractCategory(_ context.Context, s *Snapshot) (patch, error) {
	category, ok := firstOf(
		func() (string, bool) {
			return s.breadcrumb(s.Selectors(func(sel *adapters.Selectors) []string { return sel.Breadcrumb }))
		},
		func() (string, bool) { return adapters.Meta(s.Doc, "product:category", "category", "og:product:category") },
		func() (string, bool) { return s.structured.str("category") },
	)
	if !ok {
		return nil, nil
	}
	return func(r *types.ProductRecord) {
		r.Category = normalize.CleanText(category)
	}, nil
}

// breadcrumb reads the first breadcrumb container with usable segments and
// keeps its last two
func (s *Snapshot) breadcrumb(selectors []string) (string, bool) {
	for _, selector := range selectors {
		container := s.Doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		var segments []string
		container.Find("a, span, li").Each(func(_ int, el *goquery.Selection) {
			// leaves only, so nested span/a text is not counted twice
			if el.Find("a, span, li").Length() > 0 {
				return
			}
			text := normalize.CleanText(el.Text())
			lower := strings.ToLower(text)
			if text == "" || breadcrumbSeparators[text] || breadcrumbHome[lower] {
				return
			}
			if n := len(segments); n > 0 && segments[n-1] == text {
				return
			}
			segments = append(segments, text)
		})

		if len(segments) == 0 {
			continue
		}
		if len(segments) > 2 {
			segments = segments[len(segments)-2:]
		}
		return strings.Join(segments, categorySeparator), true
	}
	return "", false
}
