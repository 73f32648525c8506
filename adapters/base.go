package adapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/internal/normalize"
)

// Match is a selector hit: the selector that matched and the value read
type Match struct {
	Selector string
	Value    string
}

var labelValueRe = regexp.MustCompile(`^([^:]{1,80}?)\s*[:：]\s*(.+)$`)

// ParseHTML parses HTML content into a goquery document
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return doc, nil
}

// FirstText returns the first non-empty text of any element matched by the
// selectors, tried in order
func FirstText(root *goquery.Selection, selectors []string) (Match, bool) {
	for _, selector := range selectors {
		var hit Match
		found := false
		root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := normalize.CleanText(s.Text())
			if text == "" {
				return true
			}
			hit = Match{Selector: selector, Value: text}
			found = true
			return false
		})
		if found {
			return hit, true
		}
	}
	return Match{}, false
}

// FirstAttr returns the first non-empty value of any of attrs on elements
// matched by the selectors, tried in order
func FirstAttr(root *goquery.Selection, selectors []string, attrs ...string) (Match, bool) {
	for _, selector := range selectors {
		var hit Match
		found := false
		root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v, ok := AttrOf(s, attrs...); ok {
				hit = Match{Selector: selector, Value: v}
				found = true
				return false
			}
			return true
		})
		if found {
			return hit, true
		}
	}
	return Match{}, false
}

// AttrOf returns the first non-empty attribute of s among attrs
func AttrOf(s *goquery.Selection, attrs ...string) (string, bool) {
	for _, attr := range attrs {
		if v, ok := s.Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// ValueOf reads attrs first and falls back to the element text
func ValueOf(s *goquery.Selection, attrs ...string) string {
	if v, ok := AttrOf(s, attrs...); ok {
		return v
	}
	return normalize.CleanText(s.Text())
}

// Meta returns the content of the first meta tag whose property, name or
// itemprop equals one of keys
func Meta(doc *goquery.Document, keys ...string) (string, bool) {
	for _, key := range keys {
		for _, attr := range []string{"property", "name", "itemprop"} {
			sel := fmt.Sprintf("meta[%s=%q]", attr, key)
			if v, ok := AttrOf(doc.Find(sel).First(), "content"); ok {
				return v, true
			}
		}
	}
	return "", false
}

// LabelValues reads label/value pairs from a table, a definition list or a
// list of "label: value" items
func LabelValues(s *goquery.Selection) map[string]string {
	pairs := make(map[string]string)
	add := func(label, value string) {
		label = strings.TrimRight(normalize.CleanText(label), " :：")
		value = normalize.CleanText(value)
		if label == "" || value == "" || len(label) > 120 {
			return
		}
		if _, exists := pairs[label]; !exists {
			pairs[label] = value
		}
	}

	// Table rows: th/td or two td cells
	s.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		add(cells.Eq(0).Text(), cells.Eq(1).Text())
	})

	s.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		add(dt.Text(), dt.NextFiltered("dd").Text())
	})

	if len(pairs) > 0 {
		return pairs
	}

	items := s.Find("li")
	if goquery.NodeName(s) == "li" {
		items = s
	}
	items.Each(func(_ int, li *goquery.Selection) {
		if m := labelValueRe.FindStringSubmatch(normalize.CleanText(li.Text())); m != nil {
			add(m[1], m[2])
		}
	})

	return pairs
}

// ScriptTexts returns the text of every inline script tag
func ScriptTexts(doc *goquery.Document) []string {
	var out []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if text := s.Text(); strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	})
	return out
}
