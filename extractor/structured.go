package extractor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

// productTypes are the structured data types treated as a product block
var productTypes = map[string]bool{
	"product":           true,
	"productgroup":      true,
	"individualproduct": true,
	"productmodel":      true,
}

// node is one decoded JSON-LD object
type node map[string]interface{}

// parseStructuredProduct returns the first Product-typed JSON-LD block of
// the page. Malformed blocks are logged and skipped.
func parseStructuredProduct(doc *goquery.Document, logger types.Logger) node {
	var found node
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var data interface{}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			logger.Debugf("%v", perrors.NewMalformed("structured", "skipping json-ld block "+strconv.Itoa(i), err))
			return true
		}
		found = findProduct(data, 0)
		return found == nil
	})
	return found
}

func findProduct(data interface{}, depth int) node {
	if depth > 6 {
		return nil
	}
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			if n := findProduct(item, depth+1); n != nil {
				return n
			}
		}
	case map[string]interface{}:
		n := node(v)
		if n.isProduct() {
			return n
		}
		if graph, ok := v["@graph"]; ok {
			return findProduct(graph, depth+1)
		}
		if main, ok := v["mainEntity"]; ok {
			return findProduct(main, depth+1)
		}
	}
	return nil
}

func (n node) isProduct() bool {
	switch t := n["@type"].(type) {
	case string:
		return productTypes[strings.ToLower(t)]
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && productTypes[strings.ToLower(s)] {
				return true
			}
		}
	}
	return false
}

// str returns the first of keys holding a non-empty string or number
func (n node) str(keys ...string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, key := range keys {
		if s, ok := scalar(n[key]); ok {
			return s, true
		}
	}
	return "", false
}

// num returns the first of keys holding a number or a numeric string
func (n node) num(keys ...string) (float64, bool) {
	if n == nil {
		return 0, false
	}
	for _, key := range keys {
		switch v := n[key].(type) {
		case float64:
			if v >= 0 {
				return v, true
			}
		case string:
			v = strings.TrimSpace(v)
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
				return f, true
			}
			if f, ok := normalize.ParseAmount(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// child returns key as an object, taking the first element of an array
func (n node) child(key string) (node, bool) {
	if n == nil {
		return nil, false
	}
	switch v := n[key].(type) {
	case map[string]interface{}:
		return node(v), true
	case []interface{}:
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				return node(m), true
			}
		}
	}
	return nil, false
}

// children returns key as a list of objects
func (n node) children(key string) []node {
	if n == nil {
		return nil
	}
	switch v := n[key].(type) {
	case map[string]interface{}:
		return []node{node(v)}
	case []interface{}:
		var out []node
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, node(m))
			}
		}
		return out
	}
	return nil
}

// urls returns the URLs held by key: a string, an array of strings, or
// objects carrying url/contentUrl
func (n node) urls(key string) []string {
	if n == nil {
		return nil
	}
	var out []string
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case []interface{}:
			for _, item := range t {
				walk(item)
			}
		case map[string]interface{}:
			m := node(t)
			if s, ok := m.str("contentUrl", "url", "embedUrl", "@id"); ok {
				out = append(out, s)
			}
		}
	}
	walk(n[key])
	return out
}

// offer returns the first offer, descending into AggregateOffer lists
func (n node) offer() (node, bool) {
	o, ok := n.child("offers")
	if !ok {
		return nil, false
	}
	if inner, ok := o.child("offers"); ok {
		if _, hasPrice := o.num("price", "lowPrice", "highPrice"); !hasPrice {
			return inner, true
		}
	}
	return o, true
}

func scalar(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case map[string]interface{}:
		// {"@value": "..."} and named objects
		if s, ok := scalar(t["@value"]); ok {
			return s, true
		}
		return scalar(t["name"])
	case []interface{}:
		for _, item := range t {
			if s, ok := scalar(item); ok {
				return s, true
			}
		}
	}
	return "", false
}
