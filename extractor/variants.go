package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const (
	variantTypeSize   = "size"
	variantTypeColor  = "color"
	variantTypeOption = "option"

	maxVariants = 100
)

var (
	sizeLabels  = []string{"size", "taille", "pointure", "größe", "talla", "tamaño"}
	colorLabels = []string{"color", "colour", "couleur", "farbe", "coloris"}

	// selects that never hold product options
	ignoredSelects = []string{"quantity", "qty", "quantité", "country", "pays", "sort", "orderby", "lang", "currency", "devise", "rating"}

	placeholderOptions = []string{"choose", "select", "choisir", "choisissez", "sélectionner", "selectionner", "pick", "--", "wählen"}
)

// DefaultVariantExtractor reads variants from structured data, option lists
// and platform swatches, first source wins
type DefaultVariantExtractor struct{}

var _ VariantExtractor = (*DefaultVariantExtractor)(nil)

// ExtractVariants implements VariantExtractor
func (d *DefaultVariantExtractor) ExtractVariants(_ context.Context, s *Snapshot) []types.Variant {
	variants, _ := firstOf(
		func() ([]types.Variant, bool) { return nonEmpty(structuredVariants(s.structured)) },
		func() ([]types.Variant, bool) { return nonEmpty(selectVariants(s.Doc)) },
		func() ([]types.Variant, bool) { return nonEmpty(swatchVariants(s)) },
	)
	return variants
}

func (e *Extractor) extractVariants(ctx context.Context, s *Snapshot) (patch, error) {
	variants := e.variants.ExtractVariants(ctx, s)
	if len(variants) == 0 {
		return nil, nil
	}
	return func(r *types.ProductRecord) {
		r.Variants = variants
	}, nil
}

func structuredVariants(product node) []types.Variant {
	var out variantList
	for _, v := range product.children("hasVariant") {
		matched := false
		for _, prop := range []string{"color", "size", "material", "pattern"} {
			if value, ok := v.str(prop); ok {
				out.add(prop, value)
				matched = true
			}
		}
		if !matched {
			if name, ok := v.str("name"); ok {
				out.add(variantTypeOption, name)
			}
		}
	}
	return out.items
}

func selectVariants(doc *goquery.Document) []types.Variant {
	var out variantList
	doc.Find("select").Each(func(_ int, sel *goquery.Selection) {
		label := selectLabel(doc, sel)
		if isIgnoredSelect(label + " " + sel.AttrOr("name", "") + " " + sel.AttrOr("id", "")) {
			return
		}
		sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
			text := normalize.CleanText(opt.Text())
			value := strings.TrimSpace(opt.AttrOr("value", text))
			if value == "" || text == "" || isPlaceholderOption(text) {
				return
			}
			out.add(label, text)
		})
	})
	return out.items
}

func swatchVariants(s *Snapshot) []types.Variant {
	var out variantList
	for _, table := range s.Tables() {
		for _, sw := range table.Swatches {
			s.Doc.Find(sw.Selector).Each(func(_ int, el *goquery.Selection) {
				value := normalize.CleanText(el.Text())
				if sw.Attr != "" {
					value = normalize.CleanText(el.AttrOr(sw.Attr, ""))
				}
				out.add(sw.Name, value)
			})
		}
		if len(out.items) > 0 {
			break
		}
	}
	return out.items
}

func selectLabel(doc *goquery.Document, sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		if text := normalize.CleanText(doc.Find(fmt.Sprintf("label[for=%q]", id)).First().Text()); text != "" {
			return strings.TrimRight(text, " :")
		}
	}
	if v, ok := adapters.AttrOf(sel, "aria-label", "data-option-name", "name"); ok {
		return v
	}
	return variantTypeOption
}

// variantType derives the variant type from its label
func variantType(label string) string {
	lower := strings.ToLower(label)
	for _, l := range sizeLabels {
		if strings.Contains(lower, l) {
			return variantTypeSize
		}
	}
	for _, l := range colorLabels {
		if strings.Contains(lower, l) {
			return variantTypeColor
		}
	}
	return variantTypeOption
}

func isIgnoredSelect(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range ignoredSelects {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isPlaceholderOption(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range placeholderOptions {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}
	return false
}

// variantList collects unique variants in order
type variantList struct {
	items []types.Variant
	seen  map[string]bool
}

func (l *variantList) add(name, value string) {
	value = normalize.CleanText(value)
	if value == "" || len(l.items) >= maxVariants {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	v := types.Variant{Name: normalize.CleanText(name), Value: value, Type: variantType(name)}
	key := v.Type + "\x00" + strings.ToLower(v.Value)
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.items = append(l.items, v)
}

func nonEmpty[T any](items []T) ([]T, bool) {
	return items, len(items) > 0
}
