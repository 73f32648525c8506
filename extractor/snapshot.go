package extractor

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

// Snapshot is a read-only view of a page taken once per extraction. Field
// extractors share it; none of them may modify the document.
type Snapshot struct {
	URL      string
	Host     string
	Doc      *goquery.Document
	Scripts  []string
	Platform *adapters.Platform

	structured node
	registry   *adapters.Registry
	page       types.Page
}

// Structured returns the decoded Product block, or nil when the page has none
func (s *Snapshot) Structured() map[string]interface{} {
	return s.structured
}

// Selectors returns the platform selectors for a field followed by the
// generic ones
func (s *Snapshot) Selectors(field func(*adapters.Selectors) []string) []string {
	return s.registry.Chain(s.Platform, field)
}

// Tables returns the platform table (unless generic) and the generic table
func (s *Snapshot) Tables() []*adapters.Selectors {
	var out []*adapters.Selectors
	if !s.Platform.IsGeneric() {
		out = append(out, &s.Platform.Selectors)
	}
	return append(out, &s.registry.Generic().Selectors)
}

// BodyText returns the visible text of the page body
func (s *Snapshot) BodyText() string {
	body := s.Doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return body.Text()
}

func (e *Extractor) snapshot(ctx context.Context, page types.Page) (*Snapshot, error) {
	content, err := page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrPageUnavailable, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty content", perrors.ErrPageUnavailable)
	}

	doc, err := adapters.ParseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrPageUnavailable, err)
	}

	pageURL := page.URL()
	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Hostname()
	}

	return &Snapshot{
		URL:        pageURL,
		Host:       host,
		Doc:        doc,
		Scripts:    adapters.ScriptTexts(doc),
		Platform:   e.registry.Detect(host),
		structured: parseStructuredProduct(doc, e.logger),
		registry:   e.registry,
		page:       page,
	}, nil
}

// refresh re-reads the page after gallery expansion. Platform and
// structured data are kept from the original snapshot.
func (s *Snapshot) refresh(ctx context.Context) (*Snapshot, error) {
	content, err := s.page.Content(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := adapters.ParseHTML(content)
	if err != nil {
		return nil, err
	}
	fresh := *s
	fresh.Doc = doc
	fresh.Scripts = adapters.ScriptTexts(doc)
	return &fresh, nil
}

func (s *Snapshot) text(selectors []string) (string, bool) {
	m, ok := adapters.FirstText(s.Doc.Selection, selectors)
	return m.Value, ok
}

// itemprop reads microdata properties from content/value attributes or text
func (s *Snapshot) itemprop(names ...string) (string, bool) {
	for _, name := range names {
		var value string
		s.Doc.Find(fmt.Sprintf("[itemprop=%q]", name)).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			value = adapters.ValueOf(sel, "content", "value", "href")
			return value == ""
		})
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// firstOf runs strategies in order and returns the first value found
func firstOf[T any](strategies ...func() (T, bool)) (T, bool) {
	for _, strategy := range strategies {
		if v, ok := strategy(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
