package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

// attributes that may hold a gallery image URL, best quality first
var imageAttrs = []string{
	"data-old-hires", "data-zoom-image", "data-zoom", "data-large-image", "data-large", "data-hires",
	"data-high-res", "data-full", "data-full-image", "data-original", "data-src", "data-lazy-src",
	"data-lazy", "data-image", "src",
}

const zoomSweepSelector = "[data-zoom-image], [data-zoom], [data-large-image], [data-large], [data-hires], " +
	"[data-high-res], [data-original], [data-full], [data-full-image], [data-image-large], a[data-fancybox][href], a.zoom[href]"

var (
	genericScriptImageRe = regexp.MustCompile(`"(?:image|img|src|url|large|zoom|hiRes|original|full)(?:Url|URL|_url|_src)?"\s*:\s*"((?:https?:)?(?:\\?/){2}[^"\s]+?\.(?:jpe?g|png|webp)[^"\s]*)"`)
	jsUnicodeSlashRe     = regexp.MustCompile(`\\u002[fF]`)
)

func (e *Extractor) extractImages(ctx context.Context, s *Snapshot) (patch, error) {
	set := normalize.NewURLSet(e.config.MaxImages)
	add := func(raw string) {
		if u, ok := normalize.CleanImageURL(raw, s.URL); ok {
			set.Add(u)
		}
	}

	// 1. structured data
	for _, u := range s.structured.urls("image") {
		add(u)
	}

	// 2. script payloads, platform families first
	patterns := append(append([]*regexp.Regexp{}, s.Platform.ScriptImages...), genericScriptImageRe)
	for _, re := range patterns {
		for _, script := range s.Scripts {
			for _, m := range re.FindAllStringSubmatch(script, -1) {
				add(unescapeJS(m[1]))
				if set.Full() {
					return imagesPatch(set), nil
				}
			}
		}
	}

	// Activation must finish before the gallery is read again
	read := s
	if e.config.ExpandGallery && !set.Full() {
		if clicks := e.expandGallery(ctx, s); clicks > 0 {
			fresh, err := s.refresh(ctx)
			if err != nil {
				e.logger.Debugf("Re-reading %s after gallery expansion failed: %v", s.URL, err)
			} else {
				read = fresh
			}
		}
	}
	doc := read.Doc

	// 3. gallery selectors
	for _, selector := range read.Selectors(func(sel *adapters.Selectors) []string { return sel.Images }) {
		doc.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			for _, u := range elementImageURLs(el) {
				add(u)
			}
			return !set.Full()
		})
		if set.Full() {
			return imagesPatch(set), nil
		}
	}

	// 4. zoom and high-res attributes anywhere
	doc.Find(zoomSweepSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		for _, attr := range []string{"data-zoom-image", "data-zoom", "data-large-image", "data-large", "data-hires", "data-high-res", "data-original", "data-full", "data-full-image", "data-image-large", "href"} {
			if v, ok := el.Attr(attr); ok {
				add(v)
			}
		}
		return !set.Full()
	})

	// 5. social preview
	if v, ok := adapters.Meta(doc, "og:image:secure_url", "og:image", "twitter:image", "twitter:image:src"); ok {
		add(v)
	}

	// 6. srcset candidates
	doc.Find("img[srcset], source[srcset], img[data-srcset]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		for _, attr := range []string{"srcset", "data-srcset"} {
			for _, u := range normalize.ParseSrcset(el.AttrOr(attr, "")) {
				add(u)
			}
		}
		return !set.Full()
	})

	// 7. thumbnails, upsized
	for _, selector := range read.Selectors(func(sel *adapters.Selectors) []string { return sel.Thumbnails }) {
		doc.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if v, ok := adapters.AttrOf(el, "data-src", "src"); ok {
				add(normalize.UpsizeImageURL(v))
			}
			return !set.Full()
		})
	}

	// 8. inline background images inside gallery containers
	for _, selector := range read.Selectors(func(sel *adapters.Selectors) []string { return sel.Gallery }) {
		doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
			container.Find("[style*='background']").AddSelection(container).Each(func(_ int, el *goquery.Selection) {
				for _, u := range normalize.ExtractStyleURLs(el.AttrOr("style", "")) {
					add(u)
				}
			})
		})
	}

	return imagesPatch(set), nil
}

func imagesPatch(set *normalize.URLSet) patch {
	images := set.Items()
	return func(r *types.ProductRecord) {
		r.Images = images
	}
}

// expandGallery activates every thumbnail control so lazy sources load. It
// returns the number of successful activations.
func (e *Extractor) expandGallery(ctx context.Context, s *Snapshot) int {
	clicks := 0
	for _, selector := range s.Selectors(func(sel *adapters.Selectors) []string { return sel.Expansion }) {
		count := s.Doc.Find(selector).Length()
		for i := 0; i < count; i++ {
			if clicks >= e.config.MaxImages {
				return clicks
			}
			err := s.page.Activate(ctx, selector, i)
			if errors.Is(err, perrors.ErrNotInteractive) {
				return clicks
			}
			if err != nil {
				e.logger.Debugf("Activating %s[%d] failed: %v", selector, i, err)
				continue
			}
			clicks++
			if !sleepContext(ctx, e.config.ExpansionDelay) {
				return clicks
			}
		}
	}
	return clicks
}

// elementImageURLs reads every plausible image attribute of a gallery
// element, including the dynamic image map (largest first)
func elementImageURLs(el *goquery.Selection) []string {
	var out []string
	if raw, ok := el.Attr("data-a-dynamic-image"); ok {
		out = append(out, dynamicImageURLs(raw)...)
	}
	for _, attr := range imageAttrs {
		if v, ok := el.Attr(attr); ok && strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// dynamicImageURLs decodes {"url": [width, height], ...} maps
func dynamicImageURLs(raw string) []string {
	var sizes map[string][]float64
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return nil
	}
	type sized struct {
		url  string
		area float64
	}
	list := make([]sized, 0, len(sizes))
	for u, dims := range sizes {
		area := 0.0
		if len(dims) >= 2 {
			area = dims[0] * dims[1]
		}
		list = append(list, sized{url: u, area: area})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].area != list[j].area {
			return list[i].area > list[j].area
		}
		return list[i].url < list[j].url
	})
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = item.url
	}
	return out
}

func unescapeJS(s string) string {
	s = jsUnicodeSlashRe.ReplaceAllString(s, "/")
	return strings.ReplaceAll(s, `\/`, "/")
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
