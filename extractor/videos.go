package extractor

import (
	"context"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const embedSelector = "iframe[src*='youtube.com'], iframe[src*='youtube-nocookie.com'], iframe[src*='youtu.be'], " +
	"iframe[src*='vimeo.com'], iframe[src*='dailymotion.com'], iframe[data-src*='youtube'], iframe[data-src*='vimeo']"

var scriptVideoRe = regexp.MustCompile(`(?:https?:)?(?:\\?/){2}[^"'\s]+?\.(?:mp4|webm|m3u8)(?:\?[^"'\s]*)?`)

func (e *Extractor) extractVideos(_ context.Context, s *Snapshot) (patch, error) {
	set := normalize.NewURLSet(e.config.MaxVideos)
	add := func(raw string) {
		if u := normalize.ResolveURL(unescapeJS(raw), s.URL); u != "" {
			set.Add(u)
		}
	}

	for _, u := range s.structured.urls("video") {
		add(u)
	}

	s.Doc.Find("video[src], video[data-src], video source[src], video source[data-src]").Each(func(_ int, el *goquery.Selection) {
		if v, ok := adapters.AttrOf(el, "src", "data-src"); ok {
			add(v)
		}
	})

	s.Doc.Find(embedSelector).Each(func(_ int, el *goquery.Selection) {
		if v, ok := adapters.AttrOf(el, "src", "data-src"); ok {
			add(v)
		}
	})

	if v, ok := adapters.Meta(s.Doc, "og:video:secure_url", "og:video:url", "og:video", "twitter:player:stream"); ok {
		add(v)
	}

	for _, script := range s.Scripts {
		if set.Full() {
			break
		}
		for _, m := range scriptVideoRe.FindAllString(script, -1) {
			add(m)
		}
	}

	if set.Len() == 0 {
		return nil, nil
	}
	videos := set.Items()
	return func(r *types.ProductRecord) {
		r.Videos = videos
	}, nil
}
