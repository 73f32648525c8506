package extractor

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/normalize"
	"product-extractor/internal/types"
)

const (
	maxRating          = 5.0
	maxReviewTextChars = 5000
)

var (
	// a-star-4-5, stars-4, rating_3, star4
	ratingClassRe = regexp.MustCompile(`(?i)(?:star|rating)s?[-_]?(\d)(?:[-_](\d))?\b`)
	ratingTextRe  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
)

// DefaultReviewExtractor reads reviews from structured data, then from the
// platform and generic review selectors
type DefaultReviewExtractor struct {
	Max int
}

var _ ReviewExtractor = (*DefaultReviewExtractor)(nil)

// ExtractReviews implements ReviewExtractor
func (d *DefaultReviewExtractor) ExtractReviews(_ context.Context, s *Snapshot) []types.Review {
	reviews, _ := firstOf(
		func() ([]types.Review, bool) { return nonEmpty(structuredReviews(s, d.Max)) },
		func() ([]types.Review, bool) { return nonEmpty(selectorReviews(s, d.Max)) },
	)
	return reviews
}

func (e *Extractor) extractReviews(ctx context.Context, s *Snapshot) (patch, error) {
	reviews := e.reviews.ExtractReviews(ctx, s)
	rating, count := aggregateRating(s)
	if len(reviews) == 0 && rating == nil && count == nil {
		return nil, nil
	}
	return func(r *types.ProductRecord) {
		r.Reviews = reviews
		r.Rating = rating
		r.ReviewCount = count
	}, nil
}

func aggregateRating(s *Snapshot) (*float64, *int) {
	var rating *float64
	var count *int
	if agg, ok := s.structured.child("aggregateRating"); ok {
		if v, ok := agg.num("ratingValue"); ok {
			rating = &v
		}
		if n, ok := agg.num("reviewCount", "ratingCount"); ok {
			c := int(n)
			count = &c
		}
	}

	// microdata, scoped so a single review's rating is not taken
	agg := s.Doc.Find("[itemprop='aggregateRating']").First()
	if agg.Length() == 0 {
		return rating, count
	}
	if rating == nil {
		if v, ok := ratingOf(agg.Find("[itemprop='ratingValue']").First()); ok {
			rating = &v
		}
	}
	if count == nil {
		for _, prop := range []string{"reviewCount", "ratingCount"} {
			raw := adapters.ValueOf(agg.Find("[itemprop='"+prop+"']").First(), "content")
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
				count = &n
				break
			}
		}
	}
	return rating, count
}

func structuredReviews(s *Snapshot, max int) []types.Review {
	var out []types.Review
	for _, n := range s.structured.children("review") {
		if max > 0 && len(out) >= max {
			break
		}
		review := types.Review{}
		review.Author, _ = n.str("author")
		text, _ := n.str("reviewBody", "description")
		review.Text = normalize.Truncate(normalize.CleanText(text), maxReviewTextChars)
		review.Date, _ = n.str("datePublished", "dateCreated")
		if rr, ok := n.child("reviewRating"); ok {
			if v, ok := rr.num("ratingValue"); ok {
				review.Rating = &v
			}
		}
		for _, u := range n.urls("image") {
			if clean, ok := normalize.CleanImageURL(u, s.URL); ok {
				review.Images = append(review.Images, clean)
			}
		}
		if review.Text != "" || review.Rating != nil {
			out = append(out, review)
		}
	}
	return out
}

func selectorReviews(s *Snapshot, max int) []types.Review {
	for _, table := range s.Tables() {
		for _, rs := range table.Reviews {
			var out []types.Review
			s.Doc.Find(rs.Container).EachWithBreak(func(_ int, c *goquery.Selection) bool {
				if review, ok := readReview(c, rs, s.URL); ok {
					out = append(out, review)
				}
				return max <= 0 || len(out) < max
			})
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func readReview(c *goquery.Selection, rs adapters.ReviewSelectors, base string) (types.Review, bool) {
	review := types.Review{}
	if rs.Author != "" {
		review.Author = normalize.CleanText(c.Find(rs.Author).First().Text())
	}
	if rs.Text != "" {
		review.Text = normalize.Truncate(normalize.CleanText(c.Find(rs.Text).First().Text()), maxReviewTextChars)
	}
	if rs.Date != "" {
		date := c.Find(rs.Date).First()
		review.Date = adapters.ValueOf(date, "datetime", "content")
	}
	if rs.Rating != "" {
		if v, ok := ratingOf(c.Find(rs.Rating).First()); ok {
			review.Rating = &v
		}
	}
	if rs.Images != "" {
		c.Find(rs.Images).Each(func(_ int, img *goquery.Selection) {
			if raw, ok := adapters.AttrOf(img, "data-src", "src"); ok {
				if u, ok := normalize.CleanImageURL(raw, base); ok {
					review.Images = append(review.Images, u)
				}
			}
		})
	}
	return review, review.Text != "" || review.Rating != nil
}

// ratingOf reads a star rating from attributes, then a class-name digit,
// then the element text
func ratingOf(el *goquery.Selection) (float64, bool) {
	if el.Length() == 0 {
		return 0, false
	}
	for _, attr := range []string{"content", "data-rating", "value", "aria-label", "title"} {
		if v, ok := el.Attr(attr); ok {
			if r, ok := parseRatingText(v); ok {
				return r, true
			}
		}
	}
	if class, ok := el.Attr("class"); ok {
		if m := ratingClassRe.FindStringSubmatch(class); m != nil {
			r, _ := strconv.ParseFloat(m[1], 64)
			if m[2] != "" {
				frac, _ := strconv.ParseFloat(m[2], 64)
				r += frac / 10
			}
			if r <= maxRating {
				return r, true
			}
		}
	}
	return parseRatingText(el.Text())
}

func parseRatingText(text string) (float64, bool) {
	m := ratingTextRe.FindString(text)
	if m == "" {
		return 0, false
	}
	r, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil || r < 0 || r > maxRating {
		return 0, false
	}
	return r, true
}
