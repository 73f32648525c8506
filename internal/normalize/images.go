package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

const minImageURLLength = 12

var imageBlocklist = []string{
	"placeholder", "sprite", "badge", "spinner", "loading.gif", "loader", "blank.gif", "spacer",
	"pixel.gif", "transparent.", "1x1.gif", "1x1.png", "no-image", "noimage", "no_image",
	"default-image", "favicon", "/icons/", "/icon/", "icon-", "_icon", "/logo", "logo.", "logo-",
	"avatar", "/flags/", "play-button", "data:image", "javascript:",
}

var (
	imageExtRe = regexp.MustCompile(`(?i)\.(?:jpe?g|png|webp|gif|avif|bmp|tiff?)$`)
	svgRe      = regexp.MustCompile(`(?i)\.svg(?:$|[?#])|image/svg`)

	// path rewrites, each preserving the file extension
	sizeTokenRewrites = []struct {
		re   *regexp.Regexp
		repl string
	}{
		// Amazon resize markers: name._AC_SX679_.jpg
		{regexp.MustCompile(`\._[A-Za-z0-9,_\-]+_\.`), "."},
		// AliExpress double extension: name.jpg_350x350.jpg, name.jpg_.webp
		{regexp.MustCompile(`(?i)(\.(?:jpe?g|png|webp|gif|avif))_[^/]*$`), "$1"},
		// retina suffix: name@2x.png, name@300x300.png
		{regexp.MustCompile(`(?i)@\d+x\d*(\.(?:jpe?g|png|webp|gif|avif))$`), "$1"},
		// _NxN, _Nx, _xN with optional quality, possibly stacked: name_350x350q90_.jpg
		{regexp.MustCompile(`(?i)(?:_(?:\d{2,4}x\d{0,4}|x\d{2,4})(?:q\d{1,3})?(?:_crop_[a-z]+)?)+_?(\.(?:jpe?g|png|webp|gif|avif))$`), "$1"},
		// small variant suffixes
		{regexp.MustCompile(`(?i)_(?:small|thumb|thumbnail|mini|tiny)(\.(?:jpe?g|png|webp|gif|avif))$`), "$1"},
		// transformation segments: /w_200,h_200,c_fill/, /cdn-cgi/image/width=200/, /200x200/
		{regexp.MustCompile(`/(?:[a-z]_[^/,]+,)*[wh]_\d+(?:,[a-z]_[^/,]+)*/`), "/"},
		{regexp.MustCompile(`/cdn-cgi/image/[^/]+/`), "/"},
		{regexp.MustCompile(`/\d{2,4}x\d{2,4}/`), "/"},
		// eBay sizes
		{regexp.MustCompile(`/s-l\d+\.`), "/s-l1600."},
		{regexp.MustCompile(`/{2,}`), "/"},
	}

	thumbSegmentRe = regexp.MustCompile(`(?i)/(?:thumbs?|thumbnails?|small|mini)/`)

	srcsetDescriptorRe = regexp.MustCompile(`^\d+(?:\.\d+)?[wxh]$`)
	styleURLRe         = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)
)

// query parameters that never identify an image
var strippedQueryParams = map[string]bool{
	"w": true, "h": true, "width": true, "height": true, "size": true, "resize": true,
	"quality": true, "fit": true, "crop": true, "dpr": true, "format": true,
	"v": true, "ver": true, "version": true, "_v": true, "timestamp": true, "cb": true,
	"fbclid": true, "gclid": true, "mc_cid": true, "mc_eid": true, "ref": true, "ref_": true,
	"_ga": true, "spm": true, "scm": true, "igshid": true,
}

// CleanImageURL canonicalizes an image URL against the page URL base.
// It returns false for placeholders, sprites, badges, SVGs, too-short
// strings and anything that does not end up as an absolute http(s) URL.
// Applying it to its own output returns the same string.
func CleanImageURL(raw, base string) (string, bool) {
	current, ok := cleanImageOnce(raw, base)
	if !ok {
		return "", false
	}
	// every rewrite shortens the path or leaves it as is, so this settles
	for {
		next, ok := cleanImageOnce(current, base)
		if !ok {
			return "", false
		}
		if next == current {
			return current, true
		}
		current = next
	}
}

func cleanImageOnce(raw, base string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < minImageURLLength {
		return "", false
	}

	lower := strings.ToLower(s)
	for _, kw := range imageBlocklist {
		if strings.Contains(lower, kw) {
			return "", false
		}
	}
	if svgRe.MatchString(lower) {
		return "", false
	}

	u, ok := absoluteURL(s, base)
	if !ok {
		return "", false
	}

	path := u.Path
	for _, rw := range sizeTokenRewrites {
		path = rw.re.ReplaceAllString(path, rw.repl)
	}
	u.Path = path
	u.RawPath = ""
	u.Fragment = ""

	if imageExtRe.MatchString(path) {
		u.RawQuery = ""
	} else {
		u.RawQuery = stripQuery(u.Query())
	}

	if u.Scheme == "http" {
		u.Scheme = "https"
	}
	if u.Scheme != "https" || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

func stripQuery(q url.Values) string {
	for key := range q {
		k := strings.ToLower(key)
		if strippedQueryParams[k] || strings.HasPrefix(k, "utm_") {
			q.Del(key)
		}
	}
	return q.Encode()
}

// absoluteURL resolves protocol-relative, root-relative and relative URLs
func absoluteURL(s, base string) (*url.URL, bool) {
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	if u.IsAbs() {
		return u, u.Host != ""
	}
	if base == "" {
		return nil, false
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return nil, false
	}
	resolved := b.ResolveReference(u)
	return resolved, resolved.Host != ""
}

// ResolveURL makes href absolute against base, returning "" when it cannot.
// Unlike CleanImageURL it keeps the scheme and query untouched.
func ResolveURL(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "data:") {
		return ""
	}
	u, ok := absoluteURL(href, base)
	if !ok || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}

// UpsizeImageURL swaps thumbnail path segments for large ones. Size tokens
// in the file name are handled by CleanImageURL.
func UpsizeImageURL(raw string) string {
	return thumbSegmentRe.ReplaceAllString(raw, "/large/")
}

// ParseSrcset returns every URL candidate listed in a srcset attribute
func ParseSrcset(srcset string) []string {
	var urls []string
	for _, field := range strings.Fields(srcset) {
		field = strings.TrimSuffix(field, ",")
		if field == "" || srcsetDescriptorRe.MatchString(field) {
			continue
		}
		for _, part := range strings.Split(field, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !srcsetDescriptorRe.MatchString(part) {
				urls = append(urls, part)
			}
		}
	}
	return urls
}

// ExtractStyleURLs returns the url(...) references of an inline style
func ExtractStyleURLs(style string) []string {
	var urls []string
	for _, m := range styleURLRe.FindAllStringSubmatch(style, -1) {
		urls = append(urls, strings.TrimSpace(m[1]))
	}
	return urls
}

// URLSet is an insertion-ordered set of canonical URLs with a size cap
type URLSet struct {
	max   int
	seen  map[string]bool
	items []string
}

// NewURLSet creates an empty set holding at most max URLs
func NewURLSet(max int) *URLSet {
	return &URLSet{max: max, seen: make(map[string]bool)}
}

// Add inserts u and reports whether it was new
func (s *URLSet) Add(u string) bool {
	if u == "" || s.Full() || s.seen[u] {
		return false
	}
	s.seen[u] = true
	s.items = append(s.items, u)
	return true
}

// Full reports whether the cap is reached
func (s *URLSet) Full() bool {
	return s.max > 0 && len(s.items) >= s.max
}

// Len returns the number of URLs held
func (s *URLSet) Len() int {
	return len(s.items)
}

// Items returns the URLs in insertion order
func (s *URLSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
