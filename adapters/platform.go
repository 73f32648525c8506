package adapters

import (
	"regexp"
	"strings"
)

// Generic is the platform name returned when no host pattern matches
const Generic = "generic"

// Swatch describes one group of selectable variant elements
type Swatch struct {
	Name     string // variant name, e.g. "color"
	Selector string
	Attr     string // attribute holding the value; empty reads the text
}

// ReviewSelectors locate the parts of one review inside its container
type ReviewSelectors struct {
	Container string
	Author    string
	Rating    string
	Text      string
	Date      string
	Images    string
}

// Selectors is the selector table of one platform. Every list is ordered by
// priority.
type Selectors struct {
	Title         []string
	Description   []string
	Brand         []string
	Price         []string
	OriginalPrice []string
	Stock         []string
	AddToCart     []string
	Shipping      []string
	Breadcrumb    []string
	Images        []string
	Thumbnails    []string
	Expansion     []string
	Gallery       []string
	Swatches      []Swatch
	Reviews       []ReviewSelectors
	Specs         []string
}

// Platform is a named marketplace layout family
type Platform struct {
	Name      string
	Hosts     []string
	Selectors Selectors

	// ScriptImages match image URLs inside inline script payloads. The first
	// capture group holds the URL.
	ScriptImages []*regexp.Regexp
}

// IsGeneric reports whether p is the fallback platform
func (p *Platform) IsGeneric() bool {
	return p == nil || p.Name == Generic
}

// Registry holds the platform tables in detection order
type Registry struct {
	platforms []*Platform
	byName    map[string]*Platform
	generic   *Platform
}

// NewRegistry creates a registry over the built-in platform tables
func NewRegistry() *Registry {
	return NewRegistryWith(builtinPlatforms(), genericPlatform())
}

// NewRegistryWith creates a registry over custom tables
func NewRegistryWith(platforms []*Platform, generic *Platform) *Registry {
	r := &Registry{
		platforms: platforms,
		byName:    make(map[string]*Platform, len(platforms)+1),
		generic:   generic,
	}
	for _, p := range platforms {
		r.byName[p.Name] = p
	}
	r.byName[generic.Name] = generic
	return r
}

// Detect returns the first platform whose host patterns match host, or the
// generic platform
func (r *Registry) Detect(host string) *Platform {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return r.generic
	}
	for _, p := range r.platforms {
		for _, pattern := range p.Hosts {
			if strings.Contains(h, pattern) {
				return p
			}
		}
	}
	return r.generic
}

// Get returns a platform by name
func (r *Registry) Get(name string) (*Platform, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Generic returns the fallback platform
func (r *Registry) Generic() *Platform {
	return r.generic
}

// Names lists the detectable platforms in detection order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for _, p := range r.platforms {
		names = append(names, p.Name)
	}
	return names
}

// Chain returns the platform's selectors for one field followed by the
// generic ones, without duplicates
func (r *Registry) Chain(p *Platform, field func(*Selectors) []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(list []string) {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if p != nil && !p.IsGeneric() {
		add(field(&p.Selectors))
	}
	add(field(&r.generic.Selectors))
	return out
}

// DetectPlatform classifies a host with the built-in tables
func DetectPlatform(host string) string {
	return defaultRegistry.Detect(host).Name
}

var defaultRegistry = NewRegistry()
