package utils

import (
	"context"

	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
)

// StaticPage is a page fetched once over HTTP. It has no scripting, so
// nothing on it can be activated.
type StaticPage struct {
	url  string
	html string
}

var _ types.Page = (*StaticPage)(nil)

// NewStaticPage wraps already fetched HTML
func NewStaticPage(url, html string) *StaticPage {
	return &StaticPage{url: url, html: html}
}

// URL implements types.Page
func (p *StaticPage) URL() string {
	return p.url
}

// Content implements types.Page
func (p *StaticPage) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.html, nil
}

// Activate implements types.Page. A static page never changes.
func (p *StaticPage) Activate(context.Context, string, int) error {
	return perrors.ErrNotInteractive
}

// Close implements LoadedPage
func (p *StaticPage) Close() {}
