package utils

import (
	"context"
	"sync"

	"product-extractor/internal/types"
)

// LoadedPage is a page that holds resources until closed
type LoadedPage interface {
	types.Page
	Close()
}

// PageLoader opens product pages in the headless browser or over plain HTTP,
// depending on the configuration
type PageLoader struct {
	config *types.Config
	logger types.Logger
	http   *HTTPClient

	once    sync.Once
	browser *BrowserClient
}

// NewPageLoader creates a page loader
func NewPageLoader(config *types.Config, logger types.Logger) *PageLoader {
	return &PageLoader{
		config: config,
		logger: logger,
		http:   NewHTTPClient(config, logger),
	}
}

// Load opens url. With the browser enabled a failed browser load falls back
// to a static HTTP fetch.
func (l *PageLoader) Load(ctx context.Context, url string) (LoadedPage, error) {
	if l.config.UseHeadlessBrowser {
		page, err := l.browserClient().Open(ctx, url)
		if err == nil {
			return page, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		l.logger.Warnf("Browser load of %s failed, falling back to HTTP: %v", url, err)
	}

	body, err := l.http.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewStaticPage(url, string(body)), nil
}

func (l *PageLoader) browserClient() *BrowserClient {
	l.once.Do(func() {
		l.browser = NewBrowserClient(l.config, l.logger)
	})
	return l.browser
}

// Close releases the HTTP client and the browser
func (l *PageLoader) Close() {
	l.http.Close()
	if l.browser != nil {
		l.browser.Close()
	}
}
