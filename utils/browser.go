package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"product-extractor/internal/types"
)

// settle time after navigation for dynamic content
const navigationSettle = 500 * time.Millisecond

// BrowserClient owns a headless Chrome allocator shared by every page it opens
type BrowserClient struct {
	config      *types.Config
	logger      types.Logger
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewBrowserClient creates a new browser client. Chrome is started lazily by
// the first Open.
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(config.UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserClient{
		config:      config,
		logger:      logger,
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
	}
}

// Open navigates a new tab to url and returns it as a page
func (b *BrowserClient) Open(ctx context.Context, url string) (*BrowserPage, error) {
	// chromedp's own logging goes to debug
	tabCtx, cancel := chromedp.NewContext(b.allocCtx, chromedp.WithErrorf(b.logger.Debugf))

	// the tab must be allocated on its own context, a timeout context would
	// take it down when it fires
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser tab: %w", err)
	}

	timeout := b.config.Timeout
	if timeout <= 0 {
		timeout = types.DefaultConfig().Timeout
	}
	page := &BrowserPage{
		url:     url,
		tabCtx:  tabCtx,
		cancel:  cancel,
		timeout: timeout,
	}

	err := page.run(ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(navigationSettle),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}

	b.logger.Debugf("Opened %s in headless browser", url)
	return page, nil
}

// Close shuts the browser down
func (b *BrowserClient) Close() {
	if b.cancelAlloc != nil {
		b.cancelAlloc()
	}
}

// BrowserPage is a live browser tab. Content reflects the DOM at call time,
// so it changes after Activate.
type BrowserPage struct {
	url     string
	tabCtx  context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

var _ types.Page = (*BrowserPage)(nil)

// URL implements types.Page
func (p *BrowserPage) URL() string {
	return p.url
}

// Content implements types.Page
func (p *BrowserPage) Content(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}
	return html, nil
}

// Activate implements types.Page by clicking the element in page script, which
// works for hidden thumbnails that a synthetic mouse event would miss
func (p *BrowserPage) Activate(ctx context.Context, selector string, index int) error {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return err
	}
	script := fmt.Sprintf(`(function() {
		const els = document.querySelectorAll(%s);
		if (%d >= els.length) return false;
		els[%d].click();
		return true;
	})()`, quoted, index, index)

	var clicked bool
	if err := p.run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return fmt.Errorf("failed to activate %s[%d]: %w", selector, index, err)
	}
	if !clicked {
		return fmt.Errorf("no element %s[%d]", selector, index)
	}
	return nil
}

// Close closes the tab
func (p *BrowserPage) Close() {
	p.cancel()
}

// run executes actions in the tab, bounded by the page timeout and by ctx.
// Cancelling the derived context leaves the tab open.
func (p *BrowserPage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.tabCtx, p.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
