// Package rod provides a page Fetcher backed by headless Chrome, for pages
// that only expose their meta tags after JavaScript runs.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/iframer"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 8 * time.Second

// Ensure Fetcher implements iframer.Fetcher at compile time.
var _ iframer.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool       *Pool
	timeout    time.Duration
	userAgent  string
	perBrowser int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithPagesPerBrowser sets how many pages are loaded before Chrome is relaunched.
func WithPagesPerBrowser(n int64) Option {
	return func(f *Fetcher) {
		f.perBrowser = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		perBrowser: DefaultPagesPerBrowser,
	}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := NewPool(WithPagesPerBrowser(f.perBrowser))
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.pool.Page()
	if err != nil {
		return "", err
	}
	defer release()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextErr(ctx, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.pool.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.pool.PID()
}

// contextErr prefers the context's error, so timeouts surface as
// context.DeadlineExceeded rather than a CDP error.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
