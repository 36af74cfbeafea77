// Package rod fetches JavaScript-rendered shop pages with headless Chrome.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/furnex"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds the time spent rendering one page.
const DefaultFetchTimeout = 30 * time.Second

var errClosed = furnex.Errorf(furnex.EINVALID, "fetcher is closed")

// Ensure Fetcher implements furnex.Fetcher at compile time.
var _ furnex.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in headless Chrome, for shops that build their
// catalogue client-side. Fetcher is safe for concurrent use.
type Fetcher struct {
	browser   *browser
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the time allowed to render one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages Chrome renders before it is restarted.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.browser.maxPages = n
	}
}

// WithUserAgent overrides Chrome's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher launches headless Chrome. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		browser:   &browser{maxPages: DefaultMaxPages},
		timeout:   DefaultFetchTimeout,
		userAgent: furnex.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.browser.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to url and returns the HTML after the load event.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	br, err := f.browser.acquire()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := br.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: "en-US,en;q=0.9,ru;q=0.8",
	}); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// Close shuts down Chrome. Close is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the current Chrome launcher.
// It exists so tests can verify cleanup and restarts.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}
