package crawl

import (
	"context"

	"github.com/fwojciec/furnex"
)

// Ensure SitemapSource implements furnex.URLSource at compile time.
var _ furnex.URLSource = (*SitemapSource)(nil)

// SitemapSource lists the pages of a shop from its sitemaps.
type SitemapSource struct {
	Sitemaps furnex.SitemapService
	BaseURL  string
	Filter   *furnex.URLFilter
}

// LoadURLs discovers URLs under BaseURL that pass Filter.
func (s *SitemapSource) LoadURLs(ctx context.Context) ([]string, error) {
	return s.Sitemaps.DiscoverURLs(ctx, s.BaseURL, s.Filter)
}
