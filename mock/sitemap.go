package mock

import (
	"context"

	"github.com/fwojciec/furnex"
)

var _ furnex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of furnex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *furnex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *furnex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
