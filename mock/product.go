package mock

import (
	"context"

	"github.com/fwojciec/furnex"
)

var _ furnex.ProductService = (*ProductService)(nil)

// ProductService is a mock implementation of furnex.ProductService.
type ProductService struct {
	SaveExtractionFn func(ctx context.Context, ext *furnex.Extraction) error
	SaveErrorFn      func(ctx context.Context, url string, message string) error
	ProductStatsFn   func(ctx context.Context, limit int) ([]*furnex.ProductStat, error)
	RecentScrapesFn  func(ctx context.Context, limit int) ([]*furnex.Scrape, error)
	FindProductsFn   func(ctx context.Context, url string) ([]*furnex.Product, error)
}

func (s *ProductService) SaveExtraction(ctx context.Context, ext *furnex.Extraction) error {
	return s.SaveExtractionFn(ctx, ext)
}

func (s *ProductService) SaveError(ctx context.Context, url string, message string) error {
	return s.SaveErrorFn(ctx, url, message)
}

func (s *ProductService) ProductStats(ctx context.Context, limit int) ([]*furnex.ProductStat, error) {
	return s.ProductStatsFn(ctx, limit)
}

func (s *ProductService) RecentScrapes(ctx context.Context, limit int) ([]*furnex.Scrape, error) {
	return s.RecentScrapesFn(ctx, limit)
}

func (s *ProductService) FindProducts(ctx context.Context, url string) ([]*furnex.Product, error) {
	return s.FindProductsFn(ctx, url)
}
