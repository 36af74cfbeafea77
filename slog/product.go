package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/furnex"
)

var _ furnex.ProductService = (*LoggingProductService)(nil)

// LoggingProductService logs writes to a ProductService. Reads pass
// through unlogged.
type LoggingProductService struct {
	next   furnex.ProductService
	logger *slog.Logger
}

// NewLoggingProductService creates a new LoggingProductService.
func NewLoggingProductService(next furnex.ProductService, logger *slog.Logger) *LoggingProductService {
	return &LoggingProductService{next: next, logger: logger}
}

func (s *LoggingProductService) SaveExtraction(ctx context.Context, ext *furnex.Extraction) (err error) {
	defer func(begin time.Time) {
		var url string
		var count int
		if ext != nil {
			url, count = ext.URL, len(ext.Candidates)
		}
		s.logger.Info("save extraction",
			"url", url,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveExtraction(ctx, ext)
}

func (s *LoggingProductService) SaveError(ctx context.Context, url string, message string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save error",
			"url", url,
			"message", message,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveError(ctx, url, message)
}

func (s *LoggingProductService) ProductStats(ctx context.Context, limit int) ([]*furnex.ProductStat, error) {
	return s.next.ProductStats(ctx, limit)
}

func (s *LoggingProductService) RecentScrapes(ctx context.Context, limit int) ([]*furnex.Scrape, error) {
	return s.next.RecentScrapes(ctx, limit)
}

func (s *LoggingProductService) FindProducts(ctx context.Context, url string) ([]*furnex.Product, error) {
	return s.next.FindProducts(ctx, url)
}
