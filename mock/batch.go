package mock

import (
	"context"

	"github.com/fwojciec/furnex"
)

// Compile-time interface verification.
var (
	_ furnex.URLSource      = (*URLSource)(nil)
	_ furnex.DomainLimiter  = (*DomainLimiter)(nil)
	_ furnex.BatchProcessor = (*BatchProcessor)(nil)
)

// URLSource is a mock implementation of furnex.URLSource.
type URLSource struct {
	LoadURLsFn func(ctx context.Context) ([]string, error)
}

func (s *URLSource) LoadURLs(ctx context.Context) ([]string, error) {
	return s.LoadURLsFn(ctx)
}

// DomainLimiter is a mock implementation of furnex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// BatchProcessor is a mock implementation of furnex.BatchProcessor.
type BatchProcessor struct {
	ProcessBatchFn  func(ctx context.Context, opts furnex.BatchOptions) ([]*furnex.BatchResult, error)
	CreateTestSetFn func(ctx context.Context, opts furnex.TestSetOptions) ([]furnex.TestCase, error)
	CountURLsFn     func(ctx context.Context) (int, error)
}

func (p *BatchProcessor) ProcessBatch(ctx context.Context, opts furnex.BatchOptions) ([]*furnex.BatchResult, error) {
	return p.ProcessBatchFn(ctx, opts)
}

func (p *BatchProcessor) CreateTestSet(ctx context.Context, opts furnex.TestSetOptions) ([]furnex.TestCase, error) {
	return p.CreateTestSetFn(ctx, opts)
}

func (p *BatchProcessor) CountURLs(ctx context.Context) (int, error) {
	return p.CountURLsFn(ctx)
}
