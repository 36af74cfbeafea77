package mock

import (
	"context"

	"github.com/fwojciec/furnex"
)

var (
	_ furnex.CandidateSource = (*CandidateSource)(nil)
	_ furnex.PageProcessor   = (*PageProcessor)(nil)
)

// CandidateSource is a mock implementation of furnex.CandidateSource.
type CandidateSource struct {
	CandidatesFn func(ctx context.Context, url string) ([]furnex.Candidate, error)
}

func (s *CandidateSource) Candidates(ctx context.Context, url string) ([]furnex.Candidate, error) {
	return s.CandidatesFn(ctx, url)
}

// PageProcessor is a mock implementation of furnex.PageProcessor.
type PageProcessor struct {
	ProcessFn func(ctx context.Context, url string) (*furnex.Extraction, error)
}

func (p *PageProcessor) Process(ctx context.Context, url string) (*furnex.Extraction, error) {
	return p.ProcessFn(ctx, url)
}
