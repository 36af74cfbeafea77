package mock

import (
	"context"

	"github.com/fwojciec/furnex"
)

var (
	_ furnex.Evaluator    = (*Evaluator)(nil)
	_ furnex.TestSetStore = (*TestSetStore)(nil)
)

// Evaluator is a mock implementation of furnex.Evaluator.
type Evaluator struct {
	EvaluateFn func(ctx context.Context, cases []furnex.TestCase) (*furnex.EvaluationResult, error)
}

func (e *Evaluator) Evaluate(ctx context.Context, cases []furnex.TestCase) (*furnex.EvaluationResult, error) {
	return e.EvaluateFn(ctx, cases)
}

// TestSetStore is a mock implementation of furnex.TestSetStore.
type TestSetStore struct {
	LoadTestSetFn func() ([]furnex.TestCase, error)
	SaveTestSetFn func(cases []furnex.TestCase) error
	SaveSummaryFn func(m *furnex.Metrics) error
}

func (s *TestSetStore) LoadTestSet() ([]furnex.TestCase, error) {
	return s.LoadTestSetFn()
}

func (s *TestSetStore) SaveTestSet(cases []furnex.TestCase) error {
	return s.SaveTestSetFn(cases)
}

func (s *TestSetStore) SaveSummary(m *furnex.Metrics) error {
	return s.SaveSummaryFn(m)
}
