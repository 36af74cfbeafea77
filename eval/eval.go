// Package eval scores product extraction against a labeled test set.
package eval

import (
	"context"

	"github.com/fwojciec/furnex"
	"golang.org/x/sync/errgroup"
)

// Ensure Evaluator implements furnex.Evaluator at compile time.
var _ furnex.Evaluator = (*Evaluator)(nil)

// Evaluator runs a CandidateSource over test cases and aggregates
// set-overlap metrics.
type Evaluator struct {
	Source furnex.CandidateSource

	// MaxSamples limits evaluation to the first N cases. Zero means all.
	MaxSamples int

	// Concurrency is the number of cases evaluated at once. Defaults to 1.
	Concurrency int
}

// Evaluate extracts candidates for every case and scores them. A failed
// extraction counts as an empty prediction and is reported in the case's
// status; it does not abort the run.
func (e *Evaluator) Evaluate(ctx context.Context, cases []furnex.TestCase) (*furnex.EvaluationResult, error) {
	if len(cases) == 0 {
		return nil, furnex.Errorf(furnex.EINVALID, "no test data to evaluate")
	}
	if e.MaxSamples > 0 && e.MaxSamples < len(cases) {
		cases = cases[:e.MaxSamples]
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	trueSets := make([]Set, len(cases))
	predicted := make([]Set, len(cases))
	statuses := make([]string, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, tc := range cases {
		g.Go(func() error {
			trueSets[i] = NewSet(tc.Products...)
			predicted[i], statuses[i] = e.predict(gctx, tc.URL)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]furnex.URLResult, len(cases))
	for i, tc := range cases {
		results[i] = furnex.URLResult{
			URL:            tc.URL,
			TrueCount:      len(trueSets[i]),
			PredictedCount: len(predicted[i]),
			CorrectCount:   trueSets[i].Intersect(predicted[i]),
			Status:         statuses[i],
		}
	}

	return &furnex.EvaluationResult{
		Metrics:    ComputeMetrics(trueSets, predicted),
		URLResults: results,
	}, nil
}

// predict returns the set of candidate names for url and the case status.
func (e *Evaluator) predict(ctx context.Context, url string) (Set, string) {
	candidates, err := e.Source.Candidates(ctx, url)
	if err != nil {
		return Set{}, "error: " + errorText(err)
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return NewSet(names...), furnex.StatusSuccess
}

// errorText prefers the application message over the Error() dump.
func errorText(err error) string {
	if furnex.ErrorCode(err) != furnex.EINTERNAL {
		return furnex.ErrorMessage(err)
	}
	return err.Error()
}
