package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/furnex"
	main "github.com/fwojciec/furnex/cmd/furnex"
	"github.com/fwojciec/furnex/eval"
	"github.com/fwojciec/furnex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCmd_Run(t *testing.T) {
	t.Parallel()

	cases := []furnex.TestCase{
		{URL: "https://shop.example.com/1", Products: []string{"диван Милан", "кресло Оскар"}},
		{URL: "https://shop.example.com/2", Products: []string{"стол Лофт"}},
	}
	source := &mock.CandidateSource{
		CandidatesFn: func(ctx context.Context, url string) ([]furnex.Candidate, error) {
			if url == "https://shop.example.com/1" {
				return []furnex.Candidate{{Name: "диван Милан"}, {Name: "шкаф купе"}}, nil
			}
			return nil, furnex.Errorf(furnex.EUNAVAILABLE, "HTTP 503 for %s", url)
		},
	}

	t.Run("prints and saves metrics", func(t *testing.T) {
		t.Parallel()

		var summary *furnex.Metrics
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			TestSets: &mock.TestSetStore{
				LoadTestSetFn: func() ([]furnex.TestCase, error) { return cases, nil },
				SaveSummaryFn: func(m *furnex.Metrics) error {
					summary = m
					return nil
				},
			},
			Eval: &eval.Evaluator{Source: source},
		}

		err := (&main.EvaluateCmd{Details: true}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, 1, summary.TruePositives)
		assert.Equal(t, 1, summary.FalsePositives)
		assert.Equal(t, 2, summary.FalseNegatives)

		out := stdout.String()
		assert.Contains(t, out, "Precision  0.5000")
		assert.Contains(t, out, "Recall     0.3333")
		assert.Contains(t, out, "TP 1  FP 1  FN 2  (3 labeled, 2 extracted)")
		assert.Contains(t, out, "https://shop.example.com/1  labeled=2 extracted=2 correct=1  success")
		assert.Contains(t, out, "error: HTTP 503 for https://shop.example.com/2")
	})

	t.Run("max samples limits the cases", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			TestSets: &mock.TestSetStore{
				LoadTestSetFn: func() ([]furnex.TestCase, error) { return cases, nil },
				SaveSummaryFn: func(m *furnex.Metrics) error { return nil },
			},
			Eval: &eval.Evaluator{Source: source},
		}

		err := (&main.EvaluateCmd{MaxSamples: 1}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "TP 1  FP 1  FN 1  (2 labeled, 2 extracted)")
	})

	t.Run("missing test set", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			TestSets: &mock.TestSetStore{
				LoadTestSetFn: func() ([]furnex.TestCase, error) {
					return nil, furnex.Errorf(furnex.ENOTFOUND, "test set not found")
				},
			},
			Eval: &eval.Evaluator{Source: source},
		}

		err := (&main.EvaluateCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Use 'furnex testset' to create one.")
	})

	t.Run("empty test set", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			TestSets: &mock.TestSetStore{
				LoadTestSetFn: func() ([]furnex.TestCase, error) { return []furnex.TestCase{}, nil },
			},
			Eval: &eval.Evaluator{Source: source},
		}

		err := (&main.EvaluateCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: no test data to evaluate\n", stderr.String())
	})
}
