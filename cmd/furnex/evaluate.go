package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
)

// Run executes the evaluate command.
func (c *EvaluateCmd) Run(deps *Dependencies) error {
	cases, err := deps.TestSets.LoadTestSet()
	if furnex.ErrorCode(err) == furnex.ENOTFOUND {
		fmt.Fprintln(deps.Stderr, "error: test set not found. Use 'furnex testset' to create one.")
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	deps.Eval.MaxSamples = c.MaxSamples
	result, err := deps.Eval.Evaluate(deps.Ctx, cases)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	m := result.Metrics
	fmt.Fprintf(deps.Stdout, "Precision  %.4f\n", m.Precision)
	fmt.Fprintf(deps.Stdout, "Recall     %.4f\n", m.Recall)
	fmt.Fprintf(deps.Stdout, "F1         %.4f\n", m.F1Score)
	fmt.Fprintf(deps.Stdout, "Accuracy   %.4f\n", m.Accuracy)
	fmt.Fprintf(deps.Stdout, "TP %d  FP %d  FN %d  (%d labeled, %d extracted)\n",
		m.TruePositives, m.FalsePositives, m.FalseNegatives,
		m.TotalTrueProducts, m.TotalExtractedProducts)

	if c.Details {
		for _, r := range result.URLResults {
			fmt.Fprintf(deps.Stdout, "  %s  labeled=%d extracted=%d correct=%d  %s\n",
				r.URL, r.TrueCount, r.PredictedCount, r.CorrectCount, r.Status)
		}
	}

	if err := deps.TestSets.SaveSummary(&m); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}
	return nil
}
