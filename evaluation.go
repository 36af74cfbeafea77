package furnex

import "context"

// StatusSuccess marks a test case whose extraction succeeded.
const StatusSuccess = "success"

// TestCase is a hand-labeled page: the product names known to be on it.
type TestCase struct {
	URL      string   `json:"url"`
	Products []string `json:"products"`

	// Confidence parallels Products. It is informational only.
	Confidence []float64 `json:"confidence"`
}

// Validate returns an error if the test case contains invalid fields.
func (tc *TestCase) Validate() error {
	if tc.URL == "" {
		return Errorf(EINVALID, "test case URL required")
	}
	return nil
}

// URLResult records how extraction fared on one test case.
type URLResult struct {
	URL            string `json:"url"`
	TrueCount      int    `json:"true_count"`
	PredictedCount int    `json:"predicted_count"`
	CorrectCount   int    `json:"correct_count"`

	// Status is StatusSuccess or "error: <reason>".
	Status string `json:"status"`
}

// Metrics are set-overlap scores aggregated over a test set.
// Accuracy is true positives over total true products, which makes it
// equal to recall by construction.
type Metrics struct {
	Precision              float64 `json:"precision"`
	Recall                 float64 `json:"recall"`
	F1Score                float64 `json:"f1_score"`
	Accuracy               float64 `json:"accuracy"`
	TruePositives          int     `json:"true_positives"`
	FalsePositives         int     `json:"false_positives"`
	FalseNegatives         int     `json:"false_negatives"`
	TotalTrueProducts      int     `json:"total_true_products"`
	TotalExtractedProducts int     `json:"total_extracted_products"`
}

// EvaluationResult is the aggregate plus the per-URL diagnostics, in test
// set order.
type EvaluationResult struct {
	Metrics
	URLResults []URLResult `json:"url_results"`
}

// Evaluator scores extraction against labeled test cases.
type Evaluator interface {
	// Evaluate runs extraction for every case and aggregates the metrics.
	// Returns EINVALID if cases is empty.
	Evaluate(ctx context.Context, cases []TestCase) (*EvaluationResult, error)
}

// TestSetStore persists the labeled test set and the evaluation summary.
type TestSetStore interface {
	// LoadTestSet returns the stored test cases.
	// Returns ENOTFOUND if no test set exists and EINVALID if it is corrupt.
	LoadTestSet() ([]TestCase, error)

	// SaveTestSet replaces the stored test cases.
	SaveTestSet(cases []TestCase) error

	// SaveSummary stores the aggregate metrics of the latest evaluation.
	SaveSummary(m *Metrics) error
}
