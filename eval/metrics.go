package eval

import "github.com/fwojciec/furnex"

// Set is a set of exact, case-sensitive product names.
type Set map[string]struct{}

// NewSet builds a Set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Intersect returns |s ∩ other|.
func (s Set) Intersect(other Set) int {
	n := 0
	for name := range s {
		if _, ok := other[name]; ok {
			n++
		}
	}
	return n
}

// ComputeMetrics aggregates precision, recall, F1 and accuracy over
// parallel slices of true and predicted sets. Every ratio is 0 when its
// denominator is 0.
func ComputeMetrics(trueSets, predicted []Set) furnex.Metrics {
	var m furnex.Metrics
	for i, truth := range trueSets {
		var pred Set
		if i < len(predicted) {
			pred = predicted[i]
		}
		tp := truth.Intersect(pred)
		m.TruePositives += tp
		m.FalsePositives += len(pred) - tp
		m.FalseNegatives += len(truth) - tp
		m.TotalTrueProducts += len(truth)
		m.TotalExtractedProducts += len(pred)
	}

	m.Precision = ratio(float64(m.TruePositives), float64(m.TruePositives+m.FalsePositives))
	m.Recall = ratio(float64(m.TruePositives), float64(m.TruePositives+m.FalseNegatives))
	m.F1Score = ratio(2*m.Precision*m.Recall, m.Precision+m.Recall)
	m.Accuracy = ratio(float64(m.TruePositives), float64(m.TotalTrueProducts))
	return m
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
