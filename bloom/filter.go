// Package bloom drops repeated page URLs from large URL lists using a
// Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers page URLs in constant memory. It may report a URL it
// has never seen, at the configured false positive rate, but never
// forgets one it has.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter sizes a filter for n URLs at the given false positive rate.
// A zero n is treated as one.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(max(n, 1), fpRate)}
}

// Add records url.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether url may have been recorded.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// Seen records url and reports whether it may have been recorded before.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount approximates the number of distinct URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
