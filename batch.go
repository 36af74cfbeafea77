package furnex

import "context"

// URLSource supplies the URLs to process.
type URLSource interface {
	LoadURLs(ctx context.Context) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// BatchOptions selects the slice of the URL list to process.
type BatchOptions struct {
	// Start is the index of the first URL.
	Start int

	// Size is the number of URLs to process. Zero means all remaining.
	Size int
}

// BatchResult reports the outcome for one URL of a batch.
type BatchResult struct {
	URL           string       `json:"url"`
	Status        ScrapeStatus `json:"status"`
	ProductsCount int          `json:"products_count"`
	Products      []Candidate  `json:"products,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// TestSetOptions controls test set creation.
type TestSetOptions struct {
	// SampleSize is the number of URLs sampled from the URL list.
	SampleSize int

	// Seed makes the sample reproducible. Zero picks a random seed.
	Seed uint64
}

// DefaultSampleSize is the number of URLs sampled for a new test set.
const DefaultSampleSize = 30

// BatchProcessor extracts and stores products for many URLs.
type BatchProcessor interface {
	// ProcessBatch extracts products for a slice of the URL list and
	// stores results. Per-URL failures are recorded, not returned.
	ProcessBatch(ctx context.Context, opts BatchOptions) ([]*BatchResult, error)

	// CreateTestSet samples URLs, extracts their products and stores them
	// as a new test set. Returns the stored cases.
	CreateTestSet(ctx context.Context, opts TestSetOptions) ([]TestCase, error)

	// CountURLs returns the number of URLs available for processing.
	CountURLs(ctx context.Context) (int, error)
}
