package furnex

import "context"

// Candidate is an extracted product-name guess with a confidence score.
type Candidate struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// CandidateSource produces product candidates for a URL.
// Implementations hide fetching, HTML flattening and extraction.
type CandidateSource interface {
	// Candidates returns the ranked candidates found on the page at url.
	// A fetch or conversion failure is returned as an error; a page with
	// no furniture terms yields an empty slice.
	Candidates(ctx context.Context, url string) ([]Candidate, error)
}

// Extraction is the outcome of processing one page.
type Extraction struct {
	URL        string      `json:"url"`
	Candidates []Candidate `json:"products"`

	// ContentHash fingerprints the page text the candidates came from.
	ContentHash string `json:"contentHash"`

	// Bytes is the size of the page text.
	Bytes int `json:"bytes"`
}

// PageProcessor extracts candidates from one page along with details of
// the page text they came from.
type PageProcessor interface {
	// Process returns the extraction for the page at url. The returned
	// URL is normalized, e.g. given a scheme when the input had none.
	Process(ctx context.Context, url string) (*Extraction, error)
}
