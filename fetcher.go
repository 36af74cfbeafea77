package furnex

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// TextConverter flattens an HTML page to plain text.
type TextConverter interface {
	// Text returns the visible text of html with markup removed.
	// Returns EINVALID for empty input.
	Text(html string) (string, error)
}
