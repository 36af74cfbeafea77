package mock

import (
	"context"

	"github.com/fwojciec/furnex"
)

var (
	_ furnex.Fetcher       = (*Fetcher)(nil)
	_ furnex.TextConverter = (*TextConverter)(nil)
)

// Fetcher is a mock implementation of furnex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// TextConverter is a mock implementation of furnex.TextConverter.
type TextConverter struct {
	TextFn func(html string) (string, error)
}

func (c *TextConverter) Text(html string) (string, error) {
	return c.TextFn(html)
}
