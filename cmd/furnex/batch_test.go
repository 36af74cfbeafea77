package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/furnex"
	main "github.com/fwojciec/furnex/cmd/furnex"
	"github.com/fwojciec/furnex/crawl"
	"github.com/fwojciec/furnex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBatchDeps wires a crawl.Batch over urls. Pages under /broken fail.
func newBatchDeps(urls []string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	products := &mock.ProductService{
		SaveExtractionFn: func(ctx context.Context, ext *furnex.Extraction) error { return nil },
		SaveErrorFn:      func(ctx context.Context, url, message string) error { return nil },
	}
	pages := &mock.PageProcessor{
		ProcessFn: func(ctx context.Context, url string) (*furnex.Extraction, error) {
			if url == "https://shop.example.com/broken" {
				return nil, errors.New("HTTP 500")
			}
			return &furnex.Extraction{URL: url, Candidates: []furnex.Candidate{{Name: "кресло", Confidence: 0.5}}}, nil
		},
	}

	cfg := furnex.DefaultConfig("/tmp/furnex")
	deps := &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Config:   cfg,
		Products: products,
		Pages:    pages,
		Batch: &crawl.Batch{
			URLs: &mock.URLSource{
				LoadURLsFn: func(ctx context.Context) ([]string, error) { return urls, nil },
			},
			Processor:   pages,
			Products:    products,
			Concurrency: 2,
		},
	}
	return deps, stdout, stderr
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("processes a window and summarizes", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newBatchDeps([]string{
			"https://shop.example.com/a",
			"https://shop.example.com/broken",
			"https://shop.example.com/b",
			"https://shop.example.com/c",
		})

		err := (&main.BatchCmd{Start: 0, Size: 3}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Processing 3 URLs")
		assert.Contains(t, stdout.String(), "Processed 3 URLs: 2 succeeded, 1 failed, 2 products")
		assert.Contains(t, stderr.String(), "skip https://shop.example.com/broken: HTTP 500")
		assert.NotContains(t, stdout.String(), "/c")
	})

	t.Run("size defaults to the configured batch size", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newBatchDeps([]string{"https://shop.example.com/a", "https://shop.example.com/b"})
		deps.Config.Batch.Size = 1

		err := (&main.BatchCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Processed 1 URLs")
	})

	t.Run("all processes the remaining URLs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newBatchDeps([]string{"https://shop.example.com/a", "https://shop.example.com/b", "https://shop.example.com/c"})
		deps.Config.Batch.Size = 1

		err := (&main.BatchCmd{Start: 1, All: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Processed 2 URLs")
	})

	t.Run("sitemap replaces the URL list", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newBatchDeps(nil)
		var gotBase string
		var gotFilter *furnex.URLFilter
		deps.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *furnex.URLFilter) ([]string, error) {
				gotBase, gotFilter = baseURL, filter
				return []string{"https://shop.example.com/catalog/sofa"}, nil
			},
		}

		err := (&main.BatchCmd{Sitemap: "https://shop.example.com", Filter: []string{"/catalog/"}, Exclude: []string{"/archive/"}, Size: 10}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://shop.example.com", gotBase)
		require.NotNil(t, gotFilter)
		assert.True(t, gotFilter.Match("https://shop.example.com/catalog/sofa"))
		assert.False(t, gotFilter.Match("https://shop.example.com/catalog/archive/sofa"))
		assert.Contains(t, stdout.String(), "Processed 1 URLs: 1 succeeded")
	})

	t.Run("invalid filter pattern", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newBatchDeps(nil)

		err := (&main.BatchCmd{Sitemap: "https://shop.example.com", Filter: []string{"[unclosed"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("missing URL list", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newBatchDeps(nil)
		deps.Batch.URLs = &mock.URLSource{
			LoadURLsFn: func(ctx context.Context) ([]string, error) {
				return nil, furnex.Errorf(furnex.ENOTFOUND, "URL list not found: data/URL_list.csv")
			},
		}

		err := (&main.BatchCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: URL list not found: data/URL_list.csv\n", stderr.String())
	})
}

func TestTestsetCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates a test set", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newBatchDeps([]string{
			"https://shop.example.com/a",
			"https://shop.example.com/b",
			"https://shop.example.com/broken",
		})
		var saved []furnex.TestCase
		deps.Batch.TestSets = &mock.TestSetStore{
			SaveTestSetFn: func(cases []furnex.TestCase) error {
				saved = cases
				return nil
			},
		}

		err := (&main.TestsetCmd{Size: 3, Seed: 42}).Run(deps)

		require.NoError(t, err)
		assert.Len(t, saved, 2)
		assert.Contains(t, stdout.String(), "Created test set with 2 cases from 3 sampled URLs")
		assert.Contains(t, stdout.String(), "test_set.json")
	})

	t.Run("empty URL list", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newBatchDeps(nil)
		deps.Batch.TestSets = &mock.TestSetStore{}

		err := (&main.TestsetCmd{Size: 3}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, furnex.EINVALID, furnex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: no URLs to build a test set from")
	})
}
