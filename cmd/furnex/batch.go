package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
	"github.com/fwojciec/furnex/crawl"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if c.Sitemap != "" {
		filter, err := furnex.NewURLFilter(c.Filter, c.Exclude)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
			return err
		}
		deps.Batch.URLs = &crawl.SitemapSource{
			Sitemaps: deps.Sitemaps,
			BaseURL:  c.Sitemap,
			Filter:   filter,
		}
	}
	if c.Concurrency > 0 {
		deps.Batch.Concurrency = c.Concurrency
	}

	opts := furnex.BatchOptions{Start: c.Start, Size: c.Size}
	if opts.Size <= 0 && deps.Config != nil {
		opts.Size = deps.Config.Batch.Size
	}
	if c.All {
		opts.Size = 0
	}

	ctx := crawl.WithProgress(deps.Ctx, func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Processing %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		}
	})

	results, err := deps.Batch.ProcessBatch(ctx, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	var succeeded, products int
	for _, r := range results {
		if r.Status == furnex.ScrapeSuccess {
			succeeded++
			products += r.ProductsCount
		}
	}
	fmt.Fprintf(deps.Stdout, "Processed %d URLs: %d succeeded, %d failed, %d products\n",
		len(results), succeeded, len(results)-succeeded, products)
	return nil
}
