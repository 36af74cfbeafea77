package crawl

import (
	"context"
	"math/rand/v2"

	"github.com/fwojciec/furnex"
	"github.com/fwojciec/furnex/bloom"
	"golang.org/x/sync/errgroup"
)

// Ensure Batch implements furnex.BatchProcessor at compile time.
var _ furnex.BatchProcessor = (*Batch)(nil)

// DefaultConcurrency is the number of URLs processed at once when
// Batch.Concurrency is not set.
const DefaultConcurrency = 5

// dedupeFalsePositiveRate sizes the Bloom filter that screens URLs before
// the exact duplicate check.
const dedupeFalsePositiveRate = 1e-6

// Batch runs a page processor over a URL list and stores the results.
type Batch struct {
	URLs      furnex.URLSource
	Processor furnex.PageProcessor
	Products  furnex.ProductService
	TestSets  furnex.TestSetStore

	// Concurrency bounds the number of pages processed at once.
	Concurrency int

	// Logf, if set, receives storage failures that do not stop the batch.
	Logf LogFunc
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type progressKey struct{}

// WithProgress returns a context that carries a progress callback for
// ProcessBatch and CreateTestSet.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressFrom(ctx context.Context) ProgressFunc {
	fn, _ := ctx.Value(progressKey{}).(ProgressFunc)
	if fn == nil {
		return func(ProgressEvent) {}
	}
	return fn
}

// CountURLs returns the number of distinct URLs in the URL list.
func (b *Batch) CountURLs(ctx context.Context) (int, error) {
	urls, err := b.loadURLs(ctx)
	if err != nil {
		return 0, err
	}
	return len(urls), nil
}

// ProcessBatch extracts and stores products for the URLs selected by opts.
// Results are returned in URL list order.
func (b *Batch) ProcessBatch(ctx context.Context, opts furnex.BatchOptions) ([]*furnex.BatchResult, error) {
	urls, err := b.loadURLs(ctx)
	if err != nil {
		return nil, err
	}
	urls = window(urls, opts.Start, opts.Size)

	outcomes, err := b.run(ctx, urls)
	if err != nil {
		return nil, err
	}

	results := make([]*furnex.BatchResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = b.store(ctx, o)
	}
	return results, nil
}

// CreateTestSet samples opts.SampleSize URLs, extracts their products, and
// saves the pages that yielded at least one candidate as the test set.
// Pages that fail are left out.
func (b *Batch) CreateTestSet(ctx context.Context, opts furnex.TestSetOptions) ([]furnex.TestCase, error) {
	urls, err := b.loadURLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, furnex.Errorf(furnex.EINVALID, "no URLs to build a test set from")
	}

	size := opts.SampleSize
	if size <= 0 {
		size = furnex.DefaultSampleSize
	}
	sample := Sample(urls, size, opts.Seed)

	outcomes, err := b.run(ctx, sample)
	if err != nil {
		return nil, err
	}

	cases := []furnex.TestCase{}
	for _, o := range outcomes {
		if o.err != nil || len(o.ext.Candidates) == 0 {
			continue
		}
		tc := furnex.TestCase{URL: o.url}
		for _, c := range o.ext.Candidates {
			tc.Products = append(tc.Products, c.Name)
			tc.Confidence = append(tc.Confidence, c.Confidence)
		}
		cases = append(cases, tc)
	}

	if err := b.TestSets.SaveTestSet(cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// outcome holds the result of processing a single URL.
type outcome struct {
	position int
	url      string
	ext      *furnex.Extraction
	err      error
}

// run processes urls with bounded concurrency and returns outcomes in
// input order. Only context cancellation is returned as an error.
func (b *Batch) run(ctx context.Context, urls []string) ([]outcome, error) {
	progress := progressFrom(ctx)
	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan outcome, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				ext, err := b.Processor.Process(gctx, u)
				resultCh <- outcome{position: i, url: u, ext: ext, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]outcome, len(urls))
	completed := 0
	for o := range resultCh {
		completed++
		outcomes[o.position] = o

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       o.url,
		}
		if o.err != nil {
			event.Type = ProgressFailed
			event.Error = o.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return outcomes, nil
}

// store persists one outcome and converts it to a BatchResult.
func (b *Batch) store(ctx context.Context, o outcome) *furnex.BatchResult {
	err := o.err
	if err == nil {
		err = b.Products.SaveExtraction(ctx, o.ext)
	}

	if err != nil {
		if saveErr := b.Products.SaveError(ctx, o.url, err.Error()); saveErr != nil && b.Logf != nil {
			b.Logf("saving error for %s: %v", o.url, saveErr)
		}
		return &furnex.BatchResult{
			URL:    o.url,
			Status: furnex.ScrapeError,
			Error:  err.Error(),
		}
	}

	return &furnex.BatchResult{
		URL:           o.url,
		Status:        furnex.ScrapeSuccess,
		ProductsCount: len(o.ext.Candidates),
		Products:      o.ext.Candidates,
	}
}

// loadURLs returns the URL list with repeats removed.
func (b *Batch) loadURLs(ctx context.Context) ([]string, error) {
	urls, err := b.URLs.LoadURLs(ctx)
	if err != nil {
		return nil, err
	}
	return DedupeURLs(urls), nil
}

// DedupeURLs drops repeated URLs, keeping first occurrences in order.
func DedupeURLs(urls []string) []string {
	return dedupeURLs(urls, dedupeFalsePositiveRate)
}

// dedupeURLs screens urls through a Bloom filter sized for fpRate. Only
// URLs the filter may have seen are checked against the exact set, so a
// false positive never drops a distinct URL.
func dedupeURLs(urls []string, fpRate float64) []string {
	if len(urls) == 0 {
		return urls
	}
	filter := bloom.NewFilter(uint(len(urls)), fpRate)
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if filter.Seen(u) {
			if _, dup := seen[u]; dup {
				continue
			}
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// Sample returns up to n URLs chosen at random without replacement.
// A zero seed draws a random one.
func Sample(urls []string, n int, seed uint64) []string {
	if seed == 0 {
		seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	n = min(n, len(urls))
	out := make([]string, n)
	for i, j := range r.Perm(len(urls))[:n] {
		out[i] = urls[j]
	}
	return out
}

// window returns urls[start:start+size], clamped. A size of zero or less
// selects everything from start on.
func window(urls []string, start, size int) []string {
	start = max(0, start)
	if start >= len(urls) {
		return nil
	}
	end := len(urls)
	if size > 0 && size < len(urls)-start {
		end = start + size
	}
	return urls[start:end]
}
