// Package crawl turns URLs into stored product candidates. It chains
// fetching, HTML flattening and keyword extraction, and runs that chain
// over URL lists with bounded concurrency and per-domain politeness.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/furnex"
)

// Ensure Pipeline implements the extraction interfaces at compile time.
var (
	_ furnex.CandidateSource = (*Pipeline)(nil)
	_ furnex.PageProcessor   = (*Pipeline)(nil)
)

// Pipeline extracts product candidates from a single page.
type Pipeline struct {
	Fetcher   furnex.Fetcher
	Converter furnex.TextConverter
	Extractor *furnex.Extractor

	// RateLimiter, if set, is waited on per domain before each page.
	RateLimiter furnex.DomainLimiter

	// RetryDelays are the pauses between fetch attempts.
	RetryDelays []time.Duration

	// Logf, if set, receives retry messages.
	Logf LogFunc
}

// Candidates returns the ranked candidates for the page at rawURL.
func (p *Pipeline) Candidates(ctx context.Context, rawURL string) ([]furnex.Candidate, error) {
	ext, err := p.Process(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return ext.Candidates, nil
}

// Process fetches the page at rawURL, flattens it to text and extracts
// candidates. The returned Extraction carries the normalized URL.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (*furnex.Extraction, error) {
	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if p.RateLimiter != nil {
		u, _ := url.Parse(pageURL)
		if err := p.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	fetch := func(ctx context.Context, u string) (string, error) {
		return p.Fetcher.Fetch(ctx, u)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, fetch, p.Logf, p.RetryDelays)
	if err != nil {
		return nil, fmt.Errorf("error scraping URL: %w", err)
	}

	text, err := p.Converter.Text(html)
	if err != nil {
		return nil, fmt.Errorf("error scraping URL: %w", err)
	}

	return &furnex.Extraction{
		URL:         pageURL,
		Candidates:  p.Extractor.Extract(text),
		ContentHash: ComputeHash(text),
		Bytes:       len(text),
	}, nil
}

// NormalizeURL trims rawURL and adds an https scheme when none is given.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", furnex.Errorf(furnex.EINVALID, "URL required")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", furnex.Errorf(furnex.EINVALID, "invalid URL %q", rawURL)
	}
	return rawURL, nil
}

// ComputeHash fingerprints page text with xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
