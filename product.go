package furnex

import (
	"context"
	"time"
)

// ScrapeStatus is the outcome of scraping a URL.
type ScrapeStatus string

// ScrapeStatus constants.
const (
	ScrapeSuccess ScrapeStatus = "success"
	ScrapeError   ScrapeStatus = "error"
)

// Product is a persisted candidate.
type Product struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Confidence  float64   `json:"confidence"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Scrape records one attempt to extract products from a URL.
type Scrape struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	Status        ScrapeStatus `json:"status"`
	ProductsCount int          `json:"count"`
	ContentHash   string       `json:"contentHash,omitempty"`
	ErrorMessage  string       `json:"error,omitempty"`
	ScrapedAt     time.Time    `json:"date"`
}

// ProductStat counts how often a product name has been extracted.
type ProductStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Default limits for ProductService queries.
const (
	DefaultStatsLimit  = 20
	DefaultRecentLimit = 5
)

// ProductService represents a service for storing extraction results.
type ProductService interface {
	// SaveExtraction stores every candidate of ext and records a
	// successful scrape of ext.URL.
	SaveExtraction(ctx context.Context, ext *Extraction) error

	// SaveError records a failed scrape of url.
	SaveError(ctx context.Context, url string, message string) error

	// ProductStats returns the most frequently extracted product names.
	// A limit <= 0 uses DefaultStatsLimit.
	ProductStats(ctx context.Context, limit int) ([]*ProductStat, error)

	// RecentScrapes returns the latest scrapes, newest first.
	// A limit <= 0 uses DefaultRecentLimit.
	RecentScrapes(ctx context.Context, limit int) ([]*Scrape, error)

	// FindProducts returns products stored for url, highest confidence first.
	FindProducts(ctx context.Context, url string) ([]*Product, error)
}
