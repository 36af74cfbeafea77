package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/furnex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ furnex.ProductService = (*ProductService)(nil)

// ProductService implements furnex.ProductService using SQLite.
type ProductService struct {
	db *DB

	// now returns the current time. Overridden in tests.
	now func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db, now: time.Now}
}

// SaveExtraction stores the candidates of ext and a successful scrape
// record in one transaction.
func (s *ProductService) SaveExtraction(ctx context.Context, ext *furnex.Extraction) error {
	if ext == nil || ext.URL == "" {
		return furnex.Errorf(furnex.EINVALID, "extraction URL required")
	}

	now := formatTime(s.now())

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range ext.Candidates {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, url, product_name, confidence, extracted_at)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), ext.URL, c.Name, c.Confidence, now); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO scrapes (id, url, status, products_count, content_hash, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), ext.URL, furnex.ScrapeSuccess, len(ext.Candidates), ext.ContentHash, now); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveError records a failed scrape of url.
func (s *ProductService) SaveError(ctx context.Context, url string, message string) error {
	if url == "" {
		return furnex.Errorf(furnex.EINVALID, "URL required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrapes (id, url, status, products_count, scraped_at, error_message)
		VALUES (?, ?, ?, 0, ?, ?)
	`, uuid.New().String(), url, furnex.ScrapeError, formatTime(s.now()), message)
	return err
}

// ProductStats returns product names ordered by how often they were
// extracted. Ties are broken by name.
func (s *ProductService) ProductStats(ctx context.Context, limit int) ([]*furnex.ProductStat, error) {
	if limit <= 0 {
		limit = furnex.DefaultStatsLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, COUNT(*) AS n
		FROM products
		GROUP BY product_name
		ORDER BY n DESC, product_name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []*furnex.ProductStat{}
	for rows.Next() {
		var stat furnex.ProductStat
		if err := rows.Scan(&stat.Name, &stat.Count); err != nil {
			return nil, err
		}
		stats = append(stats, &stat)
	}
	return stats, rows.Err()
}

// RecentScrapes returns the latest scrapes, newest first.
func (s *ProductService) RecentScrapes(ctx context.Context, limit int) ([]*furnex.Scrape, error) {
	if limit <= 0 {
		limit = furnex.DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, status, products_count, content_hash, scraped_at, error_message
		FROM scrapes
		ORDER BY scraped_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scrapes := []*furnex.Scrape{}
	for rows.Next() {
		var sc furnex.Scrape
		var scrapedAt string
		if err := rows.Scan(&sc.ID, &sc.URL, &sc.Status, &sc.ProductsCount,
			&sc.ContentHash, &scrapedAt, &sc.ErrorMessage); err != nil {
			return nil, err
		}
		if sc.ScrapedAt, err = parseTime(scrapedAt, "scraped_at"); err != nil {
			return nil, err
		}
		scrapes = append(scrapes, &sc)
	}
	return scrapes, rows.Err()
}

// FindProducts returns the products stored for url, highest confidence
// first.
func (s *ProductService) FindProducts(ctx context.Context, url string) ([]*furnex.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, product_name, confidence, extracted_at
		FROM products
		WHERE url = ?
		ORDER BY confidence DESC, rowid ASC
	`, url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*furnex.Product{}
	for rows.Next() {
		var p furnex.Product
		var extractedAt string
		if err := rows.Scan(&p.ID, &p.URL, &p.Name, &p.Confidence, &extractedAt); err != nil {
			return nil, err
		}
		if p.ExtractedAt, err = parseTime(extractedAt, "extracted_at"); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
