package furnex

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings shared by the CLI and the HTTP server.
type Config struct {
	// Keywords anchor candidate windows.
	Keywords []string `yaml:"keywords"`

	// DataDir holds the URL list, the test set, and the evaluation summary.
	DataDir string `yaml:"dataDir"`

	// DatabasePath is the SQLite database file.
	DatabasePath string `yaml:"database"`

	Fetch struct {
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"maxRetries"`
		UserAgent  string        `yaml:"userAgent"`

		// RequestsPerSecond limits requests per domain.
		RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	} `yaml:"fetch"`

	Batch struct {
		Size       int `yaml:"size"`
		MaxWorkers int `yaml:"maxWorkers"`
	} `yaml:"batch"`
}

// DefaultUserAgent is sent by HTTP fetchers.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultConfig returns the built-in configuration rooted at dir.
func DefaultConfig(dir string) *Config {
	cfg := &Config{
		Keywords:     append([]string(nil), DefaultKeywords...),
		DataDir:      filepath.Join(dir, "data"),
		DatabasePath: filepath.Join(dir, "database", "products.db"),
	}
	cfg.Fetch.Timeout = 15 * time.Second
	cfg.Fetch.MaxRetries = 3
	cfg.Fetch.UserAgent = DefaultUserAgent
	cfg.Fetch.RequestsPerSecond = 1
	cfg.Batch.Size = 50
	cfg.Batch.MaxWorkers = 5
	return cfg
}

// URLListPath is the CSV file listing URLs to crawl.
func (c *Config) URLListPath() string {
	return filepath.Join(c.DataDir, "URL_list.csv")
}

// TestSetPath is the JSON file holding the labeled test set.
func (c *Config) TestSetPath() string {
	return filepath.Join(c.DataDir, "test_set.json")
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return Errorf(EINVALID, "at least one keyword required")
	}
	if c.Fetch.Timeout <= 0 {
		return Errorf(EINVALID, "fetch timeout must be positive")
	}
	if c.Fetch.MaxRetries < 1 {
		return Errorf(EINVALID, "fetch max retries must be at least 1")
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return Errorf(EINVALID, "requests per second must be positive")
	}
	if c.Batch.MaxWorkers < 1 {
		return Errorf(EINVALID, "batch max workers must be at least 1")
	}
	return nil
}
