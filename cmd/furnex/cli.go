package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/furnex"
	"github.com/fwojciec/furnex/crawl"
	"github.com/fwojciec/furnex/eval"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *furnex.Config
	Logger   *slog.Logger
	Products furnex.ProductService
	Pages    furnex.PageProcessor
	Sitemaps furnex.SitemapService
	TestSets furnex.TestSetStore
	Batch    *crawl.Batch
	Eval     *eval.Evaluator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `type:"path" env:"FURNEX_CONFIG" help:"YAML config file"`
	DB      string `name:"db" type:"path" env:"FURNEX_DB" help:"SQLite database path"`
	Browser bool   `help:"Render pages in headless Chrome"`
	Content string `enum:"page,main,readability" default:"page" help:"Text taken from pages (page, main, readability)"`
	Verbose bool   `short:"v" help:"Log operations to stderr"`
	LogFile string `name:"log-file" type:"path" help:"Write logs to a rotated file"`

	Extract  ExtractCmd  `cmd:"" help:"Extract product names from a page"`
	Batch    BatchCmd    `cmd:"" help:"Extract products for a slice of the URL list"`
	Testset  TestsetCmd  `cmd:"" help:"Sample URLs into a new test set"`
	Evaluate EvaluateCmd `cmd:"" help:"Score extraction against the test set"`
	Stats    StatsCmd    `cmd:"" help:"Show the most frequent product names"`
	Recent   RecentCmd   `cmd:"" help:"Show the latest scrapes"`
	Products ProductsCmd `cmd:"" help:"Show the products stored for a page"`
	Serve    ServeCmd    `cmd:"" help:"Serve the JSON API"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Start       int      `default:"0" help:"Index of the first URL"`
	Size        int      `short:"n" help:"Number of URLs (defaults to the configured batch size)"`
	All         bool     `help:"Process every URL from --start on"`
	Sitemap     string   `help:"Discover URLs from the sitemaps of this site instead of the URL list"`
	Filter      []string `short:"F" name:"filter" help:"Filter sitemap URLs by regex (repeatable)"`
	Exclude     []string `short:"X" name:"exclude" help:"Drop sitemap URLs matching regex (repeatable)"`
	Concurrency int      `short:"c" help:"Concurrent page limit (defaults to the configured worker count)"`
}

// TestsetCmd is the "testset" subcommand.
type TestsetCmd struct {
	Size int    `short:"n" default:"30" help:"Number of URLs to sample"`
	Seed uint64 `help:"Sampling seed (0 picks one at random)"`
}

// EvaluateCmd is the "evaluate" subcommand.
type EvaluateCmd struct {
	MaxSamples int  `name:"max-samples" help:"Evaluate only the first N cases"`
	Details    bool `short:"d" help:"Show per-URL results"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Limit int `default:"20" help:"Number of names to show"`
}

// RecentCmd is the "recent" subcommand.
type RecentCmd struct {
	Limit int `default:"5" help:"Number of scrapes to show"`
}

// ProductsCmd is the "products" subcommand.
type ProductsCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":5000" help:"Listen address"`
}
