package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/furnex"
	"github.com/fwojciec/furnex/crawl"
	"github.com/fwojciec/furnex/eval"
	"github.com/fwojciec/furnex/fs"
	"github.com/fwojciec/furnex/goquery"
	fxhttp "github.com/fwojciec/furnex/http"
	"github.com/fwojciec/furnex/readability"
	"github.com/fwojciec/furnex/rod"
	fxslog "github.com/fwojciec/furnex/slog"
	"github.com/fwojciec/furnex/sqlite"
	"github.com/fwojciec/furnex/trafilatura"
	"github.com/fwojciec/furnex/yaml"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Dir is the base directory for the default data and database paths.
	Dir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher, if set, replaces the HTTP or browser fetcher.
	Fetcher furnex.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &Main{Dir: dir}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("furnex"),
		kong.Description("Extract furniture product names from shop pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'furnex --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	logger, closeLog := newLogger(cli, stderr)
	defer closeLog()
	deps.Logger = logger

	m.DB = sqlite.NewDB(cfg.DatabasePath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FURNEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DatabasePath, err)
	}
	defer m.Close()

	deps.Products = sqlite.NewProductService(m.DB)
	deps.TestSets = fs.NewTestSetStore(cfg.TestSetPath())
	if cli.Verbose || cli.LogFile != "" {
		deps.Products = fxslog.NewLoggingProductService(deps.Products, logger)
	}

	// Wire the page pipeline only for commands that fetch pages.
	switch kongCtx.Selected().Name {
	case "extract", "batch", "testset", "evaluate", "serve":
		closeFetcher, err := m.wirePipeline(cli, deps)
		if err != nil {
			return err
		}
		defer closeFetcher()
	}

	return kongCtx.Run(deps)
}

// loadConfig layers the config file and global flags over the defaults.
func (m *Main) loadConfig(cli *CLI) (*furnex.Config, error) {
	cfg := furnex.DefaultConfig(m.Dir)
	if cli.Config != "" {
		if err := yaml.LoadConfig(cli.Config, cfg); err != nil {
			return nil, err
		}
	}
	if cli.DB != "" {
		cfg.DatabasePath = cli.DB
	}
	return cfg, cfg.Validate()
}

// newLogger returns the logger selected by the global flags and a func
// releasing its output.
func newLogger(cli *CLI, stderr io.Writer) (*slog.Logger, func()) {
	switch {
	case cli.LogFile != "":
		w := &lumberjack.Logger{
			Filename:   cli.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		return slog.New(slog.NewJSONHandler(w, nil)), func() { _ = w.Close() }
	case cli.Verbose:
		return slog.New(slog.NewTextHandler(stderr, nil)), func() {}
	default:
		return slog.New(slog.DiscardHandler), func() {}
	}
}

// wirePipeline builds the fetch, convert and extract chain plus the batch
// and evaluation services on top of it.
func (m *Main) wirePipeline(cli *CLI, deps *Dependencies) (func(), error) {
	cfg := deps.Config
	logging := cli.Verbose || cli.LogFile != ""

	fetcher := m.Fetcher
	closeFetcher := func() {}
	if fetcher == nil {
		if cli.Browser {
			f, err := rod.NewFetcher(
				rod.WithFetchTimeout(cfg.Fetch.Timeout),
				rod.WithUserAgent(cfg.Fetch.UserAgent),
			)
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = fxhttp.NewFetcher(
				fxhttp.WithTimeout(cfg.Fetch.Timeout),
				fxhttp.WithUserAgent(cfg.Fetch.UserAgent),
			)
		}
		closeFetcher = func() { _ = fetcher.Close() }
	}
	if logging {
		fetcher = fxslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var logf crawl.LogFunc
	if logging {
		logf = func(format string, args ...any) {
			deps.Logger.Warn(fmt.Sprintf(format, args...))
		}
	}

	pipeline := &crawl.Pipeline{
		Fetcher:     fetcher,
		Converter:   newConverter(cli.Content),
		Extractor:   furnex.NewExtractor(furnex.NewKeywordSet(cfg.Keywords)),
		RateLimiter: crawl.NewDomainLimiter(cfg.Fetch.RequestsPerSecond),
		RetryDelays: crawl.RetryDelays(cfg.Fetch.MaxRetries),
		Logf:        logf,
	}

	var pages furnex.PageProcessor = pipeline
	var source furnex.CandidateSource = pipeline
	var sitemaps furnex.SitemapService = fxhttp.NewSitemapService(nil)
	if logging {
		pages = fxslog.NewLoggingPageProcessor(pipeline, deps.Logger)
		source = fxslog.NewLoggingCandidateSource(pipeline, deps.Logger)
		sitemaps = fxslog.NewLoggingSitemapService(sitemaps, deps.Logger)
	}

	deps.Pages = pages
	deps.Sitemaps = sitemaps
	deps.Batch = &crawl.Batch{
		URLs:        fs.NewURLList(cfg.URLListPath()),
		Processor:   pages,
		Products:    deps.Products,
		TestSets:    deps.TestSets,
		Concurrency: cfg.Batch.MaxWorkers,
		Logf:        logf,
	}
	deps.Eval = &eval.Evaluator{
		Source:      source,
		Concurrency: cfg.Batch.MaxWorkers,
	}

	return closeFetcher, nil
}

// newConverter returns the HTML to text converter for a --content mode.
func newConverter(mode string) furnex.TextConverter {
	switch mode {
	case "main":
		return trafilatura.NewConverter()
	case "readability":
		return readability.NewConverter()
	default:
		return goquery.NewConverter()
	}
}
