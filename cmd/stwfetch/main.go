package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/stwfetch"
	"github.com/fwojciec/stwfetch/crawl"
	"github.com/fwojciec/stwfetch/fs"
	"github.com/fwojciec/stwfetch/goquery"
	stwhttp "github.com/fwojciec/stwfetch/http"
	stwslog "github.com/fwojciec/stwfetch/slog"
	"github.com/fwojciec/stwfetch/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService stwfetch.DocumentService
	CrawlRunService stwfetch.CrawlRunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("stwfetch"),
		kong.Description("Download Standard Treatment Workflow documents published by ICMR"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'stwfetch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STWFETCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	m.CrawlRunService = sqlite.NewCrawlRunService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Runs = m.CrawlRunService

	// Wire the crawl stack only when crawling
	if cmd == "crawl" {
		logOut := io.Writer(stderr)
		if cli.Crawl.LogFile != "" {
			f, err := os.OpenFile(cli.Crawl.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %q: %w", cli.Crawl.LogFile, err)
			}
			defer f.Close()
			logOut = io.MultiWriter(stderr, f)
		}

		level := slog.LevelInfo
		if cli.Crawl.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

		fetcher := stwhttp.NewFetcher(
			stwhttp.WithTimeout(cli.Crawl.Timeout),
			stwhttp.WithUserAgent(cli.Crawl.UserAgent),
		)
		defer fetcher.Close()

		var classifier *stwfetch.Classifier
		if cli.Crawl.Domain != "" {
			classifier = stwfetch.NewClassifier(cli.Crawl.Domain)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:    stwslog.NewLoggingFetcher(fetcher, logger),
			Links:      goquery.NewExtractor(),
			Store:      stwslog.NewLoggingDocumentStore(fs.NewStore(cli.Crawl.DocsDir, cli.Crawl.MetaDir), logger),
			Documents:  m.DocumentService,
			Sitemaps:   stwslog.NewLoggingSitemapService(stwhttp.NewSitemapService(nil), logger),
			Limiter:    crawl.NewDomainLimiter(cli.Crawl.Delay),
			Classifier: classifier,
			Logger:     logger,
			Config: crawl.Config{
				SeedURL:         cli.Crawl.URL,
				MaxPages:        cli.Crawl.MaxPages,
				MinDocumentSize: cli.Crawl.MinSize,
				MaxDocumentSize: cli.Crawl.MaxSize,
				Concurrency:     cli.Crawl.Concurrency,
				SourceAuthority: cli.Crawl.Authority,
				DocumentType:    cli.Crawl.DocType,
				UseSitemap:      cli.Crawl.Sitemap,
				Refetch:         cli.Crawl.Refetch,
			},
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("STWFETCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "stwfetch.db"
	}
	dir := filepath.Join(home, ".stwfetch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "stwfetch.db")
}
