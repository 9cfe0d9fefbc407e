package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/stwfetch"
	"github.com/fwojciec/stwfetch/crawl"
	"github.com/fwojciec/stwfetch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Documents stwfetch.DocumentService
	Runs      stwfetch.CrawlRunService
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl a site and download STW documents"`
	List  ListCmd  `cmd:"" help:"List downloaded documents"`
	Runs  RunsCmd  `cmd:"" help:"List past crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" optional:"" default:"https://www.icmr.gov.in/standard-treatment-workflows-stws" help:"Seed URL to start crawling from"`
	Domain      string        `help:"Restrict the crawl to this domain (default: the seed URL's host)"`
	DocsDir     string        `default:"data/downloads" help:"Directory for downloaded documents"`
	MetaDir     string        `default:"data/metadata" help:"Directory for metadata sidecars"`
	MaxPages    int           `default:"1000" help:"Maximum number of pages to crawl"`
	MinSize     int64         `default:"51200" help:"Minimum document size in bytes"`
	MaxSize     int64         `default:"52428800" help:"Maximum document size in bytes"`
	Timeout     time.Duration `default:"10s" help:"Fetch timeout per request"`
	Delay       time.Duration `default:"500ms" help:"Delay between requests to the same domain"`
	UserAgent   string        `default:"ICMR_STW_Crawler/1.0" help:"User-Agent header sent with requests"`
	Authority   string        `default:"ICMR" help:"Source authority label recorded with each document"`
	DocType     string        `default:"Standard Treatment Workflow" help:"Document type label recorded with each document"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent sitemap download limit"`
	Sitemap     bool          `help:"Discover candidate documents from the sitemap before crawling"`
	Refetch     bool          `help:"Re-download documents already in the catalog"`
	LogFile     string        `default:"crawler.log" help:"Crawl log file (empty to log to stderr only)"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Authority string `help:"Filter by source authority"`
	Type      string `help:"Filter by document type"`
	Limit     int    `help:"Maximum number of documents to show"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Domain string `help:"Filter by crawled domain"`
	Limit  int    `help:"Maximum number of runs to show"`
}
