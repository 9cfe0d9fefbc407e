// Package crawl provides the breadth-first crawl engine.
// It coordinates fetching, link expansion, document filtering, and
// persistence of accepted documents, starting from a single seed URL and
// staying inside the configured domain.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/stwfetch"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults matching the ICMR Standard Treatment Workflows harvest.
const (
	// DefaultMaxPages caps the number of HTML pages processed in one run.
	DefaultMaxPages = 1000
	// DefaultMinDocumentSize rejects documents below 50 KB, which are
	// typically placeholder or stub PDFs.
	DefaultMinDocumentSize = 50 * 1024
	// DefaultMaxDocumentSize bounds in-memory document buffering.
	DefaultMaxDocumentSize = 50 * 1024 * 1024
	// DefaultMaxPageSize bounds how much of an HTML page is parsed for links.
	DefaultMaxPageSize = 5 * 1024 * 1024
	// DefaultConcurrency is the worker count for sitemap-discovered downloads.
	DefaultConcurrency = 4
	// DefaultSourceAuthority is the fixed authority label stamped on documents.
	DefaultSourceAuthority = "ICMR"
	// DefaultDocumentType is the fixed type label stamped on documents.
	DefaultDocumentType = "Standard Treatment Workflow"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// urlDisplayLen truncates URLs in log output.
	urlDisplayLen = 80
)

// Config holds the per-run crawl settings.
type Config struct {
	// SeedURL is the page the crawl starts from.
	SeedURL string
	// MaxPages caps HTML pages processed; documents do not count against it.
	MaxPages int
	// MinDocumentSize rejects documents smaller than this many bytes.
	MinDocumentSize int64
	// MaxDocumentSize rejects documents larger than this many bytes.
	MaxDocumentSize int64
	// MaxPageSize bounds how many bytes of an HTML page are parsed.
	MaxPageSize int64
	// Concurrency is the worker count for sitemap-discovered downloads.
	Concurrency int
	// SourceAuthority labels saved documents; defaults to ICMR.
	SourceAuthority string
	// DocumentType labels saved documents.
	DocumentType string
	// UseSitemap enables the sitemap discovery pass before the BFS crawl.
	UseSitemap bool
	// Refetch downloads documents even when the catalog already has them.
	Refetch bool
}

func (cfg Config) withDefaults() Config {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.MinDocumentSize <= 0 {
		cfg.MinDocumentSize = DefaultMinDocumentSize
	}
	if cfg.MaxDocumentSize <= 0 {
		cfg.MaxDocumentSize = DefaultMaxDocumentSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = DefaultMaxPageSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.SourceAuthority == "" {
		cfg.SourceAuthority = DefaultSourceAuthority
	}
	if cfg.DocumentType == "" {
		cfg.DocumentType = DefaultDocumentType
	}
	return cfg
}

// Crawler orchestrates a breadth-first crawl of one authority's site.
// Fetcher, Links, and Store are required. Documents, Sitemaps, Limiter,
// Classifier, and Logger are optional; a nil Classifier is derived from the
// seed URL's host and a nil Logger discards output.
type Crawler struct {
	Fetcher    stwfetch.Fetcher
	Links      stwfetch.LinkExtractor
	Store      stwfetch.DocumentStore
	Documents  stwfetch.DocumentService
	Sitemaps   stwfetch.SitemapService
	Limiter    stwfetch.DomainLimiter
	Classifier *stwfetch.Classifier
	Logger     *slog.Logger
	Config     Config
}

// Result holds the outcome of a crawl run.
type Result struct {
	Pages    int
	Saved    int
	Rejected int
	Skipped  int
	Failed   int
	Bytes    int64
	Duration time.Duration
}

// outcome classifies what happened to one candidate document.
type outcome int

const (
	outcomeSaved outcome = iota
	outcomeSkipped
	outcomeRejected
	outcomeFailed
)

func (r *Result) record(o outcome, bytes int64) {
	switch o {
	case outcomeSaved:
		r.Saved++
		r.Bytes += bytes
	case outcomeSkipped:
		r.Skipped++
	case outcomeRejected:
		r.Rejected++
	case outcomeFailed:
		r.Failed++
	}
}

// Run executes the crawl until the frontier empties or the page ceiling is
// reached. Both terminations are normal; per-URL failures are logged and
// counted, never escalated. The only error return is an invalid seed URL.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	seedURL, err := url.Parse(c.Config.SeedURL)
	if err != nil || seedURL.Hostname() == "" {
		return nil, stwfetch.Errorf(stwfetch.EINVALID, "invalid seed URL %q", c.Config.SeedURL)
	}

	cfg := c.Config.withDefaults()
	log := c.logger()

	classifier := c.Classifier
	if classifier == nil {
		classifier = stwfetch.NewClassifier(stwfetch.DefaultDomain(seedURL.Hostname()))
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	visited := make(map[string]struct{})
	result := &Result{}

	log.Info("crawl starting", "seed", cfg.SeedURL, "domain", classifier.Domain)

	if cfg.UseSitemap && c.Sitemaps != nil {
		c.sitemapPass(ctx, classifier, cfg, seedURL, visited, result, log)
	}

	frontier.Push(cfg.SeedURL)

	for frontier.Len() > 0 && result.Pages < cfg.MaxPages {
		if ctx.Err() != nil {
			break
		}

		current, ok := frontier.Pop()
		if !ok {
			break
		}

		// Document-shaped URLs short-circuit before the page branch, so a
		// PDF link never counts toward the page ceiling.
		if classifier.IsCandidateDocument(current) {
			if _, seen := visited[current]; seen {
				continue
			}
			visited[current] = struct{}{}
			o, n := c.downloadDocument(ctx, classifier, cfg, current, log)
			result.record(o, n)
			continue
		}

		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		c.crawlPage(ctx, classifier, cfg, current, frontier, visited, result, log)
	}

	result.Duration = time.Since(started)

	log.Info("crawl completed",
		"pages", result.Pages,
		"saved", result.Saved,
		"rejected", result.Rejected,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"bytes", FormatBytes(result.Bytes),
		"urls_seen", frontier.SeenCount(),
		"duration", result.Duration.Round(time.Millisecond),
	)

	return result, nil
}

// crawlPage fetches one HTML page, expands its outbound links into the
// frontier, and routes misdirected document responses to the document
// pipeline.
func (c *Crawler) crawlPage(ctx context.Context, classifier *stwfetch.Classifier, cfg Config, pageURL string, frontier *Frontier, visited map[string]struct{}, result *Result, log *slog.Logger) {
	log.Info("crawling page", "url", TruncateURL(pageURL, urlDisplayLen))

	res, err := c.fetch(ctx, pageURL)
	if err != nil {
		result.Failed++
		log.Warn("page fetch failed", "url", pageURL, "err", err)
		return
	}
	defer res.Body.Close()

	if !res.Success() {
		result.Failed++
		log.Warn("page fetch failed", "url", pageURL, "status", res.StatusCode)
		return
	}

	// A page-looking URL can still serve a document; trust the response
	// content type over the URL shape and hand it to the document pipeline.
	if classifier.IsDocumentContentType(res.ContentType) {
		o, n := c.processDocument(ctx, classifier, cfg, pageURL, res, log)
		result.record(o, n)
		return
	}

	if !strings.Contains(res.ContentType, "text/html") {
		log.Info("skipping non-HTML content", "url", pageURL, "content_type", res.ContentType)
		return
	}

	result.Pages++

	links, err := c.Links.ExtractLinks(io.LimitReader(res.Body, cfg.MaxPageSize), pageURL)
	if err != nil {
		log.Warn("link extraction failed", "url", pageURL, "err", err)
		return
	}

	for _, link := range links {
		if !classifier.InDomain(link) {
			continue
		}
		// Candidate documents are enqueued regardless of page keywords;
		// pages must also look promising to be worth expanding.
		if classifier.IsCandidateDocument(link) {
			if _, seen := visited[link]; !seen {
				frontier.Push(link)
			}
			continue
		}
		if _, seen := visited[link]; seen {
			continue
		}
		if classifier.IsPromisingPage(link) {
			frontier.Push(link)
		}
	}
}

// downloadDocument fetches a candidate document URL and runs it through the
// document pipeline. Documents already in the catalog are skipped without a
// network request unless Refetch is set.
func (c *Crawler) downloadDocument(ctx context.Context, classifier *stwfetch.Classifier, cfg Config, docURL string, log *slog.Logger) (outcome, int64) {
	if c.Documents != nil && !cfg.Refetch {
		if _, err := c.Documents.FindDocumentByURL(ctx, docURL); err == nil {
			log.Info("document already downloaded", "url", TruncateURL(docURL, urlDisplayLen))
			return outcomeSkipped, 0
		}
	}

	log.Info("downloading document", "url", TruncateURL(docURL, urlDisplayLen))

	res, err := c.fetch(ctx, docURL)
	if err != nil {
		log.Warn("document fetch failed", "url", docURL, "err", err)
		return outcomeFailed, 0
	}
	defer res.Body.Close()

	return c.processDocument(ctx, classifier, cfg, docURL, res, log)
}

// processDocument applies the acceptance pipeline to a fetched candidate
// document: status, content type, topical relevance, and size bounds, in
// that order. Accepted documents are written to the store and cataloged.
func (c *Crawler) processDocument(ctx context.Context, classifier *stwfetch.Classifier, cfg Config, docURL string, res *stwfetch.FetchResult, log *slog.Logger) (outcome, int64) {
	if !res.Success() {
		log.Warn("document fetch failed", "url", docURL, "status", res.StatusCode)
		return outcomeFailed, 0
	}

	if !classifier.IsDocumentContentType(res.ContentType) {
		log.Info("skipping document with unexpected content type", "url", docURL, "content_type", res.ContentType)
		return outcomeRejected, 0
	}

	if !classifier.IsRelevantDocument(docURL) {
		log.Info("skipping non-STW document", "url", docURL)
		return outcomeRejected, 0
	}

	// Declared length allows rejection before the body is read. Servers may
	// omit or misreport it, so the post-read check below remains.
	if res.ContentLength >= 0 && res.ContentLength < cfg.MinDocumentSize {
		log.Info("skipping undersized document", "url", docURL, "content_length", res.ContentLength)
		return outcomeRejected, 0
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, cfg.MaxDocumentSize+1))
	if err != nil {
		log.Warn("document read failed", "url", docURL, "err", err)
		return outcomeFailed, 0
	}

	if int64(len(body)) > cfg.MaxDocumentSize {
		log.Info("skipping oversized document", "url", docURL, "limit", cfg.MaxDocumentSize)
		return outcomeRejected, 0
	}

	if int64(len(body)) < cfg.MinDocumentSize {
		log.Info("skipping undersized document", "url", docURL, "size", len(body))
		return outcomeRejected, 0
	}

	doc := &stwfetch.Document{
		SourceAuthority: cfg.SourceAuthority,
		DocumentType:    cfg.DocumentType,
		OriginalURL:     docURL,
		DownloadedAt:    time.Now().UTC(),
		SizeBytes:       int64(len(body)),
		ContentHash:     contentHash(body),
	}

	if err := c.Store.Save(doc, body); err != nil {
		log.Error("document write failed", "url", docURL, "err", err)
		return outcomeFailed, 0
	}

	if c.Documents != nil {
		if err := c.Documents.CreateDocument(ctx, doc); err != nil {
			if stwfetch.ErrorCode(err) != stwfetch.ECONFLICT {
				log.Warn("catalog insert failed", "url", docURL, "err", err)
			}
		}
	}

	log.Info("document saved", "url", TruncateURL(docURL, urlDisplayLen), "path", doc.LocalFilePath, "size", FormatBytes(doc.SizeBytes))
	return outcomeSaved, doc.SizeBytes
}

// sitemapPass discovers candidate documents from the site's sitemaps and
// downloads them with a bounded worker pool before the BFS crawl begins.
// Admission and visited-set insertion happen here, before dispatch, so each
// URL is processed at most once even with concurrent downloads.
func (c *Crawler) sitemapPass(ctx context.Context, classifier *stwfetch.Classifier, cfg Config, seedURL *url.URL, visited map[string]struct{}, result *Result, log *slog.Logger) {
	siteURL := seedURL.Scheme + "://" + seedURL.Host

	urls, err := c.Sitemaps.DiscoverURLs(ctx, siteURL)
	if err != nil {
		if stwfetch.ErrorCode(err) == stwfetch.ENOTFOUND {
			log.Info("no sitemap found", "site", siteURL)
		} else {
			log.Warn("sitemap discovery failed", "site", siteURL, "err", err)
		}
		return
	}

	var docs []string
	for _, u := range urls {
		if !classifier.InDomain(u) || !classifier.IsCandidateDocument(u) {
			continue
		}
		u = stripFragment(u)
		if _, seen := visited[u]; seen {
			continue
		}
		visited[u] = struct{}{}
		docs = append(docs, u)
	}

	if len(docs) == 0 {
		log.Info("sitemap yielded no candidate documents", "site", siteURL)
		return
	}

	log.Info("sitemap discovery", "site", siteURL, "documents", len(docs))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, docURL := range docs {
		docURL := docURL
		g.Go(func() error {
			o, n := c.downloadDocument(gctx, classifier, cfg, docURL, log)
			mu.Lock()
			result.record(o, n)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// fetch applies the politeness limiter before delegating to the Fetcher.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (*stwfetch.FetchResult, error) {
	if c.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}
	return c.Fetcher.Fetch(ctx, rawURL)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// contentHash computes a hex digest of the document bytes using xxhash.
func contentHash(b []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(b))
}
