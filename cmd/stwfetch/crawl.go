package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/stwfetch"
	"github.com/fwojciec/stwfetch/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	domain := c.Domain
	if domain == "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid seed URL %q\n", c.URL)
			return err
		}
		domain = stwfetch.DefaultDomain(u.Hostname())
	}

	startedAt := time.Now().UTC()

	result, err := deps.Crawler.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stwfetch.ErrorMessage(err))
		return err
	}

	run := &stwfetch.CrawlRun{
		SeedURL:           c.URL,
		Domain:            domain,
		PagesCrawled:      result.Pages,
		DocumentsSaved:    result.Saved,
		DocumentsRejected: result.Rejected,
		FetchFailures:     result.Failed,
		BytesStored:       result.Bytes,
		StartedAt:         startedAt,
		FinishedAt:        time.Now().UTC(),
	}
	if err := deps.Runs.CreateCrawlRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stwfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages in %s\n", result.Pages, result.Duration.Round(time.Second))
	fmt.Fprintf(deps.Stdout, "  Saved %d documents (%s)\n", result.Saved, crawl.FormatBytes(result.Bytes))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d already downloaded\n", result.Skipped)
	}
	if result.Rejected > 0 {
		fmt.Fprintf(deps.Stdout, "  Rejected %d documents\n", result.Rejected)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed %d fetches\n", result.Failed)
	}

	return nil
}
