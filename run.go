package stwfetch

import (
	"context"
	"time"
)

// CrawlRun records the outcome of one crawl invocation.
type CrawlRun struct {
	ID                string
	SeedURL           string
	Domain            string
	PagesCrawled      int
	DocumentsSaved    int
	DocumentsRejected int
	FetchFailures     int
	BytesStored       int64
	StartedAt         time.Time
	FinishedAt        time.Time
}

// Validate returns an error if the run contains invalid fields.
func (r *CrawlRun) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "crawl run seed URL required")
	}
	if r.Domain == "" {
		return Errorf(EINVALID, "crawl run domain required")
	}
	return nil
}

// CrawlRunService represents a ledger of completed crawl runs.
type CrawlRunService interface {
	// CreateCrawlRun records a completed run.
	CreateCrawlRun(ctx context.Context, run *CrawlRun) error

	// FindCrawlRuns retrieves runs matching the filter, most recent first.
	FindCrawlRuns(ctx context.Context, filter CrawlRunFilter) ([]*CrawlRun, error)
}

// CrawlRunFilter represents a filter for FindCrawlRuns.
type CrawlRunFilter struct {
	Domain *string

	Offset int
	Limit  int
}
