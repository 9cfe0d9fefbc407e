package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/stwfetch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ stwfetch.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService implements stwfetch.CrawlRunService using SQLite.
type CrawlRunService struct {
	db *DB
}

// NewCrawlRunService creates a new CrawlRunService.
func NewCrawlRunService(db *DB) *CrawlRunService {
	return &CrawlRunService{db: db}
}

// CreateCrawlRun records a completed run in the ledger.
func (s *CrawlRunService) CreateCrawlRun(ctx context.Context, run *stwfetch.CrawlRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, seed_url, domain, pages_crawled, documents_saved, documents_rejected, fetch_failures, bytes_stored, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, run.Domain, run.PagesCrawled, run.DocumentsSaved, run.DocumentsRejected,
		run.FetchFailures, run.BytesStored, run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339))

	return err
}

// FindCrawlRuns retrieves runs matching the filter, most recent first.
func (s *CrawlRunService) FindCrawlRuns(ctx context.Context, filter stwfetch.CrawlRunFilter) ([]*stwfetch.CrawlRun, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, domain, pages_crawled, documents_saved, documents_rejected, fetch_failures, bytes_stored, started_at, finished_at FROM crawl_runs WHERE 1=1")

	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}

	query.WriteString(" ORDER BY started_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*stwfetch.CrawlRun
	for rows.Next() {
		var run stwfetch.CrawlRun
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.SeedURL, &run.Domain, &run.PagesCrawled, &run.DocumentsSaved,
			&run.DocumentsRejected, &run.FetchFailures, &run.BytesStored, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
