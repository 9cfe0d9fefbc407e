// Package slog provides logging decorators for stwfetch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stwfetch"
)

// Ensure LoggingFetcher implements stwfetch.Fetcher.
var _ stwfetch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   stwfetch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next stwfetch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *stwfetch.FetchResult, err error) {
	defer func(begin time.Time) {
		status := 0
		if res != nil {
			status = res.StatusCode
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
