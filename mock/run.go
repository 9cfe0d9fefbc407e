package mock

import (
	"context"

	"github.com/fwojciec/stwfetch"
)

var _ stwfetch.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService is a mock implementation of stwfetch.CrawlRunService.
type CrawlRunService struct {
	CreateCrawlRunFn func(ctx context.Context, run *stwfetch.CrawlRun) error
	FindCrawlRunsFn  func(ctx context.Context, filter stwfetch.CrawlRunFilter) ([]*stwfetch.CrawlRun, error)
}

func (s *CrawlRunService) CreateCrawlRun(ctx context.Context, run *stwfetch.CrawlRun) error {
	return s.CreateCrawlRunFn(ctx, run)
}

func (s *CrawlRunService) FindCrawlRuns(ctx context.Context, filter stwfetch.CrawlRunFilter) ([]*stwfetch.CrawlRun, error) {
	return s.FindCrawlRunsFn(ctx, filter)
}
