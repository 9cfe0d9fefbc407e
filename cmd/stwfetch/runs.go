package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/stwfetch"
	"github.com/fwojciec/stwfetch/crawl"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := stwfetch.CrawlRunFilter{Limit: c.Limit}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}

	runs, err := deps.Runs.FindCrawlRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stwfetch.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawl runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  pages=%d saved=%d rejected=%d failed=%d  %s in %s\n",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Domain,
			run.PagesCrawled,
			run.DocumentsSaved,
			run.DocumentsRejected,
			run.FetchFailures,
			crawl.FormatBytes(run.BytesStored),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}

	return nil
}
