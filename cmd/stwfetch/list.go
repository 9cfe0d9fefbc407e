package main

import (
	"fmt"

	"github.com/fwojciec/stwfetch"
	"github.com/fwojciec/stwfetch/crawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := stwfetch.DocumentFilter{Limit: c.Limit}
	if c.Authority != "" {
		filter.SourceAuthority = &c.Authority
	}
	if c.Type != "" {
		filter.DocumentType = &c.Type
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stwfetch.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'stwfetch crawl' to download some.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %8s  %s\n",
			doc.DownloadedAt.Format("2006-01-02"),
			crawl.FormatBytes(doc.SizeBytes),
			crawl.TruncateURL(doc.OriginalURL, 80))
	}

	return nil
}
