package stwfetch

import (
	"context"
	"io"
)

// FetchResult is the outcome of one HTTP fetch. Non-success statuses are
// results, not errors: the caller inspects StatusCode and decides. The
// body is streamed; the caller must close it.
type FetchResult struct {
	URL           string
	StatusCode    int
	ContentType   string // lower-cased Content-Type header
	ContentLength int64  // -1 when the server did not declare one
	Body          io.ReadCloser
}

// Success reports whether the fetch returned a 2xx status.
func (r *FetchResult) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves URLs over HTTP.
type Fetcher interface {
	// Fetch performs a GET request for the URL. It returns an error only
	// for transport-level failures (DNS, connect, timeout); any HTTP
	// response, success or not, produces a FetchResult.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases connection resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
