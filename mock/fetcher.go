package mock

import (
	"context"

	"github.com/fwojciec/stwfetch"
)

var _ stwfetch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of stwfetch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*stwfetch.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*stwfetch.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
