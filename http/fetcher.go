// Package http provides HTTP-backed implementations of the fetcher and
// sitemap services.
package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/stwfetch"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to the origin server.
const DefaultUserAgent = "ICMR_STW_Crawler/1.0"

// Ensure Fetcher implements stwfetch.Fetcher at compile time.
var _ stwfetch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and documents over HTTP. A single underlying
// client reuses connections across all requests in a crawl; responses are
// returned with their bodies unread so callers can stream or bound the
// read as needed.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return f
}

// Fetch performs a GET request and returns the response as a FetchResult.
// GET is used rather than HEAD because origin servers commonly reject HEAD.
// Non-2xx statuses are reported in the result, not as an error; the error
// return covers transport failures only. The caller owns the body and must
// close it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*stwfetch.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &stwfetch.FetchResult{
		URL:           url,
		StatusCode:    resp.StatusCode,
		ContentType:   strings.ToLower(resp.Header.Get("Content-Type")),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
