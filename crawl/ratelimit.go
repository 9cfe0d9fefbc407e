package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/stwfetch"
	"golang.org/x/time/rate"
)

var _ stwfetch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a politeness delay between successive requests to
// the same host using per-domain token buckets. Requests to different
// domains do not block each other, and the aggregate request rate to any
// one host never exceeds one per delay interval regardless of how many
// goroutines share the limiter.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter that spaces requests to each
// domain by at least the given delay. A non-positive delay disables
// limiting. Each domain gets its own limiter with a burst of 1, so the
// first request proceeds immediately and later ones wait out the interval.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the politeness interval for the domain has elapsed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
