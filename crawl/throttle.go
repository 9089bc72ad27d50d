package crawl

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultCrawlDelay is the default courtesy delay between page fetches.
const DefaultCrawlDelay = 500 * time.Millisecond

// Throttle enforces the crawl's courtesy delay between page fetches using
// per-domain token buckets. It exists to avoid overloading the target site,
// not to coordinate parallel workers; the crawl itself is sequential.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewThrottle creates a Throttle enforcing the given minimum interval
// between requests to the same domain, with no bursting. Non-positive
// intervals fall back to DefaultCrawlDelay.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultCrawlDelay
	}
	return &Throttle{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the throttle allows a request to the domain.
// Returns an error only if the context is canceled before the wait
// completes.
func (t *Throttle) Wait(ctx context.Context, domain string) error {
	t.mu.Lock()
	limiter, ok := t.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(t.interval), 1)
		t.limiters[domain] = limiter
	}
	t.mu.Unlock()

	return limiter.Wait(ctx)
}
