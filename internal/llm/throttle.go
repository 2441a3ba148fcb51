package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces calls to an underlying client by a minimum interval.
// One Throttle may be shared by many concurrent simulations.
type Throttle struct {
	next    Client
	limiter *rate.Limiter
}

// NewThrottle wraps next so calls start at most once per interval.
// A non-positive interval disables throttling.
func NewThrottle(next Client, interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{next: next, limiter: rate.NewLimiter(limit, 1)}
}

// Generate waits for the limiter, then delegates.
func (t *Throttle) Generate(ctx context.Context, req Request) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("throttle wait: %w", err)
	}
	return t.next.Generate(ctx, req)
}

// Available delegates to the wrapped client.
func (t *Throttle) Available() bool {
	return t.next.Available()
}
