// Package ratelimit provides per-key token bucket rate limiting for MCP tools.
package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited is wrapped by CheckLimit when a call is rejected.
var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter keeps one token bucket per key, each with the same rate and burst.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int

	// now is injectable for tests.
	now func() time.Time
}

// NewLimiter creates a limiter refilling perSecond tokens per second with
// the given burst. A new key starts with a full bucket.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// PerMinute is NewLimiter expressed in calls per minute.
func PerMinute(n int, burst int) *Limiter {
	return NewLimiter(float64(n)/60.0, burst)
}

// Allow consumes a token for key and reports whether one was available.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b.AllowN(l.now(), 1)
}

// Burst returns the bucket capacity.
func (l *Limiter) Burst() int {
	return l.burst
}

// Tool names with a default limit.
const (
	ToolSimulationStart  = "simulation_start"
	ToolSimulationStatus = "simulation_status"
	ToolSimulationGet    = "simulation_get"
	ToolSimulationList   = "simulation_list"
	ToolProfileList      = "profile_list"
)

// ToolLimiters maps tool names to their rate limiters.
type ToolLimiters map[string]*Limiter

// NewToolLimiters creates the default set of per-tool rate limiters.
// Starting a simulation costs dozens of model calls, so it is the tightest.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		ToolSimulationStart:  PerMinute(5, 2),
		ToolSimulationStatus: PerMinute(120, 20),
		ToolSimulationGet:    PerMinute(30, 5),
		ToolSimulationList:   PerMinute(60, 10),
		ToolProfileList:      PerMinute(60, 10),
	}
}

// CheckLimit checks the rate limit for a given tool name.
// Tools without a configured limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}
	if !limiter.Allow(toolName) {
		return fmt.Errorf("%w for %s, please try again shortly", ErrRateLimited, toolName)
	}
	return nil
}
