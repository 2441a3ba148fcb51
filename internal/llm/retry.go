package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryConfig configures Retry.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
}

// DefaultRetryConfig returns three attempts with exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Retry re-issues calls that fail with a rate-limit or server error.
// Other errors are returned immediately.
type Retry struct {
	next   Client
	cfg    RetryConfig
	logger *slog.Logger

	// sleep is overridable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetry wraps next with cfg. A nil logger discards retry logs.
func NewRetry(next Client, cfg RetryConfig, logger *slog.Logger) *Retry {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Retry{next: next, cfg: cfg, logger: logger, sleep: sleepCtx}
}

// Generate delegates with backoff on retryable failures.
func (r *Retry) Generate(ctx context.Context, req Request) (string, error) {
	delay := r.cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		text, err := r.next.Generate(ctx, req)
		if err == nil {
			if attempt > 1 {
				r.logger.Debug("generation succeeded after retry", "attempt", attempt)
			}
			return text, nil
		}
		lastErr = err
		if !Retryable(err) || ctx.Err() != nil || attempt == r.cfg.MaxAttempts {
			break
		}

		wait := delay
		if r.cfg.Jitter {
			wait = addJitter(delay)
		}
		r.logger.Warn("generation failed, retrying", "attempt", attempt, "wait", wait, "error", err)
		if err := r.sleep(ctx, wait); err != nil {
			return "", fmt.Errorf("retry wait: %w", err)
		}

		delay = time.Duration(float64(delay) * r.cfg.Multiplier)
		if r.cfg.MaxDelay > 0 && delay > r.cfg.MaxDelay {
			delay = r.cfg.MaxDelay
		}
	}
	return "", lastErr
}

// Available delegates to the wrapped client.
func (r *Retry) Available() bool {
	return r.next.Available()
}

// addJitter adds up to 25% random jitter to delay.
func addJitter(delay time.Duration) time.Duration {
	if delay < 4 {
		return delay
	}
	return delay + time.Duration(rand.Int64N(int64(delay/4)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
