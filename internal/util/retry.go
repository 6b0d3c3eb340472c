// ABOUTME: Retry utilities for LLM and embedding API calls
// ABOUTME: Exponential backoff with jitter plus an explicit, testable policy
package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift (max 30 for safety)
	if attempt > 30 {
		attempt = 30
	}
	// Exponential: 2^attempt * base
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	// Cap at 30 seconds
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	// Jitter needs a positive range; a zero base delay has none.
	half := int64(backoff) / 2
	if half <= 0 {
		return backoff
	}
	// Add jitter: -25% to +25% using auto-seeded math/rand/v2
	jitter := time.Duration(rand.Int64N(half)) - backoff/4
	return backoff + jitter
}

// RetryPolicy bounds repeated attempts of a single operation. MaxAttempts
// counts the initial call, so MaxAttempts=3 means at most two retries.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Do runs fn until it succeeds, the attempt budget is exhausted, or
// retryable reports the error as terminal. Waits between attempts follow
// CalculateBackoff and respect context cancellation.
func (p RetryPolicy) Do(ctx context.Context, fn func() error, retryable func(error) bool) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(CalculateBackoff(p.BaseDelay, attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
