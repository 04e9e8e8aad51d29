package service

import (
	"context"
	"time"
)

// RetryPolicy is a bounded retry with fixed backoff. The dictation
// transport composes it around recognition restarts; the questionnaire
// core itself never retries generation calls.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultDictationRetry matches the recognition restart behavior: three
// attempts, one second apart.
func DefaultDictationRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: time.Second}
}

// Do runs fn up to MaxAttempts times, sleeping Backoff between attempts.
// It stops early on success or context cancellation and returns the last
// error otherwise.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff):
		}
	}
	return lastErr
}
