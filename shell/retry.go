package shell

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/campuslib/loanledger-go/store"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, and so on.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// RetryWithExponentialBackoff implements optimistic-concurrency retry.
// Only store.ErrConcurrencyConflict is retried - every other error fails
// fast, in particular business-rule violations, which represent legitimate
// outcomes and must reach the caller on the first evaluation against fresh
// state.
//
// Retry schedule (default): 0ms, 10ms, 20ms, 40ms, 80ms, 160ms with 30% jitter.
func RetryWithExponentialBackoff(ctx context.Context, fn RetryableFunc, options ...RetryOption) error {
	config := &retryConfig{
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return err
		}
	}

	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := config.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * defaultJitterFactor //nolint:gosec // math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			select {
			case <-time.After(backoffDelay):
				// continue with the retry
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !errors.Is(lastErr, store.ErrConcurrencyConflict) {
			return lastErr
		}
	}

	return lastErr
}
