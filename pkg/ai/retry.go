package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy configures WithRetry. MaxRetries is the total number of
// attempts; the wait before retry i (0-based) is BaseDelay * 2^i.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	// Sleep replaces the timer in tests. It must return ctx.Err() when ctx ends first.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *zap.Logger
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: 2 * time.Second}
}

// Delay returns the wait before retrying after the given 0-based attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<attempt)
}

// WithRetry calls fn until it succeeds, fails with a non rate-limit error or
// the attempt budget is spent. Only IsRateLimited errors are retried.
func WithRetry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := policy.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	log := policy.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for i := 0; ; i++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !IsRateLimited(err) || i >= attempts-1 {
			return zero, err
		}

		delay := policy.Delay(i)
		aiRetriesTotal.Inc()
		log.Warn("Rate limit reached, retrying",
			zap.Duration("delay", delay),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err))

		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return zero, fmt.Errorf("retry aborted after attempt %d: %w (last error: %v)", i+1, sleepErr, err)
		}
	}
}

// IsRateLimited reports whether err is a transient rate-limit failure.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, ErrProviderPermanent) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	return strings.Contains(err.Error(), "429")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
