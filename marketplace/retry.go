package marketplace

import (
	"context"
	"time"
)

// RunWithRetry runs op up to maxAttempts times, sleeping baseDelay before the
// second attempt and doubling the delay after each further failure (no
// jitter). It returns the last error once the attempts are exhausted. Caller
// cancellation interrupts both the backoff sleep and the attempt loop and is
// returned as the context's error, never folded into the last attempt error.
func RunWithRetry[T any](ctx context.Context, op func(context.Context) (T, error), maxAttempts int, baseDelay time.Duration) (T, error) {
	var zero T
	var lastErr error

	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// An op that failed because the caller gave up is a cancellation,
		// not a retryable provider error.
		if err := ctx.Err(); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}
