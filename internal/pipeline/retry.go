package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// WithRetry runs fn up to attempts times, sleeping baseDelay << i after
// the i-th failure. It returns the last error once attempts are
// exhausted. A run that completes as a no-op is a success and is not
// retried.
func WithRetry(ctx context.Context, attempts int, baseDelay time.Duration, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := baseDelay << (attempt - 1)
			slog.Warn("briefing run failed, backing off",
				"attempt", attempt,
				"of", attempts,
				"delay", delay.String(),
				"error", lastErr,
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
