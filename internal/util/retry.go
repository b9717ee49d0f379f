package util

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff calls fn up to maxRetries+1 times, waiting base, 2*base,
// 4*base... between attempts. fn receives the 0-indexed attempt number.
// A cancelled context stops the retries and its error is returned.
func RetryWithBackoff(ctx context.Context, maxRetries int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(base << attempt):
		}
	}
	if maxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
