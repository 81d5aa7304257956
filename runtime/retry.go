package runtime

import (
	"context"
	"time"
)

// Retry calls fn until it succeeds, attempts are exhausted or ctx is done.
// The wait between two attempts starts at backoff and doubles each time.
// It returns the last error.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	var err error
	if attempts < 1 {
		attempts = 1
	}
	wait := backoff
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}
