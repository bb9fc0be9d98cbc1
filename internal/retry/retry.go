// Package retry provides a bounded retry combinator with a flat delay
// between attempts.
package retry

import (
	"context"
	"errors"
	"time"
)

// Do invokes fn up to attempts times, sleeping delay between failures.
// It returns nil on the first success, or the joined errors of every attempt
// once they are exhausted. Context cancellation aborts the wait between
// attempts and is reported alongside the attempt errors.
//
// attempts < 1 is treated as a single attempt.
func Do(ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var errs []error
	for i := 0; i < attempts; i++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, err)

		// No sleep after the final attempt.
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return errors.Join(errs...)
		}
	}

	return errors.Join(errs...)
}
