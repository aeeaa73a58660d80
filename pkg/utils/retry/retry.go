// Package retry waits out transient failures, such as a database
// container which is still booting when the service starts.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrRetry marks an error as transient. Blocking reinvokes its task
// when the task's error wraps ErrRetry.
var ErrRetry = errors.New("retry")

// Backoff blocks until the next attempt may start.
//
// It returns nil to allow the attempt, or ctx.Err() when ctx ends
// first.
type Backoff func(ctx context.Context) error

// Static waits a fixed interval between attempts.
func Static(interval time.Duration) Backoff {
	return Exponential(interval, 1)
}

// Exponential waits initial before the second attempt, and grows the
// wait by factor for each attempt after that.
func Exponential(initial time.Duration, factor float64) Backoff {
	wait := initial
	return func(ctx context.Context) error {
		t := time.NewTimer(wait)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			wait = time.Duration(float64(wait) * factor)
			return nil
		}
	}
}

// Blocking calls task until it succeeds or fails for good.
//
// The first attempt starts at once. After an error wrapping ErrRetry,
// Blocking waits backoff and tries again. Any other error, or ctx
// ending during backoff, stops the loop.
//
// # Returns
//
// - T: value of the last attempt.
//
// - error: nil on success, the task's error when it is not transient,
// or ctx.Err() when ctx ended during backoff.
func Blocking[T any](ctx context.Context, backoff Backoff, task func() (T, error)) (T, error) {
	for {
		got, err := task()
		if err == nil || !errors.Is(err, ErrRetry) {
			return got, err
		}
		if berr := backoff(ctx); berr != nil {
			return got, berr
		}
	}
}
