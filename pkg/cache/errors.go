package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a failure to reach a remote backend.
	ErrNetwork = errors.New("cache: backend unreachable")

	// ErrCacheMiss marks a lookup that found nothing.
	ErrCacheMiss = errors.New("cache: miss")
)

// RetryableError marks Err as transient. Only retryable errors are retried
// by [Backoff.Do].
type RetryableError struct{ Err error }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or an error it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing waits.
type Backoff struct {
	Attempts int           // total calls, including the first
	Initial  time.Duration // wait after the first failure
	Max      time.Duration // upper bound on a single wait; unbounded when zero
}

// DefaultBackoff is used by the Redis backend.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond, Max: 2 * time.Second}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out, in which case the last error is returned. A done ctx
// stops the wait between attempts and returns ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	wait := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if wait *= 2; b.Max > 0 && wait > b.Max {
			wait = b.Max
		}
	}
}
