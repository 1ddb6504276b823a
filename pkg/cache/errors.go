package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNetwork is returned when a remote backend cannot be reached.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrUnsupported is returned by Open for an unknown URL scheme.
	ErrUnsupported = errors.New("unsupported cache backend")
)

// RetryableError marks an error that Backoff.Retry should try again.
type RetryableError struct{ Err error }

// Retryable wraps err so that Backoff.Retry retries it. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is an exponential retry schedule. Delay doubles after each failed
// attempt.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when a remote backend is first contacted.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, returns an error not marked Retryable,
// or the attempts run out. The last error is returned in the latter case.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for attempt := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// ping checks that a freshly dialed backend answers. Failures are retried
// on DefaultBackoff and reported as ErrNetwork.
func ping(ctx context.Context, backend string, check func(context.Context) error) error {
	return DefaultBackoff.Retry(ctx, func() error {
		if err := check(ctx); err != nil {
			return Retryable(fmt.Errorf("%w: %s ping: %v", ErrNetwork, backend, err))
		}
		return nil
	})
}
