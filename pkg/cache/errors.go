package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks backend failures (timeouts, connection loss) as opposed
// to plain misses, which are reported through the Get ok flag.
var ErrBackend = errors.New("cache backend error")

// RetryableError marks a transient failure worth retrying, such as a
// dropped Redis connection.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as retryable. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the wait between
// attempts starting at one second. Non-retryable errors abort immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3

	var lastErr error
	delay := time.Second
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
