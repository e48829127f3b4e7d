package httputil

import (
	"context"
	"errors"
	"time"
)

// MaxDelay caps the wait between two attempts, including server-provided
// Retry-After values.
const MaxDelay = 30 * time.Second

// RetryableError marks a transient failure. After, when positive, is the
// minimum wait the server asked for before the next attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. It returns nil for a nil error.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// RetryableAfter is [Retryable] with a server-requested wait.
func RetryableAfter(err error, after time.Duration) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, After: after}
}

// IsRetryable reports whether err, or any error it wraps, is a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// retryAfter returns the wait requested by a RetryableError in err, or 0.
func retryAfter(err error) time.Duration {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.After
	}
	return 0
}

// Retry calls fn up to attempts times. Only errors marked with [Retryable]
// are retried; the wait doubles after each failure, is raised to any
// Retry-After the error carries and never exceeds [MaxDelay]. It returns
// the last error when attempts run out, or ctx.Err() when cancelled while
// waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) || i == attempts-1 {
			break
		}

		wait := min(max(delay, retryAfter(err)), MaxDelay)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return lastErr
}

// RetryWithBackoff calls [Retry] with [DefaultAttempts] and [DefaultDelay].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultDelay, fn)
}
