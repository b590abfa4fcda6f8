package service

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrEmptyContent marks a response the provider answered but left blank.
// Treated like a retryable failure.
var ErrEmptyContent = errors.New("empty content in provider response")

// StatusError is a non-2xx provider response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

// RetryPolicy is the explicit retry contract for provider calls: how
// many attempts per model, which failures are worth retrying, and how
// long to wait between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Retryable   func(err error) bool
	Backoff     func(attempt int) time.Duration
}

// DefaultRetryPolicy retries timeouts, rate limits, 5xx responses, and
// empty content, with a linearly increasing delay.
func DefaultRetryPolicy(maxAttempts int, backoffStep time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Retryable:   retryableError,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoffStep
		},
	}
}

func retryableError(err error) bool {
	if errors.Is(err, ErrEmptyContent) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Code
		return code == 408 || code == 429 || code >= 500
	}
	// Transport-level failures (connection reset, attempt timeout) have
	// no status; give them the same treatment as a timeout.
	return !errors.Is(err, context.Canceled)
}

// Do runs fn under the policy. The last error is returned when every
// attempt fails; caller cancellation stops immediately.
func (p RetryPolicy) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		text, err := fn()
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !p.Retryable(err) || attempt == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.Backoff(attempt)):
		}
	}
	return "", lastErr
}
