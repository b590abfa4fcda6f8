package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func zeroBackoffPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Retryable:   retryableError,
		Backoff:     func(int) time.Duration { return 0 },
	}
}

func TestRetryFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	got, err := zeroBackoffPolicy(3).Do(context.Background(), func() (string, error) {
		calls++
		return "report", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "report" || calls != 1 {
		t.Errorf("got %q after %d calls", got, calls)
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	got, err := zeroBackoffPolicy(3).Do(context.Background(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &StatusError{Code: 503, Body: "overloaded"}
		}
		return "report", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "report" || calls != 3 {
		t.Errorf("got %q after %d calls", got, calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := &StatusError{Code: 500, Body: "boom"}
	_, err := zeroBackoffPolicy(3).Do(context.Background(), func() (string, error) {
		calls++
		return "", boom
	})
	if calls != 3 {
		t.Errorf("made %d calls, want 3", calls)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != 500 {
		t.Errorf("got %v, want the last provider error", err)
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	_, err := zeroBackoffPolicy(3).Do(context.Background(), func() (string, error) {
		calls++
		return "", &StatusError{Code: 400, Body: "bad request"}
	})
	if calls != 1 {
		t.Errorf("made %d calls, want 1 for a client error", calls)
	}
	if err == nil {
		t.Error("want error back")
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{
		MaxAttempts: 5,
		Retryable:   retryableError,
		Backoff:     func(int) time.Duration { return time.Hour },
	}
	calls := 0
	_, err := policy.Do(ctx, func() (string, error) {
		calls++
		cancel()
		return "", ErrEmptyContent
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1", calls)
	}
}

func TestRetryableErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"empty content", ErrEmptyContent, true},
		{"timeout status", &StatusError{Code: 408}, true},
		{"rate limited", &StatusError{Code: 429}, true},
		{"server error", &StatusError{Code: 500}, true},
		{"bad gateway", &StatusError{Code: 502}, true},
		{"bad request", &StatusError{Code: 400}, false},
		{"unauthorized", &StatusError{Code: 401}, false},
		{"not found", &StatusError{Code: 404}, false},
		{"transport failure", errors.New("connection reset"), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"caller cancel", context.Canceled, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryableError(tc.err); got != tc.want {
				t.Errorf("retryableError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestDefaultBackoffIsLinear(t *testing.T) {
	policy := DefaultRetryPolicy(3, 500*time.Millisecond)
	for attempt, want := range map[int]time.Duration{
		1: 500 * time.Millisecond,
		2: time.Second,
		3: 1500 * time.Millisecond,
	} {
		if got := policy.Backoff(attempt); got != want {
			t.Errorf("Backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}
