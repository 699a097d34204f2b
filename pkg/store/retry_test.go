package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errNetwork = errors.New("network error")

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("RetryWithBackoff() = %v after %d calls, want nil after 1", err, calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	errFatal := errors.New("fatal")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errFatal
	})
	if err != errFatal || calls != 1 {
		t.Errorf("RetryWithBackoff() = %v after %d calls, want fatal after 1", err, calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("RetryWithBackoff() = %v after %d calls, want nil after 2", err, calls)
	}

	// Exhausted retries return the unwrapped error
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(errNetwork)
	})
	if err != errNetwork || calls != 3 {
		t.Errorf("RetryWithBackoff() = %v after %d calls, want network error after 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
