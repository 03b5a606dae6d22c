package validator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/eastgenomics/vepdiff/pkg/errors"
)

// TestClassifyOutcome tests the error-to-outcome mapping that drives retry.
func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil is success", nil, OutcomeSuccess},
		{"429 retries", errors.NewAPIError(429, "/x", "slow down"), OutcomeRetryable},
		{"500 is terminal", errors.NewAPIError(500, "/x", "boom"), OutcomeTerminal},
		{"502 is terminal", errors.NewAPIError(502, "/x", "bad gateway"), OutcomeTerminal},
		{"404 is fatal", errors.NewAPIError(404, "/x", "missing"), OutcomeFatal},
		{"transport failure retries", io.ErrUnexpectedEOF, OutcomeRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// TestBackoff tests exponential growth and the cap.
func TestBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 10 * time.Second}

	wants := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second, // capped
		10 * time.Second,
	}
	for attempt, want := range wants {
		if got := cfg.backoff(attempt); got != want {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}

// TestWithRetry_ExhaustsAttempts tests that a persistent retryable error
// consumes exactly the attempt budget and surfaces ErrRetriesExhausted.
func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

	attempts := 0
	err := cfg.withRetry(context.Background(), "chr1-100-A-G", func(context.Context) error {
		attempts++
		return errors.NewAPIError(429, "/x", "slow down")
	})

	if attempts != 5 {
		t.Errorf("attempts = %d, want 5", attempts)
	}
	if !errors.Is(err, errors.ErrRetriesExhausted) {
		t.Errorf("expected ErrRetriesExhausted, got %v", err)
	}
}

// TestWithRetry_TerminalStopsImmediately tests that a server error is never
// retried.
func TestWithRetry_TerminalStopsImmediately(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

	attempts := 0
	err := cfg.withRetry(context.Background(), "chr1-100-A-G", func(context.Context) error {
		attempts++
		return errors.NewAPIError(500, "/x", "boom")
	})

	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if !errors.IsOracleUnavailable(err) {
		t.Errorf("expected the server error back, got %v", err)
	}
}

// TestWithRetry_SucceedsAfterTransient tests recovery inside the budget.
func TestWithRetry_SucceedsAfterTransient(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

	attempts := 0
	err := cfg.withRetry(context.Background(), "chr1-100-A-G", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.NewAPIError(429, "/x", "slow down")
		}
		return nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

// TestWithRetry_ContextCancellation tests that cancellation interrupts both
// the loop and the backoff sleep.
func TestWithRetry_ContextCancellation(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Minute, MaxBackoff: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- cfg.withRetry(ctx, "chr1-100-A-G", func(context.Context) error {
			attempts++
			return errors.NewAPIError(429, "/x", "slow down")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("withRetry did not return after cancellation")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}
