package validator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/logging"
)

// Outcome classifies the result of a single query attempt. Retry is driven
// by this explicit classification, not by error propagation: only retryable
// outcomes re-enter the loop, terminal outcomes demote the work item to
// unanswered, and fatal outcomes abort the call.
type Outcome int

const (
	// OutcomeSuccess means the query returned usable data.
	OutcomeSuccess Outcome = iota

	// OutcomeRetryable means the attempt hit a rate limit or a transport
	// error and should be retried with backoff.
	OutcomeRetryable

	// OutcomeTerminal means the validator cannot answer for this variant
	// (server error, malformed response). The item is recorded as
	// unanswered and the batch continues.
	OutcomeTerminal

	// OutcomeFatal means an unexpected failure that should propagate
	// (e.g. an unrecognized 4xx status).
	OutcomeFatal
)

// classify maps an attempt error to an Outcome.
//
// 429 and transport-level failures are transient; 5xx is a known
// deterministic failure mode of the validator on specific variants and is
// never retried; any other non-2xx status is unexpected and fatal.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.IsRateLimited(err):
		return OutcomeRetryable
	case errors.IsOracleUnavailable(err):
		return OutcomeTerminal
	default:
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) {
			return OutcomeFatal
		}
		// Timeouts, connection resets, unreachable host.
		return OutcomeRetryable
	}
}

// RetryConfig configures the retry driver for a single work item.
type RetryConfig struct {
	MaxAttempts    int           // total attempts, including the first
	InitialBackoff time.Duration // doubled each attempt
	MaxBackoff     time.Duration // backoff cap
}

// DefaultRetryConfig returns the retry policy the validator documents:
// up to 5 attempts, exponential backoff from 1s capped at 10s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    constants.MaxRetries,
		InitialBackoff: constants.RetryBackoff,
		MaxBackoff:     constants.MaxRetryBackoff,
	}
}

// backoff computes the sleep before attempt n (0-based).
func (cfg RetryConfig) backoff(attempt int) time.Duration {
	d := float64(cfg.InitialBackoff) * math.Pow(2, float64(attempt))
	if d > float64(cfg.MaxBackoff) {
		d = float64(cfg.MaxBackoff)
	}
	return time.Duration(d)
}

// withRetry runs fn until it succeeds, fails terminally, or exhausts the
// attempt budget. Exhaustion returns ErrRetriesExhausted wrapped with the
// last error; callers treat that as terminal for the work item, not for the
// batch.
func (cfg RetryConfig) withRetry(ctx context.Context, operation string, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		switch classify(err) {
		case OutcomeSuccess:
			if attempt > 0 {
				logging.Debug().
					Str("operation", operation).
					Int("attempt", attempt+1).
					Msg("retry succeeded")
			}
			return nil
		case OutcomeTerminal, OutcomeFatal:
			return err
		case OutcomeRetryable:
			lastErr = err
		}

		if attempt < cfg.MaxAttempts-1 {
			wait := cfg.backoff(attempt)
			logging.Warn().
				Err(lastErr).
				Str("operation", operation).
				Int("attempt", attempt+1).
				Dur("backoff", wait).
				Msg("transient failure, retrying")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	return fmt.Errorf("%w for %s: %v", errors.ErrRetriesExhausted, operation, lastErr)
}
