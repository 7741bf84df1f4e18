package fallback

import (
	"context"
	"errors"
	"time"

	"pulse-assistant/pkg/log"
)

// Config defines the retry and fallback policy for a chain run.
type Config struct {
	RetryAttempts   int           // attempts per unit for retryable errors
	RetryDelay      time.Duration // backoff unit: delay = attempt index × RetryDelay
	MaxTotalTimeout time.Duration // optional deadline for the whole chain
}

// Unit is one provider attempt in an ordered chain: a human-readable name,
// the model it targets, and the unit of work to execute against it.
type Unit[T any] struct {
	Name  string
	Model string
	Do    func(ctx context.Context) (T, error)
}

// Run tries units strictly in order and returns the first success.
// Retryable failures (ErrTransient, ErrRateLimited, timeouts, anything
// unclassified) are retried in place with linear backoff before moving on;
// ErrNonRetryable advances to the next unit without local retries.
// When every unit is exhausted, Run returns an *ExhaustedError wrapping
// ErrAllProvidersFailed.
func Run[T any](ctx context.Context, cfg Config, l log.Logger, units []Unit[T]) (T, error) {
	var zero T

	if len(units) == 0 {
		return zero, ErrNoProvidersConfigured
	}

	if cfg.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.MaxTotalTimeout)
		defer cancel()
	}

	var (
		lastErr      error
		lastUnit     string
		lastAttempts int
	)

	for _, unit := range units {
		select {
		case <-ctx.Done():
			return zero, &ExhaustedError{Unit: lastUnit, Attempts: lastAttempts, Err: ctx.Err()}
		default:
		}

		result, attempts, err := runWithRetry(ctx, cfg, unit)
		if err == nil {
			l.Infof(ctx, "fallback: unit %q (model %s) succeeded on attempt %d", unit.Name, unit.Model, attempts)
			return result, nil
		}

		l.Warnf(ctx, "fallback: unit %q (model %s) failed after %d attempt(s): %v", unit.Name, unit.Model, attempts, err)
		lastErr, lastUnit, lastAttempts = err, unit.Name, attempts
	}

	return zero, &ExhaustedError{Unit: lastUnit, Attempts: lastAttempts, Err: lastErr}
}

// runWithRetry executes one unit with the in-place retry policy and
// returns the number of attempts actually made.
func runWithRetry[T any](ctx context.Context, cfg Config, unit Unit[T]) (T, int, error) {
	var (
		zero    T
		lastErr error
	)

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * cfg.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, attempt, ctx.Err()
			}
		}

		result, err := unit.Do(ctx)
		if err == nil {
			return result, attempt + 1, nil
		}
		lastErr = err

		if errors.Is(err, ErrNonRetryable) {
			return zero, attempt + 1, err
		}
	}

	return zero, attempts, lastErr
}
