package fallback

import (
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed indicates every unit in the chain was exhausted.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates the chain was run with no units.
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrTransient marks a retryable provider failure (model loading,
	// cold start, timeout). The chain retries the same unit with backoff.
	ErrTransient = errors.New("provider transient failure")

	// ErrRateLimited marks a rate-limit rejection. Retried like a
	// transient error, then escalated to the next unit.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrNonRetryable marks a rejection that retrying cannot fix
	// (bad request, unknown model, forbidden). The chain advances
	// immediately without local retries.
	ErrNonRetryable = errors.New("provider request rejected")
)

// ExhaustedError is returned when every unit failed. It carries the last
// failing unit and its error so callers can report which provider broke.
type ExhaustedError struct {
	Unit     string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: last unit %q failed after %d attempt(s): %v",
		ErrAllProvidersFailed, e.Unit, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrAllProvidersFailed so errors.Is works on the
// aggregate without losing the underlying cause.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllProvidersFailed
}
