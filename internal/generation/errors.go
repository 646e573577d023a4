package generation

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the generation package.
//
// Only ErrRateLimited and ErrAuthFailure are ever visible to the feature
// layer: rate limiting tells the caller how long to wait, and an auth
// failure is a configuration problem that retrying cannot fix. Every other
// failure mode is absorbed behind static fallback content.
var (
	// ErrRateLimited is returned when the caller's sliding-window budget
	// is exhausted. Use RateLimitWait to recover the suggested wait.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrAuthFailure is returned for authentication/authorization
	// failures against the upstream endpoint. Never retried.
	ErrAuthFailure = errors.New("upstream authentication failed")

	// ErrTransientFailure covers network errors, non-2xx responses and
	// timeouts. Retried up to the bound, then downgraded to fallback.
	ErrTransientFailure = errors.New("transient generation failure")

	// ErrInvalidResponse is returned when the upstream payload cannot be
	// parsed or does not meet minimum structural requirements.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is
	// invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// RateLimitError wraps ErrRateLimited with the caller-facing wait duration
// until the oldest counted request rolls out of the window.
type RateLimitError struct {
	Wait time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.Wait.Round(time.Second))
}

// Unwrap makes errors.Is(err, ErrRateLimited) hold.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// RateLimitWait extracts the wait duration from a rate-limit error.
// Returns zero when err is not a rate-limit error.
func RateLimitWait(err error) time.Duration {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle.Wait
	}
	return 0
}
