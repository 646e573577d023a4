package governor

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffDelay computes the sleep before retry number attempt (zero-based):
// base * 2^attempt plus random jitter of up to half the computed delay.
// Jitter prevents synchronized retry storms from concurrent callers.
func BackoffDelay(attempt int, base time.Duration, rng *rand.Rand) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	backoff := float64(base) * math.Pow(2, float64(attempt))
	jitter := rng.Float64() * 0.5 * backoff
	return time.Duration(backoff + jitter)
}

// Do runs fn up to attempts times, sleeping a jittered exponential backoff
// between failures. It stops early when retryable reports an error as not
// worth retrying, or when the context is cancelled during a backoff sleep.
// The returned error is the last error fn produced.
//
// Do itself knows nothing about rate limiting or caching; callers gate and
// record around it.
func Do(
	ctx context.Context,
	attempts int,
	base time.Duration,
	retryable func(error) bool,
	fn func(ctx context.Context) error,
) error {
	if attempts < 1 {
		attempts = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-time.After(BackoffDelay(attempt, base, rng)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
