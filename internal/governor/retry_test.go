package governor

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelayBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Second

	tests := []struct {
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{attempt: 0, min: time.Second, max: 1500 * time.Millisecond},
		{attempt: 1, min: 2 * time.Second, max: 3 * time.Second},
		{attempt: 2, min: 4 * time.Second, max: 6 * time.Second},
	}

	for _, tc := range tests {
		for i := 0; i < 100; i++ {
			delay := BackoffDelay(tc.attempt, base, rng)
			assert.GreaterOrEqual(t, delay, tc.min, "attempt %d", tc.attempt)
			assert.LessOrEqual(t, delay, tc.max, "attempt %d", tc.attempt)
		}
	}
}

func TestBackoffDelayNegativeAttempt(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	delay := BackoffDelay(-5, time.Second, rng)
	assert.GreaterOrEqual(t, delay, time.Second)
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Microsecond,
		func(error) bool { return true },
		func(ctx context.Context) error {
			calls++
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoFailTwiceThenSucceed(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Microsecond,
		func(error) bool { return true },
		func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("still failing")
	calls := 0
	err := Do(context.Background(), 3, time.Microsecond,
		func(error) bool { return true },
		func(ctx context.Context) error {
			calls++
			return wantErr
		})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, calls)
}

func TestDoNonRetryableStopsImmediately(t *testing.T) {
	fatal := errors.New("auth failure")
	calls := 0
	err := Do(context.Background(), 3, time.Microsecond,
		func(err error) bool { return !errors.Is(err, fatal) },
		func(ctx context.Context) error {
			calls++
			return fatal
		})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
}

func TestDoContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	errCh := make(chan error, 1)
	go func() {
		errCh <- Do(ctx, 3, time.Hour,
			func(error) bool { return true },
			func(ctx context.Context) error {
				calls++
				return errors.New("transient")
			})
	}()

	// Give the first attempt time to fail and enter the backoff sleep.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestDoZeroAttemptsClampedToOne(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 0, time.Microsecond,
		func(error) bool { return true },
		func(ctx context.Context) error {
			calls++
			return errors.New("fail")
		})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
