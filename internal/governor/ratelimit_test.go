package governor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowUnderCeiling(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	limiter := NewRateLimiter(60*time.Second, 10, clock)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("parent"), "request %d should be allowed", i)
		limiter.Record("parent")
	}

	assert.False(t, limiter.Allow("parent"), "11th request should be denied")
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	limiter := NewRateLimiter(60*time.Second, 10, clock)

	for i := 0; i < 10; i++ {
		limiter.Record("parent")
	}
	assert.False(t, limiter.Allow("parent"))

	// One second past the window, all ten requests have rolled out.
	clock.Advance(61 * time.Second)
	assert.True(t, limiter.Allow("parent"))
}

func TestRateLimiterExactWindowBoundary(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	limiter := NewRateLimiter(60*time.Second, 1, clock)

	limiter.Record("child")
	assert.False(t, limiter.Allow("child"))

	// A timestamp exactly window old no longer counts.
	clock.Advance(60 * time.Second)
	assert.True(t, limiter.Allow("child"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	limiter := NewRateLimiter(60*time.Second, 2, clock)

	limiter.Record("parent")
	limiter.Record("parent")

	assert.False(t, limiter.Allow("parent"))
	assert.True(t, limiter.Allow("child"), "an unrelated key keeps its own budget")
}

func TestRateLimiterUnknownKeyAllowed(t *testing.T) {
	limiter := NewRateLimiter(60*time.Second, 10, newFakeClock(time.Unix(1000, 0)))

	assert.True(t, limiter.Allow("never-seen"))
	assert.Equal(t, time.Duration(0), limiter.TimeUntilReset("never-seen"))
}

func TestRateLimiterTimeUntilReset(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	limiter := NewRateLimiter(60*time.Second, 10, clock)

	limiter.Record("parent")
	clock.Advance(20 * time.Second)
	limiter.Record("parent")

	// The oldest request is 20s old, so it rolls out in 40s.
	assert.Equal(t, 40*time.Second, limiter.TimeUntilReset("parent"))

	clock.Advance(40 * time.Second)
	// Oldest gone; the second request is now the oldest at 40s old.
	assert.Equal(t, 20*time.Second, limiter.TimeUntilReset("parent"))
}

func TestRateLimiterPartialWindowRefill(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	limiter := NewRateLimiter(60*time.Second, 3, clock)

	limiter.Record("parent")
	clock.Advance(30 * time.Second)
	limiter.Record("parent")
	limiter.Record("parent")
	assert.False(t, limiter.Allow("parent"))

	// The first request expires; the two newer ones still count.
	clock.Advance(31 * time.Second)
	assert.True(t, limiter.Allow("parent"))
	limiter.Record("parent")
	assert.False(t, limiter.Allow("parent"))
}
