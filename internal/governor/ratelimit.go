package governor

import (
	"sync"
	"time"
)

// RateLimiter is a per-key sliding-window request counter. A key may issue
// at most ceiling requests within any trailing window. Timestamps older
// than the window are pruned on every read, so an unknown or long-idle key
// behaves as an empty sequence and is always permitted.
//
// Allow and Record are deliberately separate: Allow answers "may this key
// dispatch right now" and Record must be called only after a request was
// actually dispatched. Calling Record speculatively corrupts the count.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	ceiling int
	clock   Clock

	// requests maps a caller key to the timestamps of its counted
	// requests, oldest first. Invariant: after pruning, every timestamp
	// falls within the current window.
	requests map[string][]time.Time
}

// NewRateLimiter creates a RateLimiter with the given window and ceiling.
// A nil clock defaults to the system clock.
func NewRateLimiter(window time.Duration, ceiling int, clock Clock) *RateLimiter {
	if clock == nil {
		clock = SystemClock()
	}
	return &RateLimiter{
		window:   window,
		ceiling:  ceiling,
		clock:    clock,
		requests: make(map[string][]time.Time),
	}
}

// Allow reports whether the key may issue another governed request right
// now. It prunes expired timestamps as a side effect, even when the answer
// is false.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.pruneLocked(key)) < l.ceiling
}

// Record appends the current timestamp to the key's sequence. Call it only
// after a request was actually dispatched.
func (l *RateLimiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests[key] = append(l.pruneLocked(key), l.clock.Now())
}

// TimeUntilReset returns how long until the oldest counted request for the
// key rolls out of the window, floored at zero. Zero for an empty sequence.
// It is an estimate of when a slot frees up, not a guarantee: a newer
// request may still occupy one at that instant.
func (l *RateLimiter) TimeUntilReset(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.pruneLocked(key)
	if len(seq) == 0 {
		return 0
	}

	remaining := l.window - l.clock.Now().Sub(seq[0])
	if remaining < 0 {
		return 0
	}
	return remaining
}

// pruneLocked drops timestamps older than the window from the key's
// sequence, stores the result, and returns it. Caller must hold mu.
func (l *RateLimiter) pruneLocked(key string) []time.Time {
	seq := l.requests[key]
	cutoff := l.clock.Now().Add(-l.window)

	i := 0
	for i < len(seq) && !seq[i].After(cutoff) {
		i++
	}
	if i > 0 {
		seq = append(seq[:0:0], seq[i:]...)
		if len(seq) == 0 {
			delete(l.requests, key)
		} else {
			l.requests[key] = seq
		}
	}
	return seq
}
