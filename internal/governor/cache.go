package governor

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// cacheEntry holds a cached value with its storage time and time-to-live.
// The entry is valid only while now - storedAt < ttl; once invalid it is
// treated as absent and evicted on the next read.
type cacheEntry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Cache is an in-memory TTL cache. Expired entries are evicted on read so
// stale data is never observably returned; a periodic sweep additionally
// evicts expired entries proactively to bound memory. The sweep is an
// optimization, not a correctness requirement.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	clock   Clock

	sweepInterval time.Duration
	stopOnce      sync.Once
	stop          chan struct{}
	logger        *slog.Logger
}

// NewCache creates a Cache that sweeps expired entries every sweepInterval.
// A nil clock defaults to the system clock. The sweep goroutine does not
// run until Start is called.
func NewCache(sweepInterval time.Duration, clock Clock, logger *slog.Logger) *Cache {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries:       make(map[string]cacheEntry),
		clock:         clock,
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
		logger:        logger.With("component", "governor_cache"),
	}
}

// Get returns the value stored under key if it is still fresh. An expired
// entry is evicted and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.clock.Now().Sub(entry.storedAt) >= entry.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return entry.value, true
}

// Set stores value under key with the given ttl, unconditionally
// overwriting any existing entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:    value,
		storedAt: c.clock.Now(),
		ttl:      ttl,
	}
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Start launches the periodic sweep goroutine. It returns immediately; the
// sweep stops when ctx is cancelled or Close is called.
func (c *Cache) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				evicted := c.Sweep()
				if evicted > 0 {
					c.logger.Debug("swept expired cache entries", "evicted", evicted)
				}
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			}
		}
	}()
}

// Sweep evicts all expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) >= entry.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Close stops the sweep goroutine. It is safe to call more than once and
// safe to call even if Start was never called.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}
