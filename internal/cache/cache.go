// Package cache provides the process-lifetime response cache for ranked
// leaderboards.
package cache

import (
	"sync"
	"time"

	"github.com/trendboard/channel-trends-go/internal/models"
)

// Clock supplies the current time. Injected so TTL behavior is deterministic
// in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

type entry struct {
	expiresAt time.Time
	rows      []models.RankedRow
}

// ResultCache maps a canonical parameter key to a previously computed
// leaderboard with a time-to-live. Entries are overwritten wholesale and never
// mutated in place; expired entries are evicted lazily on the next lookup for
// their key. There is no capacity bound.
type ResultCache struct {
	mu      sync.RWMutex
	clock   Clock
	entries map[string]entry
}

// New creates an empty ResultCache. A nil clock falls back to the system clock.
func New(clock Clock) *ResultCache {
	if clock == nil {
		clock = SystemClock()
	}
	return &ResultCache{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns the cached rows for key if present and not yet expired. An entry
// is visible only while the current time is strictly before its expiry.
func (c *ResultCache) Get(key string) ([]models.RankedRow, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !c.clock.Now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := c.entries[key]; ok && !c.clock.Now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.rows, true
}

// Set stores rows under key with expiry = now + ttl, overwriting any existing
// entry for that key.
func (c *ResultCache) Set(key string, rows []models.RankedRow, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		expiresAt: c.clock.Now().Add(ttl),
		rows:      rows,
	}
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet evicted
// expired ones.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
