// Package correlate joins causally related events that arrive as separate
// messages, such as an attack roll and the damage roll that follows it.
package correlate

import (
	"sync"
	"time"
)

// Key identifies an attacker/target pair.
type Key struct {
	Actor  string
	Target string
}

type entry[V any] struct {
	payload   V
	createdAt time.Time
}

// Cache is a time-boxed, consuming key/value store. An entry older than the
// timeout is a miss whether or not it has been swept yet.
type Cache[V any] struct {
	mu      sync.Mutex
	timeout time.Duration
	now     func() time.Time
	entries map[Key]entry[V]
}

func NewCache[V any](timeout time.Duration, now func() time.Time) *Cache[V] {
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		timeout: timeout,
		now:     now,
		entries: make(map[Key]entry[V]),
	}
}

// Put stores payload under key, replacing any previous entry.
func (c *Cache[V]) Put(key Key, payload V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)
	c.entries[key] = entry[V]{payload: payload, createdAt: now}
}

// Take removes and returns the entry for key. Expired entries are removed and
// reported as a miss.
func (c *Cache[V]) Take(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	delete(c.entries, key)
	if c.expired(e, c.now()) {
		return zero, false
	}
	return e.payload, true
}

// Sweep drops every expired entry and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) sweepLocked(now time.Time) int {
	removed := 0
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[V]) expired(e entry[V], now time.Time) bool {
	return now.Sub(e.createdAt) > c.timeout
}
