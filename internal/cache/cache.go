// Package cache provides a small in-process TTL cache for upstream HTTP
// response bodies. Entries are ephemeral; nothing is persisted.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// TTL is a bounded read-through cache with per-entry expiry. It is safe for
// concurrent use. A nil *TTL disables caching (Get misses, Set is a no-op),
// so callers can treat it as optional.
type TTL struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewTTL creates a cache holding at most maxEntries values for ttl each.
// A non-positive ttl or maxEntries returns nil, disabling caching.
func NewTTL(ttl time.Duration, maxEntries int) *TTL {
	if ttl <= 0 || maxEntries <= 0 {
		return nil
	}
	return &TTL{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached value for key, or nil and false when absent or expired.
func (c *TTL) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL. When the cache is full,
// expired entries are evicted first; if none are expired, the write is
// dropped rather than evicting live entries.
func (c *TTL) Set(key string, value []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictExpiredLocked()
		if len(c.entries) >= c.maxEntries {
			return
		}
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Fill returns the cached value for key, calling fn on a miss and caching
// its result. Errors from fn are returned uncached.
func (c *TTL) Fill(key string, fn func() ([]byte, error)) ([]byte, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	c.Set(key, v)
	return v, nil
}

// Len returns the number of entries currently stored, including expired
// entries not yet evicted.
func (c *TTL) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL) evictExpiredLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
