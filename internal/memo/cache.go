// Package memo provides the concurrent get-or-compute caches shared by the
// terrain generators.
package memo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key is a comparable cache key with a stable string form used to collapse
// concurrent computations of the same entry.
type Key interface {
	comparable
	String() string
}

// Cache memoizes the result of a pure function per key. Entries are only ever
// inserted; Clear drops everything at once and must not race with lookups.
type Cache[K Key, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	flight  singleflight.Group
}

// New creates an empty Cache.
func New[K Key, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get returns the cached value for k, if present.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[k]
	c.mu.RUnlock()
	return v, ok
}

// GetOrCompute returns the cached value for k, computing and caching it with
// fn on a miss. Goroutines racing on the same key share one call to fn.
func (c *Cache[K, V]) GetOrCompute(k K, fn func() V) V {
	if v, ok := c.Get(k); ok {
		return v
	}

	res, _, _ := c.flight.Do(k.String(), func() (any, error) {
		// Double-check: another flight may have finished between Get and Do.
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v := fn()

		c.mu.Lock()
		if existing, ok := c.entries[k]; ok {
			c.mu.Unlock()
			return existing, nil
		}
		c.entries[k] = v
		c.mu.Unlock()
		return v, nil
	})
	return res.(V)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]V)
	c.mu.Unlock()
}
