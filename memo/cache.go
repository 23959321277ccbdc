// Package memo provides unbounded, process-lifetime memoization for pure
// computations, keyed by strings such as iframer.MemoKey.
package memo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes values by key. Entries are never evicted.
//
// Concurrent misses on the same key share one computation. Should a key be
// computed twice anyway, the last write wins, which is harmless because
// cached functions are pure.
//
// Cache is safe for concurrent use.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group
}

// New creates an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]V)}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Do returns the cached value for key, computing and storing it with fn on a miss.
func (c *Cache[V]) Do(key string, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		v := fn()
		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	return v.(V)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
