// Package cache provides the bounded LRU caches used throughout the
// pipeline for stemming, token-similarity lookups, and embeddings-token
// preparation: none of these results need to survive a process restart,
// and an unbounded map would let a pathological batch job grow memory
// without limit.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a fixed-capacity, least-recently-used cache of comparable keys
// to values of any type.
type Cache[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// New creates a Cache holding at most size entries. size must be positive;
// New panics otherwise, since every caller in this module passes a
// compile-time constant.
func New[K comparable, V any](size int) *Cache[K, V] {
	c, err := lru.New[K, V](size)
	if err != nil {
		panic(err)
	}
	return &Cache[K, V]{inner: c}
}

// Get returns the cached value for key, if present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Add inserts or updates the value for key, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *Cache[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	return c.inner.Len()
}

// Purge empties the cache.
func (c *Cache[K, V]) Purge() {
	c.inner.Purge()
}
