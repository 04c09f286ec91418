// Package cache provides a small bounded in-memory response cache.
//
// The cache is not safe for concurrent use. Callers that share an instance
// across request handlers must serialize access themselves; the analyzer
// service does this with a single mutex around its cache operations.
package cache

// DefaultCapacity is used when a cache is constructed with capacity <= 0.
const DefaultCapacity = 100

// Cache is a capacity-bounded string-keyed store. When an insert would
// exceed capacity, the earliest-inserted entry is evicted, FIFO by
// insertion order, not true LRU (access order is not tracked).
type Cache[V any] struct {
	capacity int
	entries  map[string]V
	order    []string
}

// New creates a cache with the given capacity.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		capacity: capacity,
		entries:  make(map[string]V, capacity),
	}
}

// Get returns the value stored under key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Set stores value under key. Re-setting an existing key overwrites the
// value without changing its insertion position. Inserting a new key at
// capacity evicts the oldest entry first.
func (c *Cache[V]) Set(key string, value V) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = value
		return
	}
	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = value
	c.order = append(c.order, key)
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.entries = make(map[string]V, c.capacity)
	c.order = nil
}

// Len returns the number of stored entries.
func (c *Cache[V]) Len() int {
	return len(c.entries)
}

// Capacity returns the configured maximum entry count.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}
