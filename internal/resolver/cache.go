package resolver

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheCapacity is the bound on ResolverCache from SPEC_FULL.md §3.
const CacheCapacity = 100_000

// Cache is the bounded seed_host -> seed_id mapping. It wraps an LRU cache
// behind a single exclusive lock, held only for the duration of one Get or
// Put — the window spec.md §4.5/§5 describe, even though golang-lru's own
// Cache is already internally synchronized (see DESIGN.md).
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, string]
}

// NewCache returns an empty cache at CacheCapacity.
func NewCache() *Cache {
	c, err := lru.New[string, string](CacheCapacity)
	if err != nil {
		// lru.New only errors for a non-positive size; CacheCapacity is a
		// positive compile-time constant, so this branch is unreachable.
		panic(err)
	}
	return &Cache{lru: c}
}

// Get returns the cached seed_id for seedHost, or false on a miss.
func (c *Cache) Get(seedHost string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(seedHost)
}

// Put records seedHost -> seedID, evicting the least-recently-used entry
// if the cache is at capacity.
func (c *Cache) Put(seedHost, seedID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(seedHost, seedID)
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
