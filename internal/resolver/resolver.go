// Package resolver implements the seed-id resolver: cache lookup, backing
// store lookup, insert-on-miss, and cache population, described in
// spec.md §4.5.
package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arturoeanton/solr-seed-proxy/internal/counters"
)

// Resolver resolves a seed_host to a seed_id via cache -> store ->
// insert-then-reread. It does not serialize concurrent lookups for the
// same seed_host: two requests that miss simultaneously may both run the
// insert/select pair. INSERT IGNORE plus the re-SELECT converges both
// callers to the same seed_id, and both write that value into the cache.
type Resolver struct {
	cache    *Cache
	store    Store
	counters *counters.OpCounters
	log      *zap.Logger
}

// New wires a Resolver from its cache, store, counters, and logger.
func New(cache *Cache, store Store, c *counters.OpCounters, log *zap.Logger) *Resolver {
	return &Resolver{cache: cache, store: store, counters: c, log: log}
}

// Resolve returns the seed_id for seedHost.
func (r *Resolver) Resolve(ctx context.Context, seedHost string) (string, error) {
	if id, ok := r.cache.Get(seedHost); ok {
		r.counters.IncCacheHit()
		return id, nil
	}
	r.counters.IncCacheMiss()

	id, found, err := r.store.SelectSeedID(ctx, seedHost)
	if err != nil {
		return "", err
	}
	if found {
		r.cache.Put(seedHost, id)
		return id, nil
	}

	r.counters.IncSeedIDInsert()
	if err := r.store.InsertIgnore(ctx, seedHost); err != nil {
		return "", err
	}

	id, found, err = r.store.SelectSeedID(ctx, seedHost)
	if err != nil {
		return "", err
	}
	if !found {
		r.log.Error("seed_id missing after insert ignore", zap.String("seed_host", seedHost))
		return "", fmt.Errorf("%w: seed_host=%s", ErrPostInsertMissing, seedHost)
	}

	r.cache.Put(seedHost, id)
	return id, nil
}

// CacheLen exposes the resolver's cache length for the periodic reporter.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}
