package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arturoeanton/solr-seed-proxy/internal/counters"
)

// fakeStore is an in-memory Store used to test Resolver without a live
// database, in the spirit of the pack's interface-backed service tests.
type fakeStore struct {
	mu            sync.Mutex
	rows          map[string]string
	selectCalls   int
	insertCalls   int
	failSelect    error
	failInsert    error
	dropNextInsert bool // every insert reports success but writes no row
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]string)}
}

func (s *fakeStore) SelectSeedID(_ context.Context, seedHost string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectCalls++
	if s.failSelect != nil {
		return "", false, s.failSelect
	}
	id, ok := s.rows[seedHost]
	return id, ok, nil
}

func (s *fakeStore) InsertIgnore(_ context.Context, seedHost string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.failInsert != nil {
		return s.failInsert
	}
	if s.dropNextInsert {
		// Simulate an INSERT IGNORE that succeeds without leaving a row.
		return nil
	}
	if _, exists := s.rows[seedHost]; !exists {
		s.rows[seedHost] = "generated-" + seedHost
	}
	return nil
}

func newTestResolver(store Store) (*Resolver, *Cache, *counters.OpCounters) {
	cache := NewCache()
	c := counters.New()
	return New(cache, store, c, zap.NewNop()), cache, c
}

func TestResolveCacheHit(t *testing.T) {
	store := newFakeStore()
	r, cache, c := newTestResolver(store)
	cache.Put("example.com", "cached-id")

	id, err := r.Resolve(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "cached-id", id)
	assert.Equal(t, 0, store.selectCalls)

	snap := c.SnapshotAndReset()
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(0), snap.CacheMisses)
}

func TestResolveStoreHitPopulatesCache(t *testing.T) {
	store := newFakeStore()
	store.rows["example.com"] = "row-id"
	r, cache, c := newTestResolver(store)

	id, err := r.Resolve(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "row-id", id)

	cached, ok := cache.Get("example.com")
	assert.True(t, ok)
	assert.Equal(t, "row-id", cached)

	snap := c.SnapshotAndReset()
	assert.Equal(t, int64(1), snap.CacheMisses)
	assert.Equal(t, int64(0), snap.SeedIDInsertions)
}

func TestResolveInsertOnMiss(t *testing.T) {
	store := newFakeStore()
	r, cache, c := newTestResolver(store)

	id, err := r.Resolve(context.Background(), "new-host.example")
	require.NoError(t, err)
	assert.Equal(t, "generated-new-host.example", id)
	assert.Equal(t, 1, store.insertCalls)
	assert.Equal(t, 2, store.selectCalls) // initial miss + re-select after insert

	cached, ok := cache.Get("new-host.example")
	assert.True(t, ok)
	assert.Equal(t, id, cached)

	snap := c.SnapshotAndReset()
	assert.Equal(t, int64(1), snap.SeedIDInsertions)
}

func TestResolvePostInsertMissingIsHardError(t *testing.T) {
	store := newFakeStore()
	store.dropNextInsert = true // insert "succeeds" but no row ever appears
	r, _, _ := newTestResolver(store)

	_, err := r.Resolve(context.Background(), "ghost.example")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPostInsertMissing)
}

func TestResolveStoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.failSelect = errors.New("connection refused")
	r, _, _ := newTestResolver(store)

	_, err := r.Resolve(context.Background(), "down.example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestResolveMonotonicityWithinCacheResidency(t *testing.T) {
	store := newFakeStore()
	r, _, _ := newTestResolver(store)

	id1, err := r.Resolve(context.Background(), "repeat.example")
	require.NoError(t, err)
	id2, err := r.Resolve(context.Background(), "repeat.example")
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, store.insertCalls) // second call hit the cache, not the store
}
