// Package counters implements the process-wide OpCounters aggregate and the
// periodic reporting ticker that snapshots and resets it.
package counters

import (
	"sync"
	"time"
)

// LatencyAgg tracks total/min/max latency for a class of request, with the
// max additionally tagged by the doc count and body size observed at that
// peak.
type LatencyAgg struct {
	Count        int64
	Total        time.Duration
	Min          time.Duration
	Max          time.Duration
	MaxDocCount  int
	MaxBodyBytes int
}

func (a *LatencyAgg) observe(d time.Duration, docCount, bodyBytes int) {
	if a.Count == 0 || d < a.Min {
		a.Min = d
	}
	if d > a.Max {
		a.Max = d
		a.MaxDocCount = docCount
		a.MaxBodyBytes = bodyBytes
	}
	a.Total += d
	a.Count++
}

// Snapshot is an immutable copy of OpCounters taken at a point in time.
type Snapshot struct {
	Select           LatencyAgg
	Update           LatencyAgg
	ForwardedDocs    int64
	ErrorResponses   int64
	CacheHits        int64
	CacheMisses      int64
	SeedIDInsertions int64
	TotalBytes       int64
}

// OpCounters is the process-wide aggregate described in SPEC_FULL.md §3. A
// single mutex guards every field; it is held only across an increment or a
// snapshot-and-reset, never across I/O.
type OpCounters struct {
	mu sync.Mutex
	s  Snapshot
}

// New returns a zeroed OpCounters.
func New() *OpCounters {
	return &OpCounters{}
}

// ObserveSelect records one /select request's latency.
func (c *OpCounters) ObserveSelect(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Select.observe(d, 0, 0)
}

// ObserveUpdate records one /update request's latency, doc count, and body
// size.
func (c *OpCounters) ObserveUpdate(d time.Duration, docCount, bodyBytes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Update.observe(d, docCount, bodyBytes)
	c.s.ForwardedDocs += int64(docCount)
	c.s.TotalBytes += int64(bodyBytes)
}

// IncErrorResponse increments the error-response counter.
func (c *OpCounters) IncErrorResponse() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.ErrorResponses++
}

// IncCacheHit increments the resolver cache-hit counter.
func (c *OpCounters) IncCacheHit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheHits++
}

// IncCacheMiss increments the resolver cache-miss counter.
func (c *OpCounters) IncCacheMiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheMisses++
}

// IncSeedIDInsert increments the seed_id insertion counter.
func (c *OpCounters) IncSeedIDInsert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.SeedIDInsertions++
}

// SnapshotAndReset returns the current snapshot and zeroes the counters,
// as happens on every reporting tick.
func (c *OpCounters) SnapshotAndReset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.s
	c.s = Snapshot{}
	return snap
}
