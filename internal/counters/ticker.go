package counters

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReportPeriod is the fixed periodic-reporting interval from SPEC_FULL.md §5.
const ReportPeriod = 60 * time.Second

// RunTicker takes snapshots of c (resetting it each time) and of the cache
// length reported by cacheLen, logs the aggregates, and repeats every
// ReportPeriod until ctx is done. It is meant to run in its own goroutine
// for the process lifetime.
func RunTicker(ctx context.Context, c *OpCounters, cacheLen func() int, log *zap.Logger) {
	ticker := time.NewTicker(ReportPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := c.SnapshotAndReset()
			log.Info("periodic report",
				zap.Int64("select_count", snap.Select.Count),
				zap.Duration("select_total", snap.Select.Total),
				zap.Duration("select_min", snap.Select.Min),
				zap.Duration("select_max", snap.Select.Max),
				zap.Int64("update_count", snap.Update.Count),
				zap.Duration("update_total", snap.Update.Total),
				zap.Duration("update_min", snap.Update.Min),
				zap.Duration("update_max", snap.Update.Max),
				zap.Int("update_max_doc_count", snap.Update.MaxDocCount),
				zap.Int("update_max_body_bytes", snap.Update.MaxBodyBytes),
				zap.Int64("forwarded_docs", snap.ForwardedDocs),
				zap.Int64("error_responses", snap.ErrorResponses),
				zap.Int64("cache_hits", snap.CacheHits),
				zap.Int64("cache_misses", snap.CacheMisses),
				zap.Int64("seed_id_insertions", snap.SeedIDInsertions),
				zap.Int64("total_bytes", snap.TotalBytes),
				zap.Int("cache_len", cacheLen()),
			)
		}
	}
}
