package buffer

import "github.com/dshills/ropecore/internal/engine/linecache"

// EnsureRangeCached resolves every line start in [start, end) so later
// lookups in that range hit the cache.
func (b *Buffer) EnsureRangeCached(start, end int) {
	start = max(start, 0)
	end = min(end, b.LineCount())
	if start >= end {
		return
	}
	before := b.cache.Stats().Evictions
	b.cache.EnsureRange(b.rope, start, end)
	b.noteEvictions(before)
}

// UpdateScrollPrediction records the visible line range and scroll motion,
// then prefetches the range the policy predicts.
func (b *Buffer) UpdateScrollPrediction(visibleStart, visibleEnd int, scrollDelta, frameTime float64) {
	b.makeUnique()
	b.policy.Observe(visibleStart, visibleEnd, scrollDelta, frameTime, b.now())
	b.Prefetch()
}

// Prefetch resolves the policy's predicted range if the last scroll was
// recent. It reports whether anything was requested.
func (b *Buffer) Prefetch() bool {
	start, end, ok := b.policy.Prefetch(b.LineCount(), b.now())
	if !ok {
		return false
	}
	b.logger.Debug("prefetch lines [%d, %d)", start, end)
	b.EnsureRangeCached(start, end)
	return true
}

// Policy returns the buffer's prefetch policy.
func (b *Buffer) Policy() linecache.Policy {
	return b.policy
}

// CacheStats returns line cache statistics.
func (b *Buffer) CacheStats() linecache.Stats {
	return b.cache.Stats()
}
