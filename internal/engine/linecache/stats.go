package linecache

// Stats reports cache effectiveness.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	CachedLines int
	WindowStart int
	WindowEnd   int
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	start, end := c.Window()
	return Stats{
		Hits:        c.stats.hits,
		Misses:      c.stats.misses,
		Evictions:   c.stats.evictions,
		CachedLines: c.populated,
		WindowStart: start,
		WindowEnd:   end,
	}
}
