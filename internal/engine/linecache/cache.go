package linecache

// Source resolves line starts. rope.Rope satisfies it.
type Source interface {
	LineCount() int
	LineToByte(line int) int
	AppendLineStarts(dst []int, start, end int) []int
}

// Default tuning values.
const (
	DefaultWindowPadding  = 200
	DefaultMaxCachedLines = 10000
)

// Config tunes a Cache.
type Config struct {
	// WindowPadding is how far outside the window a miss may fall and still
	// grow it, and how many extra lines are resolved on each side.
	WindowPadding int

	// MaxCachedLines is the populated entry count above which the cache is
	// cleared.
	MaxCachedLines int
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		WindowPadding:  DefaultWindowPadding,
		MaxCachedLines: DefaultMaxCachedLines,
	}
}

const absent = -1

// Cache maps line numbers to byte offsets over a single window
// [start, start+len(offsets)). Entries may be absent after invalidation.
type Cache struct {
	cfg       Config
	start     int
	offsets   []int
	populated int
	stats     counters
}

type counters struct {
	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates an empty cache. Non-positive config values fall back to the
// defaults.
func New(cfg Config) *Cache {
	if cfg.WindowPadding <= 0 {
		cfg.WindowPadding = DefaultWindowPadding
	}
	if cfg.MaxCachedLines <= 0 {
		cfg.MaxCachedLines = DefaultMaxCachedLines
	}
	return &Cache{cfg: cfg}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.cfg
}

// Clone returns an independent copy of the cache, statistics included.
func (c *Cache) Clone() *Cache {
	cp := *c
	if c.offsets != nil {
		cp.offsets = make([]int, len(c.offsets))
		copy(cp.offsets, c.offsets)
	}
	return &cp
}

// Window returns the line range the cache currently spans.
func (c *Cache) Window() (start, end int) {
	return c.start, c.start + len(c.offsets)
}

// Lookup returns the cached offset of line without consulting a source.
func (c *Cache) Lookup(line int) (int, bool) {
	i := line - c.start
	if i < 0 || i >= len(c.offsets) || c.offsets[i] == absent {
		return 0, false
	}
	return c.offsets[i], true
}

// Resolve returns the byte offset at which line starts.
func (c *Cache) Resolve(src Source, line int) int {
	if off, ok := c.Lookup(line); ok {
		c.stats.hits++
		return off
	}
	c.stats.misses++

	total := src.LineCount()
	if line < 0 || line >= total {
		return src.LineToByte(line)
	}
	if !c.near(line) {
		return src.LineToByte(line)
	}

	pad := c.cfg.WindowPadding
	lo, hi := line-pad, line+pad+1
	if len(c.offsets) > 0 {
		lo = min(lo, c.start)
		hi = max(hi, c.start+len(c.offsets))
	}
	c.fill(src, lo, hi)

	off, _ := c.Lookup(line)
	c.evictIfFull()
	return off
}

// ResolveBatch resolves lines in order into scratch and returns the filled
// slice, which stays valid until scratch is reused.
func (c *Cache) ResolveBatch(src Source, lines []int, scratch *Scratch) []int {
	out := scratch.take(len(lines))
	for _, line := range lines {
		out = append(out, c.Resolve(src, line))
	}
	scratch.keep(out)
	return out
}

// EnsureRange makes lines [start, end) resident, padded on both sides.
func (c *Cache) EnsureRange(src Source, start, end int) {
	total := src.LineCount()
	start = max(start, 0)
	end = min(end, total)
	if start >= end {
		return
	}
	if c.covers(start, end) {
		return
	}

	pad := c.cfg.WindowPadding
	lo, hi := start-pad, end+pad
	if hi-lo > c.cfg.MaxCachedLines {
		// Keep the requested range itself, trimmed to what fits.
		lo, hi = start, min(end, start+c.cfg.MaxCachedLines)
	} else if len(c.offsets) > 0 && lo <= c.start+len(c.offsets)+pad && hi >= c.start-pad {
		// Merge with the window only while the union fits under the ceiling.
		ulo := max(min(lo, c.start), 0)
		uhi := min(max(hi, c.start+len(c.offsets)), total)
		if uhi-ulo <= c.cfg.MaxCachedLines {
			lo, hi = ulo, uhi
		}
	}
	c.fill(src, lo, hi)
	c.evictIfFull()
}

// InvalidateFrom drops every cached line at or after line.
func (c *Cache) InvalidateFrom(line int) {
	if len(c.offsets) == 0 {
		return
	}
	if line <= c.start {
		c.clear()
		return
	}
	i := line - c.start
	if i >= len(c.offsets) {
		return
	}
	for _, off := range c.offsets[i:] {
		if off != absent {
			c.populated--
		}
	}
	c.offsets = c.offsets[:i]
}

// InvalidateLine drops the cached offset of a single line.
func (c *Cache) InvalidateLine(line int) {
	i := line - c.start
	if i < 0 || i >= len(c.offsets) || c.offsets[i] == absent {
		return
	}
	c.offsets[i] = absent
	c.populated--
}

// Shift adds delta to every cached line after line. Edits confined to one
// line move the starts of all following lines by the same amount.
func (c *Cache) Shift(line, delta int) {
	if delta == 0 {
		return
	}
	for i := max(line+1-c.start, 0); i < len(c.offsets); i++ {
		if c.offsets[i] != absent {
			c.offsets[i] += delta
		}
	}
}

// Reset clears all cached lines. Statistics are kept.
func (c *Cache) Reset() {
	c.clear()
}

// Len returns the number of populated entries.
func (c *Cache) Len() int {
	return c.populated
}

// near reports whether line lies within padding of the window, or the
// window is empty.
func (c *Cache) near(line int) bool {
	if len(c.offsets) == 0 {
		return true
	}
	pad := c.cfg.WindowPadding
	return line >= c.start-pad && line < c.start+len(c.offsets)+pad
}

// covers reports whether every line in [start, end) is populated.
func (c *Cache) covers(start, end int) bool {
	if start < c.start || end > c.start+len(c.offsets) {
		return false
	}
	for _, off := range c.offsets[start-c.start : end-c.start] {
		if off == absent {
			return false
		}
	}
	return true
}

// fill replaces the window with [lo, hi) clipped to the source, resolving
// every line in one pass.
func (c *Cache) fill(src Source, lo, hi int) {
	lo = max(lo, 0)
	hi = min(hi, src.LineCount())
	if lo >= hi {
		return
	}
	buf := c.offsets[:0]
	if cap(buf) < hi-lo {
		buf = make([]int, 0, hi-lo)
	}
	c.offsets = src.AppendLineStarts(buf, lo, hi)
	c.start = lo
	c.populated = len(c.offsets)
}

func (c *Cache) evictIfFull() {
	if c.populated > c.cfg.MaxCachedLines {
		c.clear()
		c.stats.evictions++
	}
}

func (c *Cache) clear() {
	c.start = 0
	c.offsets = c.offsets[:0]
	c.populated = 0
}
