package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dshills/ropecore/internal/engine/linecache"
	"github.com/dshills/ropecore/internal/engine/rope"
	"github.com/dshills/ropecore/internal/logging"
)

// Common errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrNotCharBoundary  = errors.New("offset not on a character boundary")
)

// Buffer is an editable document: an immutable rope plus a line offset
// cache that is copied on write when shared with a clone.
type Buffer struct {
	rope     rope.Rope
	ropeOpts []rope.Option

	cache   *linecache.Cache
	policy  linecache.Policy
	scratch *linecache.Scratch
	shared  bool

	now    func() time.Time
	logger *logging.Logger
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		cache:  linecache.New(linecache.DefaultConfig()),
		policy: linecache.NewScrollPredictor(linecache.DefaultPredictorConfig()),
		now:    time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.rope = rope.New(b.ropeOpts...)
	return b
}

// NewBufferFromString creates a new buffer with the given content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(s, b.ropeOpts...)
	return b
}

// NewBufferFromReader creates a new buffer from a reader of UTF-8 text.
// A leading byte order mark is honored and stripped.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)
	rp, err := rope.FromReader(r, b.ropeOpts...)
	if err != nil {
		return nil, fmt.Errorf("load buffer: %w", err)
	}
	b.rope = rp
	b.logger.Debug("loaded %d bytes in %d chunks", rp.Len(), rp.ChunkCount())
	return b, nil
}

// NewBufferFromRope creates a new buffer over an existing rope.
func NewBufferFromRope(r rope.Rope, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = r
	return b
}

// Clone returns a buffer sharing this buffer's rope and cache. Either
// holder copies the cache before its next edit.
func (b *Buffer) Clone() *Buffer {
	b.shared = true
	cp := *b
	cp.scratch = nil
	return &cp
}

// makeUnique gives b a private cache and policy if they are shared.
func (b *Buffer) makeUnique() {
	if !b.shared {
		return
	}
	b.cache = b.cache.Clone()
	b.policy = b.policy.Clone()
	b.shared = false
}

// ReleaseCache drops cached line offsets. Snapshots held only for undo
// call this so they do not pin cache memory.
func (b *Buffer) ReleaseCache() {
	b.cache = linecache.New(b.cache.Config())
	b.scratch = nil
}

// Read Operations

// Rope returns the underlying rope.
func (b *Buffer) Rope() rope.Rope {
	return b.rope
}

// Text returns the full text content of the buffer.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	return b.rope.Len()
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// TextRange returns the text in [start, end). Offsets are clamped to the
// buffer and moved back to character boundaries.
func (b *Buffer) TextRange(start, end Offset) string {
	s, e := int(b.ClampOffset(start)), int(b.ClampOffset(end))
	if s >= e {
		return ""
	}
	return b.rope.Slice(s, e)
}

// Line returns the text of a line without its terminator.
func (b *Buffer) Line(line int) (string, bool) {
	r, ok := b.LineRange(line)
	if !ok {
		return "", false
	}
	return b.rope.Slice(int(r.Start), int(r.End)), true
}

// Lines returns every line without terminators.
func (b *Buffer) Lines() []string {
	lines := make([]string, 0, b.LineCount())
	it := b.rope.Lines()
	for it.Next() {
		lines = append(lines, it.Text())
	}
	return lines
}

// LineRange returns the byte range of a line, excluding its terminator.
func (b *Buffer) LineRange(line int) (Range, bool) {
	if line < 0 || line >= b.LineCount() {
		return Range{}, false
	}
	start := b.lineStart(line)
	return Range{Start: start, End: b.lineEnd(line)}, true
}

// LineLen returns the number of characters in a line, or 0 past the end.
func (b *Buffer) LineLen(line int) int {
	r, ok := b.LineRange(line)
	if !ok {
		return 0
	}
	return b.rope.CharCount(int(r.Start), int(r.End))
}

// WriteTo streams the buffer content to w chunk by chunk.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.rope.WriteTo(w)
}

// String returns a short description of the buffer.
func (b *Buffer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Buffer{len: %d, lines: %d, cached: %d}", b.Len(), b.LineCount(), b.cache.Len())
	return sb.String()
}

// Coordinate Conversion

// ValidateOffset reports whether offset is inside the buffer and on a
// character boundary.
func (b *Buffer) ValidateOffset(offset Offset) error {
	if offset < 0 || int(offset) > b.rope.Len() {
		return fmt.Errorf("%w: %d (len %d)", ErrOffsetOutOfRange, offset, b.rope.Len())
	}
	if !b.rope.IsCharBoundary(int(offset)) {
		return fmt.Errorf("%w: %d", ErrNotCharBoundary, offset)
	}
	return nil
}

// ClampOffset clamps offset into [0, Len] and moves it back to the nearest
// character boundary.
func (b *Buffer) ClampOffset(offset Offset) Offset {
	if offset <= 0 {
		return 0
	}
	if int(offset) >= b.rope.Len() {
		return Offset(b.rope.Len())
	}
	return Offset(b.rope.FloorCharBoundary(int(offset)))
}

// LineToByte returns the byte offset where a line starts. Lines past the
// end resolve to Len and negative lines to 0.
func (b *Buffer) LineToByte(line int) Offset {
	if line <= 0 {
		return 0
	}
	if line >= b.LineCount() {
		return Offset(b.rope.Len())
	}
	return b.lineStart(line)
}

// LineOffsets resolves several line starts at once. The returned slice is
// reused by the next call.
func (b *Buffer) LineOffsets(lines []int) []int {
	if b.scratch == nil {
		b.scratch = linecache.NewScratch(len(lines))
	}
	before := b.cache.Stats().Evictions
	out := b.cache.ResolveBatch(b.rope, lines, b.scratch)
	b.noteEvictions(before)
	return out
}

// PointToOffset converts a point to a byte offset. Rows past the end clamp
// to Len and columns past the end of the line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) Offset {
	if p.Row < 0 {
		return 0
	}
	if p.Row >= b.LineCount() {
		return Offset(b.rope.Len())
	}
	start := b.lineStart(p.Row)
	if p.Column <= 0 {
		return start
	}
	end := b.lineEnd(p.Row)
	return Offset(b.rope.AdvanceChars(int(start), p.Column, int(end)))
}

// OffsetToPoint converts a byte offset to a point. Offsets are clamped
// first, so this never fails.
func (b *Buffer) OffsetToPoint(offset Offset) Point {
	o := int(b.ClampOffset(offset))
	row := b.rope.LineOfByte(o)
	start := int(b.lineStart(row))
	return Point{Row: row, Column: b.rope.CharCount(start, o)}
}

// lineStart resolves a line start through the cache. line must be in range.
func (b *Buffer) lineStart(line int) Offset {
	before := b.cache.Stats().Evictions
	off := b.cache.Resolve(b.rope, line)
	b.noteEvictions(before)
	return Offset(off)
}

// lineEnd returns the offset of a line's terminator, or Len for the last
// line.
func (b *Buffer) lineEnd(line int) Offset {
	if line+1 >= b.LineCount() {
		return Offset(b.rope.Len())
	}
	return b.lineStart(line+1) - 1
}

func (b *Buffer) noteEvictions(before uint64) {
	if after := b.cache.Stats().Evictions; after != before {
		b.logger.Debug("line cache evicted (max %d lines)", b.cache.Config().MaxCachedLines)
	}
}
