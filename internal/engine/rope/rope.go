package rope

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/ropecore/internal/engine/sumtree"
)

// DefaultRebuildThreshold is the document size, in bytes, at which edits
// switch from rebuild-from-string to chunk splicing.
const DefaultRebuildThreshold = 1 << 20

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// The zero value is an empty rope.
type Rope struct {
	tree sumtree.Tree[Chunk, TextSummary]
	cfg  settings
}

type settings struct {
	chunkSize        int
	rebuildThreshold int
}

func (s settings) chunk() int {
	if s.chunkSize <= 0 {
		return DefaultChunkSize
	}
	return s.chunkSize
}

// Option configures rope construction.
type Option func(*settings)

// WithChunkSize sets the target chunk size in bytes.
func WithChunkSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithRebuildThreshold sets the document size at which edits splice chunks
// instead of rebuilding the rope. Zero makes every edit splice.
func WithRebuildThreshold(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.rebuildThreshold = n
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		chunkSize:        DefaultChunkSize,
		rebuildThreshold: DefaultRebuildThreshold,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New creates an empty rope.
func New(opts ...Option) Rope {
	return Rope{cfg: newSettings(opts)}
}

// FromString creates a rope from a string.
// s must be valid UTF-8.
func FromString(s string, opts ...Option) Rope {
	return fromString(s, newSettings(opts))
}

func fromString(s string, cfg settings) Rope {
	return fromChunks(splitIntoChunks(s, cfg.chunk()), cfg)
}

func fromChunks(chunks []Chunk, cfg settings) Rope {
	return Rope{
		tree: sumtree.FromItems[Chunk, TextSummary](chunks),
		cfg:  cfg,
	}
}

// Len returns the total byte length of the rope.
func (r Rope) Len() int {
	return r.tree.Summary().Bytes
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// NewlineCount returns the number of '\n' characters.
func (r Rope) NewlineCount() int {
	return r.tree.Summary().Lines
}

// LineCount returns the number of lines. Text without a trailing newline
// still counts its last line, and an empty rope has one line.
func (r Rope) LineCount() int {
	return r.NewlineCount() + 1
}

// Summary returns the aggregate metrics of the whole rope.
func (r Rope) Summary() TextSummary {
	return r.tree.Summary()
}

// ChunkCount returns the number of chunks in the rope.
func (r Rope) ChunkCount() int {
	return r.tree.Len()
}

// Height returns the number of tree levels, 0 for an empty rope.
func (r Rope) Height() int {
	return r.tree.Height()
}

// String returns the full text of the rope.
func (r Rope) String() string {
	var sb strings.Builder
	sb.Grow(r.Len())
	for c := range r.tree.All() {
		sb.WriteString(c.data)
	}
	return sb.String()
}

// Slice returns the text in [start, end).
// Only chunks overlapping the range are visited.
func (r Rope) Slice(start, end int) string {
	r.mustRange(start, end, "slice")
	if start == end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.visit(start, end, func(part string) bool {
		sb.WriteString(part)
		return true
	})
	return sb.String()
}

// Equals reports whether two ropes hold the same text, regardless of how
// that text is chunked.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() || r.NewlineCount() != other.NewlineCount() {
		return false
	}
	a, b := r.tree.Iter(), other.tree.Iter()
	var as, bs string
	for {
		if as == "" {
			if !a.Next() {
				return true
			}
			as = a.Item().data
		}
		if bs == "" {
			if !b.Next() {
				return true
			}
			bs = b.Item().data
		}
		n := min(len(as), len(bs))
		if as[:n] != bs[:n] {
			return false
		}
		as, bs = as[n:], bs[n:]
	}
}

// LineToByte returns the byte offset at which line starts.
// Lines past the end resolve to Len; negative lines resolve to 0.
func (r Rope) LineToByte(line int) int {
	if line <= 0 {
		return 0
	}
	c, before, ok := r.tree.Find(func(acc, next TextSummary) bool {
		return acc.Lines+next.Lines >= line
	})
	if !ok {
		return r.Len()
	}
	pos, _ := c.NewlinePosition(line - before.Lines - 1)
	return before.Bytes + pos + 1
}

// LineOfByte returns the line containing byte offset.
// It panics if offset is out of range.
func (r Rope) LineOfByte(offset int) int {
	r.mustInRange(offset, "line lookup")
	if offset == 0 {
		return 0
	}
	c, before, _ := r.tree.Find(func(acc, next TextSummary) bool {
		return acc.Bytes+next.Bytes >= offset
	})
	return before.Lines + c.newlines.CountBefore(offset-before.Bytes)
}

// ByteToLineCol converts a byte offset to a line and a column counted in
// characters. It panics if offset is out of range.
func (r Rope) ByteToLineCol(offset int) (line, col int) {
	line = r.LineOfByte(offset)
	return line, r.CharCount(r.LineToByte(line), offset)
}

// LineByteRange returns the byte range of line, excluding its terminating
// newline. ok is false if the line does not exist.
func (r Rope) LineByteRange(line int) (start, end int, ok bool) {
	if line < 0 || line >= r.LineCount() {
		return 0, 0, false
	}
	start = r.LineToByte(line)
	if line+1 < r.LineCount() {
		end = r.LineToByte(line+1) - 1
	} else {
		end = r.Len()
	}
	return start, end, true
}

// Line returns the text of line without its terminating newline.
func (r Rope) Line(line int) (string, bool) {
	start, end, ok := r.LineByteRange(line)
	if !ok {
		return "", false
	}
	return r.Slice(start, end), true
}

// AppendLineStarts appends the start offsets of lines [start, end) to dst in
// a single pass over the chunks. The range is clipped to existing lines.
func (r Rope) AppendLineStarts(dst []int, start, end int) []int {
	start = max(start, 0)
	end = min(end, r.LineCount())
	if start >= end {
		return dst
	}
	if start == 0 {
		dst = append(dst, 0)
		start = 1
		if start >= end {
			return dst
		}
	}

	it := r.tree.Seek(func(acc, next TextSummary) bool {
		return acc.Lines+next.Lines >= start
	})
	for it.Next() {
		c := it.Item()
		before := it.Before()
		for k := max(start-before.Lines-1, 0); k < c.CountLines(); k++ {
			line := before.Lines + k + 1
			if line >= end {
				return dst
			}
			pos, _ := c.NewlinePosition(k)
			dst = append(dst, before.Bytes+pos+1)
		}
	}
	return dst
}

// CharCount returns the number of characters in [start, end).
func (r Rope) CharCount(start, end int) int {
	n := 0
	r.visit(start, end, func(part string) bool {
		n += utf8.RuneCountInString(part)
		return true
	})
	return n
}

// AdvanceChars returns the offset reached by moving n characters forward
// from start without passing limit.
func (r Rope) AdvanceChars(start, n, limit int) int {
	pos := start
	r.visit(start, limit, func(part string) bool {
		for i := 0; i < len(part); {
			if n == 0 {
				return false
			}
			_, size := utf8.DecodeRuneInString(part[i:])
			i += size
			pos += size
			n--
		}
		return n > 0
	})
	return pos
}

// IsCharBoundary reports whether offset lies on a UTF-8 character boundary.
// Offsets outside [0, Len] are not boundaries.
func (r Rope) IsCharBoundary(offset int) bool {
	if offset < 0 || offset > r.Len() {
		return false
	}
	if offset == 0 || offset == r.Len() {
		return true
	}
	c, before, _ := r.tree.Find(func(acc, next TextSummary) bool {
		return acc.Bytes+next.Bytes > offset
	})
	return isUTF8Start(c.data[offset-before.Bytes])
}

// FloorCharBoundary clamps offset into [0, Len] and moves it back to the
// nearest character boundary.
func (r Rope) FloorCharBoundary(offset int) int {
	offset = min(max(offset, 0), r.Len())
	for !r.IsCharBoundary(offset) {
		offset--
	}
	return offset
}

// Validate checks the internal tree invariants. It is intended for tests.
func (r Rope) Validate() error {
	if err := r.tree.Validate(func(a, b TextSummary) bool { return a == b }); err != nil {
		return err
	}
	offset := 0
	for c := range r.tree.All() {
		if c.IsEmpty() {
			return fmt.Errorf("rope: empty chunk at offset %d", offset)
		}
		offset += c.Len()
	}
	return nil
}

// visit calls f with each chunk fragment overlapping [start, end), in order,
// until f returns false.
func (r Rope) visit(start, end int, f func(part string) bool) {
	if start >= end {
		return
	}
	it := r.tree.Seek(func(acc, next TextSummary) bool {
		return acc.Bytes+next.Bytes > start
	})
	for it.Next() {
		base := it.Before().Bytes
		if base >= end {
			return
		}
		data := it.Item().data
		lo := max(start-base, 0)
		hi := min(end-base, len(data))
		if !f(data[lo:hi]) {
			return
		}
	}
}

func (r Rope) mustInRange(offset int, op string) {
	if offset < 0 || offset > r.Len() {
		panic(fmt.Sprintf("rope: %s: offset %d out of range [0, %d]", op, offset, r.Len()))
	}
}

func (r Rope) mustBoundary(offset int, op string) {
	r.mustInRange(offset, op)
	if !r.IsCharBoundary(offset) {
		panic(fmt.Sprintf("rope: %s: offset %d is not a UTF-8 boundary", op, offset))
	}
}

func (r Rope) mustRange(start, end int, op string) {
	if start > end {
		panic(fmt.Sprintf("rope: %s: range [%d, %d) is inverted", op, start, end))
	}
	r.mustBoundary(start, op)
	r.mustBoundary(end, op)
}
