package cursor

import (
	"fmt"

	"github.com/dshills/ropecore/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
// Start is where the selection started; End is the active end, where the
// cursor sits and typing occurs. When Start == End the selection is a
// plain cursor. Selection is an immutable value type.
type Selection struct {
	Start Point
	End   Point
}

// NewSelection creates a selection from start to end.
func NewSelection(start, end Point) Selection {
	return Selection{Start: start, End: end}
}

// NewCursor creates a selection with no extent at p.
func NewCursor(p Point) Selection {
	return Selection{Start: p, End: p}
}

// IsCursor returns true if the selection has no extent.
func (s Selection) IsCursor() bool {
	return s.Start == s.End
}

// Cursor returns the active end (where typing would occur).
func (s Selection) Cursor() Point {
	return s.End
}

// Ordered returns the bounds of the selection in document order.
func (s Selection) Ordered() (lo, hi Point) {
	if s.End.Before(s.Start) {
		return s.End, s.Start
	}
	return s.Start, s.End
}

// IsForward returns true if the selection extends forward (End >= Start).
func (s Selection) IsForward() bool {
	return !s.End.Before(s.Start)
}

// IsBackward returns true if the selection extends backward.
func (s Selection) IsBackward() bool {
	return s.End.Before(s.Start)
}

// Extend returns a new selection with the active end moved to p.
// Start remains fixed.
func (s Selection) Extend(p Point) Selection {
	return Selection{Start: s.Start, End: p}
}

// MoveTo returns a cursor at p.
func (s Selection) MoveTo(p Point) Selection {
	return NewCursor(p)
}

// Collapse collapses the selection to a cursor at the active end.
func (s Selection) Collapse() Selection {
	return NewCursor(s.End)
}

// CollapseToStart collapses the selection to its lower bound.
func (s Selection) CollapseToStart() Selection {
	lo, _ := s.Ordered()
	return NewCursor(lo)
}

// CollapseToEnd collapses the selection to its upper bound.
func (s Selection) CollapseToEnd() Selection {
	_, hi := s.Ordered()
	return NewCursor(hi)
}

// Flip returns a selection with Start and End swapped.
func (s Selection) Flip() Selection {
	return Selection{Start: s.End, End: s.Start}
}

// Normalize returns a forward selection covering the same text.
func (s Selection) Normalize() Selection {
	lo, hi := s.Ordered()
	return Selection{Start: lo, End: hi}
}

// Contains returns true if p lies in [lo, hi). Cursors contain nothing.
func (s Selection) Contains(p Point) bool {
	lo, hi := s.Ordered()
	return !p.Before(lo) && p.Before(hi)
}

// Overlaps returns true if this selection overlaps with another.
func (s Selection) Overlaps(other Selection) bool {
	lo, hi := s.Ordered()
	olo, ohi := other.Ordered()
	return lo.Before(ohi) && olo.Before(hi)
}

// Merge returns a forward selection covering both selections.
func (s Selection) Merge(other Selection) Selection {
	lo, hi := s.Ordered()
	olo, ohi := other.Ordered()
	if olo.Before(lo) {
		lo = olo
	}
	if ohi.After(hi) {
		hi = ohi
	}
	return Selection{Start: lo, End: hi}
}

// Clamp returns a selection whose points lie inside b. Rows and columns
// past the end of the document or line move to the nearest valid point.
func (s Selection) Clamp(b *buffer.Buffer) Selection {
	return Selection{Start: ClampPoint(b, s.Start), End: ClampPoint(b, s.End)}
}

// OffsetRange returns the selection as an ordered byte range in b.
func (s Selection) OffsetRange(b *buffer.Buffer) buffer.Range {
	lo, hi := s.Ordered()
	return buffer.NewRange(b.PointToOffset(lo), b.PointToOffset(hi))
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCursor() {
		return fmt.Sprintf("Cursor%s", s.End)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Start, dir, s.End)
}

// ClampPoint moves p to the nearest valid point in b.
func ClampPoint(b *buffer.Buffer, p Point) Point {
	return b.OffsetToPoint(b.PointToOffset(p))
}
