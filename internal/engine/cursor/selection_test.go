package cursor

import (
	"testing"

	"github.com/dshills/ropecore/internal/engine/buffer"
)

func pt(row, col int) Point {
	return Point{Row: row, Column: col}
}

func TestNewCursor(t *testing.T) {
	s := NewCursor(pt(1, 2))
	if !s.IsCursor() {
		t.Error("cursor should have no extent")
	}
	if s.Cursor() != pt(1, 2) {
		t.Errorf("expected cursor (1:2), got %s", s.Cursor())
	}
	if s.String() != "Cursor(1:2)" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestSelectionDirection(t *testing.T) {
	fwd := NewSelection(pt(0, 1), pt(2, 0))
	back := fwd.Flip()

	if !fwd.IsForward() || fwd.IsBackward() {
		t.Error("expected forward selection")
	}
	if !back.IsBackward() {
		t.Error("expected backward selection")
	}
	if back.Cursor() != pt(0, 1) {
		t.Errorf("backward cursor = %s", back.Cursor())
	}
	if back.Normalize() != fwd {
		t.Errorf("Normalize() = %s, want %s", back.Normalize(), fwd)
	}

	lo, hi := back.Ordered()
	if lo != pt(0, 1) || hi != pt(2, 0) {
		t.Errorf("Ordered() = %s, %s", lo, hi)
	}
	if back.String() != "Selection((2:0)←(0:1))" {
		t.Errorf("String() = %q", back.String())
	}
}

func TestSelectionCollapse(t *testing.T) {
	s := NewSelection(pt(3, 4), pt(1, 0))

	tests := []struct {
		name string
		got  Selection
		want Point
	}{
		{"collapse", s.Collapse(), pt(1, 0)},
		{"to start", s.CollapseToStart(), pt(1, 0)},
		{"to end", s.CollapseToEnd(), pt(3, 4)},
		{"move", s.MoveTo(pt(9, 9)), pt(9, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsCursor() || tt.got.Cursor() != tt.want {
				t.Errorf("got %s, want cursor at %s", tt.got, tt.want)
			}
		})
	}

	if ext := NewCursor(pt(0, 0)).Extend(pt(0, 5)); ext.Start != pt(0, 0) || ext.End != pt(0, 5) {
		t.Errorf("Extend() = %s", ext)
	}
}

func TestSelectionContainsAndOverlaps(t *testing.T) {
	s := NewSelection(pt(1, 0), pt(1, 5))

	if !s.Contains(pt(1, 0)) || !s.Contains(pt(1, 4)) {
		t.Error("selection should contain its interior")
	}
	if s.Contains(pt(1, 5)) || s.Contains(pt(0, 9)) {
		t.Error("selection should exclude its upper bound and earlier rows")
	}
	if NewCursor(pt(1, 0)).Contains(pt(1, 0)) {
		t.Error("cursor contains nothing")
	}

	if !s.Overlaps(NewSelection(pt(1, 4), pt(2, 0))) {
		t.Error("expected overlap")
	}
	if s.Overlaps(NewSelection(pt(1, 5), pt(2, 0))) {
		t.Error("adjacent selections do not overlap")
	}

	m := s.Merge(NewSelection(pt(2, 0), pt(0, 3)))
	if m.Start != pt(0, 3) || m.End != pt(2, 0) {
		t.Errorf("Merge() = %s", m)
	}
}

func TestSelectionBufferRelations(t *testing.T) {
	b := buffer.NewBufferFromString("héllo\nworld")

	s := NewSelection(pt(1, 99), pt(0, 2))
	clamped := s.Clamp(b)
	if clamped.Start != pt(1, 5) || clamped.End != pt(0, 2) {
		t.Errorf("Clamp() = %s", clamped)
	}

	r := s.OffsetRange(b)
	if r != buffer.NewRange(3, 12) {
		t.Errorf("OffsetRange() = %s, want [3:12)", r)
	}

	if got := ClampPoint(b, pt(-3, 2)); got != pt(0, 0) {
		t.Errorf("ClampPoint() = %s", got)
	}
}
