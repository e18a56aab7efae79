package buffer

import "fmt"

// Offset is a byte position in the buffer.
type Offset int

// Point is a row and column position.
// Both are 0-indexed; Column counts characters (runes), not bytes.
type Point struct {
	Row    int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the origin (0:0).
func (p Point) IsZero() bool {
	return p.Row == 0 && p.Column == 0
}
