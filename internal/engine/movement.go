package engine

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/ropecore/internal/engine/buffer"
	"github.com/dshills/ropecore/internal/engine/cursor"
)

// MoveLeft moves the cursor one character back, wrapping to the end of
// the previous line. A character is a grapheme cluster, so combining
// marks and emoji sequences are crossed in one step.
func (e *Editor) MoveLeft() {
	buf := e.Buffer()
	e.moveTo(buf.OffsetToPoint(graphemeBefore(buf, buf.PointToOffset(e.Cursor()))))
}

// MoveRight moves the cursor one character forward, wrapping to the start
// of the next line.
func (e *Editor) MoveRight() {
	buf := e.Buffer()
	e.moveTo(buf.OffsetToPoint(graphemeAfter(buf, buf.PointToOffset(e.Cursor()))))
}

// MoveUp moves the cursor to the previous line, keeping its column where
// the line is long enough.
func (e *Editor) MoveUp() {
	c := e.Cursor()
	if c.Row == 0 {
		e.moveTo(c)
		return
	}
	e.moveTo(cursor.ClampPoint(e.Buffer(), Point{Row: c.Row - 1, Column: c.Column}))
}

// MoveDown moves the cursor to the next line, keeping its column where the
// line is long enough.
func (e *Editor) MoveDown() {
	c := e.Cursor()
	if c.Row+1 >= e.LineCount() {
		e.moveTo(c)
		return
	}
	e.moveTo(cursor.ClampPoint(e.Buffer(), Point{Row: c.Row + 1, Column: c.Column}))
}

// MoveToLineStart moves the cursor to column 0.
func (e *Editor) MoveToLineStart() {
	e.moveTo(Point{Row: e.Cursor().Row})
}

// MoveToLineEnd moves the cursor past the last character of its line.
func (e *Editor) MoveToLineEnd() {
	row := e.Cursor().Row
	e.moveTo(Point{Row: row, Column: e.Buffer().LineLen(row)})
}

// MoveToDocumentStart moves the cursor to (0:0).
func (e *Editor) MoveToDocumentStart() {
	e.moveTo(Point{})
}

// MoveToDocumentEnd moves the cursor past the last character.
func (e *Editor) MoveToDocumentEnd() {
	buf := e.Buffer()
	e.moveTo(buf.OffsetToPoint(buffer.Offset(buf.Len())))
}

// moveTo commits pending keystrokes and collapses the selection to p.
func (e *Editor) moveTo(p Point) {
	e.flush()
	e.selection = cursor.NewCursor(p)
}

// graphemeBefore returns the start of the grapheme cluster that ends at
// off. A line break counts as one cluster, "\r\n" included.
func graphemeBefore(b *buffer.Buffer, off buffer.Offset) buffer.Offset {
	if off <= 0 {
		return 0
	}
	row := b.OffsetToPoint(off).Row
	lineStart := b.LineToByte(row)
	if off == lineStart {
		start := off - 1
		if start > 0 && b.TextRange(start-1, start) == "\r" {
			start--
		}
		return start
	}

	seg := b.TextRange(lineStart, off)
	last, pos, state := 0, 0, -1
	for len(seg) > 0 {
		var cluster string
		cluster, seg, _, state = uniseg.FirstGraphemeClusterInString(seg, state)
		last = pos
		pos += len(cluster)
	}
	return lineStart + buffer.Offset(last)
}

// graphemeAfter returns the end of the grapheme cluster that starts at off.
func graphemeAfter(b *buffer.Buffer, off buffer.Offset) buffer.Offset {
	if int(off) >= b.Len() {
		return buffer.Offset(b.Len())
	}
	r, _ := b.LineRange(b.OffsetToPoint(off).Row)
	if off >= r.End {
		return off + 1
	}

	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(b.TextRange(off, r.End), -1)
	next := off + buffer.Offset(len(cluster))
	if cluster == "\r" && next == r.End && int(r.End) < b.Len() {
		next++
	}
	return next
}
