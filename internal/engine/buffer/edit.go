package buffer

import (
	"fmt"
	"strings"
)

// Edit replaces the text in Range with NewText. Inserts have an empty
// range and deletes have empty text.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an Edit that inserts text at an offset.
func NewInsert(offset Offset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end Offset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// NewReplace creates an Edit that replaces a range with text.
func NewReplace(start, end Offset, text string) Edit {
	return Edit{Range: Range{Start: start, End: end}, NewText: text}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	case e.NewText == "":
		return fmt.Sprintf("Delete%s", e.Range)
	default:
		return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
	}
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in document length the edit causes.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Range.Len()
}

// Insert inserts text at the given offset.
func (b *Buffer) Insert(offset Offset, text string) error {
	return b.ApplyEdit(NewInsert(offset, text))
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end Offset) error {
	return b.ApplyEdit(NewDelete(start, end))
}

// Replace replaces the text in [start, end) with text.
func (b *Buffer) Replace(start, end Offset, text string) error {
	return b.ApplyEdit(NewReplace(start, end, text))
}

// ApplyEdit validates and applies a single edit. Cached line offsets are
// invalidated from the first affected line for edits that add or remove
// lines; edits confined to one line drop that line and shift the rest.
func (b *Buffer) ApplyEdit(e Edit) error {
	if err := b.validateRange(e.Range); err != nil {
		return err
	}
	if e.IsNoOp() {
		return nil
	}

	start, end := int(e.Range.Start), int(e.Range.End)
	startLine := b.rope.LineOfByte(start)
	endLine := b.rope.LineOfByte(end)

	b.makeUnique()
	if startLine != endLine || strings.Contains(e.NewText, "\n") {
		b.cache.InvalidateFrom(startLine)
	} else {
		b.cache.InvalidateLine(startLine)
		b.cache.Shift(startLine, e.Delta())
	}

	b.rope = b.rope.Replace(start, end, e.NewText)
	return nil
}

func (b *Buffer) validateRange(r Range) error {
	if err := b.ValidateOffset(r.Start); err != nil {
		return err
	}
	if err := b.ValidateOffset(r.End); err != nil {
		return err
	}
	if !r.IsValid() {
		return fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	return nil
}
