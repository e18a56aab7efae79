package engine

import (
	"fmt"
	"io"

	"github.com/dshills/ropecore/internal/config"
	"github.com/dshills/ropecore/internal/engine/buffer"
	"github.com/dshills/ropecore/internal/engine/cursor"
	"github.com/dshills/ropecore/internal/engine/history"
	"github.com/dshills/ropecore/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a byte position in the buffer.
	Offset = buffer.Offset

	// Point represents a row/column position.
	Point = buffer.Point

	// Selection represents a selection or cursor.
	Selection = cursor.Selection

	// Transaction is one undoable unit.
	Transaction = history.Transaction
)

// Editor combines a document, a selection and undo history. Consecutive
// single-character keystrokes are grouped into one undo step that ends at
// the next whitespace keystroke or any other command.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	history   *history.History
	selection cursor.Selection
	batch     batch
	version   uint64

	logger     *logging.Logger
	baseLogger *logging.Logger

	// Configuration
	cfg         config.Config
	bufOpts     []buffer.Option
	initContent string
}

// New creates a new Editor with the given options.
func New(opts ...Option) *Editor {
	e := newEditor(opts)
	e.init(buffer.NewBufferFromString(e.initContent, e.bufferOptions()...))
	return e
}

// NewFromReader creates an Editor from UTF-8 text read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Editor, error) {
	e := newEditor(opts)
	buf, err := buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, fmt.Errorf("new editor: %w", err)
	}
	e.init(buf)
	return e, nil
}

func newEditor(opts []Option) *Editor {
	e := &Editor{
		cfg:        config.Default(),
		baseLogger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.baseLogger.WithComponent("editor")
	return e
}

func (e *Editor) bufferOptions() []buffer.Option {
	opts := e.cfg.BufferOptions()
	opts = append(opts, buffer.WithLogger(e.baseLogger))
	return append(opts, e.bufOpts...)
}

func (e *Editor) init(buf *buffer.Buffer) {
	e.history = history.New(buf,
		history.WithMaxEntries(e.cfg.History.MaxEntries),
		history.WithLogger(e.baseLogger),
	)
	e.selection = cursor.NewCursor(Point{})
}

// ============================================================================
// Read Operations
// ============================================================================

// Buffer returns the live document buffer. It reflects pending keystrokes.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.history.Current()
}

// Text returns the full document content.
func (e *Editor) Text() string {
	return e.Buffer().Text()
}

// LineCount returns the number of lines.
func (e *Editor) LineCount() int {
	return e.Buffer().LineCount()
}

// Line returns the text of a line without its terminator.
func (e *Editor) Line(line int) (string, bool) {
	return e.Buffer().Line(line)
}

// Version increases every time the document text changes, including undo
// and redo. Renderers compare it to decide whether to redraw.
func (e *Editor) Version() uint64 {
	return e.version
}

// Cursor returns the cursor position, the active end of the selection.
func (e *Editor) Cursor() Point {
	return e.selection.Cursor()
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.selection
}

// ============================================================================
// Selection
// ============================================================================

// SetCursor moves the cursor to p, clamped to the document. Pending
// keystrokes are committed first.
func (e *Editor) SetCursor(p Point) {
	e.flush()
	e.selection = cursor.NewCursor(cursor.ClampPoint(e.Buffer(), p))
}

// SetSelection replaces the selection, clamped to the document. Pending
// keystrokes are committed first.
func (e *Editor) SetSelection(s Selection) {
	e.flush()
	e.selection = s.Clamp(e.Buffer())
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() {
	buf := e.Buffer()
	e.SetSelection(cursor.NewSelection(Point{}, buf.OffsetToPoint(Offset(buf.Len()))))
}

// ============================================================================
// Edit Operations
// ============================================================================

// Insert types text at the cursor. A single non-whitespace character joins
// the pending batch; a single whitespace character ends it. Longer text is
// committed as its own transaction. With a non-empty selection the
// selection is replaced.
func (e *Editor) Insert(text string) {
	if text == "" {
		return
	}
	if !e.selection.IsCursor() {
		e.flush()
		e.replaceSelection(text)
		return
	}

	switch classify(text) {
	case keyChar:
		e.accumulate(text)
	case keySpace:
		e.terminate(text)
	default:
		e.flush()
		e.commitInsert(text)
	}
}

// Backspace deletes the selection, or the character before the cursor.
// It does nothing at the start of the document.
func (e *Editor) Backspace() {
	e.flush()
	if !e.selection.IsCursor() {
		e.deleteSelection()
		return
	}

	buf := e.Buffer()
	off := buf.PointToOffset(e.Cursor())
	if off == 0 {
		return
	}
	e.commitDelete(graphemeBefore(buf, off), off)
}

// Delete deletes the selection, or the character at the cursor. It does
// nothing at the end of the document.
func (e *Editor) Delete() {
	e.flush()
	if !e.selection.IsCursor() {
		e.deleteSelection()
		return
	}

	buf := e.Buffer()
	off := buf.PointToOffset(e.Cursor())
	if int(off) >= buf.Len() {
		return
	}
	e.commitDelete(off, graphemeAfter(buf, off))
}

// ReplaceAll replaces the whole document as one transaction. The cursor
// keeps its position where the new text allows.
func (e *Editor) ReplaceAll(text string) {
	e.flush()
	before := e.Buffer()
	old := before.Text()
	if old == text {
		return
	}

	after := before.Clone()
	e.mustApply(after.Replace(0, Offset(after.Len()), text))
	cursorAfter := cursor.ClampPoint(after, e.Cursor())
	e.commit(before, after, history.NewReplace(old, text, e.Cursor(), cursorAfter))
}

// Flush commits pending keystrokes as one undo step. Call it before
// saving so the saved state is an undo boundary.
func (e *Editor) Flush() {
	e.flush()
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverts the last undo step. Pending keystrokes are themselves the
// last step: they are discarded and nothing else is undone. It reports
// whether anything changed.
func (e *Editor) Undo() bool {
	if e.discard() {
		return true
	}

	txn, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.selection = cursor.NewCursor(cursor.ClampPoint(e.Buffer(), txn.CursorBefore))
	e.changed()
	e.logger.Debug("undo: %s", txn.Description())
	return true
}

// Redo reapplies the last undone step and reports whether anything
// changed. Pending keystrokes are committed first, which clears the redo
// stack.
func (e *Editor) Redo() bool {
	e.flush()

	txn, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.selection = cursor.NewCursor(cursor.ClampPoint(e.Buffer(), txn.CursorAfter))
	e.changed()
	e.logger.Debug("redo: %s", txn.Description())
	return true
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo() || e.batch.pending()
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo() && !e.batch.pending()
}

// UndoInfo returns info about available undo steps, oldest first.
// Pending keystrokes are not included.
func (e *Editor) UndoInfo() []history.OperationInfo {
	return e.history.UndoInfo()
}

// RedoInfo returns info about available redo steps, oldest first.
func (e *Editor) RedoInfo() []history.OperationInfo {
	return e.history.RedoInfo()
}

// ============================================================================
// Internals
// ============================================================================

// insertAtCursor returns a copy of the live buffer with text inserted at
// the cursor, and the cursor position after the text.
func (e *Editor) insertAtCursor(text string) (*buffer.Buffer, Point) {
	after := e.Buffer().Clone()
	off := after.PointToOffset(e.Cursor())
	e.mustApply(after.Insert(off, text))
	return after, after.OffsetToPoint(off + Offset(len(text)))
}

func (e *Editor) commitInsert(text string) {
	before := e.Buffer()
	after, cursorAfter := e.insertAtCursor(text)
	e.commit(before, after, history.NewInsert(text, e.Cursor(), cursorAfter))
}

func (e *Editor) commitDelete(start, end Offset) {
	before := e.Buffer()
	deleted := before.TextRange(start, end)
	after := before.Clone()
	e.mustApply(after.Delete(start, end))
	cursorAfter := after.OffsetToPoint(start)
	e.commit(before, after, history.NewDelete(deleted, e.Cursor(), cursorAfter))
}

func (e *Editor) deleteSelection() {
	r := e.selection.OffsetRange(e.Buffer())
	e.commitDelete(r.Start, r.End)
}

func (e *Editor) replaceSelection(text string) {
	before := e.Buffer()
	r := e.selection.OffsetRange(before)
	old := before.TextRange(r.Start, r.End)

	after := before.Clone()
	e.mustApply(after.Replace(r.Start, r.End, text))
	cursorAfter := after.OffsetToPoint(r.Start + Offset(len(text)))
	e.commit(before, after, history.NewReplace(old, text, e.Cursor(), cursorAfter))
}

// commit records txn and moves the cursor to where it leaves it.
func (e *Editor) commit(before, after *buffer.Buffer, txn history.Transaction) {
	e.history.Push(before, after, txn)
	e.selection = cursor.NewCursor(txn.CursorAfter)
	e.changed()
}

func (e *Editor) changed() {
	e.version++
}

// mustApply panics on an edit error. Editor edits are computed from
// clamped positions, so an error here is a bug.
func (e *Editor) mustApply(err error) {
	if err != nil {
		panic(fmt.Sprintf("engine: edit at computed position failed: %v", err))
	}
}
