package engine

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/ropecore/internal/engine/buffer"
	"github.com/dshills/ropecore/internal/engine/history"
)

// batchState is the undo batching state.
type batchState int

const (
	// idle: no keystrokes are pending.
	idle batchState = iota
	// accumulating: single-character keystrokes are applied to the live
	// buffer but not yet recorded in history.
	accumulating
)

// batch holds the keystrokes typed since the last undo boundary.
type batch struct {
	state  batchState
	text   strings.Builder
	start  buffer.Point
	before *buffer.Buffer
}

func (b *batch) begin(before *buffer.Buffer, start buffer.Point) {
	b.state = accumulating
	b.before = before
	b.start = start
	b.text.Reset()
}

func (b *batch) pending() bool {
	return b.state == accumulating && b.text.Len() > 0
}

func (b *batch) reset() {
	b.state = idle
	b.before = nil
	b.start = buffer.Point{}
	b.text.Reset()
}

// keystroke classifies inserted text.
type keystroke int

const (
	// keyChar is one non-whitespace grapheme cluster.
	keyChar keystroke = iota
	// keySpace is one whitespace grapheme cluster, which ends a batch.
	keySpace
	// keyPaste is anything longer.
	keyPaste
)

func classify(text string) keystroke {
	if uniseg.GraphemeClusterCount(text) != 1 {
		return keyPaste
	}
	if strings.TrimFunc(text, unicode.IsSpace) == "" {
		return keySpace
	}
	return keyChar
}

// accumulate applies a keystroke to the live buffer and adds it to the
// pending batch, starting one if needed.
func (e *Editor) accumulate(text string) {
	if e.batch.state == idle {
		e.batch.begin(e.history.Current(), e.Cursor())
	}
	after, cursorAfter := e.insertAtCursor(text)
	e.history.UpdateCurrent(after)
	e.batch.text.WriteString(text)
	e.selection = e.selection.MoveTo(cursorAfter)
	e.changed()
}

// terminate applies a whitespace keystroke. It closes the pending batch,
// the whitespace included, or commits on its own when nothing is pending.
func (e *Editor) terminate(text string) {
	if e.batch.state == idle {
		e.commitInsert(text)
		return
	}
	after, cursorAfter := e.insertAtCursor(text)
	e.batch.text.WriteString(text)
	txn := history.NewInsert(e.batch.text.String(), e.batch.start, cursorAfter)
	before := e.batch.before
	e.batch.reset()
	e.commit(before, after, txn)
	e.logger.Debug("batch closed: %s", txn.Description())
}

// flush records the pending batch as one transaction. The live buffer
// already holds its text.
func (e *Editor) flush() {
	if e.batch.state == idle {
		return
	}
	if !e.batch.pending() {
		e.batch.reset()
		return
	}
	txn := history.NewInsert(e.batch.text.String(), e.batch.start, e.Cursor())
	e.history.Push(e.batch.before, e.history.Current(), txn)
	e.batch.reset()
	e.logger.Debug("batch flushed: %s", txn.Description())
}

// discard drops the pending batch, restoring the buffer and cursor from
// before it. It reports whether anything was pending.
func (e *Editor) discard() bool {
	if e.batch.state == idle {
		return false
	}
	pending := e.batch.pending()
	e.history.UpdateCurrent(e.batch.before)
	e.selection = e.selection.MoveTo(e.batch.start)
	e.logger.Debug("batch discarded: %q", e.batch.text.String())
	e.batch.reset()
	if pending {
		e.changed()
	}
	return pending
}
