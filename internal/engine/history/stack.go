package history

import (
	"github.com/dshills/ropecore/internal/engine/buffer"
	"github.com/dshills/ropecore/internal/logging"
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// entry pairs a transaction with the buffer on the other side of it: the
// state before it on the undo stack, the state after it on the redo stack.
type entry struct {
	buf *buffer.Buffer
	txn Transaction
}

// History manages undo/redo state for a buffer. It stores whole-buffer
// snapshots, which share structure with each other and with the current
// buffer.
type History struct {
	current *buffer.Buffer

	undoStack []entry
	redoStack []entry

	maxEntries int
	logger     *logging.Logger
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries limits the undo depth. Non-positive values select
// DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		h.maxEntries = normalizeMax(n)
	}
}

// WithLogger sets the history's logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l.WithComponent("history")
		}
	}
}

// New creates a history whose current buffer is initial.
func New(initial *buffer.Buffer, opts ...Option) *History {
	h := &History{
		current:    initial,
		maxEntries: DefaultMaxEntries,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Current returns the live buffer.
func (h *History) Current() *buffer.Buffer {
	return h.current
}

// Push records txn, which turned before into after, and makes after the
// current buffer. The redo stack is cleared.
func (h *History) Push(before, after *buffer.Buffer, txn Transaction) {
	before.ReleaseCache()
	h.undoStack = append(h.undoStack, entry{buf: before, txn: txn})
	h.redoStack = nil
	h.current = after
	h.trim()
	h.logger.Debug("push %s (undo depth %d)", txn.Description(), len(h.undoStack))
}

// UpdateCurrent replaces the live buffer without recording anything.
func (h *History) UpdateCurrent(buf *buffer.Buffer) {
	h.current = buf
}

// Undo restores the buffer from before the last transaction and returns
// that transaction. It reports false when there is nothing to undo.
func (h *History) Undo() (Transaction, bool) {
	if len(h.undoStack) == 0 {
		return Transaction{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	h.current.ReleaseCache()
	h.redoStack = append(h.redoStack, entry{buf: h.current, txn: e.txn})
	h.current = e.buf
	return e.txn, true
}

// Redo reapplies the last undone transaction and returns it. It reports
// false when there is nothing to redo.
func (h *History) Redo() (Transaction, bool) {
	if len(h.redoStack) == 0 {
		return Transaction{}, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	h.current.ReleaseCache()
	h.undoStack = append(h.undoStack, entry{buf: h.current, txn: e.txn})
	h.current = e.buf
	return e.txn, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear removes all undo/redo history. The current buffer is kept.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	return infos(h.undoStack)
}

// RedoInfo returns info about available redo operations, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	return infos(h.redoStack)
}

// PeekUndo returns the next transaction Undo would return.
func (h *History) PeekUndo() (Transaction, bool) {
	return peek(h.undoStack)
}

// PeekRedo returns the next transaction Redo would return.
func (h *History) PeekRedo() (Transaction, bool) {
	return peek(h.redoStack)
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(n int) {
	h.maxEntries = normalizeMax(n)
	h.trim()
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

func (h *History) trim() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		clear(h.undoStack[:excess])
		h.undoStack = h.undoStack[excess:]
	}
}

func normalizeMax(n int) int {
	if n <= 0 {
		return DefaultMaxEntries
	}
	return n
}

func peek(stack []entry) (Transaction, bool) {
	if len(stack) == 0 {
		return Transaction{}, false
	}
	return stack[len(stack)-1].txn, true
}

func infos(stack []entry) []OperationInfo {
	result := make([]OperationInfo, len(stack))
	for i, e := range stack {
		result[i] = e.txn.Info()
	}
	return result
}
