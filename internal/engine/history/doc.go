// Package history provides undo/redo for the editor engine.
//
// History keeps whole-buffer snapshots instead of inverse operations.
// Buffers share their rope nodes, so a snapshot costs only the nodes an
// edit actually replaced. Each undo entry pairs the buffer as it was before
// a Transaction with the Transaction itself; undoing swaps the current
// buffer for that snapshot and moves the entry to the redo stack.
//
//	h := history.New(buffer.NewBuffer())
//
//	before := h.Current()
//	after := before.Clone()
//	after.Insert(0, "hello")
//	h.Push(before, after, history.NewInsert("hello", from, to))
//
//	txn, ok := h.Undo() // h.Current() is before again
//
// # Live updates
//
// UpdateCurrent swaps the live buffer without recording anything. The
// editor uses it while a run of keystrokes is being batched into one
// transaction.
package history
