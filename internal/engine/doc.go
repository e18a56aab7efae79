// Package engine provides the editing core: an Editor that combines a
// rope-backed buffer, a selection and snapshot-based undo history.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - sumtree: generic persistent tree that caches summaries of its items
//   - rope: immutable chunked text with O(log n) line and byte lookups
//   - linecache: line offset cache with scroll-driven prefetch
//   - buffer: validated edits, point/offset conversion, copy-on-write cache
//   - cursor: row/column selections
//   - history: undo/redo over whole-buffer snapshots
//
// # Undo Granularity
//
// Typing is grouped into undo steps by a small state machine. Each single
// non-whitespace character is applied immediately and added to a pending
// batch. A whitespace character is applied, appended to the batch and
// closes it, so typing "hello world " produces two undo steps. Pastes,
// deletions, cursor movement and redo close the batch before they run.
// Undo with a batch pending discards just that batch.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello"))
//	e.SetCursor(engine.Point{Row: 0, Column: 5})
//
//	for _, r := range ", World!" {
//	    e.Insert(string(r))
//	}
//	e.Text() // "Hello, World!"
//
//	e.Undo() // "Hello, "
//
// # Loading Files
//
//	f, _ := os.Open("file.txt")
//	defer f.Close()
//	e, err := engine.NewFromReader(f, engine.WithConfig(cfg))
//
// # Thread Safety
//
// An Editor is not safe for concurrent use; embedding code serializes
// access. Buffers obtained from the editor share immutable text with it.
package engine
