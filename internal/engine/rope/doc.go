// Package rope provides an immutable rope for text storage and manipulation.
//
// Text is split into UTF-8 aligned chunks of about DefaultChunkSize bytes.
// Chunks live in a sumtree keyed by TextSummary, so every subtree knows its
// byte and newline counts. Line/byte conversion descends the tree using those
// cached counts and finishes inside a single chunk with the chunk's
// precomputed newline positions.
//
// Key features:
//   - Edits return new ropes; the original is never modified
//   - Copying a Rope is O(1) and shares all structure
//   - Small documents are edited by rebuilding, large ones by splicing chunks
//   - Streamed construction from an io.Reader and streamed save to an io.Writer
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Delete(0, 7)             // "world"
//	start := r.LineToByte(0)       // 0
//
// Positions passed to a Rope must be in range and on a UTF-8 boundary.
// Violations are programming errors and panic; callers holding untrusted
// positions validate them first (see the buffer package).
package rope
