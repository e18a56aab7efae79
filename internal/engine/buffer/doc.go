// Package buffer provides a text buffer built on top of the rope data
// structure. It is the layer the editor engine edits through.
//
// A Buffer owns an immutable rope plus a line offset cache. Reads that
// resolve lines go through the cache; edits replace the rope and
// invalidate only the cache entries they affect. Unlike the rope, the
// buffer validates caller offsets and reports problems as errors.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Insert text
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//
//	// Delete text
//	buf.Delete(0, 7)  // "Beautiful World!"
//
//	// Convert coordinates
//	off := buf.PointToOffset(buffer.Point{Row: 0, Column: 4})
//
// # Snapshots
//
// Clone returns an independent Buffer that shares the rope and the line
// cache with its source. The cache is copied by whichever holder mutates
// first, so cloning is O(1) and holding many snapshots is cheap.
//
// # Scroll prediction
//
// UpdateScrollPrediction feeds viewport movement to the buffer's prefetch
// policy and resolves the predicted line range ahead of time.
//
// # Thread Safety
//
// A Buffer is not safe for concurrent use. Reads populate the line cache,
// and a clone shares that cache until one of the holders edits, so a Buffer
// and its clones belong to a single goroutine.
package buffer
