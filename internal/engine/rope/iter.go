package rope

import "github.com/dshills/ropecore/internal/engine/sumtree"

// ChunkIterator iterates over chunks in a rope.
type ChunkIterator struct {
	it *sumtree.Iterator[Chunk, TextSummary]
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{it: r.tree.Iter()}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	return it.it.Next()
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.it.Item()
}

// Offset returns the byte offset at which the current chunk starts.
func (it *ChunkIterator) Offset() int {
	return it.it.Before().Bytes
}

// LineIterator iterates over lines in a rope.
type LineIterator struct {
	rope  Rope
	line  int
	text  string
	start int
	end   int
}

// Lines returns an iterator over all lines in the rope.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r, line: -1}
}

// Next advances to the next line.
func (it *LineIterator) Next() bool {
	next := it.line + 1
	start, end, ok := it.rope.LineByteRange(next)
	if !ok {
		return false
	}
	it.line = next
	it.start, it.end = start, end
	it.text = it.rope.Slice(start, end)
	return true
}

// Text returns the current line without its newline.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current line number (0-indexed).
func (it *LineIterator) Line() int {
	return it.line
}

// StartOffset returns the byte offset where the current line starts.
func (it *LineIterator) StartOffset() int {
	return it.start
}

// EndOffset returns the byte offset where the current line ends, before
// its newline.
func (it *LineIterator) EndOffset() int {
	return it.end
}
