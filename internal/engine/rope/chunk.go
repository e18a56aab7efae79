package rope

import "fmt"

// DefaultChunkSize is the target number of bytes per chunk.
// A chunk may run up to utf8.UTFMax-1 bytes past the target so that it
// ends on a character boundary.
const DefaultChunkSize = 1024

// Chunk is an immutable UTF-8 fragment stored in the rope's leaves.
// Its newline positions are computed once at construction.
type Chunk struct {
	data     string
	newlines NewlineIndex
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:     s,
		newlines: ComputeNewlineIndex(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's byte and newline counts.
func (c Chunk) Summary() TextSummary {
	return TextSummary{Bytes: len(c.data), Lines: c.newlines.Count()}
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// CountLines returns the number of newlines in the chunk.
func (c Chunk) CountLines() int {
	return c.newlines.Count()
}

// NewlinePosition returns the byte offset of the kth newline (0-indexed).
func (c Chunk) NewlinePosition(k int) (int, bool) {
	pos := c.newlines.Position(k)
	return pos, pos >= 0
}

// SplitAt splits the chunk at byte offset pos.
// It panics if pos is out of range or not on a UTF-8 boundary.
func (c Chunk) SplitAt(pos int) (Chunk, Chunk) {
	c.mustBoundary(pos)
	return NewChunk(c.data[:pos]), NewChunk(c.data[pos:])
}

// Slice returns the chunk covering bytes [start, end).
// It panics if the range is invalid or either end is not on a UTF-8 boundary.
func (c Chunk) Slice(start, end int) Chunk {
	if start > end {
		panic(fmt.Sprintf("rope: chunk slice [%d, %d) is inverted", start, end))
	}
	c.mustBoundary(start)
	c.mustBoundary(end)
	return NewChunk(c.data[start:end])
}

func (c Chunk) mustBoundary(pos int) {
	if pos < 0 || pos > len(c.data) {
		panic(fmt.Sprintf("rope: chunk offset %d out of range [0, %d]", pos, len(c.data)))
	}
	if !isCharBoundary(c.data, pos) {
		panic(fmt.Sprintf("rope: chunk offset %d is not a UTF-8 boundary", pos))
	}
}

// splitIntoChunks splits s into chunks of about size bytes, each ending on a
// character boundary.
func splitIntoChunks(s string, size int) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := make([]Chunk, 0, len(s)/size+1)
	for start := 0; start < len(s); {
		end := start + size
		if end >= len(s) {
			end = len(s)
		} else {
			for end < len(s) && !isUTF8Start(s[end]) {
				end++
			}
		}
		chunks = append(chunks, NewChunk(s[start:end]))
		start = end
	}
	return chunks
}

// isCharBoundary reports whether byte offset i of s starts a character
// (or is the end of s).
func isCharBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	return isUTF8Start(s[i])
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	// Continuation bytes are 10xxxxxx.
	return b&0xC0 != 0x80
}
