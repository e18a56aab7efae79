package rope

// NewlineIndex records the byte offsets of '\n' within a chunk.
// Chunks with a handful of newlines keep them inline; denser chunks
// spill to a slice.
type NewlineIndex struct {
	inline    [4]uint32
	count     int
	positions []uint32 // only set when count > MaxInlineNewlines
}

// MaxInlineNewlines is the number of newline positions stored inline.
const MaxInlineNewlines = 4

// ComputeNewlineIndex scans a string and builds a newline index.
func ComputeNewlineIndex(s string) NewlineIndex {
	var idx NewlineIndex

	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	if count == 0 {
		return idx
	}
	idx.count = count

	if count > MaxInlineNewlines {
		idx.positions = make([]uint32, 0, count)
	}

	recorded := 0
	for i := 0; i < len(s) && recorded < count; i++ {
		if s[i] != '\n' {
			continue
		}
		if count > MaxInlineNewlines {
			idx.positions = append(idx.positions, uint32(i))
		} else {
			idx.inline[recorded] = uint32(i)
		}
		recorded++
	}

	return idx
}

// Count returns the number of newlines.
func (idx *NewlineIndex) Count() int {
	return idx.count
}

// Position returns the byte offset of the nth newline (0-indexed).
// Returns -1 if n is out of range.
func (idx *NewlineIndex) Position(n int) int {
	if n < 0 || n >= idx.count {
		return -1
	}
	if idx.count <= MaxInlineNewlines {
		return int(idx.inline[n])
	}
	return int(idx.positions[n])
}

// CountBefore returns how many newlines sit at byte offsets < offset.
func (idx *NewlineIndex) CountBefore(offset int) int {
	positions := idx.allPositions()

	// Linear search for small counts
	if len(positions) <= 8 {
		n := 0
		for _, p := range positions {
			if int(p) >= offset {
				break
			}
			n++
		}
		return n
	}

	lo, hi := 0, len(positions)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if int(positions[mid]) < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// NewlineBefore returns the position of the last newline before the given offset.
// Returns -1 if no newline exists before that offset.
func (idx *NewlineIndex) NewlineBefore(offset int) int {
	n := idx.CountBefore(offset)
	if n == 0 {
		return -1
	}
	return idx.Position(n - 1)
}

// NewlineAfter returns the position of the first newline at or after the given offset.
// Returns -1 if no newline exists at or after that offset.
func (idx *NewlineIndex) NewlineAfter(offset int) int {
	return idx.Position(idx.CountBefore(offset))
}

func (idx *NewlineIndex) allPositions() []uint32 {
	if idx.count <= MaxInlineNewlines {
		return idx.inline[:idx.count]
	}
	return idx.positions
}
