package rope

// Insert returns a new rope with text inserted at pos.
// It panics if pos is out of range or not on a UTF-8 boundary.
func (r Rope) Insert(pos int, text string) Rope {
	r.mustBoundary(pos, "insert")
	if text == "" {
		return r
	}
	return r.edit(pos, pos, text)
}

// Delete returns a new rope with bytes [start, end) removed.
// It panics if the range is invalid or not on UTF-8 boundaries.
func (r Rope) Delete(start, end int) Rope {
	r.mustRange(start, end, "delete")
	if start == end {
		return r
	}
	return r.edit(start, end, "")
}

// Replace returns a new rope with bytes [start, end) replaced by text.
// It panics if the range is invalid or not on UTF-8 boundaries.
func (r Rope) Replace(start, end int, text string) Rope {
	r.mustRange(start, end, "replace")
	if start == end && text == "" {
		return r
	}
	return r.edit(start, end, text)
}

// edit dispatches between the two edit strategies. Documents below the
// rebuild threshold are stringified and re-chunked; larger ones keep every
// untouched chunk and re-chunk only the edited region.
func (r Rope) edit(start, end int, text string) Rope {
	if r.Len() < r.cfg.rebuildThreshold {
		s := r.String()
		return fromString(s[:start]+text+s[end:], r.cfg)
	}
	return r.splice(start, end, text)
}

// splice rebuilds the tree from the chunk sequence with [start, end)
// replaced. The partial chunks at either end of the range are merged with
// text and re-chunked so fragments do not accumulate. A neighbouring chunk
// below half the target size is absorbed into the re-chunked region too.
func (r Rope) splice(start, end int, text string) Rope {
	items := r.tree.Items()
	if len(items) == 0 {
		return fromString(text, r.cfg)
	}
	size := r.cfg.chunk()

	// first and last are the chunks holding start and end.
	first, firstBase := 0, 0
	for first < len(items)-1 && firstBase+items[first].Len() < start {
		firstBase += items[first].Len()
		first++
	}
	last, lastBase := first, firstBase
	for last < len(items)-1 && lastBase+items[last].Len() < end {
		lastBase += items[last].Len()
		last++
	}

	prefix := items[first].data[:start-firstBase]
	suffix := items[last].data[end-lastBase:]
	if first > 0 && items[first-1].Len() < size/2 {
		first--
		prefix = items[first].data + prefix
	}
	if last < len(items)-1 && items[last+1].Len() < size/2 {
		last++
		suffix += items[last].data
	}

	middle := splitEvenly(prefix+text+suffix, size)
	out := make([]Chunk, 0, first+len(middle)+len(items)-last-1)
	out = append(out, items[:first]...)
	out = append(out, middle...)
	out = append(out, items[last+1:]...)
	return fromChunks(out, r.cfg)
}

// splitEvenly cuts s into the fewest chunks of at most size bytes, spread
// evenly so that repeated small edits do not leave a trail of tiny chunks.
func splitEvenly(s string, size int) []Chunk {
	if len(s) <= size {
		return splitIntoChunks(s, size)
	}
	n := (len(s) + size - 1) / size
	return splitIntoChunks(s, (len(s)+n-1)/n)
}
