package linecache

// Scratch is a reusable buffer for batched lookups. Results returned through
// a Scratch are overwritten by the next batch that uses it.
type Scratch struct {
	buf []int
}

// NewScratch creates a scratch buffer with room for capacity results.
func NewScratch(capacity int) *Scratch {
	return &Scratch{buf: make([]int, 0, capacity)}
}

// Cap returns the current capacity of the buffer.
func (s *Scratch) Cap() int {
	return cap(s.buf)
}

func (s *Scratch) take(n int) []int {
	if cap(s.buf) < n {
		s.buf = make([]int, 0, n)
	}
	return s.buf[:0]
}

func (s *Scratch) keep(buf []int) {
	s.buf = buf
}
