package rope

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned when streamed input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Builder provides efficient incremental construction of a rope.
// Written text is cut into boundary-aligned chunks as it arrives, so the
// full document is never held as one string.
type Builder struct {
	cfg      settings
	chunks   []Chunk
	pending  []byte
	totalLen int
	invalid  int // offset of the first invalid byte, or -1
}

// NewBuilder creates a new rope builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		cfg:     newSettings(opts),
		chunks:  make([]Chunk, 0, 64),
		invalid: -1,
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	b.pending = append(b.pending, s...)
	b.totalLen += len(s)
	b.cut(false)
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.pending = append(b.pending, p...)
	b.totalLen += len(p)
	b.cut(false)
	return len(p), nil
}

// cut moves complete chunks out of the pending bytes. Unless final, a tail
// that could still be extended to a character boundary is kept back.
func (b *Builder) cut(final bool) {
	size := b.cfg.chunk()
	start := 0
	for len(b.pending)-start >= size+utf8.UTFMax || (final && start < len(b.pending)) {
		end := min(start+size, len(b.pending))
		for end < len(b.pending) && !isUTF8Start(b.pending[end]) {
			end++
		}
		b.emit(b.pending[start:end])
		start = end
	}
	if start > 0 {
		b.pending = b.pending[:copy(b.pending, b.pending[start:])]
	}
}

func (b *Builder) emit(p []byte) {
	if b.invalid < 0 && !utf8.Valid(p) {
		offset := 0
		for _, c := range b.chunks {
			offset += c.Len()
		}
		for i := 0; i < len(p); {
			r, size := utf8.DecodeRune(p[i:])
			if r == utf8.RuneError && size <= 1 {
				b.invalid = offset + i
				break
			}
			i += size
		}
	}
	b.chunks = append(b.chunks, NewChunk(string(p)))
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.pending = b.pending[:0]
	b.totalLen = 0
	b.invalid = -1
}

// Build creates the rope from accumulated data.
// After calling Build, the builder is reset.
func (b *Builder) Build() Rope {
	b.cut(true)
	chunks := make([]Chunk, len(b.chunks))
	copy(chunks, b.chunks)
	cfg := b.cfg
	b.Reset()
	return fromChunks(chunks, cfg)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = b.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// FromReader creates a rope from UTF-8 text. A leading byte order mark is
// stripped; UTF-16 input marked by a BOM is transcoded to UTF-8.
func FromReader(r io.Reader, opts ...Option) (Rope, error) {
	b := NewBuilder(opts...)
	if _, err := b.ReadFrom(transform.NewReader(r, unicode.BOMOverride(transform.Nop))); err != nil {
		return Rope{}, fmt.Errorf("read text: %w", err)
	}
	b.cut(true)
	if b.invalid >= 0 {
		return Rope{}, fmt.Errorf("%w at byte %d", ErrInvalidUTF8, b.invalid)
	}
	return b.Build(), nil
}

// FromLines creates a rope from a slice of lines joined by newlines.
func FromLines(lines []string, opts ...Option) Rope {
	b := NewBuilder(opts...)
	for i, line := range lines {
		if i > 0 {
			_, _ = b.WriteString("\n")
		}
		_, _ = b.WriteString(line)
	}
	return b.Build()
}

// WriteTo streams the rope's text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for c := range r.tree.All() {
		n, err := io.WriteString(w, c.data)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
