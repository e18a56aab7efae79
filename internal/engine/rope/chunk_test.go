package rope

import (
	"strings"
	"testing"
)

func TestChunkSummary(t *testing.T) {
	c := NewChunk("ab\ncd\n")
	if got := c.Summary(); got != (TextSummary{Bytes: 6, Lines: 2}) {
		t.Errorf("Summary() = %+v", got)
	}
	if c.CountLines() != 2 || c.Len() != 6 || c.IsEmpty() {
		t.Errorf("unexpected metrics: lines %d len %d", c.CountLines(), c.Len())
	}

	pos, ok := c.NewlinePosition(1)
	if !ok || pos != 5 {
		t.Errorf("NewlinePosition(1) = %d, %v", pos, ok)
	}
	if _, ok := c.NewlinePosition(2); ok {
		t.Error("NewlinePosition(2) should not exist")
	}
}

func TestChunkSplitAndSlice(t *testing.T) {
	c := NewChunk("hé\nllo")

	left, right := c.SplitAt(3)
	if left.String() != "hé" || right.String() != "\nllo" {
		t.Errorf("SplitAt(3) = %q, %q", left.String(), right.String())
	}
	if right.CountLines() != 1 || left.CountLines() != 0 {
		t.Error("split chunks should recompute their newlines")
	}

	if got := c.Slice(1, 4).String(); got != "é\n" {
		t.Errorf("Slice(1, 4) = %q", got)
	}
	if got := c.Slice(3, 3); !got.IsEmpty() {
		t.Error("empty slice should be empty")
	}
}

func TestChunkRejectsNonBoundary(t *testing.T) {
	c := NewChunk("hé\nllo")

	tests := []struct {
		name string
		f    func()
	}{
		{"slice inside rune", func() { c.Slice(2, 2) }},
		{"split inside rune", func() { c.SplitAt(2) }},
		{"slice past end", func() { c.Slice(0, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.f()
		})
	}
}

func TestSplitIntoChunks(t *testing.T) {
	text := strings.Repeat("€", 100) // 3 bytes each
	chunks := splitIntoChunks(text, 10)

	var sb strings.Builder
	for _, c := range chunks {
		if c.Len() > 12 {
			t.Errorf("chunk of %d bytes exceeds size", c.Len())
		}
		if c.Len()%3 != 0 {
			t.Errorf("chunk of %d bytes splits a character", c.Len())
		}
		sb.WriteString(c.String())
	}
	if sb.String() != text {
		t.Error("chunks do not reassemble the input")
	}
	if splitIntoChunks("", 10) != nil {
		t.Error("empty input should produce no chunks")
	}
}

func TestSplitEvenly(t *testing.T) {
	chunks := splitEvenly(strings.Repeat("x", 65), 64)
	if len(chunks) != 2 || chunks[0].Len() != 33 || chunks[1].Len() != 32 {
		var sizes []int
		for _, c := range chunks {
			sizes = append(sizes, c.Len())
		}
		t.Errorf("splitEvenly sizes = %v, want [33 32]", sizes)
	}
}
