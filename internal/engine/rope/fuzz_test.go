package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzFromString tests rope creation from arbitrary strings.
func FuzzFromString(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("hello\r\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")
	f.Add("\x00\x01\x02")

	f.Fuzz(func(t *testing.T, s string) {
		// Skip invalid UTF-8 (rope requires valid UTF-8)
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s, WithChunkSize(7))
		if r.Len() != len(s) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), len(s))
		}
		if r.String() != s {
			t.Errorf("content mismatch")
		}
		if err := r.Validate(); err != nil {
			t.Error(err)
		}
	})
}

// FuzzEdit applies an insert, delete or replace through both edit paths.
func FuzzEdit(f *testing.F) {
	// op: 0=insert, 1=delete, 2=replace
	f.Add("hello", 0, 0, 5, "x")
	f.Add("hello", 1, 0, 3, "")
	f.Add("hello", 2, 1, 4, "abc")
	f.Add("日本語", 0, 3, 3, "x")
	f.Add("a\nb\nc", 2, 1, 4, "\n\n")

	f.Fuzz(func(t *testing.T, initial string, op int, pos1, pos2 int, text string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(text) {
			return
		}

		pos1 = floorBoundary(initial, min(max(pos1, 0), len(initial)))
		pos2 = floorBoundary(initial, min(max(pos2, pos1), len(initial)))

		var want string
		apply := func(r Rope) Rope {
			switch op % 3 {
			case 0:
				want = initial[:pos1] + text + initial[pos1:]
				return r.Insert(pos1, text)
			case 1:
				want = initial[:pos1] + initial[pos2:]
				return r.Delete(pos1, pos2)
			default:
				want = initial[:pos1] + text + initial[pos2:]
				return r.Replace(pos1, pos2, text)
			}
		}

		for _, s := range strategies {
			r := apply(FromString(initial, s.opts...))
			if r.String() != want {
				t.Errorf("%s: got %q, want %q", s.name, r.String(), want)
			}
			if r.LineCount() != strings.Count(want, "\n")+1 {
				t.Errorf("%s: LineCount() = %d", s.name, r.LineCount())
			}
			if err := r.Validate(); err != nil {
				t.Errorf("%s: %v", s.name, err)
			}
		}
	})
}

// FuzzLineOperations checks line addressing against a strings.Split oracle.
func FuzzLineOperations(f *testing.F) {
	f.Add("line1\nline2\nline3")
	f.Add("no newline")
	f.Add("\n\n\n")
	f.Add("")
	f.Add("日本語\n英語\n中国語")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s, WithChunkSize(5))
		lines := strings.Split(s, "\n")
		if r.LineCount() != len(lines) {
			t.Fatalf("LineCount() = %d, want %d", r.LineCount(), len(lines))
		}

		offset := 0
		for i, want := range lines {
			if got := r.LineToByte(i); got != offset {
				t.Errorf("LineToByte(%d) = %d, want %d", i, got, offset)
			}
			if got, ok := r.Line(i); !ok || got != want {
				t.Errorf("Line(%d) = %q, want %q", i, got, want)
			}
			offset += len(want) + 1
		}
	})
}

// FuzzByteToLineCol tests coordinate conversion.
func FuzzByteToLineCol(f *testing.F) {
	f.Add("line1\nline2\nline3", 0)
	f.Add("line1\nline2\nline3", 5)
	f.Add("line1\nline2\nline3", 6)
	f.Add("日本\n語", 7)

	f.Fuzz(func(t *testing.T, s string, offset int) {
		if !utf8.ValidString(s) {
			return
		}
		offset = floorBoundary(s, min(max(offset, 0), len(s)))

		r := FromString(s, WithChunkSize(3))
		line, col := r.ByteToLineCol(offset)

		wantLine := strings.Count(s[:offset], "\n")
		lineStart := strings.LastIndexByte(s[:offset], '\n') + 1
		wantCol := utf8.RuneCountInString(s[lineStart:offset])
		if line != wantLine || col != wantCol {
			t.Errorf("ByteToLineCol(%d) = (%d, %d), want (%d, %d)", offset, line, col, wantLine, wantCol)
		}

		if back := r.AdvanceChars(r.LineToByte(line), col, r.Len()); back != offset {
			t.Errorf("round-trip offset mismatch: %d -> (%d,%d) -> %d", offset, line, col, back)
		}
	})
}

// FuzzSlice tests slice operations.
func FuzzSlice(f *testing.F) {
	f.Add("hello world", 0, 5)
	f.Add("hello world", 6, 11)
	f.Add("日本語", 0, 3)

	f.Fuzz(func(t *testing.T, s string, start, end int) {
		if !utf8.ValidString(s) {
			return
		}
		start = floorBoundary(s, min(max(start, 0), len(s)))
		end = floorBoundary(s, min(max(end, start), len(s)))

		r := FromString(s, WithChunkSize(4))
		if got := r.Slice(start, end); got != s[start:end] {
			t.Errorf("slice mismatch: range [%d, %d)", start, end)
		}
	})
}
