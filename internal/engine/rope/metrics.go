package rope

import "strings"

// TextSummary holds aggregated metrics for a text span.
// The zero value summarizes the empty string.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Lines is the number of newline characters.
	Lines int
}

// Add combines two summaries of adjacent spans.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines + other.Lines,
	}
}

// ComputeSummary calculates the summary of a string.
func ComputeSummary(s string) TextSummary {
	return TextSummary{
		Bytes: len(s),
		Lines: strings.Count(s, "\n"),
	}
}
