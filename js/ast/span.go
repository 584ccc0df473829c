package ast

import (
	"fmt"
	"strings"
)

// Span is a half-open range [Start, End) of byte offsets into UTF-8 source
// text. It never owns the text it points into.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether s covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// ContainsOffset reports whether the byte at offset lies within s.
func (s Span) ContainsOffset(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps reports whether s and o share at least one byte, or whether an
// empty span sits inside the other.
func (s Span) Overlaps(o Span) bool {
	if s.IsEmpty() {
		return s.Start >= o.Start && s.Start <= o.End
	}
	if o.IsEmpty() {
		return o.Start >= s.Start && o.Start <= s.End
	}
	return s.Start < o.End && o.Start < s.End
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// Text returns src[s.Start:s.End], clamped to the bounds of src.
func (s Span) Text(src string) string {
	start, end := s.clamp(len(src))
	return src[start:end]
}

// LineRange returns the 1-indexed, inclusive lines on which s starts and
// ends. Lines are counted by '\n' bytes. Because End is exclusive, a span
// whose last byte is a newline does not enter the following line.
func (s Span) LineRange(src string) (startLine, endLine int) {
	start, end := s.clamp(len(src))
	startLine = 1 + strings.Count(src[:start], "\n")
	if end <= start {
		return startLine, startLine
	}
	endLine = startLine + strings.Count(src[start:end-1], "\n")
	return startLine, endLine
}

func (s Span) clamp(n int) (int, int) {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
