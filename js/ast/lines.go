package ast

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and byte column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps byte offsets of one source text to lines and columns.
type LineIndex struct {
	src    string
	starts []int
}

func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// LineCount returns the number of lines; a trailing newline starts an
// empty last line.
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// Line returns the 1-based line containing offset.
func (x *LineIndex) Line(offset int) int {
	return sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset })
}

// LineStart returns the offset of the first byte of the 1-based line.
func (x *LineIndex) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(x.starts) {
		return len(x.src)
	}
	return x.starts[line-1]
}

// Position returns the line and byte column of offset.
func (x *LineIndex) Position(offset int) Position {
	offset = min(max(offset, 0), len(x.src))
	line := x.Line(offset)
	return Position{Line: line, Column: offset - x.starts[line-1] + 1}
}

// LineRange returns the same result as Span.LineRange.
func (x *LineIndex) LineRange(s Span) (start, end int) {
	lo, hi := s.clamp(len(x.src))
	start = x.Line(lo)
	if hi <= lo {
		return start, start
	}
	return start, x.Line(hi - 1)
}

// UTF16Column returns the 0-based column of offset in UTF-16 code units,
// as used by the Language Server Protocol.
func (x *LineIndex) UTF16Column(offset int) int {
	offset = min(max(offset, 0), len(x.src))
	col := 0
	for i := x.starts[x.Line(offset)-1]; i < offset; {
		r, size := utf8.DecodeRuneInString(x.src[i:])
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
		i += size
	}
	return col
}

// Offset converts a 0-based line and UTF-16 column back to a byte offset.
func (x *LineIndex) Offset(line, utf16Col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(x.starts) {
		return len(x.src)
	}
	i := x.starts[line]
	for col := 0; col < utf16Col && i < len(x.src) && x.src[i] != '\n'; {
		r, size := utf8.DecodeRuneInString(x.src[i:])
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
		i += size
	}
	return i
}
