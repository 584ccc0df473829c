package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/symbols"
)

// LineEncoder writes one tab-separated line per declaration:
//
//	kind	qualified.name	startLine	endLine	modifiers	summary
//
// Nested symbols are qualified with their parents' names.
type LineEncoder struct {
	w      io.Writer
	locals bool
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

// SetLocals includes declarations inside function bodies.
func (e *LineEncoder) SetLocals(on bool) { e.locals = on }

func (e *LineEncoder) Encode(res *parser.Result) error {
	return encode(e.w, e, res)
}

func (e *LineEncoder) MarshalText(res *parser.Result) ([]byte, error) {
	prog, ok := res.Program()
	if !ok {
		return nil, nil
	}
	opts := []symbols.Option{symbols.WithComments(res.Comments())}
	if e.locals {
		opts = append(opts, symbols.WithLocals())
	}

	var sb strings.Builder
	writeSymbols(&sb, symbols.Extract(prog, res.Source(), opts...), "")
	return []byte(sb.String()), nil
}

func writeSymbols(sb *strings.Builder, syms []*symbols.Symbol, prefix string) {
	for _, s := range syms {
		name := prefix + s.Name
		fmt.Fprintf(sb, "%s\t%s\t%d\t%d\t%s\t%s\n",
			s.Kind,
			name,
			s.StartLine,
			s.EndLine,
			modifiersStr(s),
			s.Summary(),
		)
		writeSymbols(sb, s.Children, name+".")
	}
}

func modifiersStr(s *symbols.Symbol) string {
	var mods []string
	if s.Exported {
		mods = append(mods, "export")
	}
	if s.Detail != "" {
		mods = append(mods, s.Detail)
	}
	return strings.Join(mods, ",")
}
