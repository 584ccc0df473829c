package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/walk"
)

// TreeEncoder writes the tree as an indented outline:
//
//	Program
//	  body: VariableDeclaration "const" [0..12] L1
//	    declarations: VariableDeclarator [6..11] L1
type TreeEncoder struct {
	w        io.Writer
	spans    bool
	lines    bool
	maxDepth int
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, maxDepth: -1}
}

// SetSpans includes each node's byte span.
func (e *TreeEncoder) SetSpans(on bool) { e.spans = on }

// SetLines includes each node's line range.
func (e *TreeEncoder) SetLines(on bool) { e.lines = on }

// SetMaxDepth stops descending below depth; a negative depth is unlimited.
func (e *TreeEncoder) SetMaxDepth(depth int) { e.maxDepth = depth }

func (e *TreeEncoder) Encode(res *parser.Result) error {
	return encode(e.w, e, res)
}

func (e *TreeEncoder) MarshalText(res *parser.Result) ([]byte, error) {
	prog, ok := res.Program()
	if !ok {
		return nil, nil
	}
	var idx *ast.LineIndex
	if e.lines {
		idx = ast.NewLineIndex(res.Source())
	}

	var sb strings.Builder
	w := walk.Walk(prog)
	for w.Next() {
		if e.maxDepth >= 0 && w.Depth() >= e.maxDepth {
			w.SkipChildren()
		}
		e.writeNode(&sb, w.Node(), w.Field(), w.Depth(), idx)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n ast.Node, f ast.Field, depth int, idx *ast.LineIndex) {
	sb.WriteString(strings.Repeat("  ", depth))
	if f != ast.FieldNone {
		sb.WriteString(f.String())
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind().String())
	if name := n.Name(); name != "" {
		sb.WriteString(" " + strconv.Quote(name))
	}
	if v := n.Value(); v != "" && v != n.Name() {
		sb.WriteString(" value=" + strconv.Quote(v))
	}
	if fl := n.Flags(); fl != 0 {
		sb.WriteString(" (" + fl.String() + ")")
	}
	if e.spans {
		fmt.Fprintf(sb, " [%s]", n.Span())
	}
	if idx != nil {
		start, end := idx.LineRange(n.Span())
		if start == end {
			fmt.Fprintf(sb, " L%d", start)
		} else {
			fmt.Fprintf(sb, " L%d-%d", start, end)
		}
	}
	sb.WriteString("\n")
}
