package ast

import (
	"strconv"
	"strings"
)

// String renders the subtree rooted at n as an indented outline, one node
// per line.
func (n Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, FieldNone, false)
	return sb.String()
}

// StringWithPositions is like String but includes each node's span.
func (n Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, FieldNone, true)
	return sb.String()
}

func (n Node) writeIndent(sb *strings.Builder, indent int, f Field, showPositions bool) {
	if n.IsZero() {
		return
	}
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	if f != FieldNone {
		sb.WriteString(f.String())
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind().String())
	if showPositions {
		sb.WriteString(" [")
		sb.WriteString(n.Span().String())
		sb.WriteString("]")
	}
	if name := n.Name(); name != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(name))
	}
	if v := n.Value(); v != "" && v != n.Name() {
		sb.WriteString(" value=")
		sb.WriteString(strconv.Quote(v))
	}
	if fl := n.Flags(); fl != 0 {
		sb.WriteString(" (")
		sb.WriteString(fl.String())
		sb.WriteString(")")
	}
	sb.WriteString("\n")

	n.Each(func(f Field, c Node) bool {
		c.writeIndent(sb, indent+1, f, showPositions)
		return true
	})
}
