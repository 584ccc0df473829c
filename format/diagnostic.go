package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/parser"
)

// DiagnosticEncoder writes compiler-style diagnostics:
//
//	app.js:3:7: error: Unexpected token [syntax]
//
// With source excerpts enabled each line is followed by the offending
// source line and a caret.
type DiagnosticEncoder struct {
	w      io.Writer
	file   string
	source bool
	styles *styles
}

type styles struct {
	location *color.Color
	error    *color.Color
	warning  *color.Color
	code     *color.Color
	caret    *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.Bold),
		error:    color.New(color.Bold, color.FgRed),
		warning:  color.New(color.Bold, color.FgYellow),
		code:     color.New(color.FgHiBlack),
		caret:    color.New(color.FgGreen),
	}
	if !enabled {
		s.location.DisableColor()
		s.error.DisableColor()
		s.warning.DisableColor()
		s.code.DisableColor()
		s.caret.DisableColor()
	}
	return s
}

func NewDiagnosticEncoder(w io.Writer) *DiagnosticEncoder {
	return &DiagnosticEncoder{w: w, styles: newStyles(false)}
}

// SetColor enables ANSI colors.
func (e *DiagnosticEncoder) SetColor(on bool) { e.styles = newStyles(on) }

// SetSource enables source excerpts.
func (e *DiagnosticEncoder) SetSource(on bool) { e.source = on }

// SetFile sets the name printed when the result carries none.
func (e *DiagnosticEncoder) SetFile(name string) { e.file = name }

func (e *DiagnosticEncoder) Encode(res *parser.Result) error {
	return encode(e.w, e, res)
}

func (e *DiagnosticEncoder) MarshalText(res *parser.Result) ([]byte, error) {
	file := res.File()
	if file == "" {
		file = e.file
	}
	if file == "" {
		file = "<input>"
	}
	src := res.Source()
	idx := ast.NewLineIndex(src)

	var sb strings.Builder
	for _, d := range res.Diagnostics() {
		sev := e.styles.error
		if d.Severity == ast.SeverityWarning {
			sev = e.styles.warning
		}
		loc := file
		if d.Span != nil {
			p := idx.Position(d.Span.Start)
			loc = fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
		}
		sb.WriteString(e.styles.location.Sprint(loc + ":"))
		sb.WriteString(" ")
		sb.WriteString(sev.Sprint(d.Severity.String() + ":"))
		sb.WriteString(" ")
		sb.WriteString(d.Message)
		if d.Code != "" {
			sb.WriteString(" ")
			sb.WriteString(e.styles.code.Sprint("[" + d.Code + "]"))
		}
		sb.WriteString("\n")
		if e.source && d.Span != nil {
			e.writeExcerpt(&sb, src, idx, *d.Span)
		}
	}
	return []byte(sb.String()), nil
}

func (e *DiagnosticEncoder) writeExcerpt(sb *strings.Builder, src string, idx *ast.LineIndex, sp ast.Span) {
	p := idx.Position(sp.Start)
	start := idx.LineStart(p.Line)
	end := idx.LineStart(p.Line + 1)
	line := strings.TrimRight(src[start:end], "\r\n")

	width := sp.Len()
	if rest := len(line) - (p.Column - 1); width > rest {
		width = rest
	}
	width = max(width, 1)

	// Tabs keep their width so the caret lines up.
	var pad strings.Builder
	for _, ch := range line[:min(p.Column-1, len(line))] {
		if ch == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	fmt.Fprintf(sb, "    %s\n", line)
	fmt.Fprintf(sb, "    %s%s\n", pad.String(), e.styles.caret.Sprint("^"+strings.Repeat("~", width-1)))
}
