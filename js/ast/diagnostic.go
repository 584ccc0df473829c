package ast

import "fmt"

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic describes a problem found while parsing. Span is nil when the
// problem has no source position, as for a crashed parse.
type Diagnostic struct {
	Message  string
	Span     *Span
	Severity Severity
	Code     string
}

func (d Diagnostic) Error() string {
	if d.Span == nil {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

func (d Diagnostic) String() string {
	return d.Error()
}

// Locate renders d as file:line:col using idx, with 1-based columns.
func (d Diagnostic) Locate(file string, idx *LineIndex) string {
	if d.Span == nil || idx == nil {
		return fmt.Sprintf("%s: %s: %s", file, d.Severity, d.Message)
	}
	p := idx.Position(d.Span.Start)
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, p.Line, p.Column, d.Severity, d.Message)
}
