// Package format renders parse results for people and tools.
//
// Every encoder writes to the io.Writer it was created with and has a
// MarshalText counterpart that returns the bytes instead.
package format

import (
	"io"

	"github.com/dhamidi/jsast/js/parser"
)

// Encoder writes one parse result.
type Encoder interface {
	Encode(res *parser.Result) error
	MarshalText(res *parser.Result) ([]byte, error)
}

var (
	_ Encoder = (*ASTJSONEncoder)(nil)
	_ Encoder = (*TreeEncoder)(nil)
	_ Encoder = (*LineEncoder)(nil)
	_ Encoder = (*DiagnosticEncoder)(nil)
)

// New returns the encoder registered under name: "json", "tree", "symbols"
// or "diagnostics".
func New(name string, w io.Writer) (Encoder, bool) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), true
	case "tree":
		return NewTreeEncoder(w), true
	case "symbols":
		return NewLineEncoder(w), true
	case "diagnostics":
		return NewDiagnosticEncoder(w), true
	}
	return nil, false
}

func encode(w io.Writer, e Encoder, res *parser.Result) error {
	text, err := e.MarshalText(res)
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
