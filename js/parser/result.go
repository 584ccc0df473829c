package parser

import "github.com/dhamidi/jsast/js/ast"

// Result is the outcome of one parse. It is immutable once returned.
//
// The program stays usable exactly as long as the arena it was parsed into
// is not reset.
type Result struct {
	program     ast.Node
	diagnostics []ast.Diagnostic
	comments    []ast.Comment
	panicked    bool
	source      string
	file        string
	sourceType  SourceType
	language    Language
	arena       *ast.Arena
}

// Program returns the root Program node. The second result is false when
// no tree could be produced, which only happens after a panic.
func (r *Result) Program() (ast.Node, bool) {
	return r.program, !r.program.IsZero()
}

// Diagnostics returns the problems found, ordered by source position.
func (r *Result) Diagnostics() []ast.Diagnostic {
	return r.diagnostics
}

// Comments returns all comments in source order.
func (r *Result) Comments() []ast.Comment {
	return r.comments
}

// Panicked reports whether the parser crashed. A tree accompanying a panic
// should not be trusted.
func (r *Result) Panicked() bool {
	return r.panicked
}

// IsValid reports whether the parse produced no diagnostics and did not
// panic. An invalid result may still carry a usable partial tree.
func (r *Result) IsValid() bool {
	return len(r.diagnostics) == 0 && !r.panicked
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == ast.SeverityError {
			return true
		}
	}
	return r.panicked
}

// SourceType returns the goal the program was parsed with. For SourceAuto
// this is the detected type.
func (r *Result) SourceType() SourceType {
	return r.sourceType
}

func (r *Result) Language() Language {
	return r.language
}

// Source returns the parsed text.
func (r *Result) Source() string {
	return r.source
}

// File returns the file name given with WithFile, if any.
func (r *Result) File() string {
	return r.file
}

// Arena returns the arena holding the program.
func (r *Result) Arena() *ast.Arena {
	return r.arena
}
