package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/walk"
)

// ASTJSONEncoder writes the tree in an ESTree-like JSON shape:
//
//	{"type": "Identifier", "start": 6, "end": 7, "name": "x"}
//
// Keys appear in a fixed order: type, start, end, loc, name, value, flags,
// then child fields in tree order. Absent children and empty lists are
// omitted. The root additionally carries "comments" and "diagnostics".
type ASTJSONEncoder struct {
	w         io.Writer
	locations bool
	indent    string
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, indent: "  "}
}

// SetLocations adds a "loc" object with 1-based lines and columns to each
// node.
func (e *ASTJSONEncoder) SetLocations(on bool) {
	e.locations = on
}

// SetIndent sets the indentation unit; "" produces compact output.
func (e *ASTJSONEncoder) SetIndent(indent string) {
	e.indent = indent
}

func (e *ASTJSONEncoder) Encode(res *parser.Result) error {
	return encode(e.w, e, res)
}

func (e *ASTJSONEncoder) MarshalText(res *parser.Result) ([]byte, error) {
	var idx *ast.LineIndex
	if e.locations {
		idx = ast.NewLineIndex(res.Source())
	}

	var root object
	if prog, ok := res.Program(); ok {
		root = programToJSON(prog, idx)
	} else {
		root = object{{"type", "Program"}}
	}
	if cs := res.Comments(); len(cs) > 0 {
		root = append(root, member{"comments", commentsToJSON(cs, idx)})
	}
	if ds := res.Diagnostics(); len(ds) > 0 {
		root = append(root, member{"diagnostics", diagnosticsToJSON(ds)})
	}

	if e.indent == "" {
		out, err := json.Marshal(root)
		return append(out, '\n'), err
	}
	out, err := json.MarshalIndent(root, "", e.indent)
	return append(out, '\n'), err
}

// object is a JSON object that keeps its keys in insertion order.
type object []member

type member struct {
	key   string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type jsonLoc struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// listFields hold sequences in ESTree even when they have one element.
var listFields = map[ast.Field]bool{
	ast.FieldParams:       true,
	ast.FieldDeclarations: true,
	ast.FieldArguments:    true,
	ast.FieldExpressions:  true,
	ast.FieldElements:     true,
	ast.FieldProperties:   true,
	ast.FieldSpecifiers:   true,
	ast.FieldCases:        true,
	ast.FieldDecorators:   true,
	ast.FieldQuasis:       true,
	ast.FieldChildren:     true,
	ast.FieldAttributes:   true,
	ast.FieldMembers:      true,
	ast.FieldExtends:      true,
	ast.FieldImplements:   true,
	ast.FieldTypes:        true,
	ast.FieldElementTypes: true,
	ast.FieldDirectives:   true,
	ast.FieldParameters:   true,
}

var listBodies = map[ast.Kind]bool{
	ast.KindProgram:         true,
	ast.KindBlockStatement:  true,
	ast.KindClassBody:       true,
	ast.KindStaticBlock:     true,
	ast.KindTSInterfaceBody: true,
	ast.KindTSModuleBlock:   true,
}

func isList(k ast.Kind, f ast.Field) bool {
	switch f {
	case ast.FieldBody:
		return listBodies[k]
	case ast.FieldConsequent:
		return k == ast.KindSwitchCase
	}
	return listFields[f]
}

// pending collects the children of one node until it is left.
type pending struct {
	node   ast.Node
	order  []ast.Field
	values map[ast.Field][]any
}

func (p *pending) add(f ast.Field, v any) {
	if _, ok := p.values[f]; !ok {
		p.order = append(p.order, f)
	}
	p.values[f] = append(p.values[f], v)
}

// programToJSON builds the object tree bottom-up on an explicit stack so
// that deep trees do not recurse.
func programToJSON(root ast.Node, idx *ast.LineIndex) object {
	var stack []*pending
	var out object
	walk.Visit(root, &walk.Hooks{
		OnEnter: func(c *walk.Cursor) walk.Action {
			stack = append(stack, &pending{node: c.Node(), values: make(map[ast.Field][]any)})
			return walk.Continue
		},
		OnLeave: func(c *walk.Cursor) walk.Action {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			obj := nodeToJSON(p, idx)
			if len(stack) == 0 {
				out = obj
			} else {
				stack[len(stack)-1].add(c.Field(), obj)
			}
			return walk.Continue
		},
	})
	return out
}

func nodeToJSON(p *pending, idx *ast.LineIndex) object {
	n := p.node
	sp := n.Span()
	obj := object{
		{"type", n.Kind().String()},
		{"start", sp.Start},
		{"end", sp.End},
	}
	if idx != nil {
		start, end := idx.Position(sp.Start), idx.Position(sp.End)
		obj = append(obj, member{"loc", jsonLoc{
			Start: jsonPosition{Line: start.Line, Column: start.Column},
			End:   jsonPosition{Line: end.Line, Column: end.Column},
		}})
	}

	// Attributes give way to child fields of the same name, as for
	// JSXAttribute.name.
	_, nameField := p.values[ast.FieldName]
	_, valueField := p.values[ast.FieldValue]
	if name := n.Name(); name != "" {
		key := "name"
		if nameField {
			key = "rawName"
		}
		obj = append(obj, member{key, name})
	}
	if v := n.Value(); v != "" {
		key := "value"
		if valueField {
			key = "rawValue"
		}
		obj = append(obj, member{key, v})
	}
	if fl := n.Flags(); fl != 0 {
		obj = append(obj, member{"flags", fl.Names()})
	}

	for _, f := range p.order {
		vs := p.values[f]
		if isList(n.Kind(), f) || len(vs) > 1 {
			obj = append(obj, member{f.String(), vs})
			continue
		}
		obj = append(obj, member{f.String(), vs[0]})
	}
	return obj
}

func commentsToJSON(cs []ast.Comment, idx *ast.LineIndex) []object {
	out := make([]object, len(cs))
	for i, c := range cs {
		obj := object{
			{"type", c.Kind.String()},
			{"value", c.Text},
			{"start", c.Span.Start},
			{"end", c.Span.End},
		}
		if idx != nil {
			start, end := idx.Position(c.Span.Start), idx.Position(c.Span.End)
			obj = append(obj, member{"loc", jsonLoc{
				Start: jsonPosition{Line: start.Line, Column: start.Column},
				End:   jsonPosition{Line: end.Line, Column: end.Column},
			}})
		}
		out[i] = obj
	}
	return out
}

func diagnosticsToJSON(ds []ast.Diagnostic) []object {
	out := make([]object, len(ds))
	for i, d := range ds {
		obj := object{
			{"message", d.Message},
			{"severity", d.Severity.String()},
		}
		if d.Code != "" {
			obj = append(obj, member{"code", d.Code})
		}
		if d.Span != nil {
			obj = append(obj, member{"start", d.Span.Start}, member{"end", d.Span.End})
		}
		out[i] = obj
	}
	return out
}
