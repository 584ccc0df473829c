package ast

import "strings"

// Flags holds boolean attributes of a node. Which flags are meaningful
// depends on the node's kind.
type Flags uint32

const (
	FlagAsync Flags = 1 << iota
	FlagGenerator
	FlagComputed
	FlagOptional
	FlagStatic
	FlagShorthand
	FlagMethod
	FlagPrefix
	FlagDelegate
	FlagAwait
	FlagSelfClosing
	FlagConst
	FlagAbstract
	FlagDeclare
	FlagReadonly
	FlagOverride
	FlagTypeOnly
	FlagExpression
	FlagDirective
	FlagAccessor
	FlagDefinite
	FlagGlobal
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagAsync, "async"},
	{FlagGenerator, "generator"},
	{FlagComputed, "computed"},
	{FlagOptional, "optional"},
	{FlagStatic, "static"},
	{FlagShorthand, "shorthand"},
	{FlagMethod, "method"},
	{FlagPrefix, "prefix"},
	{FlagDelegate, "delegate"},
	{FlagAwait, "await"},
	{FlagSelfClosing, "selfClosing"},
	{FlagConst, "const"},
	{FlagAbstract, "abstract"},
	{FlagDeclare, "declare"},
	{FlagReadonly, "readonly"},
	{FlagOverride, "override"},
	{FlagTypeOnly, "typeOnly"},
	{FlagExpression, "expression"},
	{FlagDirective, "directive"},
	{FlagAccessor, "accessor"},
	{FlagDefinite, "definite"},
	{FlagGlobal, "global"},
}

// Has reports whether every bit of g is set in f.
func (f Flags) Has(g Flags) bool {
	return f&g == g
}

// Names returns the names of the set flags in declaration order.
func (f Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

func (f Flags) String() string {
	return strings.Join(f.Names(), "|")
}
