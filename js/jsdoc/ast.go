// Package jsdoc parses JSDoc comments into a description and block tags.
package jsdoc

// Node is implemented by all JSDoc nodes.
type Node interface {
	node()
}

// DocComment is a parsed /** ... */ comment.
type DocComment struct {
	Body []Node // description before the first block tag
	Tags []Node // block tags in source order
}

func (DocComment) node() {}

// Text is plain description text.
type Text struct {
	Content string
}

func (Text) node() {}

// Code is an inline code span, written `code` or {@code code}.
type Code struct {
	Content string
}

func (Code) node() {}

// Link is a {@link}, {@linkcode} or {@linkplain} inline tag. The target
// may be followed by a label, either after whitespace or after a pipe.
type Link struct {
	Target string
	Label  string
	Style  string // "link", "linkcode" or "linkplain"
}

func (Link) node() {}

// InheritDoc is the {@inheritDoc} inline tag.
type InheritDoc struct{}

func (InheritDoc) node() {}

// UnknownInlineTag is an inline tag this package does not interpret.
type UnknownInlineTag struct {
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// Param is a @param or @property tag:
//
//	@param {string} [name="x"] - description
type Param struct {
	Tag         string // "param" or "property"
	Name        string
	Type        string
	Optional    bool
	Default     string
	Description []Node
}

func (Param) node() {}

// Returns is a @returns or @return tag.
type Returns struct {
	Type        string
	Description []Node
}

func (Returns) node() {}

// Throws is a @throws or @exception tag.
type Throws struct {
	Type        string
	Description []Node
}

func (Throws) node() {}

// TypeTag is a @type tag.
type TypeTag struct {
	Type string
}

func (TypeTag) node() {}

// Typedef is a @typedef or @callback tag.
type Typedef struct {
	Tag         string // "typedef" or "callback"
	Type        string
	Name        string
	Description []Node
}

func (Typedef) node() {}

// Template is a @template tag declaring type parameters.
type Template struct {
	Constraint  string
	Names       []string
	Description []Node
}

func (Template) node() {}

// Example is an @example tag. Code keeps its line breaks.
type Example struct {
	Caption string
	Code    string
}

func (Example) node() {}

// See is a @see tag.
type See struct {
	Reference []Node
}

func (See) node() {}

// Since is a @since tag.
type Since struct {
	Version string
}

func (Since) node() {}

// Deprecated is a @deprecated tag.
type Deprecated struct {
	Description []Node
}

func (Deprecated) node() {}

// Modifier is a tag without content, such as @async, @private or
// @readonly.
type Modifier struct {
	Name string
}

func (Modifier) node() {}

// UnknownBlockTag is a block tag this package does not interpret.
type UnknownBlockTag struct {
	Name    string
	Content []Node
}

func (UnknownBlockTag) node() {}

// Erroneous is malformed content.
type Erroneous struct {
	Content string
	Message string
}

func (Erroneous) node() {}
