package ast

import "strings"

type CommentKind uint8

const (
	LineComment CommentKind = iota
	BlockComment
)

func (k CommentKind) String() string {
	if k == BlockComment {
		return "Block"
	}
	return "Line"
}

// Comment is a source comment. Comments are not part of the tree; they are
// kept in source order beside it. Text excludes the delimiters.
type Comment struct {
	Span Span
	Text string
	Kind CommentKind
}

func (c Comment) IsBlock() bool {
	return c.Kind == BlockComment
}

// IsDoc reports whether c is a /** ... */ documentation comment.
func (c Comment) IsDoc() bool {
	return c.Kind == BlockComment && strings.HasPrefix(c.Text, "*") && !strings.HasPrefix(c.Text, "**")
}

// NewComment builds a Comment from the raw text of a comment token
// including its delimiters.
func NewComment(raw string, span Span) Comment {
	if strings.HasPrefix(raw, "/*") {
		text := strings.TrimPrefix(raw, "/*")
		text = strings.TrimSuffix(text, "*/")
		return Comment{Span: span, Text: text, Kind: BlockComment}
	}
	text := strings.TrimPrefix(raw, "//")
	if strings.HasSuffix(text, "\r") {
		text = text[:len(text)-1]
		span.End--
	}
	return Comment{Span: span, Text: text, Kind: LineComment}
}
