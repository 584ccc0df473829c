package jsdoc

import (
	"strings"
	"unicode"

	"github.com/dhamidi/jsast/js/ast"
)

var modifierTags = map[string]bool{
	"abstract":  true,
	"async":     true,
	"generator": true,
	"ignore":    true,
	"internal":  true,
	"override":  true,
	"package":   true,
	"private":   true,
	"protected": true,
	"public":    true,
	"readonly":  true,
	"static":    true,
}

// Parser is a recursive-descent parser for JSDoc comments.
type Parser struct {
	input []rune
	pos   int
	len   int
}

// Parse parses the text of a /** ... */ comment, with or without its
// delimiters.
func Parse(doc string) *DocComment {
	p := &Parser{input: []rune(doc)}
	p.len = len(p.input)
	return p.parseDocComment()
}

// ParseComment parses a block comment collected by the parser.
func ParseComment(c ast.Comment) *DocComment {
	if !c.IsBlock() {
		return Parse(c.Text)
	}
	return Parse("/*" + c.Text + "*/")
}

func (p *Parser) parseDocComment() *DocComment {
	p.skipCommentStart()

	doc := &DocComment{}
	doc.Body = trimNodes(p.parseContent(false))
	doc.Tags = p.parseBlockTags()
	return doc
}

func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	} else if p.match("*") && !p.match("*/") {
		p.advance(1)
	}
	p.skipLinePrefix()
}

// skipLinePrefix skips indentation and one leading asterisk.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
}

// parseContent reads description text up to the next block tag or the end
// of the comment. Inside an inline tag it stops at the unmatched '}'.
func (p *Parser) parseContent(inInlineTag bool) []Node {
	var nodes []Node
	var text strings.Builder
	depth := 0

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Text{Content: text.String()})
			text.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()
		if p.atEnd() {
			break
		}
		if !inInlineTag && p.isAtBlockTag() {
			break
		}

		switch ch {
		case '\r', '\n':
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				p.advance(1)
			}
			text.WriteRune('\n')
			p.skipLinePrefix()

		case '{':
			if p.peekAt(1) == '@' {
				flush()
				nodes = append(nodes, p.parseInlineTag())
				continue
			}
			if inInlineTag {
				depth++
			}
			text.WriteRune(ch)
			p.advance(1)

		case '}':
			if inInlineTag {
				if depth == 0 {
					flush()
					return nodes
				}
				depth--
			}
			text.WriteRune(ch)
			p.advance(1)

		case '`':
			if code, ok := p.readBackticks(); ok {
				flush()
				nodes = append(nodes, Code{Content: code})
				continue
			}
			text.WriteRune(ch)
			p.advance(1)

		default:
			text.WriteRune(ch)
			p.advance(1)
		}
	}

	flush()
	return nodes
}

// isAtBlockTag reports whether the parser sits on an '@' that is the first
// thing on its line after the line prefix.
func (p *Parser) isAtBlockTag() bool {
	if p.peek() != '@' {
		return false
	}
	i := p.pos - 1
	for i >= 0 && (p.input[i] == ' ' || p.input[i] == '\t') {
		i--
	}
	if i >= 0 && p.input[i] == '*' {
		i--
		for i >= 0 && (p.input[i] == ' ' || p.input[i] == '\t') {
			i--
		}
		if i >= 1 && p.input[i] == '*' && p.input[i-1] == '/' {
			return true
		}
	}
	return i < 0 || p.input[i] == '\n' || p.input[i] == '\r'
}

func (p *Parser) parseInlineTag() Node {
	p.advance(2)

	name := p.readTagName()
	if name == "" {
		return Erroneous{Content: "{@", Message: "missing tag name"}
	}
	p.skipHorizontalWhitespace()

	var node Node
	switch name {
	case "link", "linkcode", "linkplain":
		node = p.parseLinkTag(name)
	case "code":
		node = Code{Content: p.readBalancedContent()}
	case "inheritDoc", "inheritdoc":
		p.readBalancedContent()
		node = InheritDoc{}
	default:
		node = UnknownInlineTag{Name: name, Content: p.readBalancedContent()}
	}

	if p.peek() == '}' {
		p.advance(1)
	}
	return node
}

// parseLinkTag reads "target label" or "target|label".
func (p *Parser) parseLinkTag(style string) Node {
	content := p.readBalancedContent()
	content = strings.Join(strings.Fields(content), " ")
	link := Link{Style: style}
	if target, label, ok := strings.Cut(content, "|"); ok {
		link.Target = strings.TrimSpace(target)
		link.Label = strings.TrimSpace(label)
		return link
	}
	link.Target, link.Label, _ = strings.Cut(content, " ")
	return link
}

func (p *Parser) parseBlockTags() []Node {
	var tags []Node
	for p.pos < p.len && !p.atEnd() {
		if !p.isAtBlockTag() {
			// Stray text after a tag's content ended; skip the line.
			p.advance(1)
			continue
		}
		p.advance(1)
		name := p.readTagName()
		p.skipHorizontalWhitespace()

		switch name {
		case "param", "arg", "argument":
			tags = append(tags, p.parseParamTag("param"))
		case "property", "prop":
			tags = append(tags, p.parseParamTag("property"))
		case "returns", "return":
			typ := p.readType()
			tags = append(tags, Returns{Type: typ, Description: p.parseBlockContent()})
		case "throws", "exception":
			typ := p.readType()
			tags = append(tags, Throws{Type: typ, Description: p.parseBlockContent()})
		case "type":
			typ := p.readType()
			p.parseBlockContent()
			tags = append(tags, TypeTag{Type: typ})
		case "typedef", "callback":
			tags = append(tags, p.parseTypedefTag(name))
		case "template":
			tags = append(tags, p.parseTemplateTag())
		case "example":
			tags = append(tags, p.parseExampleTag())
		case "see":
			tags = append(tags, See{Reference: p.parseBlockContent()})
		case "since":
			tags = append(tags, Since{Version: plainText(p.parseBlockContent())})
		case "deprecated":
			tags = append(tags, Deprecated{Description: p.parseBlockContent()})
		default:
			if modifierTags[name] {
				p.parseBlockContent()
				tags = append(tags, Modifier{Name: name})
				continue
			}
			tags = append(tags, UnknownBlockTag{Name: name, Content: p.parseBlockContent()})
		}
	}
	return tags
}

// parseParamTag reads
//
//	{Type} name - description
//	{Type} [name=default] description
func (p *Parser) parseParamTag(tag string) Node {
	param := Param{Tag: tag}
	param.Type = p.readType()
	p.skipHorizontalWhitespace()

	if p.peek() == '[' {
		p.advance(1)
		inner := p.readUntilBracket()
		param.Optional = true
		name, def, ok := strings.Cut(inner, "=")
		param.Name = strings.TrimSpace(name)
		if ok {
			param.Default = strings.TrimSpace(def)
		}
	} else {
		param.Name = p.readName()
	}
	if strings.HasSuffix(param.Type, "=") {
		param.Type = strings.TrimSuffix(param.Type, "=")
		param.Optional = true
	}

	p.skipDescriptionDash()
	param.Description = p.parseBlockContent()
	return param
}

func (p *Parser) parseTypedefTag(tag string) Node {
	def := Typedef{Tag: tag}
	def.Type = p.readType()
	p.skipHorizontalWhitespace()
	def.Name = p.readName()
	p.skipDescriptionDash()
	def.Description = p.parseBlockContent()
	return def
}

// parseTemplateTag reads "{Constraint} T, U description".
func (p *Parser) parseTemplateTag() Node {
	tmpl := Template{Constraint: p.readType()}
	for {
		p.skipHorizontalWhitespace()
		name := p.readIdentifier()
		if name == "" {
			break
		}
		tmpl.Names = append(tmpl.Names, name)
		p.skipHorizontalWhitespace()
		if p.peek() != ',' {
			break
		}
		p.advance(1)
	}
	p.skipDescriptionDash()
	tmpl.Description = p.parseBlockContent()
	return tmpl
}

// parseExampleTag keeps the example verbatim apart from line prefixes.
func (p *Parser) parseExampleTag() Node {
	var sb strings.Builder
	for p.pos < p.len && !p.atEnd() && !p.isAtBlockTag() {
		ch := p.peek()
		p.advance(1)
		if ch == '\r' {
			continue
		}
		sb.WriteRune(ch)
		if ch == '\n' {
			p.skipLinePrefix()
		}
	}

	code := strings.TrimRight(sb.String(), " \t\n")
	code = strings.TrimLeft(code, "\n")
	ex := Example{}
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, "<caption>") {
		if end := strings.Index(trimmed, "</caption>"); end >= 0 {
			ex.Caption = strings.TrimSpace(trimmed[len("<caption>"):end])
			code = strings.TrimLeft(trimmed[end+len("</caption>"):], " \t")
			code = strings.TrimPrefix(code, "\n")
		}
	}
	ex.Code = dedent(code)
	return ex
}

// dedent removes the indentation shared by all non-blank lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return s
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func (p *Parser) parseBlockContent() []Node {
	return trimNodes(p.parseContent(false))
}

func (p *Parser) skipDescriptionDash() {
	p.skipHorizontalWhitespace()
	if p.peek() == '-' && isWhitespace(p.peekAt(1)) {
		p.advance(1)
		p.skipHorizontalWhitespace()
	}
}

// readType reads a {Type} expression, returning "" when none is present.
func (p *Parser) readType() string {
	if p.peek() != '{' {
		return ""
	}
	p.advance(1)
	typ := p.readBalancedContent()
	if p.peek() == '}' {
		p.advance(1)
	}
	return strings.Join(strings.Fields(typ), " ")
}

func (p *Parser) readBackticks() (string, bool) {
	for i := p.pos + 1; i < p.len; i++ {
		switch p.input[i] {
		case '`':
			code := string(p.input[p.pos+1 : i])
			p.pos = i + 1
			return code, true
		case '\n', '\r':
			return "", false
		}
	}
	return "", false
}

func (p *Parser) readUntilBracket() string {
	start := p.pos
	depth := 0
	for p.pos < p.len && !p.atEnd() {
		switch p.peek() {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				s := string(p.input[start:p.pos])
				p.advance(1)
				return s
			}
			depth--
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readBalancedContent reads up to the '}' matching an already consumed '{'.
func (p *Parser) readBalancedContent() string {
	var sb strings.Builder
	depth := 0
	for p.pos < p.len && !p.atEnd() {
		ch := p.peek()
		if ch == '}' {
			if depth == 0 {
				break
			}
			depth--
		} else if ch == '{' {
			depth++
		}
		p.advance(1)
		sb.WriteRune(ch)
		if ch == '\n' {
			p.skipLinePrefix()
		}
	}
	return strings.TrimSpace(sb.String())
}

// readName reads a parameter path such as opts.name or items[].id.
func (p *Parser) readName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if isIdentifierPart(ch) || ch == '.' || ch == '[' || ch == ']' {
			p.advance(1)
			continue
		}
		break
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readIdentifier() string {
	start := p.pos
	if p.pos < p.len && isIdentifierStart(p.peek()) {
		p.advance(1)
		for p.pos < p.len && isIdentifierPart(p.peek()) {
			p.advance(1)
		}
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len && isIdentifierPart(p.peek()) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) atEnd() bool {
	return p.peek() == '*' && p.peekAt(1) == '/'
}

func (p *Parser) peek() rune {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) rune {
	if p.pos+offset >= p.len {
		return 0
	}
	return p.input[p.pos+offset]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	if p.pos+len(s) > p.len {
		return false
	}
	for i, ch := range []rune(s) {
		if p.input[p.pos+i] != ch {
			return false
		}
	}
	return true
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && isWhitespace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

// trimNodes strips surrounding whitespace from a description.
func trimNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	if t, ok := nodes[0].(Text); ok {
		t.Content = strings.TrimLeft(t.Content, " \t\n")
		nodes[0] = t
	}
	last := len(nodes) - 1
	if t, ok := nodes[last].(Text); ok {
		t.Content = strings.TrimRight(t.Content, " \t\n")
		nodes[last] = t
	}
	out := nodes[:0]
	for _, n := range nodes {
		if t, ok := n.(Text); ok && t.Content == "" {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentifierStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isIdentifierPart(ch rune) bool {
	return isIdentifierStart(ch) || unicode.IsDigit(ch)
}
