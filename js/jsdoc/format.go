package jsdoc

import (
	"strings"
)

// Format renders a DocComment as Markdown, suitable for hover text.
func Format(doc *DocComment) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(normalizeWhitespace(formatNodes(doc.Body)))

	var params, rest []string
	for _, tag := range doc.Tags {
		switch n := tag.(type) {
		case Param:
			params = append(params, formatParam(n))
		case Example:
			rest = append(rest, formatExample(n))
		default:
			if s := formatBlockTag(tag); s != "" {
				rest = append(rest, s)
			}
		}
	}

	if len(params) > 0 {
		sb.WriteString("\n\n**Parameters**\n\n")
		sb.WriteString(strings.Join(params, "\n"))
	}
	for _, s := range rest {
		sb.WriteString("\n\n")
		sb.WriteString(s)
	}
	return strings.TrimSpace(sb.String())
}

// FormatPlainText renders only the description, without markup.
func FormatPlainText(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(normalizeWhitespace(plainText(doc.Body)))
}

// Summary returns the first sentence of the description.
func Summary(doc *DocComment) string {
	text := strings.Join(strings.Fields(FormatPlainText(doc)), " ")
	for i := 0; i < len(text); i++ {
		if text[i] == '.' && (i+1 == len(text) || text[i+1] == ' ') {
			return text[:i+1]
		}
	}
	return text
}

// Find returns the first block tag of type T.
func Find[T Node](doc *DocComment) (T, bool) {
	var zero T
	if doc == nil {
		return zero, false
	}
	for _, tag := range doc.Tags {
		if t, ok := tag.(T); ok {
			return t, true
		}
	}
	return zero, false
}

func formatNodes(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(formatNode(node))
	}
	return sb.String()
}

func formatNode(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		if strings.Contains(n.Content, "\n") {
			return "\n```\n" + strings.Trim(n.Content, "\n") + "\n```\n"
		}
		return "`" + n.Content + "`"
	case Link:
		label := n.Label
		if label == "" {
			label = n.Target
		}
		if n.Style == "linkcode" || (n.Style == "link" && n.Label == "") {
			label = "`" + label + "`"
		}
		if isURL(n.Target) {
			return "[" + label + "](" + n.Target + ")"
		}
		return label
	case InheritDoc:
		return "(inherited)"
	case UnknownInlineTag:
		return "{@" + n.Name + " " + n.Content + "}"
	case Erroneous:
		return n.Content
	default:
		return ""
	}
}

func plainText(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			sb.WriteString(n.Content)
		case Code:
			sb.WriteString(n.Content)
		case Link:
			if n.Label != "" {
				sb.WriteString(n.Label)
			} else {
				sb.WriteString(n.Target)
			}
		case UnknownInlineTag:
			sb.WriteString(n.Content)
		case Erroneous:
			sb.WriteString(n.Content)
		}
	}
	return sb.String()
}

func formatParam(n Param) string {
	var sb strings.Builder
	sb.WriteString("- `")
	sb.WriteString(n.Name)
	sb.WriteString("`")
	if n.Type != "" {
		sb.WriteString(" `" + n.Type + "`")
	}
	if n.Optional {
		if n.Default != "" {
			sb.WriteString(" (optional, default `" + n.Default + "`)")
		} else {
			sb.WriteString(" (optional)")
		}
	}
	if desc := oneLine(formatNodes(n.Description)); desc != "" {
		sb.WriteString(": " + desc)
	}
	return sb.String()
}

func formatExample(n Example) string {
	var sb strings.Builder
	sb.WriteString("**Example**")
	if n.Caption != "" {
		sb.WriteString(" " + n.Caption)
	}
	sb.WriteString("\n\n```js\n")
	sb.WriteString(n.Code)
	sb.WriteString("\n```")
	return sb.String()
}

func formatBlockTag(node Node) string {
	switch n := node.(type) {
	case Returns:
		return withType("**Returns**", n.Type, formatNodes(n.Description))
	case Throws:
		return withType("**Throws**", n.Type, formatNodes(n.Description))
	case TypeTag:
		return "**Type** `" + n.Type + "`"
	case Typedef:
		return withType("**@"+n.Tag+"** `"+n.Name+"`", n.Type, formatNodes(n.Description))
	case Template:
		s := "**Template** `" + strings.Join(n.Names, ", ") + "`"
		if n.Constraint != "" {
			s += " extends `" + n.Constraint + "`"
		}
		if desc := oneLine(formatNodes(n.Description)); desc != "" {
			s += ": " + desc
		}
		return s
	case See:
		return "**See** " + oneLine(formatNodes(n.Reference))
	case Since:
		return "**Since** " + n.Version
	case Deprecated:
		desc := oneLine(formatNodes(n.Description))
		if desc == "" {
			return "**Deprecated**"
		}
		return "**Deprecated**: " + desc
	case Modifier:
		return "`@" + n.Name + "`"
	case UnknownBlockTag:
		return strings.TrimSpace("*@" + n.Name + "* " + oneLine(formatNodes(n.Content)))
	default:
		return ""
	}
}

func withType(label, typ, desc string) string {
	s := label
	if typ != "" {
		s += " `" + typ + "`"
	}
	if desc = oneLine(desc); desc != "" {
		s += ": " + desc
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// normalizeWhitespace collapses runs of blank lines into one.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	prevEmpty := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !prevEmpty {
				out = append(out, "")
				prevEmpty = true
			}
			continue
		}
		out = append(out, strings.TrimRight(line, " \t"))
		prevEmpty = false
	}
	return strings.Join(out, "\n")
}
