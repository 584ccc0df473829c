package parser

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf8"
)

// cook resolves the escape sequences of a string or template literal body.
// octal reports whether a legacy octal escape such as \1 or \07 was seen.
// Invalid escapes are kept verbatim.
func cook(raw string, template bool) (cooked string, octal bool) {
	if template {
		raw = strings.ReplaceAll(raw, "\r\n", "\n")
	}
	if strings.IndexByte(raw, '\\') < 0 {
		return raw, false
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch e := raw[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if i+2 < len(raw) {
				if v, err := strconv.ParseUint(raw[i+1:i+3], 16, 8); err == nil {
					sb.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			sb.WriteString(`\x`)
		case 'u':
			r, n := unicodeEscape(raw[i+1:])
			if n == 0 {
				sb.WriteString(`\u`)
				continue
			}
			sb.WriteRune(r)
			i += n
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(raw) && j < i+3 && raw[j] >= '0' && raw[j] <= '7' {
				j++
			}
			if e == '0' && j == i+1 && (j >= len(raw) || raw[j] < '0' || raw[j] > '9') {
				sb.WriteByte(0)
				continue
			}
			v, _ := strconv.ParseUint(raw[i:j], 8, 16)
			if v > 0xff {
				j--
				v >>= 3
			}
			sb.WriteRune(rune(v))
			octal = true
			i = j - 1
		default:
			r, size := utf8.DecodeRuneInString(raw[i:])
			if r == '\u2028' || r == '\u2029' {
				i += size - 1
				continue
			}
			sb.WriteRune(r)
			i += size - 1
		}
	}
	return sb.String(), octal
}

// unicodeEscape decodes the part after \u: either four hex digits or a
// braced code point. It returns the rune and the number of bytes used.
func unicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0
	}
	r := rune(v)
	// A high surrogate followed by \u and a low surrogate forms one code
	// point.
	if r >= 0xd800 && r < 0xdc00 && len(s) >= 10 && s[4] == '\\' && s[5] == 'u' {
		if lo, err := strconv.ParseUint(s[6:10], 16, 16); err == nil && lo >= 0xdc00 && lo < 0xe000 {
			return (r-0xd800)<<10 + (rune(lo) - 0xdc00) + 0x10000, 10
		}
	}
	return r, 4
}

// cookJSX resolves the HTML character references of JSX text and
// attribute strings. JSX does not process backslash escapes.
func cookJSX(raw string) string {
	if strings.IndexByte(raw, '&') < 0 {
		return raw
	}
	return html.UnescapeString(raw)
}
