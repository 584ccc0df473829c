package parser

import "testing"

func TestCook(t *testing.T) {
	tests := []struct {
		raw      string
		template bool
		want     string
		octal    bool
	}{
		{`plain`, false, "plain", false},
		{`a\nb\tc`, false, "a\nb\tc", false},
		{`\x41B\u{43}`, false, "ABC", false},
		{`😀`, false, "😀", false},
		{`\u{1F600}`, false, "😀", false},
		{`\0`, false, "\x00", false},
		{`\101`, false, "A", true},
		{`\08`, false, "\x008", true},
		{`\777`, false, "?7", true},
		{`\q\'\"\\`, false, `q'"\`, false},
		{"line\\\ncontinued", false, "linecontinued", false},
		{"line\\\r\ncontinued", false, "linecontinued", false},
		{"a\r\nb", true, "a\nb", false},
		{`\xZZ`, false, `\xZZ`, false},
		{`\u12`, false, `\u12`, false},
	}
	for _, tt := range tests {
		got, octal := cook(tt.raw, tt.template)
		if got != tt.want || octal != tt.octal {
			t.Errorf("cook(%q, %t) = %q, %t, want %q, %t", tt.raw, tt.template, got, octal, tt.want, tt.octal)
		}
	}
}

func TestCookJSX(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"a &amp; b", "a & b"},
		{"&lt;tag&gt;", "<tag>"},
		{"&#65;&#x42;", "AB"},
		{`back\slash`, `back\slash`},
	}
	for _, tt := range tests {
		if got := cookJSX(tt.raw); got != tt.want {
			t.Errorf("cookJSX(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
