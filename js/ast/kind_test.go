package ast

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindProgram, "Program"},
		{KindVariableDeclaration, "VariableDeclaration"},
		{KindFunctionDeclaration, "FunctionDeclaration"},
		{KindTSInterfaceDeclaration, "TSInterfaceDeclaration"},
		{KindJSXElement, "JSXElement"},
		{KindError, "Error"},
		{Kind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestEveryKindHasName(t *testing.T) {
	for _, k := range Kinds() {
		name := k.String()
		if name == "Unknown" && k != KindUnknown {
			t.Errorf("Kind(%d) has no name", k)
		}
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", name, got, ok, k)
		}
	}
}

func TestParseKindRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "Invalid", "functionDeclaration", "Nope"} {
		if k, ok := ParseKind(name); ok {
			t.Errorf("ParseKind(%q) = %v, want failure", name, k)
		}
	}
}

func TestKindCategories(t *testing.T) {
	tests := []struct {
		kind                        Kind
		stmt, expr, jsx, typescript bool
	}{
		{KindIfStatement, true, false, false, false},
		{KindSwitchCase, false, false, false, false},
		{KindVariableDeclaration, true, false, false, false},
		{KindCallExpression, false, true, false, false},
		{KindProperty, false, false, false, false},
		{KindJSXElement, false, true, true, false},
		{KindJSXAttribute, false, false, true, false},
		{KindTSInterfaceDeclaration, true, false, false, true},
		{KindTSAsExpression, false, true, false, true},
		{KindTSStringKeyword, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsStatement(); got != tt.stmt {
				t.Errorf("IsStatement() = %v, want %v", got, tt.stmt)
			}
			if got := tt.kind.IsExpression(); got != tt.expr {
				t.Errorf("IsExpression() = %v, want %v", got, tt.expr)
			}
			if got := tt.kind.IsJSX(); got != tt.jsx {
				t.Errorf("IsJSX() = %v, want %v", got, tt.jsx)
			}
			if got := tt.kind.IsTypeScript(); got != tt.typescript {
				t.Errorf("IsTypeScript() = %v, want %v", got, tt.typescript)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	if got := FieldSuperClass.String(); got != "superClass" {
		t.Errorf("FieldSuperClass.String() = %q", got)
	}
	f, ok := ParseField("typeAnnotation")
	if !ok || f != FieldTypeAnnotation {
		t.Errorf("ParseField(typeAnnotation) = %v, %v", f, ok)
	}
	if _, ok := ParseField(""); ok {
		t.Error("ParseField(\"\") succeeded")
	}
}
