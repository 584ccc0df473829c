package comments

import (
	"testing"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/walk"
)

func parse(t *testing.T, src string) (ast.Node, []ast.Comment) {
	t.Helper()
	res, err := parser.Parse(src, parser.Config{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	prog, ok := res.Program()
	if !ok {
		t.Fatal("no program")
	}
	return prog, res.Comments()
}

func TestAttach(t *testing.T) {
	src := "const a = 1; // trailing a\n" +
		"// leading b\n" +
		"const b = 2;\n" +
		"function f() {\n" +
		"  // dangling\n" +
		"}\n"
	prog, comments := parse(t, src)
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}

	m := Attach(prog, comments, src)
	tests := []struct {
		text      string
		kind      ast.Kind
		placement Placement
		nodeText  string
	}{
		{" trailing a", ast.KindVariableDeclaration, Trailing, "const a = 1;"},
		{" leading b", ast.KindVariableDeclaration, Leading, "const b = 2;"},
		{" dangling", ast.KindBlockStatement, Dangling, "{\n  // dangling\n}"},
	}

	all := m.All()
	if len(all) != len(tests) {
		t.Fatalf("All() returned %d attachments, want %d", len(all), len(tests))
	}
	for i, tt := range tests {
		a := all[i]
		if a.Comment.Text != tt.text {
			t.Errorf("attachment %d: comment = %q, want %q", i, a.Comment.Text, tt.text)
		}
		if a.Node.Kind() != tt.kind {
			t.Errorf("attachment %d: node kind = %s, want %s", i, a.Node.Kind(), tt.kind)
		}
		if a.Placement != tt.placement {
			t.Errorf("attachment %d: placement = %s, want %s", i, a.Placement, tt.placement)
		}
		if got := a.Node.Text(src); got != tt.nodeText {
			t.Errorf("attachment %d: node text = %q, want %q", i, got, tt.nodeText)
		}
	}

	decls := walk.FindAll(prog, walk.OfKind(ast.KindVariableDeclaration))
	if got := m.Trailing(decls[0]); len(got) != 1 {
		t.Errorf("Trailing(a) = %v, want one comment", got)
	}
	if got := m.Leading(decls[1]); len(got) != 1 {
		t.Errorf("Leading(b) = %v, want one comment", got)
	}
	if got := m.Leading(decls[0]); len(got) != 0 {
		t.Errorf("Leading(a) = %v, want none", got)
	}
}

func TestAttachEmpty(t *testing.T) {
	m := Attach(ast.Node{}, nil, "")
	if len(m.All()) != 0 {
		t.Errorf("All() = %v, want empty", m.All())
	}
}

func TestPlacementString(t *testing.T) {
	if got := Dangling.String(); got != "dangling" {
		t.Errorf("String() = %q, want %q", got, "dangling")
	}
	if got := Placement(9).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}

func TestDocComment(t *testing.T) {
	src := "/** Doc */\nfunction g() {}\n" +
		"/** gap */\nx;\nfunction h() {}\n" +
		"// line\nfunction k() {}\n"
	prog, comments := parse(t, src)
	fns := walk.FindAll(prog, walk.OfKind(ast.KindFunctionDeclaration))
	if len(fns) != 3 {
		t.Fatalf("expected 3 functions, got %d", len(fns))
	}

	tests := []struct {
		name string
		fn   ast.Node
		want string
		ok   bool
	}{
		{"g", fns[0], "* Doc ", true},
		{"h", fns[1], "", false},
		{"k", fns[2], "", false},
	}
	for _, tt := range tests {
		c, ok := DocComment(tt.fn, comments, src)
		if ok != tt.ok || c.Text != tt.want {
			t.Errorf("DocComment(%s) = %q, %t; want %q, %t", tt.name, c.Text, ok, tt.want, tt.ok)
		}
	}
}
