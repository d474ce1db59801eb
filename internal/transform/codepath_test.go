package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

func TestSetCodePathsAssignsNestedPaths(t *testing.T) {
	inner := &tree.DeclFunction{NameV: "render"}
	ns := &tree.Namespace{NameV: "ui", Members: []tree.Tree{inner}}
	pf := &tree.ParsedFile{Members: []tree.Tree{ns}}

	p := &Pipeline{cfg: Config{LibName: ident.LibraryName{Name: "widget"}}}
	out := p.setCodePaths(pf)

	gotNs := out.Members[0].(*tree.Namespace)
	if !gotNs.CodePath.IsSet() {
		t.Fatalf("expected the namespace to get a CodePath")
	}
	if gotNs.CodePath.String() != "widget/ui" {
		t.Fatalf("namespace CodePath = %q, want %q", gotNs.CodePath.String(), "widget/ui")
	}

	gotFn := gotNs.Members[0].(*tree.DeclFunction)
	if gotFn.CodePath.String() != "widget/ui.render" {
		t.Fatalf("function CodePath = %q, want %q", gotFn.CodePath.String(), "widget/ui.render")
	}
}
