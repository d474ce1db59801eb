package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

func stubLibName() ident.LibraryName { return ident.LibraryName{Name: "widget"} }

// TestReplaceExportsLeavesNoExportNodes implements spec.md testable
// property 8: after replaceExports runs, no *tree.Export node survives
// anywhere in the tree -- every export clause expands into the plain
// declaration(s) it introduces.
func TestReplaceExportsLeavesNoExportNodes(t *testing.T) {
	fn := &tree.DeclFunction{NameV: "render"}
	pf := &tree.ParsedFile{
		Members: []tree.Tree{
			&tree.Export{Kind: tree.ExportNamed, Exported: tree.Exportee{Kind: tree.ExporteeTree, Tree: fn}},
			&tree.Namespace{NameV: "inner", Members: []tree.Tree{
				&tree.Export{Kind: tree.ExportDefaulted, Exported: tree.Exportee{Kind: tree.ExporteeTree, Tree: &tree.DeclVar{NameV: "x"}}},
			}},
		},
	}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.replaceExports(pf, s)

	var walk func(tree.Tree)
	walk = func(n tree.Tree) {
		if _, ok := n.(*tree.Export); ok {
			t.Fatalf("found a surviving *tree.Export node: %+v", n)
		}
		for _, c := range tree.Children(n) {
			walk(c)
		}
	}
	for _, m := range out.Members {
		walk(m)
	}
}

func TestReplaceExportsNamedTreeBecomesPlainDecl(t *testing.T) {
	fn := &tree.DeclFunction{NameV: "render"}
	pf := &tree.ParsedFile{Members: []tree.Tree{
		&tree.Export{Kind: tree.ExportNamed, Exported: tree.Exportee{Kind: tree.ExporteeTree, Tree: fn}},
	}}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.replaceExports(pf, s)

	if len(out.Members) != 1 {
		t.Fatalf("expected one surviving member, got %d: %+v", len(out.Members), out.Members)
	}
	got, ok := out.Members[0].(*tree.DeclFunction)
	if !ok || got.NameV != "render" {
		t.Fatalf("expected the exported function to survive as a plain DeclFunction, got %T %+v", out.Members[0], out.Members[0])
	}
}
