package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

func TestDefaultedTypeArgumentsFillsFromDefault(t *testing.T) {
	cls := &tree.DeclClass{NameV: "Box", TypeParams: []tree.TypeParam{
		{Name: "A"},
		{Name: "B", Default: &tree.TypeRef{QIdentV: ident.NewQIdent("A")}},
	}}
	v := &tree.DeclVar{NameV: "x", TypeV: &tree.TypeRef{QIdentV: ident.NewQIdent("Box"), TParams: []tree.Type{
		&tree.TypeRef{QIdentV: ident.NewQIdent("string")},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{cls, v}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.defaultedTypeArguments(pf)

	got := out.Members[1].(*tree.DeclVar).TypeV.(*tree.TypeRef)
	if len(got.TParams) != 2 {
		t.Fatalf("expected the missing type argument to be filled in, got %+v", got.TParams)
	}
}

func TestTypeAliasIntersectionConvertsToInterface(t *testing.T) {
	base := &tree.DeclInterface{NameV: "Base"}
	alias := &tree.DeclTypeAlias{NameV: "Widget", Alias: &tree.TypeIntersect{Types: []tree.Type{
		&tree.TypeRef{QIdentV: ident.NewQIdent("Base")},
		&tree.TypeObject{Members: []tree.Member{&tree.MemberProperty{NameV: "x"}}},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{base, alias}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.typeAliasIntersection(pf)

	got, ok := out.Members[1].(*tree.DeclInterface)
	if !ok {
		t.Fatalf("expected the alias to become a DeclInterface, got %T", out.Members[1])
	}
	if len(got.Inheritance) != 1 || len(got.Members) != 1 {
		t.Fatalf("unexpected interface shape: %+v", got)
	}
}

func TestTypeAliasIntersectionLeavesUncategorizedAliasAlone(t *testing.T) {
	alias := &tree.DeclTypeAlias{NameV: "Widget", Alias: &tree.TypeIntersect{Types: []tree.Type{
		&tree.TypeUnion{Types: []tree.Type{&tree.TypeRef{QIdentV: ident.NewQIdent("A")}}},
		&tree.TypeObject{Members: []tree.Member{&tree.MemberProperty{NameV: "x"}}},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{alias}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.typeAliasIntersection(pf)

	if _, ok := out.Members[0].(*tree.DeclTypeAlias); !ok {
		t.Fatalf("expected an uncategorized intersection component to leave the alias unchanged, got %T", out.Members[0])
	}
}

func TestRejiggerIntersectionsFlattensNestedIntersection(t *testing.T) {
	nested := &tree.TypeIntersect{Types: []tree.Type{
		&tree.TypeRef{QIdentV: ident.NewQIdent("A")},
		&tree.TypeIntersect{Types: []tree.Type{
			&tree.TypeRef{QIdentV: ident.NewQIdent("B")},
			&tree.TypeRef{QIdentV: ident.NewQIdent("C")},
		}},
	}}
	v := &tree.DeclVar{NameV: "x", TypeV: nested}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.rejiggerIntersections(pf)

	got := out.Members[0].(*tree.DeclVar).TypeV.(*tree.TypeIntersect)
	if len(got.Types) != 3 {
		t.Fatalf("expected the nested intersection to flatten to 3 components, got %+v", got.Types)
	}
}
