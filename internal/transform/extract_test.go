package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

func TestExtractInterfacesLiftsAnonymousObjectProperty(t *testing.T) {
	v := &tree.DeclVar{NameV: "opts", TypeV: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberProperty{NameV: "width", TypeV: &tree.TypeRef{QIdentV: ident.NewQIdent("number")}},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.extractInterfaces(pf)

	if len(out.Members) != 2 {
		t.Fatalf("expected the anonymous object to be lifted into a second top-level member, got %+v", out.Members)
	}
	iface, ok := out.Members[1].(*tree.DeclInterface)
	if !ok {
		t.Fatalf("expected the lifted member to be a DeclInterface, got %T", out.Members[1])
	}
	got := out.Members[0].(*tree.DeclVar).TypeV.(*tree.TypeRef)
	if !got.QIdentV.Equal(ident.NewQIdent(iface.NameV)) {
		t.Fatalf("expected the var's type to reference the extracted interface, got %v", got.QIdentV)
	}
}

func TestExtractInterfacesLeavesTypeAliasBodyInPlace(t *testing.T) {
	alias := &tree.DeclTypeAlias{NameV: "Widget", Alias: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberProperty{NameV: "width"},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{alias}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.extractInterfaces(pf)

	if len(out.Members) != 1 {
		t.Fatalf("expected the alias's own object body to stay unlifted, got %+v", out.Members)
	}
	got, ok := out.Members[0].(*tree.DeclTypeAlias)
	if !ok {
		t.Fatalf("expected the member to remain a DeclTypeAlias, got %T", out.Members[0])
	}
	if _, ok := got.Alias.(*tree.TypeObject); !ok {
		t.Fatalf("expected the alias body to remain a plain TypeObject, got %T", got.Alias)
	}
}

func TestExtractClassesLiftsAnonymousConstructibleObject(t *testing.T) {
	v := &tree.DeclVar{NameV: "ctor", TypeV: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberCtor{Sig: tree.FunSig{}},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.extractClasses(pf)

	if len(out.Members) != 2 {
		t.Fatalf("expected the constructible object to be lifted into a second top-level member, got %+v", out.Members)
	}
	cls, ok := out.Members[1].(*tree.DeclClass)
	if !ok {
		t.Fatalf("expected the lifted member to be a DeclClass, got %T", out.Members[1])
	}
	got := out.Members[0].(*tree.DeclVar).TypeV.(*tree.TypeRef)
	if !got.QIdentV.Equal(ident.NewQIdent(cls.NameV)) {
		t.Fatalf("expected the var's type to reference the extracted class, got %v", got.QIdentV)
	}
}

func TestExtractClassesCollapsesCallOnlyObjectWhenNotReact(t *testing.T) {
	v := &tree.DeclVar{NameV: "fn", TypeV: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberCall{Sig: tree.FunSig{ResultType: &tree.TypeRef{QIdentV: ident.NewQIdent("void")}}},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.extractClasses(pf)

	if len(out.Members) != 1 {
		t.Fatalf("expected no class to be extracted from a call-only object, got %+v", out.Members)
	}
	got := out.Members[0].(*tree.DeclVar).TypeV
	if _, ok := got.(*tree.TypeFunction); !ok {
		t.Fatalf("expected expandCallables to collapse the call-only object into a TypeFunction, got %T", got)
	}
}

func TestExpandCallablesLeavesMultiMemberObjectAlone(t *testing.T) {
	v := &tree.DeclVar{NameV: "opts", TypeV: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberCall{Sig: tree.FunSig{}},
		&tree.MemberProperty{NameV: "width"},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	out := expandCallables(pf)

	got := out.Members[0].(*tree.DeclVar).TypeV
	if _, ok := got.(*tree.TypeObject); !ok {
		t.Fatalf("expected a multi-member object to stay a TypeObject, got %T", got)
	}
}
