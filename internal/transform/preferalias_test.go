package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

func TestPreferLocallyConvertsSimpleInterfaceToAlias(t *testing.T) {
	iface := &tree.DeclInterface{NameV: "Widget", Members: []tree.Member{
		&tree.MemberProperty{NameV: "width"},
		&tree.MemberFunction{NameV: "render", MethodType: tree.MethodNormal},
	}}
	pf := &tree.ParsedFile{Members: []tree.Tree{iface}}

	out := preferLocally(pf)

	got, ok := out.Members[0].(*tree.DeclTypeAlias)
	if !ok {
		t.Fatalf("expected the interface to become a DeclTypeAlias, got %T", out.Members[0])
	}
	obj, ok := got.Alias.(*tree.TypeObject)
	if !ok || len(obj.Members) != 2 {
		t.Fatalf("expected the alias body to carry the interface's members, got %+v", got.Alias)
	}
}

func TestPreferLocallyLeavesInheritingInterfaceAlone(t *testing.T) {
	iface := &tree.DeclInterface{NameV: "Widget", Inheritance: []tree.Type{
		&tree.TypeRef{QIdentV: ident.NewQIdent("Base")},
	}, Members: []tree.Member{&tree.MemberProperty{NameV: "width"}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{iface}}

	out := preferLocally(pf)

	if _, ok := out.Members[0].(*tree.DeclInterface); !ok {
		t.Fatalf("expected an interface with inheritance to be left alone, got %T", out.Members[0])
	}
}

func TestPreferLocallyConvertsIndexedAliasToInterface(t *testing.T) {
	alias := &tree.DeclTypeAlias{NameV: "Widget", Alias: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberIndex{Indexing: tree.Indexing{IsDict: true, KeyName: "key"}},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{alias}}

	out := preferLocally(pf)

	got, ok := out.Members[0].(*tree.DeclInterface)
	if !ok {
		t.Fatalf("expected the dictionary-bodied alias to become a DeclInterface, got %T", out.Members[0])
	}
	if len(got.Members) != 1 {
		t.Fatalf("expected the interface to carry the index member, got %+v", got.Members)
	}
}

func TestBreakAliasCyclesRewritesCycleTargetAsInterface(t *testing.T) {
	a := &tree.DeclTypeAlias{NameV: "A", Alias: &tree.TypeObject{Members: []tree.Member{
		&tree.MemberProperty{NameV: "next", TypeV: &tree.TypeRef{QIdentV: ident.NewQIdent("B")}},
	}}}
	b := &tree.DeclTypeAlias{NameV: "B", Alias: &tree.TypeRef{QIdentV: ident.NewQIdent("A")}}
	pf := &tree.ParsedFile{Members: []tree.Tree{a, b}}

	out := breakAliasCycles(pf)

	got, ok := out.Members[0].(*tree.DeclInterface)
	if !ok {
		t.Fatalf("expected the cycle's chosen target to become a DeclInterface, got %T", out.Members[0])
	}
	if len(got.Members) != 1 {
		t.Fatalf("expected the rewritten interface to carry the alias's members, got %+v", got.Members)
	}
	prop := got.Members[0].(*tree.MemberProperty)
	ref, ok := prop.TypeV.(*tree.TypeRef)
	if !ok || !ref.QIdentV.Equal(ident.NewQIdent("any")) {
		t.Fatalf("expected the in-cycle reference to B to become any, got %+v", prop.TypeV)
	}
	if _, ok := out.Members[1].(*tree.DeclTypeAlias); !ok {
		t.Fatalf("expected the cycle's non-target member to survive as a DeclTypeAlias, got %T", out.Members[1])
	}
}

func TestBreakAliasCyclesLeavesAcyclicAliasesAlone(t *testing.T) {
	a := &tree.DeclTypeAlias{NameV: "A", Alias: &tree.TypeRef{QIdentV: ident.NewQIdent("string")}}
	pf := &tree.ParsedFile{Members: []tree.Tree{a}}

	out := breakAliasCycles(pf)
	if out != pf {
		t.Fatalf("expected an acyclic alias set to pass through unchanged")
	}
}
