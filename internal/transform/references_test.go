package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

func TestQualifyReferencesRewritesBareRefToCodePath(t *testing.T) {
	iface := &tree.DeclInterface{NameV: "Base", CodePath: ident.HasPath(stubLibName(), ident.NewQIdent("ui", "Base"))}
	fn := &tree.DeclFunction{NameV: "make", Sig: tree.FunSig{ResultType: &tree.TypeRef{QIdentV: ident.NewQIdent("Base")}}}
	ns := &tree.Namespace{NameV: "ui", Members: []tree.Tree{iface, fn}}
	pf := &tree.ParsedFile{Members: []tree.Tree{ns}}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.qualifyReferences(pf, s, false)

	gotNs := out.Members[0].(*tree.Namespace)
	gotFn := gotNs.Members[1].(*tree.DeclFunction)
	ref, ok := gotFn.Sig.ResultType.(*tree.TypeRef)
	if !ok {
		t.Fatalf("expected the result type to stay a TypeRef, got %T", gotFn.Sig.ResultType)
	}
	if !ref.QIdentV.Equal(ident.NewQIdent("ui", "Base")) {
		t.Fatalf("expected the ref to be qualified to %v, got %v", ident.NewQIdent("ui", "Base"), ref.QIdentV)
	}
}

func TestQualifyReferencesSkipsWhenDisabled(t *testing.T) {
	fn := &tree.DeclFunction{NameV: "make", Sig: tree.FunSig{ResultType: &tree.TypeRef{QIdentV: ident.NewQIdent("Base")}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{
		&tree.DeclInterface{NameV: "Base"},
		fn,
	}}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.qualifyReferences(pf, s, true)

	got := out.Members[1].(*tree.DeclFunction)
	ref := got.Sig.ResultType.(*tree.TypeRef)
	if !ref.QIdentV.Equal(ident.NewQIdent("Base")) {
		t.Fatalf("expected the ref to stay unqualified when disableUnqualified is set, got %v", ref.QIdentV)
	}
}

func TestResolveTypeQueriesExpandsTypeofVar(t *testing.T) {
	v := &tree.DeclVar{NameV: "defaults", TypeV: &tree.TypeRef{QIdentV: ident.NewQIdent("string")}}
	fn := &tree.DeclFunction{NameV: "make", Sig: tree.FunSig{ResultType: &tree.TypeQuery{QIdentV: ident.NewQIdent("defaults")}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{v, fn}}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.resolveTypeQueries(pf, s)

	got := out.Members[1].(*tree.DeclFunction)
	ref, ok := got.Sig.ResultType.(*tree.TypeRef)
	if !ok || !ref.QIdentV.Equal(ident.NewQIdent("string")) {
		t.Fatalf("expected typeof defaults to expand to string, got %+v", got.Sig.ResultType)
	}
}
