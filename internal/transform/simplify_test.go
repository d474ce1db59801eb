package transform

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

func TestSimplifyParentsDropsExplicitObjectParent(t *testing.T) {
	objectParent := tree.Type(&tree.TypeRef{QIdentV: ident.NewQIdent("Object")})
	cls := &tree.DeclClass{NameV: "Widget", Parent: &objectParent}
	pf := &tree.ParsedFile{Members: []tree.Tree{cls}}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.simplifyParents(pf, s)

	if out.Members[0].(*tree.DeclClass).Parent != nil {
		t.Fatalf("expected the explicit Object parent to be dropped")
	}
}

func TestSimplifyParentsKeepsOtherParents(t *testing.T) {
	other := tree.Type(&tree.TypeRef{QIdentV: ident.NewQIdent("Base")})
	cls := &tree.DeclClass{NameV: "Widget", Parent: &other}
	pf := &tree.ParsedFile{Members: []tree.Tree{
		&tree.DeclClass{NameV: "Base"},
		cls,
	}}

	s := scope.Root(stubLibName(), false, nil, nil).Descend(pf)
	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.simplifyParents(pf, s)

	got := out.Members[1].(*tree.DeclClass)
	if got.Parent == nil {
		t.Fatalf("expected the non-Object parent to survive")
	}
}

func TestRemoveStubsDropsEmptyStdInterface(t *testing.T) {
	pf := &tree.ParsedFile{Members: []tree.Tree{
		&tree.DeclInterface{NameV: ident.Std},
		&tree.DeclInterface{NameV: "Props", Members: []tree.Member{
			&tree.MemberProperty{NameV: "x"},
		}},
	}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.removeStubs(pf)
	if len(out.Members) != 1 {
		t.Fatalf("expected the empty std stub to be dropped, got %+v", out.Members)
	}
	if out.Members[0].(*tree.DeclInterface).NameV != "Props" {
		t.Fatalf("expected Props to survive, got %+v", out.Members[0])
	}
}

func TestRemoveStubsKeepsNonEmptyStdInterface(t *testing.T) {
	pf := &tree.ParsedFile{Members: []tree.Tree{
		&tree.DeclInterface{NameV: ident.Std, Members: []tree.Member{&tree.MemberProperty{NameV: "x"}}},
	}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.removeStubs(pf)
	if len(out.Members) != 1 {
		t.Fatalf("expected the non-empty std interface to survive, got %+v", out.Members)
	}
}

func TestInferEnumTypesAutoIncrements(t *testing.T) {
	en := &tree.DeclEnum{NameV: "Color", Members: []tree.EnumMember{
		{Name: "Red"},
		{Name: "Green"},
		{Name: "Blue", Value: &tree.EnumValue{Num: 10}},
		{Name: "Indigo"},
	}}
	pf := &tree.ParsedFile{Members: []tree.Tree{en}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.inferEnumTypes(pf)

	got := out.Members[0].(*tree.DeclEnum)
	want := []float64{0, 1, 10, 11}
	for i, m := range got.Members {
		if m.Value == nil || m.Value.Num != want[i] {
			t.Fatalf("member %d (%s) = %+v, want %v", i, m.Name, m.Value, want[i])
		}
	}
}

func TestNormalizeFunctionsReordersOptionalBeforeRest(t *testing.T) {
	fn := &tree.DeclFunction{NameV: "f", Sig: tree.FunSig{Params: []tree.FunParam{
		{Name: "rest", IsRest: true},
		{Name: "opt", Optional: true},
		{Name: "req"},
	}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{fn}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.normalizeFunctions(pf)

	got := out.Members[0].(*tree.DeclFunction).Sig.Params
	wantOrder := []ident.SimpleIdent{"req", "opt", "rest"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Fatalf("param %d = %q, want %q (full order %v)", i, got[i].Name, name, got)
		}
	}
}

func TestMoveStaticsReordersClassMembers(t *testing.T) {
	instance := &tree.MemberProperty{NameV: "value"}
	static := &tree.MemberProperty{NameV: "Default", IsStatic: true}
	cls := &tree.DeclClass{NameV: "Widget", Members: []tree.Member{instance, static}}
	pf := &tree.ParsedFile{Members: []tree.Tree{cls}}

	p := &Pipeline{cfg: Config{LibName: stubLibName()}}
	out := p.moveStatics(pf)

	got := out.Members[0].(*tree.DeclClass).Members
	if got[0] != tree.Member(static) || got[1] != tree.Member(instance) {
		t.Fatalf("expected statics first, got %+v", got)
	}
}
