package merge

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

func ref(name string) tree.Type {
	return &tree.TypeRef{QIdentV: ident.NewQIdent(ident.SimpleIdent(name))}
}

func TestMergeNamespaceNamespaceUnionsMembers(t *testing.T) {
	a := &tree.Namespace{NameV: "N", Members: []tree.Tree{&tree.DeclVar{NameV: "x"}}}
	b := &tree.Namespace{NameV: "N", Members: []tree.Tree{&tree.DeclVar{NameV: "y"}}}

	merged, ok := Merge(a, b)
	if !ok {
		t.Fatalf("expected namespace+namespace to merge")
	}
	ns := merged.(*tree.Namespace)
	if len(ns.Members) != 2 {
		t.Fatalf("expected both members present, got %+v", ns.Members)
	}
}

func TestMergeNamespaceWithFunctionAppendsNamespacedCopy(t *testing.T) {
	ns := &tree.Namespace{NameV: "N"}
	fn := &tree.DeclFunction{NameV: "N"}

	merged, ok := Merge(ns, fn)
	if !ok {
		t.Fatalf("expected namespace+function to merge")
	}
	result := merged.(*tree.Namespace)
	if len(result.Members) != 1 {
		t.Fatalf("expected one namespaced member, got %+v", result.Members)
	}
	inner, ok := result.Members[0].(*tree.DeclFunction)
	if !ok || inner.NameV != ident.Namespaced {
		t.Fatalf("expected namespaced (^) copy, got %+v", result.Members[0])
	}
}

func TestMergeClassClassPrefersFirstParentAndIntersectsAbstract(t *testing.T) {
	pa := ref("PA")
	a := &tree.DeclClass{NameV: "C", Parent: &pa, IsAbstract: true}
	b := &tree.DeclClass{NameV: "C", IsAbstract: false}

	merged, ok := Merge(a, b)
	if !ok {
		t.Fatalf("expected class+class to merge")
	}
	c := merged.(*tree.DeclClass)
	if c.Parent == nil || !(*c.Parent).(*tree.TypeRef).QIdentV.Equal(ident.NewQIdent("PA")) {
		t.Fatalf("expected first parent to win, got %+v", c.Parent)
	}
	if c.IsAbstract {
		t.Fatalf("isAbstract should require both sides true")
	}
}

func TestMergeClassInterfaceFoldsIntoImplements(t *testing.T) {
	cls := &tree.DeclClass{NameV: "C"}
	iface := &tree.DeclInterface{NameV: "C", Inheritance: []tree.Type{ref("I")}}

	merged, ok := Merge(cls, iface)
	if !ok {
		t.Fatalf("expected class+interface to merge")
	}
	c := merged.(*tree.DeclClass)
	if len(c.Implements) != 1 {
		t.Fatalf("expected interface's inheritance folded into implements: %+v", c.Implements)
	}
}

func TestMergeEnumEnumUnionsMembersAndOrsIsValue(t *testing.T) {
	a := &tree.DeclEnum{NameV: "E", IsValue: false, Members: []tree.EnumMember{{Name: "A"}}}
	b := &tree.DeclEnum{NameV: "E", IsValue: true, Members: []tree.EnumMember{{Name: "B"}}}

	merged, ok := Merge(a, b)
	if !ok {
		t.Fatalf("expected enum+enum to merge")
	}
	e := merged.(*tree.DeclEnum)
	if !e.IsValue {
		t.Fatalf("IsValue should OR true")
	}
	if len(e.Members) != 2 {
		t.Fatalf("expected union of members, got %+v", e.Members)
	}
}

func TestMergeTypeAliasPrefersNonTrivial(t *testing.T) {
	trivial := &tree.DeclTypeAlias{NameV: "T", Alias: ref("Other"), Comments: comments.List{comments.IsTrivialComment()}}
	rich := &tree.DeclTypeAlias{NameV: "T", Alias: &tree.TypeObject{}}

	merged, ok := Merge(trivial, rich)
	if !ok {
		t.Fatalf("expected type-alias merge")
	}
	if merged != tree.Tree(rich) {
		t.Fatalf("expected the non-trivial alias to win, got %+v", merged)
	}
}

func TestMergeVarVarIntersectsDroppingNever(t *testing.T) {
	a := &tree.DeclVar{NameV: "x", TypeV: tree.NeverType()}
	b := &tree.DeclVar{NameV: "x", TypeV: ref("Concrete")}

	merged, ok := Merge(a, b)
	if !ok {
		t.Fatalf("expected var+var to merge")
	}
	v := merged.(*tree.DeclVar)
	if !typeEqualRef(v.TypeV, "Concrete") {
		t.Fatalf("expected never to drop in favor of the concrete type, got %+v", v.TypeV)
	}
}

func typeEqualRef(t tree.Type, name string) bool {
	r, ok := t.(*tree.TypeRef)
	return ok && r.QIdentV.Equal(ident.NewQIdent(ident.SimpleIdent(name)))
}

func TestFlattenTreesMergesNamedAndCombinesGlobals(t *testing.T) {
	g1 := &tree.Global{Members: []tree.Tree{&tree.DeclVar{NameV: "g1"}}}
	g2 := &tree.Global{Members: []tree.Tree{&tree.DeclVar{NameV: "g2"}}}
	a := &tree.ParsedFile{Members: []tree.Tree{&tree.DeclVar{NameV: "x"}, g1}}
	b := &tree.ParsedFile{Members: []tree.Tree{&tree.DeclVar{NameV: "y"}, g2}}

	merged := FlattenTrees(a, b)
	if len(merged.Members) != 3 {
		t.Fatalf("expected x, y, and one combined Global, got %+v", merged.Members)
	}
	g, ok := merged.Members[len(merged.Members)-1].(*tree.Global)
	if !ok || len(g.Members) != 2 {
		t.Fatalf("expected one combined Global with both members, got %+v", merged.Members[len(merged.Members)-1])
	}
}

