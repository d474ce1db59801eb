package scope

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

func stubLib() ident.LibraryName { return ident.ParseLibraryName("example-lib") }

func TestLookupFindsTopLevelDecl(t *testing.T) {
	v := &tree.DeclVar{NameV: "x"}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	root := Root(stubLib(), false, nil, nil)
	lib := root.Descend(pf)

	res := lib.Lookup(ident.NewQIdent("x"), true)
	if len(res) != 1 || res[0] != tree.Tree(v) {
		t.Fatalf("Lookup(x) = %+v", res)
	}
}

func TestLookupResolvesThroughNamespace(t *testing.T) {
	inner := &tree.DeclFunction{NameV: "f"}
	ns := &tree.Namespace{NameV: "N", Members: []tree.Tree{inner}}
	pf := &tree.ParsedFile{Members: []tree.Tree{ns}}

	root := Root(stubLib(), false, nil, nil)
	lib := root.Descend(pf)

	res := lib.Lookup(ident.NewQIdent("N", "f"), true)
	if len(res) != 1 || res[0] != tree.Tree(inner) {
		t.Fatalf("Lookup(N.f) = %+v", res)
	}
}

func TestLookupShadowingInnerWins(t *testing.T) {
	outer := &tree.DeclVar{NameV: "x"}
	inner := &tree.DeclVar{NameV: "x"}
	ns := &tree.Namespace{NameV: "N", Members: []tree.Tree{inner}}
	pf := &tree.ParsedFile{Members: []tree.Tree{outer, ns}}

	root := Root(stubLib(), false, nil, nil)
	lib := root.Descend(pf)
	nsScope := lib.Descend(ns)

	res := nsScope.Lookup(ident.NewQIdent("x"), true)
	if len(res) != 1 || res[0] != tree.Tree(inner) {
		t.Fatalf("expected inner x to shadow outer, got %+v", res)
	}
}

func TestLookupTypePicker(t *testing.T) {
	fn := &tree.DeclFunction{NameV: "thing"}
	cls := &tree.DeclClass{NameV: "thing"}
	pf := &tree.ParsedFile{Members: []tree.Tree{fn, cls}}

	root := Root(stubLib(), false, nil, nil)
	lib := root.Descend(pf)

	res := lib.LookupType(ident.NewQIdent("thing"), true)
	if len(res) != 1 {
		t.Fatalf("LookupType(thing) should only match the class, got %+v", res)
	}
	if _, ok := res[0].(*tree.DeclClass); !ok {
		t.Fatalf("expected *DeclClass, got %T", res[0])
	}
}

func TestLookupMissingReturnsEmpty(t *testing.T) {
	pf := &tree.ParsedFile{}
	root := Root(stubLib(), false, nil, nil)
	lib := root.Descend(pf)

	res := lib.Lookup(ident.NewQIdent("nope"), true)
	if len(res) != 0 {
		t.Fatalf("expected no match, got %+v", res)
	}
}

func TestIsAbstractTracksTypeParams(t *testing.T) {
	root := Root(stubLib(), false, nil, nil)
	withT := root.WithTypeParams([]tree.TypeParam{{Name: "T"}})

	if !withT.IsAbstract(ident.NewQIdent("T")) {
		t.Fatalf("expected T to be abstract")
	}
	if root.IsAbstract(ident.NewQIdent("T")) {
		t.Fatalf("original scope must not be mutated by WithTypeParams")
	}
}

func TestLookupIntoClassMembers(t *testing.T) {
	method := &tree.MemberFunction{NameV: "bar"}
	cls := &tree.DeclClass{NameV: "Foo", Members: []tree.Member{method}}
	pf := &tree.ParsedFile{Members: []tree.Tree{cls}}

	root := Root(stubLib(), false, nil, nil)
	lib := root.Descend(pf)

	res := lib.Lookup(ident.NewQIdent("Foo", "bar"), true)
	if len(res) != 1 || res[0] != tree.Tree(method) {
		t.Fatalf("Lookup(Foo.bar) = %+v", res)
	}
}

func TestCachingReturnsSameResultAcrossCalls(t *testing.T) {
	v := &tree.DeclVar{NameV: "x"}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}

	root := Root(stubLib(), false, nil, nil).Caching()
	lib := root.Descend(pf)

	first := lib.Lookup(ident.NewQIdent("x"), true)
	second := lib.Lookup(ident.NewQIdent("x"), true)
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("cached lookups should agree: %+v vs %+v", first, second)
	}
}

func TestLookupAcrossTransitiveDeps(t *testing.T) {
	depVar := &tree.DeclVar{NameV: "shared"}
	depFile := &tree.ParsedFile{Members: []tree.Tree{depVar}}

	root := Root(stubLib(), false, []*tree.ParsedFile{depFile}, nil)
	lib := root.Descend(&tree.ParsedFile{})

	res := lib.Lookup(ident.NewQIdent("shared"), true)
	if len(res) != 1 || res[0] != tree.Tree(depVar) {
		t.Fatalf("expected lookup to fall through to transitive deps, got %+v", res)
	}
}

func TestWalkScopedDescendsIntoNamespace(t *testing.T) {
	v := &tree.DeclVar{NameV: "x"}
	ns := &tree.Namespace{NameV: "N", Members: []tree.Tree{v}}
	pf := &tree.ParsedFile{Members: []tree.Tree{ns}}

	root := Root(stubLib(), false, nil, nil)

	var seenStackDepths []int
	enter := func(t tree.Tree, s *Scope) tree.Tree {
		seenStackDepths = append(seenStackDepths, len(s.Stack()))
		return t
	}

	WalkScoped(pf, root, enter, nil)
	// pf itself (depth 1, just pf pushed), ns (depth 2), v (depth 2, v is
	// not a ChildScopeTree so the scope doesn't grow further).
	if len(seenStackDepths) != 3 {
		t.Fatalf("expected 3 visits, got %+v", seenStackDepths)
	}
	if seenStackDepths[0] != 1 || seenStackDepths[1] != 2 || seenStackDepths[2] != 2 {
		t.Fatalf("unexpected stack depths: %+v", seenStackDepths)
	}
}

func TestNavigateJsLocationExtendsGlobalPath(t *testing.T) {
	v := &tree.DeclVar{NameV: "x"}
	loc := ident.NewJsGlobal(ident.NewQIdent("Outer"))
	next := NavigateJsLocation(loc, v)
	if !next.Global.Equal(ident.NewQIdent("Outer", "x")) {
		t.Fatalf("NavigateJsLocation should extend the global path, got %v", next.Global)
	}
}
