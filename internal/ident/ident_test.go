package ident

import "testing"

func TestQIdentEquality(t *testing.T) {
	a := NewQIdent("A", "B", "C")
	b := ParseQIdent("A.B.C")
	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
	if a.String() != "A.B.C" {
		t.Fatalf("unexpected string form: %s", a.String())
	}
}

func TestQIdentAccessors(t *testing.T) {
	q := NewQIdent("A", "B", "C")
	if q.Head() != "A" {
		t.Fatalf("Head: got %s", q.Head())
	}
	if q.Last() != "C" {
		t.Fatalf("Last: got %s", q.Last())
	}
	if !q.Init().Equal(NewQIdent("A", "B")) {
		t.Fatalf("Init: got %v", q.Init())
	}
	if !q.Tail().Equal(NewQIdent("B", "C")) {
		t.Fatalf("Tail: got %v", q.Tail())
	}
	if !q.Add("D").Equal(NewQIdent("A", "B", "C", "D")) {
		t.Fatalf("Add failed")
	}
	if !q.ReplaceLast("Z").Equal(NewQIdent("A", "B", "Z")) {
		t.Fatalf("ReplaceLast failed")
	}
	if !q.StartsWith(NewQIdent("A", "B")) {
		t.Fatalf("StartsWith should hold")
	}
	if q.StartsWith(NewQIdent("A", "X")) {
		t.Fatalf("StartsWith should not hold")
	}
}

func TestQIdentAddDoesNotMutateOriginal(t *testing.T) {
	q := NewQIdent("A")
	q2 := q.Add("B")
	if q.Equal(q2) {
		t.Fatalf("Add should not mutate the receiver")
	}
	if len(q.Parts) != 1 {
		t.Fatalf("original QIdent mutated: %v", q)
	}
}

func TestLibraryNameParse(t *testing.T) {
	cases := []struct {
		in    string
		scope string
		name  string
	}{
		{"lodash", "", "lodash"},
		{"@types/node", "types", "node"},
		{"@babel/core", "babel", "core"},
	}
	for _, c := range cases {
		l := ParseLibraryName(c.in)
		if l.Scope != c.scope || l.Name != c.name {
			t.Fatalf("ParseLibraryName(%q) = %+v", c.in, l)
		}
		if l.String() != c.in {
			t.Fatalf("String() roundtrip failed for %q: got %q", c.in, l.String())
		}
	}
}

func TestLibraryNameUnscoped(t *testing.T) {
	l := ParseLibraryName("@types/node")
	u := l.Unscoped()
	if u.Scope != "" || u.Name != "node" {
		t.Fatalf("Unscoped(@types/node) = %+v", u)
	}

	l2 := ParseLibraryName("@types/babel__core")
	u2 := l2.Unscoped()
	if u2.Scope != "babel" || u2.Name != "core" {
		t.Fatalf("Unscoped(@types/babel__core) = %+v", u2)
	}

	// Non-@types names are unaffected.
	l3 := ParseLibraryName("@babel/core")
	if u3 := l3.Unscoped(); !u3.Equal(l3) {
		t.Fatalf("Unscoped should be identity for non-@types names, got %+v", u3)
	}
}

func TestModuleNameParserNormalization(t *testing.T) {
	p := ModuleNameParser{}
	cases := []struct {
		name     string
		in       []string
		wantStr  string
	}{
		{"plain", []string{"lodash", "index.d.ts"}, "lodash"},
		{"types-prefix", []string{"@types", "node", "index.d.ts"}, "node"},
		{"tilde", []string{"~foo", "bar.ts"}, "foo/bar"},
		{"scoped-folder", []string{"babel__core"}, "@babel/core"},
		{"keep-multi-no-index-drop", []string{"a", "b"}, "a/b"},
		{"types-scoped-folder-index", []string{"@types", "babel__core", "index.d.ts"}, "@babel/core"},
	}
	for _, c := range cases {
		m, err := p.Parse(c.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if m.String() != c.wantStr {
			t.Fatalf("%s: got %q, want %q", c.name, m.String(), c.wantStr)
		}
	}
}

func TestModuleNameParserKeepIndexFragment(t *testing.T) {
	p := ModuleNameParser{KeepIndexFragment: true}
	m, err := p.Parse([]string{"a", "index"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "a/index" {
		t.Fatalf("expected index fragment kept, got %q", m.String())
	}
}

func TestModuleNameParserEmptyIsError(t *testing.T) {
	p := ModuleNameParser{}
	if _, err := p.Parse([]string{"@types"}); err == nil {
		t.Fatalf("expected error for empty fragment list")
	}
}

func TestCodePathForceHasPathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected ForceHasPath to panic on NoPath")
		}
	}()
	NoPath.ForceHasPath()
}

func TestCodePathAddOnNoPathIsNoop(t *testing.T) {
	if NoPath.Add("x").IsSet() {
		t.Fatalf("Add on NoPath should stay unset")
	}
}

func TestCodePathEqual(t *testing.T) {
	lib := ParseLibraryName("lodash")
	a := HasPath(lib, NewQIdent("Foo"))
	b := HasPath(lib, NewQIdent("Foo"))
	if !a.Equal(b) {
		t.Fatalf("expected equal code paths")
	}
	if a.Equal(NoPath) {
		t.Fatalf("HasPath must not equal NoPath")
	}
}

func TestJsLocationAddNamespacedIsNoop(t *testing.T) {
	loc := NewJsGlobal(NewQIdent("Foo"))
	same := loc.Add(Namespaced)
	if !same.Global.Equal(loc.Global) {
		t.Fatalf("Add(Namespaced) must not extend the global path")
	}
}

func TestJsLocationAddExtendsGlobal(t *testing.T) {
	loc := NewJsGlobal(NewQIdent("Foo"))
	next := loc.Add("Bar")
	if !next.Global.Equal(NewQIdent("Foo", "Bar")) {
		t.Fatalf("Add should extend the global path, got %v", next.Global)
	}
}

func TestJsLocationCombine(t *testing.T) {
	mod := NewJsModule(ModuleName{Fragments: []string{"m"}}, "m")
	glob := NewJsGlobal(NewQIdent("G"))

	combined := mod.Combine(glob)
	if combined.Kind != JsBoth {
		t.Fatalf("expected combine(module, global) = Both, got %v", combined.Kind)
	}

	combinedRev := glob.Combine(mod)
	if combinedRev.Kind != JsBoth {
		t.Fatalf("expected combine(global, module) = Both, got %v", combinedRev.Kind)
	}

	if JsZeroLoc.Combine(glob).Kind != JsGlobal {
		t.Fatalf("combining with Zero should yield the other side")
	}
}
