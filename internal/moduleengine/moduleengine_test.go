package moduleengine

import (
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

func lib() ident.LibraryName { return ident.ParseLibraryName("widgets") }

func ownerAt(parts ...ident.SimpleIdent) ExportOwner {
	return ExportOwner{
		Path: ident.HasPath(lib(), ident.NewQIdent(parts...)),
		Loc:  ident.NewJsModule(ident.ModuleName{Fragments: []string{"widgets"}}, "widgets"),
	}
}

func TestDeriveCopyClassGetsOriginParent(t *testing.T) {
	orig := &tree.DeclClass{NameV: "Widget", CodePath: ident.HasPath(lib(), ident.NewQIdent("Widget"))}
	copied := DeriveCopy(orig, ident.HasPath(lib(), ident.NewQIdent("Gadget")), ident.JsLocation{})
	cls, ok := copied.(*tree.DeclClass)
	if !ok {
		t.Fatalf("expected *DeclClass, got %T", copied)
	}
	if cls.NameV != "Gadget" || !cls.Declared {
		t.Fatalf("expected renamed+declared copy, got %+v", cls)
	}
	if cls.Parent == nil {
		t.Fatalf("expected a synthetic parent ref")
	}
	ref, ok := (*cls.Parent).(*tree.TypeRef)
	if !ok || !ref.QIdentV.Equal(ident.NewQIdent("Widget")) {
		t.Fatalf("expected parent ref to name the origin, got %+v", cls.Parent)
	}
}

func TestDeriveCopyInterfaceBecomesTypeAlias(t *testing.T) {
	orig := &tree.DeclInterface{NameV: "Props", CodePath: ident.HasPath(lib(), ident.NewQIdent("Props"))}
	copied := DeriveCopy(orig, ident.HasPath(lib(), ident.NewQIdent("Options")), ident.JsLocation{})
	alias, ok := copied.(*tree.DeclTypeAlias)
	if !ok {
		t.Fatalf("expected *DeclTypeAlias, got %T", copied)
	}
	ref, ok := alias.Alias.(*tree.TypeRef)
	if !ok || !ref.QIdentV.Equal(ident.NewQIdent("Props")) {
		t.Fatalf("expected alias pointing at origin, got %+v", alias.Alias)
	}
}

func TestExportTreeNamedRenames(t *testing.T) {
	owner := ownerAt()
	fn := &tree.DeclFunction{NameV: "inner"}
	out := ExportTree(owner, Named, fn, "outer")
	if len(out) != 1 {
		t.Fatalf("expected one export, got %+v", out)
	}
	f := out[0].(*tree.DeclFunction)
	if f.NameV != "outer" {
		t.Fatalf("expected renamed export, got %+v", f)
	}
}

func TestExportTreeNamespacedOnContainerDerivesEachMember(t *testing.T) {
	owner := ownerAt()
	ns := &tree.Namespace{NameV: "N", Members: []tree.Tree{
		&tree.DeclVar{NameV: "x"},
		&tree.DeclFunction{NameV: "f"},
	}}
	out := ExportTree(owner, Namespaced, ns, "")
	if len(out) != 2 {
		t.Fatalf("expected 2 derived members, got %+v", out)
	}
}

func TestExportTreeNamespacedOnLeafWrapsWithCaret(t *testing.T) {
	owner := ownerAt()
	fn := &tree.DeclFunction{NameV: "f"}
	out := ExportTree(owner, Namespaced, fn, "")
	if len(out) != 1 {
		t.Fatalf("expected one wrapped export, got %+v", out)
	}
	f := out[0].(*tree.DeclFunction)
	if f.NameV != ident.Namespaced {
		t.Fatalf("expected caret name, got %+v", f.NameV)
	}
}

func TestExportTreeDefaultedUsesDefaultName(t *testing.T) {
	owner := ownerAt()
	cls := &tree.DeclClass{NameV: "Widget"}
	out := ExportTree(owner, Defaulted, cls, "")
	c := out[0].(*tree.DeclClass)
	if !c.CodePath.Path.Equal(ident.NewQIdent(ident.Default)) {
		t.Fatalf("expected default-named path, got %+v", c.CodePath)
	}
}

func TestExportNamedLooksUpInGivenScope(t *testing.T) {
	v := &tree.DeclVar{NameV: "x"}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}
	root := scope.Root(lib(), false, nil, nil)
	fileScope := root.Descend(pf)

	owner := ownerAt()
	names := []tree.ExportedName{{QIdentV: ident.NewQIdent("x"), Alias: "y"}}
	out := ExportNamed(owner, Named, names, nil, fileScope)
	if len(out) != 1 {
		t.Fatalf("expected one exported decl, got %+v", out)
	}
	dv := out[0].(*tree.DeclVar)
	if dv.NameV != "y" {
		t.Fatalf("expected aliased name y, got %+v", dv)
	}
}

func TestExportStarSkipsDefault(t *testing.T) {
	owner := ownerAt()
	members := []tree.Tree{
		&tree.DeclVar{NameV: "keep"},
		&tree.DeclVar{NameV: ident.Default},
	}
	out := ExportStar(owner, Named, nil, members)
	if len(out) != 1 {
		t.Fatalf("expected default to be skipped, got %+v", out)
	}
}

func TestExpandImportWholeSplitsDefaultNamespacedRest(t *testing.T) {
	imp := &tree.Import{From: tree.Importee{Kind: tree.ImporteeFrom, Module: "widgets"}}
	targetMembers := []tree.Tree{
		&tree.DeclVar{NameV: ident.Default},
		&tree.DeclFunction{NameV: ident.Namespaced},
		&tree.DeclVar{NameV: "other"},
	}
	mod := ExpandImport(imp, nil, targetMembers)
	if !mod.IsWhole() {
		t.Fatalf("expected Whole shape")
	}
	if len(mod.Defaults) != 1 || len(mod.Namespaced) != 1 || len(mod.Rest) != 1 {
		t.Fatalf("expected 1/1/1 split, got %+v", mod)
	}
}

func TestExpandImportPickedResolvesNamedBindings(t *testing.T) {
	v := &tree.DeclVar{NameV: "x"}
	pf := &tree.ParsedFile{Members: []tree.Tree{v}}
	root := scope.Root(lib(), false, nil, nil)
	targetScope := root.Descend(pf)

	imp := &tree.Import{Imported: []tree.ImportedName{{Kind: tree.ImportedNamed, Name: "x"}}}
	mod := ExpandImport(imp, targetScope, pf.Members)
	if mod.IsWhole() {
		t.Fatalf("expected Picked shape")
	}
	if len(mod.Things) != 1 || mod.Things[0].Decl != tree.Tree(v) {
		t.Fatalf("expected resolved x, got %+v", mod.Things)
	}
}

func TestAugmentModulesMergesIntoSiblingTarget(t *testing.T) {
	modName := ident.ModuleName{Fragments: []string{"widgets"}}
	target := &tree.Module{NameV: modName, Spec: "widgets", CodePath: ident.HasPath(lib(), ident.NewQIdent("widgets"))}
	aux := &tree.AugmentedModule{NameV: modName, Spec: "widgets", Members: []tree.Tree{&tree.DeclVar{NameV: "extra"}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{target, aux}}

	out := AugmentModules(pf)
	if len(out.Members) != 1 {
		t.Fatalf("expected the augmented module consumed, got %+v", out.Members)
	}
	mod := out.Members[0].(*tree.Module)
	if len(mod.Members) != 1 || mod.Members[0].(tree.Named).Name() != "extra" {
		t.Fatalf("expected extra merged into target, got %+v", mod.Members)
	}
}

func TestAugmentModulesLeavesRemnantWhenNoTarget(t *testing.T) {
	aux := &tree.AugmentedModule{NameV: ident.ModuleName{Fragments: []string{"other"}}, Members: []tree.Tree{&tree.DeclVar{NameV: "x"}}}
	pf := &tree.ParsedFile{Members: []tree.Tree{aux}}

	out := AugmentModules(pf)
	if len(out.Members) != 1 {
		t.Fatalf("expected the remnant kept, got %+v", out.Members)
	}
	if _, ok := out.Members[0].(*tree.AugmentedModule); !ok {
		t.Fatalf("expected remnant to still be an AugmentedModule, got %T", out.Members[0])
	}
}

func TestModuleAsGlobalNamespaceWithDefaultCreatesAlias(t *testing.T) {
	mod := &tree.Module{
		NameV: ident.ModuleName{Fragments: []string{"widgets"}},
		Members: []tree.Tree{
			&tree.ExportAsNamespace{Ident: "Widgets"},
			&tree.DeclClass{NameV: ident.Default, CodePath: ident.NoPath},
		},
	}
	g, ok := ModuleAsGlobalNamespace(mod)
	if !ok {
		t.Fatalf("expected an ExportAsNamespace to be found")
	}
	if len(g.Members) != 1 {
		t.Fatalf("expected one namespace lifted into Global, got %+v", g.Members)
	}
	ns := g.Members[0].(*tree.Namespace)
	if ns.NameV != "Widgets" || len(ns.Members) != 1 {
		t.Fatalf("expected Widgets namespace wrapping the default, got %+v", ns)
	}
}

func TestModuleAsGlobalNamespaceWithoutExportAsNamespaceReturnsFalse(t *testing.T) {
	mod := &tree.Module{NameV: ident.ModuleName{Fragments: []string{"widgets"}}}
	_, ok := ModuleAsGlobalNamespace(mod)
	if ok {
		t.Fatalf("expected no lift without ExportAsNamespace")
	}
}

func TestProxyModuleNoGlobExpandsOnce(t *testing.T) {
	mods, err := ProxyModule(lib(), "./feature", "./dist/feature.d.ts", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("expected one proxy module, got %+v", mods)
	}
	if string(mods[0].Spec) != "widgets/feature" {
		t.Fatalf("expected widgets/feature, got %q", mods[0].Spec)
	}
}

func TestProxyModuleGlobExpandsPerMatchingFile(t *testing.T) {
	files := []string{"dist/a.d.ts", "dist/b.d.ts", "dist/skip.txt"}
	mods, err := ProxyModule(lib(), "./*", "./dist/*.d.ts", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mods) != 2 {
		t.Fatalf("expected 2 matches, got %+v", mods)
	}
}

func TestProxyModuleMultipleStarsIsFatal(t *testing.T) {
	_, err := ProxyModule(lib(), "./*/*", "./dist/*.d.ts", nil)
	if err == nil {
		t.Fatalf("expected an error for multiple '*'")
	}
}
