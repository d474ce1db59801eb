package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsdecl/tsconv/internal/ident"
)

func writePkg(t *testing.T, dir, name, version string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"name":"` + name + `","version":"` + version + `"}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.d.ts"), []byte("export {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFromNodeModules_FindsTypesAndPlainLibraries(t *testing.T) {
	root := t.TempDir()
	writePkg(t, filepath.Join(root, "node_modules", "@types", "lodash"), "@types/lodash", "4.14.0")
	writePkg(t, filepath.Join(root, "node_modules", "react"), "react", "18.2.0")
	writePkg(t, filepath.Join(root, "node_modules", "@babel", "core"), "@babel/core", "7.20.0")

	b, err := FromNodeModules(root, Options{}, []ident.LibraryName{
		{Name: "lodash"}, {Name: "react"}, {Scope: "babel", Name: "core"},
	})
	if err != nil {
		t.Fatalf("FromNodeModules() error: %v", err)
	}

	for _, name := range []ident.LibraryName{{Name: "lodash"}, {Name: "react"}, {Scope: "babel", Name: "core"}} {
		if _, result := b.Library(name); result != Found {
			t.Errorf("Library(%v) result = %v, want Found", name, result)
		}
	}
}

func TestFromNodeModules_ReportsUnresolved(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "node_modules"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := FromNodeModules(root, Options{}, []ident.LibraryName{{Name: "missing-lib"}})
	if err == nil {
		t.Fatal("expected an Unresolved error")
	}
	unresolved, ok := err.(*Unresolved)
	if !ok {
		t.Fatalf("error type = %T, want *Unresolved", err)
	}
	if len(unresolved.Names) != 1 || unresolved.Names[0] != "missing-lib" {
		t.Errorf("Unresolved.Names = %v, want [missing-lib]", unresolved.Names)
	}
}

func TestLibrary_Ignored(t *testing.T) {
	root := t.TempDir()
	writePkg(t, filepath.Join(root, "node_modules", "left-pad"), "left-pad", "1.0.0")

	b, err := FromNodeModules(root, Options{IgnoredLibs: map[string]bool{"left-pad": true}}, nil)
	if err != nil {
		t.Fatalf("FromNodeModules() error: %v", err)
	}
	if _, result := b.Library(ident.LibraryName{Name: "left-pad"}); result != Ignored {
		t.Errorf("Library(left-pad) result = %v, want Ignored", result)
	}
}

func TestModule_ResolvesLocalAndExternal(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "node_modules", "widget")
	writePkg(t, libDir, "widget", "1.0.0")
	if err := os.WriteFile(filepath.Join(libDir, "helpers.d.ts"), []byte("export {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	writePkg(t, filepath.Join(root, "node_modules", "gadget"), "gadget", "2.0.0")

	b, err := FromNodeModules(root, Options{}, nil)
	if err != nil {
		t.Fatalf("FromNodeModules() error: %v", err)
	}
	widget, result := b.Library(ident.LibraryName{Name: "widget"})
	if result != Found {
		t.Fatalf("Library(widget) result = %v, want Found", result)
	}

	resolved, ok := b.Module(widget, libDir, "./helpers")
	if !ok || !resolved.Local {
		t.Fatalf("Module(./helpers) = %+v, ok=%v, want a Local resolution", resolved, ok)
	}

	resolved, ok = b.Module(widget, libDir, "gadget")
	if !ok || resolved.Local {
		t.Fatalf("Module(gadget) = %+v, ok=%v, want a NotLocal resolution", resolved, ok)
	}
}
