package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsdecl/tsconv/internal/dtsparse"
	"github.com/tsdecl/tsconv/internal/fsio"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/phase"
	"github.com/tsdecl/tsconv/internal/resolver"
)

func writePkg(t *testing.T, dir, name string, deps map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"name":"` + name + `","version":"1.0.0"`
	if len(deps) > 0 {
		content += `,"dependencies":{`
		first := true
		for d, v := range deps {
			if !first {
				content += ","
			}
			first = false
			content += `"` + d + `":"` + v + `"`
		}
		content += `}`
	}
	content += `}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.d.ts"), []byte("export declare const x: number;\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestRuntime(t *testing.T, root string, wanted []ident.LibraryName) *Runtime {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, "typescript", "lib"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "typescript", "lib", "lib.d.ts"), []byte("export declare const y: number;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	boot, err := resolver.FromNodeModules(root, resolver.Options{StdlibFiles: []string{"lib.d.ts"}}, wanted)
	if err != nil {
		t.Fatalf("FromNodeModules() error: %v", err)
	}

	parser, err := dtsparse.New()
	if err != nil {
		t.Fatalf("dtsparse.New() error: %v", err)
	}
	t.Cleanup(parser.Close)

	driver := &phase.Driver{Parser: parser.Parse, Walk: fsio.Walk}
	return New(driver, boot)
}

func TestRunAll_IndependentLibraries(t *testing.T) {
	root := t.TempDir()
	writePkg(t, filepath.Join(root, "node_modules", "left"), "left", nil)
	writePkg(t, filepath.Join(root, "node_modules", "right"), "right", nil)

	wanted := []ident.LibraryName{{Name: "left"}, {Name: "right"}}
	rt := newTestRuntime(t, root, wanted)

	libs, failures := rt.RunAll(wanted)
	if len(failures) != 0 {
		t.Fatalf("RunAll() failures = %v, want none", failures)
	}
	if len(libs) != 2 {
		t.Fatalf("RunAll() resolved %d libraries, want 2", len(libs))
	}
}

func TestRunAll_SharedDependencyResolvedOnce(t *testing.T) {
	root := t.TempDir()
	writePkg(t, filepath.Join(root, "node_modules", "shared"), "shared", nil)
	writePkg(t, filepath.Join(root, "node_modules", "left"), "left", map[string]string{"shared": "1.0.0"})
	writePkg(t, filepath.Join(root, "node_modules", "right"), "right", map[string]string{"shared": "1.0.0"})

	wanted := []ident.LibraryName{{Name: "left"}, {Name: "right"}}
	rt := newTestRuntime(t, root, append(wanted, ident.LibraryName{Name: "shared"}))

	libs, failures := rt.RunAll(wanted)
	if len(failures) != 0 {
		t.Fatalf("RunAll() failures = %v, want none", failures)
	}
	if len(libs) != 2 {
		t.Fatalf("RunAll() resolved %d libraries, want 2", len(libs))
	}
	if len(rt.entries) == 0 {
		t.Fatal("expected the shared dependency's entry to be memoized")
	}
}

func TestRunAll_BreaksMutualDependencyCycle(t *testing.T) {
	root := t.TempDir()
	writePkg(t, filepath.Join(root, "node_modules", "a"), "a", map[string]string{"b": "1.0.0"})
	writePkg(t, filepath.Join(root, "node_modules", "b"), "b", map[string]string{"a": "1.0.0"})

	wanted := []ident.LibraryName{{Name: "a"}, {Name: "b"}}
	rt := newTestRuntime(t, root, wanted)

	libs, failures := rt.RunAll(wanted)
	if len(failures) != 0 {
		t.Fatalf("RunAll() failures = %v, want none (cycle should back off, not fail)", failures)
	}
	if len(libs) != 2 {
		t.Fatalf("RunAll() resolved %d libraries, want 2 (both halves of the cycle still produce a library)", len(libs))
	}
}

func TestRunAll_MissingLibraryFails(t *testing.T) {
	root := t.TempDir()
	wanted := []ident.LibraryName{{Name: "ghost"}}
	rt := newTestRuntime(t, root, nil)

	_, failures := rt.RunAll(wanted)
	if len(failures) != 1 {
		t.Fatalf("RunAll() failures = %d, want 1", len(failures))
	}
}
