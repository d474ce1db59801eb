// Package resolver implements spec.md §4.8.4's library resolver: scanning
// a node_modules root (including @types/*) into a name-indexed set of
// library Sources, which internal/phase.Driver consumes via a getDeps
// callback. Grounded on the teacher's internal/discovery.Walker (a
// directory scan that classifies what it finds into a typed result) and
// internal/config.LoadProjectConfig (the stdlib/options bootstrapping
// shape), generalized from "scan a repo for source files" to "scan
// node_modules for typed libraries".
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/tsdecl/tsconv/internal/fsio"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/phase"
	"github.com/tsdecl/tsconv/internal/pkgjson"
	"github.com/tsdecl/tsconv/internal/scope"
)

// LookupResult discriminates library(name)'s three outcomes (spec.md
// §4.8.4).
type LookupResult int

const (
	Found LookupResult = iota
	Ignored
	NotAvailable
)

// ResolvedModule distinguishes a module resolved to a file within the
// requesting library itself (Local) from one living in a different,
// already-known library (NotLocal).
type ResolvedModule struct {
	Local      bool
	File       string // Local
	ModuleName ident.ModuleName
	Source     phase.Source // NotLocal
}

// Options carries the bootstrap knobs spec.md §4.8.4 names: the stdlib
// file list to require under <fromFolder>/typescript/lib, the set of
// library names Library reports as Ignored, and the logger for scan
// warnings. The libraries the caller wants resolved are passed to
// FromNodeModules separately.
type Options struct {
	StdlibFiles []string
	IgnoredLibs map[string]bool
	Logger      scope.Logger
}

// Bootstrap is the resolved view of one node_modules root: every library
// source found, indexed by name, with the first discovered source for a
// given name winning (spec.md's "precedence to the first source found").
type Bootstrap struct {
	fromFolder string
	opts       Options
	sources    map[string]phase.Source // keyed by LibraryName.Unscoped().String()
	order      []string
}

// FromNodeModules scans fromFolder's typescript/lib (the stdlib),
// fromFolder's node_modules/@types, and fromFolder's node_modules proper,
// in that precedence order, returning Unresolved when any of wantedLibs
// can't be found anywhere.
func FromNodeModules(fromFolder string, opts Options, wantedLibs []ident.LibraryName) (*Bootstrap, error) {
	b := &Bootstrap{fromFolder: fromFolder, opts: opts, sources: map[string]phase.Source{}}

	stdlibDir := filepath.Join(fromFolder, "typescript", "lib")
	if info, err := os.Stat(stdlibDir); err == nil && info.IsDir() {
		b.addSource(phase.Source{
			LibName:     ident.LibraryName{Name: "std"},
			Folder:      stdlibDir,
			IsStdlib:    true,
			StdlibFiles: opts.StdlibFiles,
		})
	}

	nodeModules := filepath.Join(fromFolder, "node_modules")
	if typesDir := filepath.Join(nodeModules, "@types"); dirExists(typesDir) {
		b.scanScope(typesDir, "types")
	}
	b.scanScope(nodeModules, "")

	var missing []string
	for _, want := range wantedLibs {
		if _, ok := b.sources[want.Unscoped().String()]; !ok {
			missing = append(missing, want.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &Unresolved{Names: missing}
	}
	return b, nil
}

// Unresolved mirrors phaseerr.Unresolved's text for the resolver's own
// bootstrap failure, carrying the missing library names for the caller's
// user-facing message (spec.md §7).
type Unresolved struct{ Names []string }

func (e *Unresolved) Error() string {
	return fmt.Sprintf("Missing typescript definitions for the following libraries: %s. Try to add a corresponding `@types` npm package, or use `stIgnore` to ignore", strings.Join(e.Names, ", "))
}

// normalizeSemver prefixes a bare npm version ("1.2.3") with "v" as
// golang.org/x/mod/semver requires.
func normalizeSemver(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// scanScope walks one node_modules-shaped directory (either the @types
// folder, where every entry is itself a library, or node_modules proper,
// where scoped packages live one level deeper under their own @scope
// folder) and registers every library it finds.
func (b *Bootstrap) scanScope(dir string, forcedScope string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || name == "@types" {
			continue
		}
		if strings.HasPrefix(name, "@") && forcedScope == "" {
			b.scanScope(filepath.Join(dir, name), strings.TrimPrefix(name, "@"))
			continue
		}

		var libName ident.LibraryName
		if forcedScope != "" {
			libName = ident.LibraryName{Scope: forcedScope, Name: name}
			if forcedScope == "types" {
				libName = libName.Unscoped()
			}
		} else {
			libName = ident.LibraryName{Name: name}
		}

		folder := filepath.Join(dir, name)
		pkg, _ := pkgjson.Load(filepath.Join(folder, "package.json"))
		if pkg != nil && pkg.Version != "" && !semver.IsValid(normalizeSemver(pkg.Version)) && b.opts.Logger != nil {
			b.opts.Logger.Printf("resolver: %s has a non-semver version %q", libName.String(), pkg.Version)
		}

		source := phase.Source{LibName: libName, Folder: folder, PkgJSON: pkg}
		if pkg != nil {
			source.Exports = discoverExportFiles(folder, pkg)
		}
		b.addSource(source)
	}
}

func discoverExportFiles(folder string, pkg *pkgjson.PackageJSON) []string {
	if len(pkg.Exports) == 0 {
		return nil
	}
	files, err := fsio.Walk(folder)
	if err != nil {
		return nil
	}
	for i, f := range files {
		rel, err := filepath.Rel(folder, f)
		if err == nil {
			files[i] = filepath.ToSlash(rel)
		}
	}
	return files
}

func (b *Bootstrap) addSource(s phase.Source) {
	key := s.LibName.Unscoped().String()
	if _, exists := b.sources[key]; exists {
		return
	}
	b.sources[key] = s
	b.order = append(b.order, key)
}

// Library looks up name, reporting whether it was Found, deliberately
// Ignored by project config, or simply NotAvailable.
func (b *Bootstrap) Library(name ident.LibraryName) (phase.Source, LookupResult) {
	key := name.Unscoped().String()
	if b.opts.IgnoredLibs[key] {
		return phase.Source{}, Ignored
	}
	src, ok := b.sources[key]
	if !ok {
		return phase.Source{}, NotAvailable
	}
	return src, Found
}

// Module resolves a bare module specifier str, seen while processing
// source's own folder, into either a Local file within that same library
// or a NotLocal reference into a different, already-discovered library.
func (b *Bootstrap) Module(source phase.Source, folder, str string) (ResolvedModule, bool) {
	if strings.HasPrefix(str, ".") {
		file := filepath.Clean(filepath.Join(folder, str))
		for _, candidate := range candidateDtsPaths(file) {
			if fileExists(candidate) {
				name, err := moduleNameFromPath(source.Folder, candidate)
				if err != nil {
					return ResolvedModule{}, false
				}
				return ResolvedModule{Local: true, File: candidate, ModuleName: name}, true
			}
		}
		return ResolvedModule{}, false
	}

	lib := ident.ParseLibraryName(moduleRootName(str))
	if lib.Equal(source.LibName) {
		return ResolvedModule{}, false
	}
	depSource, result := b.Library(lib)
	if result != Found {
		return ResolvedModule{}, false
	}
	name, err := (ident.ModuleNameParser{}).Parse(strings.Split(str, "/"))
	if err != nil {
		return ResolvedModule{}, false
	}
	return ResolvedModule{Local: false, ModuleName: name, Source: depSource}, true
}

func candidateDtsPaths(base string) []string {
	return []string{
		base + ".d.ts",
		filepath.Join(base, "index.d.ts"),
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func moduleRootName(spec string) string {
	if strings.HasPrefix(spec, "@") {
		parts := strings.SplitN(spec, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return spec
	}
	if i := strings.IndexByte(spec, '/'); i >= 0 {
		return spec[:i]
	}
	return spec
}

// ModuleNameFor yields every name file may be referenced by: its
// path-derived canonical name, plus any alias declared by the owning
// library's package.json `typings`/`types` field when file is that
// field's target.
func ModuleNameFor(source phase.Source, file string) ([]ident.ModuleName, error) {
	primary, err := moduleNameFromPath(source.Folder, file)
	if err != nil {
		return nil, err
	}
	names := []ident.ModuleName{primary}

	if source.PkgJSON == nil {
		return names, nil
	}
	for _, typingsPath := range source.PkgJSON.TypingsPaths() {
		abs := filepath.Clean(filepath.Join(source.Folder, typingsPath))
		if abs != filepath.Clean(file) {
			continue
		}
		names = append(names, ident.ModuleName{Scope: source.LibName.Scope, Fragments: []string{source.LibName.Name}})
	}
	return names, nil
}

func moduleNameFromPath(root, file string) (ident.ModuleName, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return ident.ModuleName{}, err
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return (ident.ModuleNameParser{}).Parse(parts)
}
