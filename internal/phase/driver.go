// Package phase implements the spec.md §4.4 phase driver: the per-library
// orchestration that turns a set of declaration files into one merged,
// fully-transformed ParsedFile. Grounded on the teacher's
// internal/pipeline.Pipeline (a struct of staged, independently named
// steps run in a fixed order over one unit of work, here a library rather
// than a repository scan).
package phase

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/merge"
	"github.com/tsdecl/tsconv/internal/moduleengine"
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/pkgjson"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/transform"
	"github.com/tsdecl/tsconv/internal/tree"
)

// Source describes where one library's declaration files live and what
// its package.json says about it -- spec.md §4.4's `LibrarySource`.
type Source struct {
	LibName     ident.LibraryName
	Folder      string
	IsStdlib    bool
	StdlibFiles []string // only consulted when IsStdlib
	PkgJSON     *pkgjson.PackageJSON
	Exports     []string // real, on-disk files backing PkgJSON.Exports glob resolution
}

// Library is a phase driver's successful output: the merged, transformed
// tree plus the version it was built against.
type Library struct {
	Source  Source
	Version string
	Parsed  *tree.ParsedFile

	// PassCounts records the pipeline's per-step declaration-count trace
	// when the Driver that built this Library had TraceLib matching it.
	// Empty otherwise.
	PassCounts []transform.PassCount
}

// Driver carries the cross-library knobs the 10-step algorithm consults.
type Driver struct {
	Parser             func(path string) (*tree.ParsedFile, error)
	Walk               func(dir string) ([]string, error)
	Logger             scope.Logger
	Pedantic           bool
	IgnoredLibs        map[string]bool
	IgnoredPrefixes    []string
	ExpandTypeMappings func(ident.LibraryName) bool
	IsReact            func(ident.LibraryName) bool

	// TraceLib, when non-empty, makes Run enable transform.Pipeline's
	// TracePasses for the one library whose unscoped name matches it,
	// populating that Library's PassCounts -- internal/report's --report
	// flag names a single library to chart, so every other library's
	// pipeline still runs untraced.
	TraceLib string
}

// GetDeps resolves a library's dependency names into already-processed
// Libraries, recursing as needed; the caller (internal/runtime) owns cycle
// detection across the whole dependency graph.
type GetDeps func(deps []ident.LibraryName) phaseerr.PhaseRes[map[ident.LibraryName]*Library]

// Run executes spec.md §4.4's ten steps for one library.
func (d *Driver) Run(source Source, getDeps GetDeps, isCircular bool) phaseerr.PhaseRes[*Library] {
	// Step 1.
	if d.IgnoredLibs[source.LibName.String()] || isCircular {
		return phaseerr.Ignore[*Library]()
	}

	// Step 2: enumerate declaration files.
	files, err := d.declarationFiles(source)
	if err != nil {
		return phaseerr.Failed[*Library](phaseerr.Failure{Source: source.LibName.String(), Msg: err.Error()})
	}
	sort.Strings(files)

	// Step 3: file preparation, one file at a time.
	var prepared []*tree.ParsedFile
	depNames := map[ident.LibraryName]bool{}
	for _, file := range files {
		pf, err := d.Parser(file)
		if err != nil {
			return phaseerr.Failed[*Library](phaseerr.Failure{Source: source.LibName.String(), Msg: fmt.Sprintf("parse %s: %v", file, err)})
		}

		names := moduleNamesForFile(source, file)
		if len(names) > 0 {
			pf = InferredDefaultModule(pf, names[0])
		}

		for _, dir := range pf.Directives {
			if ref, ok := dir.(*tree.TypesRef); ok {
				depNames[ident.ParseLibraryName(ref.Name)] = true
			}
		}

		for _, mod := range resolveExternalReferences(pf, source.LibName) {
			if lib, ok := InferredDependency(mod); ok {
				depNames[lib] = true
				continue
			}
			depNames[ident.ParseLibraryName(moduleRoot(mod))] = true
		}

		prepared = append(prepared, pf)
	}

	// Step 4: flatten all prepared files into one.
	merged := &tree.ParsedFile{IsModule: false}
	for _, pf := range prepared {
		merged = merge.FlattenTrees(merged, pf)
	}

	// Step 5: proxy modules from package.json#exports. A proxy is skipped
	// when a module of the same name already exists -- the library's own
	// .d.ts files already declare it directly, so synthesizing a re-export
	// would duplicate it.
	if source.PkgJSON != nil && len(source.PkgJSON.Exports) > 0 {
		existing := existingModuleNames(merged)
		for name, typesPath := range pkgjson.Flatten(source.PkgJSON.Exports) {
			proxies, err := moduleengine.ProxyModule(source.LibName, name, typesPath, source.Exports)
			if err != nil {
				if d.Logger != nil {
					d.Logger.Printf("proxy module %s: %v", name, err)
				}
				continue
			}
			for _, p := range proxies {
				if existing[p.NameV.String()] {
					continue
				}
				merged.Members = append(merged.Members, p)
			}
		}
	}

	// Step 6: filter modules matching an ignored prefix.
	merged = filterIgnoredPrefixes(merged, d.IgnoredPrefixes)

	// Step 7: stdlib + declared dependencies.
	if !source.IsStdlib {
		depNames[ident.LibraryName{Name: "std"}] = true
	}
	if source.PkgJSON != nil {
		for name := range source.PkgJSON.Dependencies {
			depNames[ident.ParseLibraryName(name)] = true
		}
	}
	deps := make([]ident.LibraryName, 0, len(depNames))
	for lib := range depNames {
		deps = append(deps, lib)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].String() < deps[j].String() })

	// Step 8: resolve dependencies.
	depRes := getDeps(deps)
	if depRes.IsIgnore() {
		return phaseerr.Ignore[*Library]()
	}
	if depRes.IsFailure() {
		return phaseerr.Failed[*Library](depRes.Failures...)
	}

	var transitive []*tree.ParsedFile
	for _, lib := range depRes.Value {
		if lib != nil && lib.Parsed != nil {
			transitive = append(transitive, lib.Parsed)
		}
	}

	// Step 9: root scope.
	_ = scope.Root(source.LibName, d.Pedantic, transitive, d.Logger)

	// Step 10: run the pipeline.
	cfg := transform.Config{
		LibName:            source.LibName,
		ExpandTypeMappings: d.ExpandTypeMappings,
		Pedantic:           d.Pedantic,
		TransitiveDeps:     transitive,
		Logger:             d.Logger,
	}
	if d.IsReact != nil {
		cfg.IsReact = d.IsReact(source.LibName)
	}
	if cfg.ExpandTypeMappings == nil {
		cfg.ExpandTypeMappings = func(ident.LibraryName) bool { return true }
	}
	pipeline := transform.New(cfg)
	pipeline.TracePasses = d.TraceLib != "" && d.TraceLib == source.LibName.Unscoped().String()
	res := pipeline.Run(merged)
	if !res.IsOk() {
		return phaseerr.Failed[*Library](phaseerr.Failure{Source: source.LibName.String(), Msg: "pipeline failed"})
	}

	version := ""
	if source.PkgJSON != nil {
		version = source.PkgJSON.Version
	}
	return phaseerr.Ok(&Library{Source: source, Version: version, Parsed: res.Value, PassCounts: pipeline.PassCounts})
}

func (d *Driver) declarationFiles(source Source) ([]string, error) {
	if source.IsStdlib {
		out := make([]string, len(source.StdlibFiles))
		for i, f := range source.StdlibFiles {
			out[i] = filepath.Join(source.Folder, f)
		}
		return out, nil
	}
	walk := d.Walk
	if walk == nil {
		return nil, fmt.Errorf("phase: no Walk function configured")
	}
	all, err := walk(source.Folder)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		if PathsFromTsLibSource(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// PathsFromTsLibSource reports whether path is a declaration file worth
// feeding to the parser: a `.d.ts` file outside the common scratch
// directories spec.md §6.2 names. node_modules is deliberately not in this
// list: every library's own Folder already lives under a node_modules
// root, so excluding that segment would skip every file of every library.
func PathsFromTsLibSource(path string) bool {
	if !strings.HasSuffix(path, ".d.ts") {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		switch part {
		case ".idea", "target", ".git":
			return false
		}
	}
	return true
}

// moduleNamesForFile derives the canonical module name(s) InferredDefaultModule
// can wrap orphan content under, from the file's path relative to the
// library's folder.
func moduleNamesForFile(source Source, file string) []ident.ModuleName {
	rel, err := filepath.Rel(source.Folder, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	full := append(append([]string{}, source.LibName.Name), parts...)
	name, err := (ident.ModuleNameParser{}).Parse(full)
	if err != nil {
		return nil
	}
	return []ident.ModuleName{name}
}

// existingModuleNames collects the string name of every top-level Module
// already present in pf, so step 5's proxy synthesis can skip names that
// would collide with a module the library's own files already declare.
func existingModuleNames(pf *tree.ParsedFile) map[string]bool {
	out := map[string]bool{}
	for _, m := range pf.Members {
		if mod, ok := m.(*tree.Module); ok {
			out[mod.NameV.String()] = true
		}
	}
	return out
}

func filterIgnoredPrefixes(pf *tree.ParsedFile, prefixes []string) *tree.ParsedFile {
	if len(prefixes) == 0 {
		return pf
	}
	members := make([]tree.Tree, 0, len(pf.Members))
	for _, m := range pf.Members {
		mod, ok := m.(*tree.Module)
		if !ok {
			members = append(members, m)
			continue
		}
		if matchesAnyPrefix(mod.NameV, prefixes) {
			continue
		}
		members = append(members, m)
	}
	return pf.WithMembers(members)
}

func matchesAnyPrefix(name ident.ModuleName, prefixes []string) bool {
	for _, frag := range name.Fragments {
		for _, p := range prefixes {
			if strings.HasPrefix(frag, p) {
				return true
			}
		}
	}
	return false
}
