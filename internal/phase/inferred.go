package phase

import (
	"strings"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// InferredDefaultModule implements spec.md §4.8.1: a module file whose
// top-level content is more than imports, augmentations, and ambient
// type-only declarations gets wrapped into a synthetic
// `declare module "<name>" { ... }`, unless it already declares that
// module itself. Files that aren't modules, or that already declare name,
// or whose only members are augment-only, pass through unchanged.
func InferredDefaultModule(pf *tree.ParsedFile, name ident.ModuleName) *tree.ParsedFile {
	if !pf.IsModule {
		return pf
	}
	for _, m := range pf.Members {
		if mod, ok := m.(*tree.Module); ok && mod.NameV.Equal(name) {
			return pf
		}
	}
	if allAugmentOnly(pf.Members) {
		return pf
	}
	wrapped := &tree.Module{
		NameV:    name,
		Spec:     ident.ModuleSpec(name.String()),
		Declared: true,
		Members:  pf.Members,
		CodePath: pf.CodePath,
		JsLoc:    pf.JsLoc,
	}
	return pf.WithMembers([]tree.Tree{wrapped})
}

// allAugmentOnly reports whether every member is one of the kinds that
// doesn't need wrapping on its own: imports, augmentations of other
// modules, nested ambient modules, and ambient type-only declarations.
func allAugmentOnly(members []tree.Tree) bool {
	for _, m := range members {
		switch m.(type) {
		case *tree.Import, *tree.AugmentedModule, *tree.Module,
			*tree.DeclTypeAlias, *tree.DeclInterface:
			continue
		default:
			return false
		}
	}
	return true
}

// inferredDependencyTable is the spec.md §4.8.2 fixed ambient-name to
// dependency heuristic: a handful of Node.js global module names that
// commonly appear unresolved in third-party .d.ts files because the
// author assumed an ambient @types/node was already in scope.
var inferredDependencyTable = map[string]ident.LibraryName{
	"fs":            {Name: "node"},
	"path":          {Name: "node"},
	"events":        {Name: "node"},
	"http":          {Name: "node"},
	"https":         {Name: "node"},
	"net":           {Name: "node"},
	"stream":        {Name: "node"},
	"buffer":        {Name: "node"},
	"process":       {Name: "node"},
	"crypto":        {Name: "node"},
	"child_process": {Name: "node"},
	"os":            {Name: "node"},
	"url":           {Name: "node"},
	"util":          {Name: "node"},
	"zlib":          {Name: "node"},
	"react":         {Name: "react"},
}

// InferredDependency looks up an unresolved module specifier in the fixed
// heuristic table, returning the library it's assumed to come from.
func InferredDependency(module string) (ident.LibraryName, bool) {
	root := module
	if i := strings.IndexByte(root, '/'); i >= 0 {
		root = root[:i]
	}
	lib, ok := inferredDependencyTable[root]
	return lib, ok
}

// resolveExternalReferences walks every Import/Export carrying a module
// specifier and collects every bare (non-relative) specifier that doesn't
// name self, as spec.md's ResolveExternalReferences does. The caller
// resolves each one into a dependency library name, consulting
// InferredDependency for bare specifiers that name a Node.js builtin
// rather than an installed package.
func resolveExternalReferences(pf *tree.ParsedFile, self ident.LibraryName) []string {
	seen := map[string]bool{}
	var out []string

	record := func(spec ident.ModuleSpec) {
		s := string(spec)
		if s == "" || strings.HasPrefix(s, ".") || seen[s] {
			return
		}
		seen[s] = true
		if ident.ParseLibraryName(moduleRoot(s)).Equal(self) {
			return
		}
		out = append(out, s)
	}

	var walk func(members []tree.Tree)
	walk = func(members []tree.Tree) {
		for _, m := range members {
			switch n := m.(type) {
			case *tree.Import:
				if n.From.Kind == tree.ImporteeFrom || n.From.Kind == tree.ImporteeRequired {
					record(n.From.Module)
				}
			case *tree.Export:
				if n.Exported.HasFrom {
					record(n.Exported.From)
				}
				if n.Exported.Kind == tree.ExporteeImport && n.Exported.Import != nil {
					if n.Exported.Import.From.Kind == tree.ImporteeFrom || n.Exported.Import.From.Kind == tree.ImporteeRequired {
						record(n.Exported.Import.From.Module)
					}
				}
			case *tree.Module:
				walk(n.Members)
			case *tree.AugmentedModule:
				walk(n.Members)
			case *tree.Namespace:
				walk(n.Members)
			case *tree.Global:
				walk(n.Members)
			}
		}
	}
	walk(pf.Members)
	return out
}

func moduleRoot(spec string) string {
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
