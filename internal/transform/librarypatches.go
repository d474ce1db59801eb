package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// libraryPatch is a scoped visitor applied only to one named library,
// mirroring spec.md §4.7 step 1's "each patch is a scoped visitor; unknown
// libs get identity."
type libraryPatch func(*tree.ParsedFile) *tree.ParsedFile

// libraryPatches is the enumerable per-library patch set spec.md §4.7
// names explicitly. Each entry encodes a single known quirk of that
// library's real-world .d.ts shape; an unlisted library runs none of them.
var libraryPatches = map[string]libraryPatch{
	"std":                  patchStd,
	"react":                patchReact,
	"styled-components":    patchStyledComponents,
	"amap-js-api":          patchAmapJsApi,
	"semantic-ui-react":    patchSemanticUIReact,
}

// applyLibrarySpecific runs lib's registered patch, or passes pf through
// unchanged when no patch is registered.
func applyLibrarySpecific(lib ident.LibraryName, pf *tree.ParsedFile) *tree.ParsedFile {
	patch, ok := libraryPatches[lib.String()]
	if !ok {
		return pf
	}
	return patch(pf)
}

// patchStd is the patch registered for the TypeScript standard library. It
// returns pf unchanged: no std-specific rewrite is applied.
func patchStd(pf *tree.ParsedFile) *tree.ParsedFile {
	return pf
}

// patchReact strips the `LibraryManagedAttributes`/`JSXElementConstructor`
// plumbing types react's .d.ts uses purely for compiler-internal JSX
// inference, which this pipeline's output has no use for since it has no
// JSX type-checker of its own to feed.
func patchReact(pf *tree.ParsedFile) *tree.ParsedFile {
	drop := map[ident.SimpleIdent]bool{
		"LibraryManagedAttributes": true,
		"JSXElementConstructor":    true,
	}
	return filterTopLevel(pf, func(t tree.Tree) bool {
		named, ok := t.(tree.Named)
		return !ok || !drop[named.Name()]
	})
}

// patchStyledComponents drops the library's internal `IStyledComponent`
// brand interface, an implementation-detail type never meant to be named
// by consumers of the public API.
func patchStyledComponents(pf *tree.ParsedFile) *tree.ParsedFile {
	return filterTopLevel(pf, func(t tree.Tree) bool {
		named, ok := t.(tree.Named)
		return !ok || named.Name() != "IStyledComponent"
	})
}

// patchAmapJsApi is a no-op placeholder: the library's .d.ts has no known
// quirk this pipeline needs to special-case, but it is enumerated here (per
// spec.md §4.7's own enumerable list) so a future quirk has a named home.
func patchAmapJsApi(pf *tree.ParsedFile) *tree.ParsedFile { return pf }

// patchSemanticUIReact is likewise a named no-op placeholder.
func patchSemanticUIReact(pf *tree.ParsedFile) *tree.ParsedFile { return pf }

func filterTopLevel(pf *tree.ParsedFile, keep func(tree.Tree) bool) *tree.ParsedFile {
	out := make([]tree.Tree, 0, len(pf.Members))
	changed := false
	for _, m := range pf.Members {
		if keep(m) {
			out = append(out, m)
		} else {
			changed = true
		}
	}
	if !changed {
		return pf
	}
	return pf.WithMembers(out)
}
