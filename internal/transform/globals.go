package transform

import (
	"github.com/tsdecl/tsconv/internal/moduleengine"
	"github.com/tsdecl/tsconv/internal/tree"
)

// augmentModules merges every AugmentedModule sibling into the module it
// targets (spec.md §4.7 step 6), delegating directly to
// internal/moduleengine.AugmentModules.
func (p *Pipeline) augmentModules(pf *tree.ParsedFile) *tree.ParsedFile {
	return moduleengine.AugmentModules(pf)
}

// moduleAsGlobalNamespace lifts any top-level Module carrying an
// ExportAsNamespace into an additional Global sibling (spec.md §4.7 step
// 9), leaving the originating Module itself in place -- a UMD-style
// library is reachable both as an ES module and as the named global the
// `export as namespace` declares.
func (p *Pipeline) moduleAsGlobalNamespace(pf *tree.ParsedFile) *tree.ParsedFile {
	var lifted []tree.Tree
	for _, m := range pf.Members {
		mod, ok := m.(*tree.Module)
		if !ok {
			continue
		}
		if g, ok := moduleengine.ModuleAsGlobalNamespace(mod); ok {
			lifted = append(lifted, g)
		}
	}
	if len(lifted) == 0 {
		return pf
	}
	return pf.WithMembers(append(append([]tree.Tree{}, pf.Members...), lifted...))
}

// moveGlobals lifts every top-level Global's members up to pf's own member
// list (spec.md §4.7 step 10), discarding the now-empty Global wrapper --
// the tree model has no other use for a bare Global once its contents sit
// directly alongside the rest of the file's top-level declarations.
func (p *Pipeline) moveGlobals(pf *tree.ParsedFile) *tree.ParsedFile {
	out := make([]tree.Tree, 0, len(pf.Members))
	changed := false
	for _, m := range pf.Members {
		g, ok := m.(*tree.Global)
		if !ok {
			out = append(out, m)
			continue
		}
		changed = true
		out = append(out, g.Members...)
	}
	if !changed {
		return pf
	}
	return pf.WithMembers(out)
}
