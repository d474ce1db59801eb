package moduleengine

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// AugmentModules merges every AugmentedModule in pf's direct members into
// its target module, per spec.md §4.6: find the target among pf's direct
// *tree.Module members by module name, retarget the augmentation's own
// members' code paths onto the target, and remove the consumed
// AugmentedModule node. Only modules are searched: a module's
// default-exported namespace is not used as a target. A module
// name with no matching target in pf's own members is left untouched --
// the caller is expected to apply AugmentModules again once the target
// library's own declarations are merged in, since an augmentation can
// target a dependency rather than a sibling in the same file.
func AugmentModules(pf *tree.ParsedFile) *tree.ParsedFile {
	targets := make(map[string]*tree.Module)
	for _, m := range pf.Members {
		if mod, ok := m.(*tree.Module); ok {
			targets[mod.NameV.String()] = mod
		}
	}

	merged := make(map[string]bool)
	newMembers := make([]tree.Tree, 0, len(pf.Members))
	for _, m := range pf.Members {
		aux, ok := m.(*tree.AugmentedModule)
		if !ok {
			newMembers = append(newMembers, m)
			continue
		}
		target, found := targets[aux.NameV.String()]
		if !found {
			// Remnant: no sibling target in this file, keep it so typedness
			// of the augmentation's own members is preserved for a later pass.
			newMembers = append(newMembers, m)
			continue
		}
		retargeted := retargetMembers(aux.Members, target.CodePath)
		targets[aux.NameV.String()] = target.WithMembers(append(append([]tree.Tree(nil), target.Members...), retargeted...))
		merged[aux.NameV.String()] = true
	}

	if len(merged) == 0 {
		return pf
	}

	out := make([]tree.Tree, 0, len(newMembers))
	for _, m := range newMembers {
		if mod, ok := m.(*tree.Module); ok {
			if updated, ok := targets[mod.NameV.String()]; ok {
				out = append(out, updated)
				continue
			}
		}
		out = append(out, m)
	}
	return pf.WithMembers(out)
}

func retargetMembers(members []tree.Tree, targetPath ident.CodePath) []tree.Tree {
	out := make([]tree.Tree, len(members))
	for i, m := range members {
		named, ok := m.(tree.Named)
		if !ok || !targetPath.IsSet() {
			out[i] = m
			continue
		}
		out[i] = withCodePath(m, targetPath.Add(named.Name()))
	}
	return out
}
