// Package moduleengine implements spec.md §4.6: the rewrites that turn an
// `Export`/`Import` node into the concrete declarations they introduce,
// module augmentation, the `export as namespace` global-surface lift, and
// the `package.json#exports` proxy-module synthesis. It sits above
// internal/tree and internal/scope, the same layer internal/merge and
// internal/transform occupy.
package moduleengine

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// DeriveCopy produces a structurally-updated copy of decl rebased onto
// newPath/newLoc, per spec.md §4.6's "derive copy": classes become
// `declared` and gain a synthetic parent Ref pointing at their origin
// (rather than copying the original's members, which would duplicate
// state two names could drift apart on); interfaces become type aliases
// pointing at their origin; vars/functions/enums/namespaces/modules are
// rebased in place with their own members' child paths recomputed via
// tree.Rebuild.
func DeriveCopy(decl tree.Tree, newPath ident.CodePath, newLoc ident.JsLocation) tree.Tree {
	newName := declName(decl)
	if newPath.IsSet() && !newPath.Path.Empty() {
		newName = newPath.Path.Last()
	}
	switch d := decl.(type) {
	case *tree.DeclClass:
		originRef := tree.Type(&tree.TypeRef{QIdentV: originQIdent(d.CodePath, d.NameV)})
		return &tree.DeclClass{
			NameV:      newName,
			Comments:   d.Comments,
			Declared:   true,
			TypeParams: d.TypeParams,
			Parent:     &originRef,
			IsAbstract: d.IsAbstract,
			Members:    nil,
			CodePath:   newPath,
			JsLoc:      newLoc,
		}
	case *tree.DeclInterface:
		originRef := tree.Type(&tree.TypeRef{QIdentV: originQIdent(d.CodePath, d.NameV)})
		return &tree.DeclTypeAlias{
			NameV:      newName,
			Comments:   d.Comments,
			Declared:   true,
			TypeParams: d.TypeParams,
			Alias:      originRef,
			CodePath:   newPath,
			JsLoc:      newLoc,
		}
	case *tree.DeclFunction:
		cp := *d
		cp.NameV = newName
		cp.Declared = true
		cp.CodePath = newPath
		cp.JsLoc = newLoc
		return &cp
	case *tree.DeclVar:
		cp := *d
		cp.NameV = newName
		cp.Declared = true
		cp.CodePath = newPath
		cp.JsLoc = newLoc
		return &cp
	case *tree.DeclEnum:
		cp := *d
		cp.NameV = newName
		cp.CodePath = newPath
		cp.JsLoc = newLoc
		return &cp
	case *tree.DeclTypeAlias:
		cp := *d
		cp.NameV = newName
		cp.Declared = true
		cp.CodePath = newPath
		cp.JsLoc = newLoc
		return &cp
	case *tree.Namespace:
		return rebaseContainer(d, newPath, newLoc)
	case *tree.Module:
		return rebaseContainer(d, newPath, newLoc)
	default:
		return decl
	}
}

// declName returns decl's own name, used by DeriveCopy when newPath carries
// no path of its own (e.g. ModuleAsGlobalNamespace lifting a decl that has
// no library-relative code path yet).
func declName(decl tree.Tree) ident.SimpleIdent {
	if n, ok := decl.(tree.Named); ok {
		return n.Name()
	}
	return ""
}

// originQIdent builds the qualified reference DeriveCopy's synthetic
// parent/alias points at: the declaration's own code path if it has one,
// falling back to its bare name.
func originQIdent(cp ident.CodePath, name ident.SimpleIdent) ident.QIdent {
	if cp.IsSet() {
		return cp.Path
	}
	return ident.NewQIdent(name)
}

// rebaseContainer rebases a Namespace/Module's own path/location and
// recomputes each direct child's code path under the new prefix, via
// tree.Rebuild so unchanged grandchildren keep their identity.
func rebaseContainer(t tree.ChildScopeTree, newPath ident.CodePath, newLoc ident.JsLocation) tree.Tree {
	members := tree.Children(t)
	newMembers := make([]tree.Tree, len(members))
	for i, m := range members {
		named, ok := m.(tree.Named)
		if !ok {
			newMembers[i] = m
			continue
		}
		childPath := newPath
		if newPath.IsSet() {
			childPath = newPath.Add(named.Name())
		}
		newMembers[i] = m
		if childPath.IsSet() {
			newMembers[i] = withCodePath(m, childPath)
		}
	}
	rebuilt := tree.Rebuild(t, newMembers)
	switch r := rebuilt.(type) {
	case *tree.Namespace:
		cp := *r
		cp.CodePath = newPath
		cp.JsLoc = newLoc
		return &cp
	case *tree.Module:
		cp := *r
		cp.CodePath = newPath
		cp.JsLoc = newLoc
		return &cp
	default:
		return rebuilt
	}
}

// withCodePath sets a declaration's CodePath field without disturbing any
// other field, used when rebasing a container's direct children onto a new
// path prefix.
func withCodePath(t tree.Tree, cp ident.CodePath) tree.Tree {
	switch d := t.(type) {
	case *tree.DeclClass:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.DeclInterface:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.DeclFunction:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.DeclVar:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.DeclEnum:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.DeclTypeAlias:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.Namespace:
		n := *d
		n.CodePath = cp
		return &n
	case *tree.Module:
		n := *d
		n.CodePath = cp
		return &n
	default:
		return t
	}
}
