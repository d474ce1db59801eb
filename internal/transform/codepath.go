package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// setCodePaths initializes every declaration's CodePath to its
// library-scoped location before any other step runs (spec.md §3.1's
// CodePath is the canonical, syntactic identity of a declaration — unlike
// JsLocation, computed purely from nesting and never revised by a later
// pass). Mirrors setJsLocation's descend-and-rebuild shape exactly, walking
// from an empty path rooted at the pipeline's own library name.
func (p *Pipeline) setCodePaths(pf *tree.ParsedFile) *tree.ParsedFile {
	out := setPaths(pf, ident.HasPath(p.cfg.LibName, ident.QIdent{}))
	return out.(*tree.ParsedFile)
}

func setPaths(t tree.Tree, parentPath ident.CodePath) tree.Tree {
	path := navigateCodePath(parentPath, t)
	cur := withCodePath(t, path)

	children := tree.Children(cur)
	if len(children) == 0 {
		return cur
	}
	newChildren := make([]tree.Tree, len(children))
	changed := false
	for i, c := range children {
		nc := setPaths(c, path)
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if changed {
		cur = tree.Rebuild(cur, newChildren)
	}
	return cur
}

// navigateCodePath extends path by descending into t: a named declaration
// or container extends the path by its own name; anything else (the file
// root, imports/exports/directives, members) passes the parent's path
// through unchanged.
func navigateCodePath(path ident.CodePath, t tree.Tree) ident.CodePath {
	named, ok := t.(tree.Named)
	if !ok {
		return path
	}
	return path.Add(named.Name())
}

// withCodePath sets a node's CodePath field without disturbing anything
// else; nodes with no CodePath field pass through unchanged.
func withCodePath(t tree.Tree, path ident.CodePath) tree.Tree {
	switch n := t.(type) {
	case *tree.ParsedFile:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.Namespace:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.Module:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.AugmentedModule:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.Global:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.DeclFunction:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.DeclVar:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.DeclEnum:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.DeclClass:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.DeclInterface:
		cp := *n
		cp.CodePath = path
		return &cp
	case *tree.DeclTypeAlias:
		cp := *n
		cp.CodePath = path
		return &cp
	default:
		return t
	}
}
