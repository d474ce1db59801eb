package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// setJsLocation initializes every declaration's JsLocation by descending
// from the global root (spec.md §4.7 step 2), using scope.NavigateJsLocation
// to compute each node's location from its parent's — a plain-ident node
// extends the global path by its own name, a Module/AugmentedModule starts
// a fresh module-rooted location, and anything else (the file root,
// imports/exports/directives) passes its parent's location through
// unchanged.
func (p *Pipeline) setJsLocation(pf *tree.ParsedFile) *tree.ParsedFile {
	out := setLocations(pf, ident.NewJsGlobal(ident.QIdent{}))
	return out.(*tree.ParsedFile)
}

func setLocations(t tree.Tree, parentLoc ident.JsLocation) tree.Tree {
	loc := scope.NavigateJsLocation(parentLoc, t)
	cur := withJsLocation(t, loc)

	children := tree.Children(cur)
	if len(children) == 0 {
		return cur
	}
	newChildren := make([]tree.Tree, len(children))
	changed := false
	for i, c := range children {
		nc := setLocations(c, loc)
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

// withJsLocation sets a node's JsLoc field without disturbing anything
// else; nodes with no JsLoc field (members, imports/exports, directives)
// pass through unchanged.
func withJsLocation(t tree.Tree, loc ident.JsLocation) tree.Tree {
	switch n := t.(type) {
	case *tree.ParsedFile:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.Namespace:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.Module:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.AugmentedModule:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.Global:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.DeclFunction:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.DeclVar:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.DeclEnum:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.DeclClass:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.DeclInterface:
		cp := *n
		cp.JsLoc = loc
		return &cp
	case *tree.DeclTypeAlias:
		cp := *n
		cp.JsLoc = loc
		return &cp
	default:
		return t
	}
}
