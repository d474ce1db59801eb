package scope

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// NavigateJsLocation extends loc by descending into t, per spec.md §9's
// discussion of JsLocation "navigating" a tree: a Named node with a plain
// SimpleIdent name extends the path one level (ident.JsLocation.Add), a
// module boundary starts a fresh module-rooted location, and a non-Named
// node (an import/export/directive) leaves loc unchanged. This lives here,
// not on ident.JsLocation itself, because computing it requires knowing the
// node's tree shape (Module vs. plain Named) and package ident must not
// import package tree.
func NavigateJsLocation(loc ident.JsLocation, t tree.Tree) ident.JsLocation {
	switch n := t.(type) {
	case *tree.Module:
		return ident.NewJsModule(n.NameV, n.Spec)
	case *tree.AugmentedModule:
		return ident.NewJsModule(n.NameV, n.Spec)
	case tree.Named:
		return loc.Add(n.Name())
	default:
		return loc
	}
}
