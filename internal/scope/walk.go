package scope

import "github.com/tsdecl/tsconv/internal/tree"

// Hook is one direction (enter or leave) of a scoped visitor: it receives
// the scope already descended into t, and returns t's replacement.
type Hook func(t tree.Tree, s *Scope) tree.Tree

// WalkScoped is the scoped counterpart of tree.WalkUnit (spec.md §4.1): it
// computes the child scope by descending into each node before recursing,
// so enter/leave hooks can resolve references relative to exactly where
// they occur, then reassembles changed nodes identity-preservingly exactly
// like the unit walker.
func WalkScoped(t tree.Tree, s *Scope, enter, leave Hook) tree.Tree {
	child := childScopeFor(s, t)

	cur := t
	if enter != nil {
		cur = enter(cur, child)
	}

	children := tree.Children(cur)
	if len(children) > 0 {
		newChildren := make([]tree.Tree, len(children))
		changed := false
		for i, c := range children {
			nc := WalkScoped(c, child, enter, leave)
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if changed {
			cur = tree.Rebuild(cur, newChildren)
		}
	}

	if leave != nil {
		cur = leave(cur, child)
	}
	return cur
}

// CombineScoped sequentially composes two scoped visitors, a's hooks before
// b's, mirroring tree.CombineUnit.
func CombineScoped(aEnter, aLeave, bEnter, bLeave Hook) (enter, leave Hook) {
	enter = func(t tree.Tree, s *Scope) tree.Tree {
		if aEnter != nil {
			t = aEnter(t, s)
		}
		if bEnter != nil {
			t = bEnter(t, s)
		}
		return t
	}
	leave = func(t tree.Tree, s *Scope) tree.Tree {
		if aLeave != nil {
			t = aLeave(t, s)
		}
		if bLeave != nil {
			t = bLeave(t, s)
		}
		return t
	}
	return enter, leave
}

// childScopeFor computes the scope a visitor sees while inside t: for
// containers, the descended scope (and module-registry registration, via
// Scope.Descend); for generic declarations and signatures, the enclosing
// scope extended with their type parameters bound as abstract idents;
// otherwise the unchanged scope.
func childScopeFor(s *Scope, t tree.Tree) *Scope {
	if ct, ok := t.(tree.ChildScopeTree); ok {
		return s.Descend(ct)
	}
	switch n := t.(type) {
	case *tree.DeclClass:
		return s.WithTypeParams(n.TypeParams)
	case *tree.DeclInterface:
		return s.WithTypeParams(n.TypeParams)
	case *tree.DeclTypeAlias:
		return s.WithTypeParams(n.TypeParams)
	case *tree.DeclFunction:
		return s.WithTypeParams(n.Sig.TypeParams)
	case *tree.MemberFunction:
		return s.WithTypeParams(n.Sig.TypeParams)
	case *tree.MemberCall:
		return s.WithTypeParams(n.Sig.TypeParams)
	case *tree.MemberCtor:
		return s.WithTypeParams(n.Sig.TypeParams)
	}
	return s
}
