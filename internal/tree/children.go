package tree

// Children returns the direct Tree-shaped children of a node: a
// container's members, or a class/interface's members reinterpreted as
// Tree (every Member embeds Tree). Declarations, individual members,
// imports/exports and directives have no Tree children — their
// substructure is Type nodes, walked separately by RewriteTypesInTree.
func Children(t Tree) []Tree {
	switch n := t.(type) {
	case *ParsedFile:
		return n.Members
	case *Namespace:
		return n.Members
	case *Module:
		return n.Members
	case *AugmentedModule:
		return n.Members
	case *Global:
		return n.Members
	case *DeclClass:
		return membersToTree(n.Members)
	case *DeclInterface:
		return membersToTree(n.Members)
	default:
		return nil
	}
}

func membersToTree(ms []Member) []Tree {
	out := make([]Tree, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func treeToMembers(ts []Tree) []Member {
	out := make([]Member, len(ts))
	for i, t := range ts {
		out[i] = t.(Member)
	}
	return out
}

// Rebuild reconstructs a node with a new child list, preserving object
// identity when the list is unchanged (spec.md §4.1's walker requirement
// (c): "reassemble the node if any child changed, identity-preserving when
// no change occurred").
func Rebuild(t Tree, children []Tree) Tree {
	switch n := t.(type) {
	case *ParsedFile:
		return n.WithMembers(children)
	case *Namespace:
		return n.WithMembers(children)
	case *Module:
		return n.WithMembers(children)
	case *AugmentedModule:
		return n.WithMembers(children)
	case *Global:
		return n.WithMembers(children)
	case *DeclClass:
		return n.WithMembers(treeToMembers(children))
	case *DeclInterface:
		return n.WithMembers(treeToMembers(children))
	default:
		return t
	}
}

// WalkUnit is the plain (unscoped) visitor driver of spec.md §4.1: it
// computes no child context, recurses depth-first, calls enter before
// descending and leave after reassembling, and preserves node identity
// when neither hook changes anything. A nil enter/leave is a no-op.
func WalkUnit(t Tree, enter, leave func(Tree) Tree) Tree {
	cur := t
	if enter != nil {
		cur = enter(cur)
	}
	children := Children(cur)
	if len(children) > 0 {
		newChildren := make([]Tree, len(children))
		changed := false
		for i, c := range children {
			nc := WalkUnit(c, enter, leave)
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if changed {
			cur = Rebuild(cur, newChildren)
		}
	}
	if leave != nil {
		cur = leave(cur)
	}
	return cur
}

// CombineUnit sequentially composes two unit visitors: a's hooks run before
// b's, matching spec.md §4.1's "visitors compose with a sequential-combine
// operator".
func CombineUnit(aEnter, aLeave, bEnter, bLeave func(Tree) Tree) (enter, leave func(Tree) Tree) {
	enter = func(t Tree) Tree {
		if aEnter != nil {
			t = aEnter(t)
		}
		if bEnter != nil {
			t = bEnter(t)
		}
		return t
	}
	leave = func(t Tree) Tree {
		if aLeave != nil {
			t = aLeave(t)
		}
		if bLeave != nil {
			t = bLeave(t)
		}
		return t
	}
	return enter, leave
}
