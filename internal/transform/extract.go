package transform

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// extractInterfaces implements spec.md §4.7 step 18: every non-empty,
// anonymous, non-mapped object type reachable from pf -- other than the direct body
// of a type alias, which already has a name, its own -- is replaced by a
// reference to a freshly synthesized top-level interface carrying its
// members, named via DeriveNonConflictingName(libName, "anon").
func (p *Pipeline) extractInterfaces(pf *tree.ParsedFile) *tree.ParsedFile {
	used := topLevelNames(pf)
	var extracted []tree.Tree

	extractFn := func(ty tree.Type) tree.Type {
		obj, ok := ty.(*tree.TypeObject)
		if !ok || obj.IsMappedType() || len(obj.Members) == 0 {
			return ty
		}
		name := DeriveNonConflictingName("anon", obj.Members, func(cand ident.SimpleIdent) bool {
			if used[cand] {
				return false
			}
			used[cand] = true
			return true
		})
		extracted = append(extracted, &tree.DeclInterface{
			NameV:    name,
			Members:  obj.Members,
			CodePath: ident.HasPath(p.cfg.LibName, ident.NewQIdent(name)),
		})
		return &tree.TypeRef{QIdentV: ident.NewQIdent(name)}
	}

	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		alias, ok := t.(*tree.DeclTypeAlias)
		if !ok {
			return rewriteDeclTypes(t, extractFn)
		}
		obj, ok := alias.Alias.(*tree.TypeObject)
		if !ok || obj.IsMappedType() {
			return rewriteDeclTypes(t, extractFn)
		}
		members := make([]tree.Member, len(obj.Members))
		changed := false
		for i, m := range obj.Members {
			rm := tree.RewriteTypesInMember(m, extractFn)
			members[i] = rm
			if rm != m {
				changed = true
			}
		}
		if !changed {
			return t
		}
		cp := *alias
		cp.Alias = &tree.TypeObject{Members: members}
		return &cp
	})
	pf = out.(*tree.ParsedFile)
	if len(extracted) == 0 {
		return pf
	}
	return pf.WithMembers(append(append([]tree.Tree{}, pf.Members...), extracted...))
}

// rewriteDeclTypes applies fn to every Type nested in t when t is one of
// the declaration kinds RewriteTypesInTree knows how to rewrite in full;
// anything else (containers, members, imports/exports, directives) is
// returned unchanged, since WalkUnit's own Children/Rebuild recursion
// already reaches their substructure.
func rewriteDeclTypes(t tree.Tree, fn func(tree.Type) tree.Type) tree.Tree {
	switch t.(type) {
	case *tree.DeclFunction, *tree.DeclVar, *tree.DeclClass, *tree.DeclInterface, *tree.DeclTypeAlias:
		return tree.RewriteTypesInTree(t, fn)
	default:
		return t
	}
}

func topLevelNames(pf *tree.ParsedFile) map[ident.SimpleIdent]bool {
	used := map[ident.SimpleIdent]bool{}
	for _, m := range pf.Members {
		if named, ok := m.(tree.Named); ok {
			used[named.Name()] = true
		}
	}
	return used
}

// extractClasses implements spec.md §4.7 step 19: every anonymous object
// type that carries at least one construct signature is replaced by a
// reference to a freshly synthesized top-level class, named via
// DeriveNonConflictingName(libName, "Class"); unless the library is
// React, expandCallables then runs to collapse any remaining call-only
// anonymous object into a plain function type.
func (p *Pipeline) extractClasses(pf *tree.ParsedFile) *tree.ParsedFile {
	used := topLevelNames(pf)
	var extracted []tree.Tree

	extractFn := func(ty tree.Type) tree.Type {
		obj, ok := ty.(*tree.TypeObject)
		if !ok || obj.IsMappedType() || !hasCtor(obj.Members) {
			return ty
		}
		name := DeriveNonConflictingName("Class", obj.Members, func(cand ident.SimpleIdent) bool {
			if used[cand] {
				return false
			}
			used[cand] = true
			return true
		})
		extracted = append(extracted, &tree.DeclClass{
			NameV:    name,
			Comments: comments.List{comments.MarkerComment(comments.ExpandedClass, "")},
			Members:  obj.Members,
			CodePath: ident.HasPath(p.cfg.LibName, ident.NewQIdent(name)),
		})
		return &tree.TypeRef{QIdentV: ident.NewQIdent(name)}
	}

	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		return rewriteDeclTypes(t, extractFn)
	})
	pf = out.(*tree.ParsedFile)
	if len(extracted) > 0 {
		pf = pf.WithMembers(append(append([]tree.Tree{}, pf.Members...), extracted...))
	}

	if !p.cfg.IsReact {
		pf = expandCallables(pf)
	}
	return pf
}

func hasCtor(members []tree.Member) bool {
	for _, m := range members {
		if _, ok := m.(*tree.MemberCtor); ok {
			return true
		}
	}
	return false
}

// expandCallables collapses any object type whose sole member is a single
// call signature into the bare function type it describes, dropping the
// wrapper object a construct like `{ (x: number): string }` would
// otherwise carry forward unchanged.
func expandCallables(pf *tree.ParsedFile) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		obj, ok := ty.(*tree.TypeObject)
		if !ok || len(obj.Members) != 1 {
			return ty
		}
		call, ok := obj.Members[0].(*tree.MemberCall)
		if !ok {
			return ty
		}
		return &tree.TypeFunction{Sig: call.Sig}
	}).(*tree.ParsedFile)
}
