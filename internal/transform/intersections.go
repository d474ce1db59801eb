package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// defaultedTypeArguments fills in a TypeRef's missing trailing type
// arguments from the referenced declaration's own TypeParam defaults
// (spec.md §4.7 step 12), so a bare `Ref<A>` against `class C<A, B = A>`
// becomes `Ref<A, A>` before later passes reason about arity.
func (p *Pipeline) defaultedTypeArguments(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		ref, ok := ty.(*tree.TypeRef)
		if !ok {
			return ty
		}
		tparams := typeParamsOf(s, ref.QIdentV)
		if len(tparams) <= len(ref.TParams) {
			return ty
		}
		args := append([]tree.Type(nil), ref.TParams...)
		for _, tp := range tparams[len(args):] {
			if tp.Default == nil {
				return ty
			}
			args = append(args, tp.Default)
		}
		cp := *ref
		cp.TParams = args
		return &cp
	}).(*tree.ParsedFile)
}

func typeParamsOf(s *scope.Scope, q ident.QIdent) []tree.TypeParam {
	matches := s.LookupType(q, true)
	if len(matches) != 1 {
		return nil
	}
	switch d := matches[0].(type) {
	case *tree.DeclClass:
		return d.TypeParams
	case *tree.DeclInterface:
		return d.TypeParams
	case *tree.DeclTypeAlias:
		return d.TypeParams
	}
	return nil
}

// typeAliasIntersection rewrites `type T = A & B & {...members}` into
// `interface T extends A, B {...members}` when every intersection
// component is either an object-literal (whose members become the
// interface's own) or a legal-inheritance Ref -- a non-abstract reference
// whose alias-followed target is itself a Ref, a non-mapped Object, or a
// Function (spec.md §4.7's TypeAliasIntersection pass specification).
// Aliases that don't decompose this cleanly (a union component, an
// abstract type-parameter reference, a mapped type) are left as plain type
// aliases.
func (p *Pipeline) typeAliasIntersection(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		alias, ok := t.(*tree.DeclTypeAlias)
		if !ok {
			return t
		}
		inter, ok := alias.Alias.(*tree.TypeIntersect)
		if !ok {
			return t
		}
		var inheritance []tree.Type
		var members []tree.Member
		for _, comp := range inter.Types {
			if obj, ok := comp.(*tree.TypeObject); ok && !obj.IsMappedType() {
				members = append(members, obj.Members...)
				continue
			}
			if isLegalInheritanceType(s, comp) {
				inheritance = append(inheritance, comp)
				continue
			}
			return t // uncategorized remainder: leave the alias as-is.
		}
		if len(inheritance) == 0 {
			return t
		}
		return &tree.DeclInterface{
			NameV:       alias.NameV,
			Comments:    alias.Comments,
			Declared:    alias.Declared,
			TypeParams:  alias.TypeParams,
			Inheritance: inheritance,
			Members:     members,
			CodePath:    alias.CodePath,
			JsLoc:       alias.JsLoc,
		}
	})
	return out.(*tree.ParsedFile)
}

// isLegalInheritanceType reports whether t is something an `extends`
// clause may legally name: a non-abstract Ref whose alias-followed target
// is a Ref, a non-mapped Object, or a Function.
func isLegalInheritanceType(s *scope.Scope, t tree.Type) bool {
	ref, ok := t.(*tree.TypeRef)
	if !ok || s.IsAbstract(ref.QIdentV) {
		return false
	}
	target := followAlias(s, ref, scope.NewLoopDetector())
	switch target.(type) {
	case *tree.TypeRef, *tree.TypeFunction:
		return true
	case *tree.TypeObject:
		return !target.(*tree.TypeObject).IsMappedType()
	}
	return false
}

// followAlias resolves ref through any chain of DeclTypeAlias indirection,
// stopping at the first non-alias target, an unresolved or ambiguous
// lookup, or a cycle.
func followAlias(s *scope.Scope, ref *tree.TypeRef, loop scope.LoopDetector) tree.Type {
	next, ok := loop.Including(ref.QIdentV.String())
	if !ok {
		return ref
	}
	matches := s.LookupType(ref.QIdentV, true)
	if len(matches) != 1 {
		return ref
	}
	alias, ok := matches[0].(*tree.DeclTypeAlias)
	if !ok {
		return ref
	}
	if inner, ok := alias.Alias.(*tree.TypeRef); ok {
		return followAlias(s, inner, next)
	}
	return alias.Alias
}

// rejiggerIntersections flattens any TypeIntersect that itself nests a
// TypeIntersect component (`A & (B & C)` -> `A & B & C`), the cleanup
// TypeAliasIntersection's interface rewrite leaves behind when it declines
// an alias but a sibling intersection elsewhere in the file still embeds
// the unflattened original shape (spec.md §4.7 step 12).
func (p *Pipeline) rejiggerIntersections(pf *tree.ParsedFile) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		inter, ok := ty.(*tree.TypeIntersect)
		if !ok {
			return ty
		}
		flat := make([]tree.Type, 0, len(inter.Types))
		changed := false
		for _, comp := range inter.Types {
			if nested, ok := comp.(*tree.TypeIntersect); ok {
				flat = append(flat, nested.Types...)
				changed = true
				continue
			}
			flat = append(flat, comp)
		}
		if !changed {
			return ty
		}
		return &tree.TypeIntersect{Types: flat}
	}).(*tree.ParsedFile)
}
