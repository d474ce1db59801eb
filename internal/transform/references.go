package transform

import (
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// qualifyReferences rewrites every bare TypeRef into a fully-qualified
// code-path reference by looking its head up in s (spec.md §4.7 step 5): a
// ref already carrying more than one segment is assumed already qualified
// and passed through; a single-segment ref that resolves to exactly one
// Named declaration gets rewritten to that declaration's own code path.
// disableUnqualified, when true, skips the rewrite for bare refs entirely --
// used by callers re-running this pass over already-qualified output where
// re-resolving unqualified fallbacks would risk picking up the wrong
// same-named sibling.
func (p *Pipeline) qualifyReferences(pf *tree.ParsedFile, s *scope.Scope, disableUnqualified bool) *tree.ParsedFile {
	enter := func(t tree.Tree, sc *scope.Scope) tree.Tree {
		if disableUnqualified {
			return t
		}
		return tree.RewriteTypesInTree(t, func(ty tree.Type) tree.Type {
			ref, ok := ty.(*tree.TypeRef)
			if !ok || len(ref.QIdentV.Parts) != 1 {
				return ty
			}
			matches := sc.LookupType(ref.QIdentV, false)
			if len(matches) != 1 {
				return ty
			}
			named, ok := matches[0].(tree.Named)
			if !ok || !named.GetCodePath().IsSet() {
				return ty
			}
			cp := *ref
			cp.QIdentV = named.GetCodePath().Path
			return &cp
		})
	}
	return scope.WalkScoped(pf, s, enter, nil).(*tree.ParsedFile)
}

// resolveTypeQueries expands `typeof X` into X's own declared type when X
// resolves to exactly one var declaration that carries a type (spec.md §4.7
// step 7). A target that does not resolve to exactly one declaration is
// left as a TypeQuery and recorded as a ResolveWarning; a target that is
// not a var (a function, a class), or a var with no declared type, is left
// as a TypeQuery with no diagnostic.
func (p *Pipeline) resolveTypeQueries(pf *tree.ParsedFile, s *scope.Scope) *tree.ParsedFile {
	enter := func(t tree.Tree, sc *scope.Scope) tree.Tree {
		return tree.RewriteTypesInTree(t, func(ty tree.Type) tree.Type {
			q, ok := ty.(*tree.TypeQuery)
			if !ok {
				return ty
			}
			matches := sc.LookupIncludeScope(scope.ValueDecl, q.QIdentV)
			if len(matches) != 1 {
				p.warn(&phaseerr.ResolveWarning{Module: q.QIdentV.String()})
				return ty
			}
			v, ok := matches[0].Decl.(*tree.DeclVar)
			if !ok || v.TypeV == nil {
				return ty
			}
			return v.TypeV
		})
	}
	return scope.WalkScoped(pf, s, enter, nil).(*tree.ParsedFile)
}
