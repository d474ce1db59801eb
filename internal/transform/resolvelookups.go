package transform

import (
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// resolveTypeLookups evaluates an indexed-access type `From[Key]` to the
// named member's own declared type when From is a plain object (or,
// through a Ref, an interface) and Key is a single string-literal key
// (spec.md §4.7 step 16). Anything else -- a union key, a numeric/computed
// index, an unresolved From -- is left as a TypeLookup.
func (p *Pipeline) resolveTypeLookups(pf *tree.ParsedFile, s *scope.Scope) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		lookup, ok := ty.(*tree.TypeLookup)
		if !ok {
			return ty
		}
		lit, ok := lookup.Key.(*tree.TypeLiteral)
		if !ok || lit.Kind != tree.LiteralString {
			return ty
		}
		members := membersOfLookupSource(s, lookup.From)
		if members == nil {
			return ty
		}
		for _, m := range members {
			name, ok := memberName(m)
			if !ok || string(name) != lit.Str {
				continue
			}
			if prop, ok := m.(*tree.MemberProperty); ok {
				return prop.TypeV
			}
		}
		return ty
	}).(*tree.ParsedFile)
}

func membersOfLookupSource(s *scope.Scope, from tree.Type) []tree.Member {
	switch n := from.(type) {
	case *tree.TypeObject:
		if n.IsMappedType() {
			return nil
		}
		return n.Members
	case *tree.TypeRef:
		matches := s.LookupType(n.QIdentV, true)
		if len(matches) != 1 {
			return nil
		}
		iface, ok := matches[0].(*tree.DeclInterface)
		if !ok {
			return nil
		}
		members, problem := AllMembersFor(s, iface, scope.NewLoopDetector())
		if problem != nil {
			return nil
		}
		return members
	default:
		return nil
	}
}
