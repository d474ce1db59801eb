package transform

import (
	"sort"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// expandTypeMappings evaluates every mapped-type object (`{ [K in Keys]: V
// }`) to its concrete set of properties, per spec.md §4.7's ExpandTypeMappings
// pass specification. A mapped type whose key set can't be statically
// evaluated is left untouched and reported as one of the nine
// TypeMappingProblem sub-kinds rather than abandoning the whole file.
func (p *Pipeline) expandTypeMappings(pf *tree.ParsedFile, s *scope.Scope) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		obj, ok := ty.(*tree.TypeObject)
		if !ok || !obj.IsMappedType() {
			return ty
		}
		mapped := obj.Members[0].(*tree.MemberTypeMapped)
		keys, problem := evaluateKeys(s, mapped.Constraint, scope.NewLoopDetector())
		if problem != nil {
			p.warn(problem)
			return ty
		}
		members := make([]tree.Member, 0, len(keys))
		for _, k := range keys {
			members = append(members, &tree.MemberProperty{
				NameV:      ident.SimpleIdent(k),
				IsReadOnly: mapped.ReadonlyMod == tree.ModifierAdd,
				IsOptional: mapped.OptionalMod == tree.ModifierAdd,
				TypeV:      substituteParam(mapped.ValueV, mapped.ParamName, k),
			})
		}
		return &tree.TypeObject{Members: members}
	}).(*tree.ParsedFile)
}

// expandTypeMappingsAfter re-runs DefaultedTypeArguments-style cleanup that
// ExpandTypeMappings' rewrite can leave behind: a TypeLookup whose Key
// collapsed to a literal string during expansion is simplified to a direct
// reference where the lookup source is now a plain object (the literal key
// already picked its member out during substituteParam, so a leftover
// `Obj[K]` lookup over the *expanded* object is always redundant and would
// otherwise dangle with no matching index signature).
func (p *Pipeline) expandTypeMappingsAfter(pf *tree.ParsedFile) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		lookup, ok := ty.(*tree.TypeLookup)
		if !ok {
			return ty
		}
		obj, ok := lookup.From.(*tree.TypeObject)
		if !ok || obj.IsMappedType() {
			return ty
		}
		lit, ok := lookup.Key.(*tree.TypeLiteral)
		if !ok || lit.Kind != tree.LiteralString {
			return ty
		}
		for _, m := range obj.Members {
			if prop, ok := m.(*tree.MemberProperty); ok && string(prop.NameV) == lit.Str {
				return prop.TypeV
			}
		}
		return ty
	}).(*tree.ParsedFile)
}

// substituteParam replaces every bare reference to paramName inside t with
// the string literal key, the substitution a mapped type's value clause
// (`T[K]`, `${K}`-flavored renames aside) needs once K is bound to a
// concrete property name.
func substituteParam(t tree.Type, paramName ident.SimpleIdent, key string) tree.Type {
	return tree.RewriteType(t, func(ty tree.Type) tree.Type {
		ref, ok := ty.(*tree.TypeRef)
		if !ok || len(ref.QIdentV.Parts) != 1 || len(ref.TParams) != 0 {
			return ty
		}
		if ref.QIdentV.Parts[0] != paramName {
			return ty
		}
		return &tree.TypeLiteral{Kind: tree.LiteralString, Str: key}
	})
}

// evaluateKeys walks t (following type-alias indirection) to a concrete set
// of string property-name keys, per spec.md §4.7's evaluateKeys algorithm.
// Returns a sorted, deduplicated key set, or a TypeMappingProblem describing
// why it couldn't.
func evaluateKeys(s *scope.Scope, t tree.Type, loop scope.LoopDetector) ([]string, *phaseerr.TypeMappingProblem) {
	t, loop, problem := resolveKeyType(s, t, loop)
	if problem != nil {
		return nil, problem
	}
	switch n := t.(type) {
	case *tree.TypeLiteral:
		if n.Kind != tree.LiteralString {
			return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.InvalidType, Detail: "non-string literal key"}
		}
		return []string{n.Str}, nil
	case *tree.TypeUnion:
		set := map[string]bool{}
		for _, elem := range n.Types {
			if tree.IsNeverType(elem) {
				continue
			}
			keys, problem := evaluateKeys(s, elem, loop)
			if problem != nil {
				return nil, problem
			}
			for _, k := range keys {
				set[k] = true
			}
		}
		return sortedKeys(set), nil
	case *tree.TypeKeyOf:
		return evaluateKeyOf(s, n.Operand, loop)
	case *tree.TypeConditional:
		ext, ok := n.Pred.(*tree.TypeExtends)
		if !ok {
			return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.UnsupportedPredicate, Detail: "non-extends conditional predicate"}
		}
		if tree.IsNeverType(n.IfTrue) {
			// Exclude<T, U>: T's keys minus U's keys.
			tKeys, problem := evaluateKeys(s, ext.TypeV, loop)
			if problem != nil {
				return nil, problem
			}
			uKeys, problem := evaluateKeys(s, ext.Extends, loop)
			if problem != nil {
				return nil, problem
			}
			return diffKeys(tKeys, uKeys), nil
		}
		if tree.IsNeverType(n.IfFalse) {
			// Extract<T, U>: T's keys intersected with U's keys.
			tKeys, problem := evaluateKeys(s, ext.TypeV, loop)
			if problem != nil {
				return nil, problem
			}
			uKeys, problem := evaluateKeys(s, ext.Extends, loop)
			if problem != nil {
				return nil, problem
			}
			return intersectKeys(tKeys, uKeys), nil
		}
		return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.UnsupportedPredicate, Detail: "neither branch is never"}
	default:
		return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.UnsupportedTM, Detail: "key type not statically evaluable"}
	}
}

func evaluateKeyOf(s *scope.Scope, operand tree.Type, loop scope.LoopDetector) ([]string, *phaseerr.TypeMappingProblem) {
	resolved, loop, problem := resolveKeyType(s, operand, loop)
	if problem != nil {
		return nil, problem
	}
	switch n := resolved.(type) {
	case *tree.TypeObject:
		return objectPropertyNames(n), nil
	case *tree.TypeRef:
		matches := s.LookupType(n.QIdentV, true)
		if len(matches) != 1 {
			return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.TypeNotFound, Target: n.QIdentV.String()}
		}
		iface, ok := matches[0].(*tree.DeclInterface)
		if !ok {
			return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.NotKeysFromTarget, Target: n.QIdentV.String()}
		}
		members, problem := AllMembersFor(s, iface, loop)
		if problem != nil {
			return nil, problem
		}
		if len(members) == 0 {
			return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.NoMembers, Target: iface.NameV.String()}
		}
		set := map[string]bool{}
		for _, m := range members {
			if named, ok := memberName(m); ok {
				set[string(named)] = true
			}
		}
		return sortedKeys(set), nil
	default:
		return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.NotStatic, Detail: "keyof operand not statically known"}
	}
}

// resolveKeyType follows a Ref through any DeclTypeAlias indirection,
// guarding against cycles with loop.
func resolveKeyType(s *scope.Scope, t tree.Type, loop scope.LoopDetector) (tree.Type, scope.LoopDetector, *phaseerr.TypeMappingProblem) {
	ref, ok := t.(*tree.TypeRef)
	if !ok {
		return t, loop, nil
	}
	next, ok := loop.Including(ref.QIdentV.String())
	if !ok {
		return nil, loop, &phaseerr.TypeMappingProblem{Kind: phaseerr.Loop, Target: ref.QIdentV.String()}
	}
	matches := s.LookupType(ref.QIdentV, true)
	if len(matches) == 0 {
		return t, loop, nil // not an alias; treat the ref itself as terminal (e.g. a builtin).
	}
	if len(matches) != 1 {
		return nil, loop, &phaseerr.TypeMappingProblem{Kind: phaseerr.TypeNotFound, Target: ref.QIdentV.String()}
	}
	alias, ok := matches[0].(*tree.DeclTypeAlias)
	if !ok {
		return t, loop, nil
	}
	return resolveKeyType(s, alias.Alias, next)
}

func objectPropertyNames(obj *tree.TypeObject) []string {
	set := map[string]bool{}
	for _, m := range obj.Members {
		if named, ok := memberName(m); ok {
			set[string(named)] = true
		}
	}
	return sortedKeys(set)
}

func memberName(m tree.Member) (ident.SimpleIdent, bool) {
	switch n := m.(type) {
	case *tree.MemberProperty:
		return n.NameV, true
	case *tree.MemberFunction:
		if n.MethodType == tree.MethodNormal {
			return n.NameV, true
		}
		return "", false
	default:
		return "", false
	}
}

// AllMembersFor combines an interface's own members with those inherited
// through its Inheritance list, a declared member overriding an inherited
// one of the same name (spec.md §4.7's AllMembersFor: "honoring
// override-by-name"). Type parameters of an inherited interface reference
// are substituted via FillInTParams before merging.
func AllMembersFor(s *scope.Scope, iface *tree.DeclInterface, loop scope.LoopDetector) ([]tree.Member, *phaseerr.TypeMappingProblem) {
	byName := map[ident.SimpleIdent]tree.Member{}
	var order []ident.SimpleIdent
	addAll := func(members []tree.Member) {
		for _, m := range members {
			name, ok := memberName(m)
			if !ok {
				continue
			}
			if _, seen := byName[name]; !seen {
				order = append(order, name)
			}
			byName[name] = m
		}
	}

	for _, parent := range iface.Inheritance {
		ref, ok := parent.(*tree.TypeRef)
		if !ok {
			continue
		}
		next, ok := loop.Including(ref.QIdentV.String())
		if !ok {
			return nil, &phaseerr.TypeMappingProblem{Kind: phaseerr.Loop, Target: ref.QIdentV.String()}
		}
		matches := s.LookupType(ref.QIdentV, true)
		if len(matches) != 1 {
			continue
		}
		parentIface, ok := matches[0].(*tree.DeclInterface)
		if !ok {
			continue
		}
		parentMembers, problem := AllMembersFor(s, parentIface, next)
		if problem != nil {
			return nil, problem
		}
		addAll(FillInTParams(parentMembers, parentIface.TypeParams, ref.TParams))
	}
	addAll(iface.Members)

	out := make([]tree.Member, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out, nil
}

// FillInTParams substitutes each of tparams' names appearing (as a bare,
// no-argument Ref) anywhere in members with the corresponding entry of
// args, so an inherited generic interface's members carry concrete types
// rather than the parent's own type-parameter names.
func FillInTParams(members []tree.Member, tparams []tree.TypeParam, args []tree.Type) []tree.Member {
	if len(tparams) == 0 {
		return members
	}
	subst := map[ident.SimpleIdent]tree.Type{}
	for i, tp := range tparams {
		if i < len(args) {
			subst[tp.Name] = args[i]
		}
	}
	out := make([]tree.Member, len(members))
	for i, m := range members {
		out[i] = tree.RewriteTypesInMember(m, func(ty tree.Type) tree.Type {
			ref, ok := ty.(*tree.TypeRef)
			if !ok || len(ref.QIdentV.Parts) != 1 || len(ref.TParams) != 0 {
				return ty
			}
			if repl, ok := subst[ref.QIdentV.Parts[0]]; ok {
				return repl
			}
			return ty
		})
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func diffKeys(a, b []string) []string {
	bs := map[string]bool{}
	for _, k := range b {
		bs[k] = true
	}
	var out []string
	for _, k := range a {
		if !bs[k] {
			out = append(out, k)
		}
	}
	return out
}

func intersectKeys(a, b []string) []string {
	bs := map[string]bool{}
	for _, k := range b {
		bs[k] = true
	}
	var out []string
	for _, k := range a {
		if bs[k] {
			out = append(out, k)
		}
	}
	return out
}
