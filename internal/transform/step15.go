package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// typeAliasToConstEnum collapses `type T = E.A | E.B | E.C` into `type T =
// E` when the union names every member of the same const enum E -- the
// alias is redundant once it covers the enum's full value space, and
// referencing E directly keeps downstream consumers from having to
// re-derive that the union was exhaustive.
func (p *Pipeline) typeAliasToConstEnum(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		alias, ok := t.(*tree.DeclTypeAlias)
		if !ok {
			return t
		}
		union, ok := alias.Alias.(*tree.TypeUnion)
		if !ok || len(union.Types) == 0 {
			return t
		}
		enumName, members, ok := sameEnumMembers(union.Types)
		if !ok {
			return t
		}
		matches := s.LookupType(ident.NewQIdent(enumName), true)
		if len(matches) != 1 {
			return t
		}
		en, ok := matches[0].(*tree.DeclEnum)
		if !ok || !en.IsConst || len(en.Members) != len(members) {
			return t
		}
		seen := map[ident.SimpleIdent]bool{}
		for _, m := range members {
			seen[m] = true
		}
		for _, em := range en.Members {
			if !seen[em.Name] {
				return t
			}
		}
		cp := *alias
		cp.Alias = &tree.TypeRef{QIdentV: ident.NewQIdent(enumName)}
		return &cp
	})
	return out.(*tree.ParsedFile)
}

// sameEnumMembers reports whether every element of types is a two-part Ref
// `E.m` naming the same enum E, returning E's name and the member names
// referenced.
func sameEnumMembers(types []tree.Type) (ident.SimpleIdent, []ident.SimpleIdent, bool) {
	var enumName ident.SimpleIdent
	var members []ident.SimpleIdent
	for _, t := range types {
		ref, ok := t.(*tree.TypeRef)
		if !ok || len(ref.QIdentV.Parts) != 2 || len(ref.TParams) != 0 {
			return "", nil, false
		}
		if enumName == "" {
			enumName = ref.QIdentV.Parts[0]
		} else if enumName != ref.QIdentV.Parts[0] {
			return "", nil, false
		}
		members = append(members, ref.QIdentV.Parts[1])
	}
	return enumName, members, enumName != ""
}

// forwardCtors copies a parent class's own constructor signatures onto a
// subclass that declares none of its own, so a consumer reading the
// subclass's members alone sees how to construct it without first
// chasing the inheritance chain.
func (p *Pipeline) forwardCtors(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		cls, ok := t.(*tree.DeclClass)
		if !ok || cls.Parent == nil || hasOwnCtor(cls.Members) {
			return t
		}
		ref, ok := (*cls.Parent).(*tree.TypeRef)
		if !ok {
			return t
		}
		matches := s.LookupType(ref.QIdentV, true)
		if len(matches) != 1 {
			return t
		}
		parent, ok := matches[0].(*tree.DeclClass)
		if !ok {
			return t
		}
		var ctors []tree.Member
		for _, m := range parent.Members {
			if ctor, ok := m.(*tree.MemberCtor); ok {
				ctors = append(ctors, ctor)
			}
		}
		if len(ctors) == 0 {
			return t
		}
		return cls.WithMembers(append(append([]tree.Member{}, ctors...), cls.Members...))
	})
	return out.(*tree.ParsedFile)
}

func hasOwnCtor(members []tree.Member) bool {
	for _, m := range members {
		if _, ok := m.(*tree.MemberCtor); ok {
			return true
		}
	}
	return false
}

// expandTypeParams inlines a one-level generic type-alias application: a
// TypeRef with type arguments naming a DeclTypeAlias is replaced by the
// alias's own body with its type parameters substituted by the supplied
// arguments, so downstream passes (ExtractInterfaces, emission) see the
// concrete shape directly instead of a parameterized indirection.
func (p *Pipeline) expandTypeParams(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		ref, ok := ty.(*tree.TypeRef)
		if !ok || len(ref.TParams) == 0 {
			return ty
		}
		matches := s.LookupType(ref.QIdentV, true)
		if len(matches) != 1 {
			return ty
		}
		alias, ok := matches[0].(*tree.DeclTypeAlias)
		if !ok || len(alias.TypeParams) != len(ref.TParams) {
			return ty
		}
		return substituteTypeParams(alias.Alias, alias.TypeParams, ref.TParams)
	}).(*tree.ParsedFile)
}

func substituteTypeParams(t tree.Type, tparams []tree.TypeParam, args []tree.Type) tree.Type {
	subst := map[ident.SimpleIdent]tree.Type{}
	for i, tp := range tparams {
		if i < len(args) {
			subst[tp.Name] = args[i]
		}
	}
	return tree.RewriteType(t, func(ty tree.Type) tree.Type {
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

// unionTypesFromKeyOf materializes a `keyof T` whose operand statically
// resolves (via the same evaluateKeys machinery ExpandTypeMappings uses)
// into an explicit union of its string-literal keys, since not every
// downstream consumer of this tree understands the keyof operator itself.
// A keyof that doesn't statically resolve is left untouched -- this pass
// only handles the cases ExpandTypeMappings already proved tractable.
func (p *Pipeline) unionTypesFromKeyOf(pf *tree.ParsedFile, s *scope.Scope) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		ko, ok := ty.(*tree.TypeKeyOf)
		if !ok {
			return ty
		}
		keys, problem := evaluateKeyOf(s, ko.Operand, scope.NewLoopDetector())
		if problem != nil {
			return ty
		}
		lits := make([]tree.Type, len(keys))
		for i, k := range keys {
			lits[i] = &tree.TypeLiteral{Kind: tree.LiteralString, Str: k}
		}
		return &tree.TypeUnion{Types: lits}
	}).(*tree.ParsedFile)
}

// dropProperties removes members a converted tree has no use for (spec.md
// §4.7's DropProperties pass specification): a `__promisify__` container
// member, a class/interface member literally named `prototype`, a member
// whose name begins with a `\u` unicode-escape artefact, or a property
// whose declared type is `never`.
func (p *Pipeline) dropProperties(pf *tree.ParsedFile) *tree.ParsedFile {
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		switch n := t.(type) {
		case *tree.DeclClass:
			members := filterMembers(n.Members)
			if len(members) == len(n.Members) {
				return t
			}
			return n.WithMembers(members)
		case *tree.DeclInterface:
			members := filterMembers(n.Members)
			if len(members) == len(n.Members) {
				return t
			}
			return n.WithMembers(members)
		}
		if ct, ok := t.(tree.ContainerTree); ok {
			members := tree.Children(ct)
			kept := make([]tree.Tree, 0, len(members))
			changed := false
			for _, m := range members {
				if named, ok := m.(tree.Named); ok && named.Name() == "__promisify__" {
					changed = true
					continue
				}
				kept = append(kept, m)
			}
			if !changed {
				return t
			}
			return tree.Rebuild(t, kept)
		}
		return t
	})
	return out.(*tree.ParsedFile)
}

func filterMembers(members []tree.Member) []tree.Member {
	out := make([]tree.Member, 0, len(members))
	for _, m := range members {
		if shouldDropMember(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func shouldDropMember(m tree.Member) bool {
	name, ok := memberName(m)
	if ok {
		if name == "prototype" {
			return true
		}
		if len(name) >= 2 && name[0] == '\\' && name[1] == 'u' {
			return true
		}
	}
	if prop, ok := m.(*tree.MemberProperty); ok {
		if tree.IsNeverType(prop.TypeV) {
			return true
		}
	}
	return false
}

// inferReturnTypes fills in a class/interface method's empty result type by
// copying the result type of a same-named, same-arity ancestor method found
// by walking the class/interface inheritance chain, per spec.md §4.7's
// InferReturnTypes pass specification. `constructor` is never touched.
func (p *Pipeline) inferReturnTypes(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		var parents []tree.Type
		var members []tree.Member
		var rebuild func([]tree.Member) tree.Tree
		switch n := t.(type) {
		case *tree.DeclClass:
			if n.Parent != nil {
				parents = append(parents, *n.Parent)
			}
			parents = append(parents, n.Implements...)
			members = n.Members
			rebuild = func(ms []tree.Member) tree.Tree { return n.WithMembers(ms) }
		case *tree.DeclInterface:
			parents = n.Inheritance
			members = n.Members
			rebuild = func(ms []tree.Member) tree.Tree { return n.WithMembers(ms) }
		default:
			return t
		}
		if len(parents) == 0 {
			return t
		}
		changed := false
		out := make([]tree.Member, len(members))
		for i, m := range members {
			fn, ok := m.(*tree.MemberFunction)
			if !ok || fn.NameV == "constructor" || fn.Sig.ResultType != nil || len(fn.Sig.Params) == 0 {
				out[i] = m
				continue
			}
			result := findAncestorResult(s, parents, fn.NameV, len(fn.Sig.Params), scope.NewLoopDetector())
			if result == nil {
				out[i] = m
				continue
			}
			cp := *fn
			cp.Sig.ResultType = result
			out[i] = &cp
			changed = true
		}
		if !changed {
			return t
		}
		return rebuild(out)
	})
	return out.(*tree.ParsedFile)
}

func findAncestorResult(s *scope.Scope, parents []tree.Type, name ident.SimpleIdent, arity int, loop scope.LoopDetector) tree.Type {
	for _, parent := range parents {
		ref, ok := parent.(*tree.TypeRef)
		if !ok {
			continue
		}
		next, ok := loop.Including(ref.QIdentV.String())
		if !ok {
			continue
		}
		matches := s.LookupType(ref.QIdentV, true)
		if len(matches) != 1 {
			continue
		}
		var members []tree.Member
		var grandparents []tree.Type
		switch d := matches[0].(type) {
		case *tree.DeclClass:
			members = d.Members
			if d.Parent != nil {
				grandparents = append(grandparents, *d.Parent)
			}
			grandparents = append(grandparents, d.Implements...)
		case *tree.DeclInterface:
			members = d.Members
			grandparents = d.Inheritance
		default:
			continue
		}
		for _, m := range members {
			fn, ok := m.(*tree.MemberFunction)
			if ok && fn.NameV == name && len(fn.Sig.Params) == arity && fn.Sig.ResultType != nil {
				return fn.Sig.ResultType
			}
		}
		if result := findAncestorResult(s, grandparents, name, arity, next); result != nil {
			return result
		}
	}
	return nil
}

// rewriteTypeThis rewrites, inside every member of a class/interface
// (properties as well as function-typed members), a bare zero-argument
// reference to the enclosing type's own name into `this`, except inside a
// constructor member or a keyof; the reverse also applies: a `this` type
// inside a constructor member or a keyof becomes a reference to the
// enclosing type. An indexed-access (lookup) position is treated like any
// other position.
func (p *Pipeline) rewriteTypeThis(pf *tree.ParsedFile) *tree.ParsedFile {
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		switch n := t.(type) {
		case *tree.DeclClass:
			members := rewriteThisInMembers(n.Members, n.NameV, false)
			if sameMemberSlice(members, n.Members) {
				return t
			}
			return n.WithMembers(members)
		case *tree.DeclInterface:
			members := rewriteThisInMembers(n.Members, n.NameV, false)
			if sameMemberSlice(members, n.Members) {
				return t
			}
			return n.WithMembers(members)
		}
		return t
	})
	return out.(*tree.ParsedFile)
}

func rewriteThisInMembers(members []tree.Member, selfName ident.SimpleIdent, inCtorOrKeyof bool) []tree.Member {
	out := make([]tree.Member, len(members))
	for i, m := range members {
		inCtor := inCtorOrKeyof
		if _, ok := m.(*tree.MemberCtor); ok {
			inCtor = true
		}
		out[i] = tree.RewriteTypesInMember(m, func(ty tree.Type) tree.Type {
			return rewriteThisType(ty, selfName, inCtor)
		})
	}
	return out
}

func rewriteThisType(ty tree.Type, selfName ident.SimpleIdent, inCtorOrKeyof bool) tree.Type {
	switch n := ty.(type) {
	case *tree.TypeKeyOf:
		return &tree.TypeKeyOf{Operand: rewriteThisType(n.Operand, selfName, true)}
	case *tree.TypeRef:
		if !inCtorOrKeyof && len(n.TParams) == 0 && len(n.QIdentV.Parts) == 1 && n.QIdentV.Parts[0] == selfName {
			return &tree.TypeThis{}
		}
		return ty
	case *tree.TypeThis:
		if inCtorOrKeyof {
			return &tree.TypeRef{QIdentV: ident.NewQIdent(selfName)}
		}
		return ty
	default:
		return ty
	}
}

func sameMemberSlice(a, b []tree.Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// inlineConstEnum replaces a Ref with at least three segments whose prefix
// resolves to a const enum and whose last segment names a member with a
// known value with that value's own literal type (spec.md §4.7's
// InlineConstEnum pass specification), e.g. `ns.E.Member` folds to the
// literal type of `E.Member`'s value.
func (p *Pipeline) inlineConstEnum(pf *tree.ParsedFile, s *scope.Scope) *tree.ParsedFile {
	return tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		ref, ok := ty.(*tree.TypeRef)
		if !ok || len(ref.QIdentV.Parts) < 3 || len(ref.TParams) != 0 {
			return ty
		}
		prefix := ref.QIdentV.Init()
		member := ref.QIdentV.Last()
		matches := s.LookupType(prefix, true)
		if len(matches) != 1 {
			return ty
		}
		en, ok := matches[0].(*tree.DeclEnum)
		if !ok || !en.IsConst {
			return ty
		}
		val, ok := en.LookupValue(member)
		if !ok {
			return ty
		}
		if val.IsString {
			return &tree.TypeLiteral{Kind: tree.LiteralString, Str: val.Str}
		}
		return &tree.TypeLiteral{Kind: tree.LiteralNumber, Num: val.Num}
	}).(*tree.ParsedFile)
}

// inlineTrivial inlines every type alias marked trivial (carrying an
// IsTrivial comment marker -- typically a one-line re-export alias with no
// semantic content of its own) at every reference site, then drops the
// now-unreferenced alias declarations.
func (p *Pipeline) inlineTrivial(pf *tree.ParsedFile) *tree.ParsedFile {
	trivial := map[ident.SimpleIdent]tree.Type{}
	for _, m := range tree.Children(pf) {
		if alias, ok := m.(*tree.DeclTypeAlias); ok && alias.IsTrivial() && len(alias.TypeParams) == 0 {
			trivial[alias.NameV] = alias.Alias
		}
	}
	if len(trivial) == 0 {
		return pf
	}
	inlined := tree.RewriteTypesInTree(pf, func(ty tree.Type) tree.Type {
		ref, ok := ty.(*tree.TypeRef)
		if !ok || len(ref.QIdentV.Parts) != 1 || len(ref.TParams) != 0 {
			return ty
		}
		if repl, ok := trivial[ref.QIdentV.Parts[0]]; ok {
			return repl
		}
		return ty
	}).(*tree.ParsedFile)
	out := tree.WalkUnit(inlined, nil, func(t tree.Tree) tree.Tree {
		ct, ok := t.(tree.ContainerTree)
		if !ok {
			return t
		}
		members := tree.Children(ct)
		kept := make([]tree.Tree, 0, len(members))
		changed := false
		for _, m := range members {
			if alias, ok := m.(*tree.DeclTypeAlias); ok {
				if _, isTrivial := trivial[alias.NameV]; isTrivial {
					changed = true
					continue
				}
			}
			kept = append(kept, m)
		}
		if !changed {
			return t
		}
		return tree.Rebuild(t, kept)
	})
	return out.(*tree.ParsedFile)
}
