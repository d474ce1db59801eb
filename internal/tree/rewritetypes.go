package tree

// RewriteType performs a post-order structural rewrite of a type
// expression: every nested Type is rewritten first, then fn is applied to
// the (possibly already-rewritten) node itself. This is the single
// traversal nearly every type-level pass in the pipeline (QualifyReferences,
// ResolveTypeQueries, InlineConstEnum, RewriteTypeThis, ExpandTypeParams,
// UnionTypesFromKeyOf, ...) is built from.
func RewriteType(t Type, fn func(Type) Type) Type {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *TypeRef:
		params := rewriteTypes(n.TParams, fn)
		if !sameTypes(params, n.TParams) {
			cp := *n
			cp.TParams = params
			t = &cp
		}
	case *TypeObject:
		members := rewriteMemberTypes(n.Members, fn)
		if !sameMembers(members, n.Members) {
			cp := *n
			cp.Members = members
			t = &cp
		}
	case *TypeFunction:
		sig := rewriteSig(n.Sig, fn)
		if !sameSig(sig, n.Sig) {
			t = &TypeFunction{Sig: sig}
		}
	case *TypeConstructor:
		sig := rewriteSig(n.Sig, fn)
		if !sameSig(sig, n.Sig) {
			t = &TypeConstructor{Sig: sig, IsAbstract: n.IsAbstract}
		}
	case *TypeIs:
		v := RewriteType(n.TypeV, fn)
		if v != n.TypeV {
			t = &TypeIs{Ident: n.Ident, TypeV: v}
		}
	case *TypeTuple:
		elems := rewriteTypes(n.Elems, fn)
		if !sameTypes(elems, n.Elems) {
			t = &TypeTuple{Elems: elems}
		}
	case *TypeRepeated:
		e := RewriteType(n.Elem, fn)
		if e != n.Elem {
			t = &TypeRepeated{Elem: e}
		}
	case *TypeKeyOf:
		o := RewriteType(n.Operand, fn)
		if o != n.Operand {
			t = &TypeKeyOf{Operand: o}
		}
	case *TypeLookup:
		from := RewriteType(n.From, fn)
		key := RewriteType(n.Key, fn)
		if from != n.From || key != n.Key {
			t = &TypeLookup{From: from, Key: key}
		}
	case *TypeAsserts:
		if n.Opt != nil {
			o := RewriteType(n.Opt, fn)
			if o != n.Opt {
				t = &TypeAsserts{Ident: n.Ident, Opt: o}
			}
		}
	case *TypeUnion:
		types := rewriteTypes(n.Types, fn)
		if !sameTypes(types, n.Types) {
			t = &TypeUnion{Types: types}
		}
	case *TypeIntersect:
		types := rewriteTypes(n.Types, fn)
		if !sameTypes(types, n.Types) {
			t = &TypeIntersect{Types: types}
		}
	case *TypeConditional:
		pred := RewriteType(n.Pred, fn)
		ift := RewriteType(n.IfTrue, fn)
		iff := RewriteType(n.IfFalse, fn)
		if pred != n.Pred || ift != n.IfTrue || iff != n.IfFalse {
			t = &TypeConditional{Pred: pred, IfTrue: ift, IfFalse: iff}
		}
	case *TypeExtends:
		tv := RewriteType(n.TypeV, fn)
		ex := RewriteType(n.Extends, fn)
		if tv != n.TypeV || ex != n.Extends {
			t = &TypeExtends{TypeV: tv, Extends: ex}
		}
	case *TypeInfer:
		if n.TypeParam.Upper != nil {
			u := RewriteType(n.TypeParam.Upper, fn)
			if u != n.TypeParam.Upper {
				tp := n.TypeParam
				tp.Upper = u
				t = &TypeInfer{TypeParam: tp}
			}
		}
	// TypeLiteral, TypeQuery, TypeThis have no nested types.
	}
	return fn(t)
}

func rewriteTypes(ts []Type, fn func(Type) Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = RewriteType(t, fn)
	}
	return out
}

func sameTypes(a, b []Type) bool {
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

func rewriteSig(sig FunSig, fn func(Type) Type) FunSig {
	out := sig
	if len(sig.TypeParams) > 0 {
		tps := make([]TypeParam, len(sig.TypeParams))
		for i, tp := range sig.TypeParams {
			ntp := tp
			if tp.Upper != nil {
				ntp.Upper = RewriteType(tp.Upper, fn)
			}
			if tp.Default != nil {
				ntp.Default = RewriteType(tp.Default, fn)
			}
			tps[i] = ntp
		}
		out.TypeParams = tps
	}
	if len(sig.Params) > 0 {
		ps := make([]FunParam, len(sig.Params))
		for i, p := range sig.Params {
			np := p
			np.TypeV = RewriteType(p.TypeV, fn)
			ps[i] = np
		}
		out.Params = ps
	}
	if sig.ResultType != nil {
		out.ResultType = RewriteType(sig.ResultType, fn)
	}
	return out
}

func sameSig(a, b FunSig) bool {
	if a.ResultType != b.ResultType || len(a.Params) != len(b.Params) || len(a.TypeParams) != len(b.TypeParams) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].TypeV != b.Params[i].TypeV {
			return false
		}
	}
	for i := range a.TypeParams {
		if a.TypeParams[i].Upper != b.TypeParams[i].Upper || a.TypeParams[i].Default != b.TypeParams[i].Default {
			return false
		}
	}
	return true
}

func rewriteMemberTypes(ms []Member, fn func(Type) Type) []Member {
	out := make([]Member, len(ms))
	changed := false
	for i, m := range ms {
		nm := RewriteTypesInMember(m, fn)
		out[i] = nm
		if nm != m {
			changed = true
		}
	}
	if !changed {
		return ms
	}
	return out
}

func sameMembers(a, b []Member) bool {
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

// RewriteTypesInMember rewrites every Type nested in a single member.
func RewriteTypesInMember(m Member, fn func(Type) Type) Member {
	switch n := m.(type) {
	case *MemberCall:
		sig := rewriteSig(n.Sig, fn)
		if sameSig(sig, n.Sig) {
			return n
		}
		cp := *n
		cp.Sig = sig
		return &cp
	case *MemberCtor:
		sig := rewriteSig(n.Sig, fn)
		if sameSig(sig, n.Sig) {
			return n
		}
		cp := *n
		cp.Sig = sig
		return &cp
	case *MemberFunction:
		sig := rewriteSig(n.Sig, fn)
		if sameSig(sig, n.Sig) {
			return n
		}
		cp := *n
		cp.Sig = sig
		return &cp
	case *MemberProperty:
		v := RewriteType(n.TypeV, fn)
		if v == n.TypeV {
			return n
		}
		cp := *n
		cp.TypeV = v
		return &cp
	case *MemberIndex:
		value := RewriteType(n.ValueV, fn)
		key := n.Indexing.KeyType
		if key != nil {
			key = RewriteType(key, fn)
		}
		if value == n.ValueV && key == n.Indexing.KeyType {
			return n
		}
		cp := *n
		cp.ValueV = value
		cp.Indexing.KeyType = key
		return &cp
	case *MemberTypeMapped:
		constraint := RewriteType(n.Constraint, fn)
		value := RewriteType(n.ValueV, fn)
		var nameType Type
		if n.NameType != nil {
			nameType = RewriteType(n.NameType, fn)
		}
		if constraint == n.Constraint && value == n.ValueV && nameType == n.NameType {
			return n
		}
		cp := *n
		cp.Constraint = constraint
		cp.ValueV = value
		cp.NameType = nameType
		return &cp
	}
	return m
}

// RewriteTypesInTree walks an entire (sub)tree, rewriting every nested Type
// node via fn, and recursing into Tree children (container members, class
// and interface members). Declarations that carry types directly
// (DeclFunction, DeclVar, DeclEnum is type-free, DeclTypeAlias, DeclClass's
// parent/implements, DeclInterface's inheritance) are handled here rather
// than via Children/Rebuild, since those fields aren't Tree-shaped.
func RewriteTypesInTree(t Tree, fn func(Type) Type) Tree {
	switch n := t.(type) {
	case *DeclFunction:
		sig := rewriteSig(n.Sig, fn)
		if sameSig(sig, n.Sig) {
			return n
		}
		cp := *n
		cp.Sig = sig
		return &cp
	case *DeclVar:
		v := RewriteType(n.TypeV, fn)
		if v == n.TypeV {
			return n
		}
		cp := *n
		cp.TypeV = v
		return &cp
	case *DeclEnum:
		return n
	case *DeclTypeAlias:
		a := RewriteType(n.Alias, fn)
		tps := rewriteTypeParams(n.TypeParams, fn)
		if a == n.Alias && sameTypeParams(tps, n.TypeParams) {
			return n
		}
		cp := *n
		cp.Alias = a
		cp.TypeParams = tps
		return &cp
	case *DeclClass:
		var parent *Type
		if n.Parent != nil {
			p := RewriteType(*n.Parent, fn)
			parent = &p
		}
		impl := rewriteTypes(n.Implements, fn)
		tps := rewriteTypeParams(n.TypeParams, fn)
		members := rewriteClassMembers(n.Members, fn)
		cp := *n
		cp.Parent = parent
		cp.Implements = impl
		cp.TypeParams = tps
		cp.Members = members
		return &cp
	case *DeclInterface:
		inh := rewriteTypes(n.Inheritance, fn)
		tps := rewriteTypeParams(n.TypeParams, fn)
		members := rewriteClassMembers(n.Members, fn)
		cp := *n
		cp.Inheritance = inh
		cp.TypeParams = tps
		cp.Members = members
		return &cp
	case *ParsedFile, *Namespace, *Module, *AugmentedModule, *Global:
		children := Children(n)
		newChildren := make([]Tree, len(children))
		changed := false
		for i, c := range children {
			nc := RewriteTypesInTree(c, fn)
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return Rebuild(n, newChildren)
	}
	return t
}

func rewriteClassMembers(ms []Member, fn func(Type) Type) []Member {
	out := rewriteMemberTypes(ms, fn)
	return out
}

func rewriteTypeParams(tps []TypeParam, fn func(Type) Type) []TypeParam {
	if len(tps) == 0 {
		return tps
	}
	out := make([]TypeParam, len(tps))
	for i, tp := range tps {
		ntp := tp
		if tp.Upper != nil {
			ntp.Upper = RewriteType(tp.Upper, fn)
		}
		if tp.Default != nil {
			ntp.Default = RewriteType(tp.Default, fn)
		}
		out[i] = ntp
	}
	return out
}

func sameTypeParams(a, b []TypeParam) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Upper != b[i].Upper || a[i].Default != b[i].Default {
			return false
		}
	}
	return true
}
