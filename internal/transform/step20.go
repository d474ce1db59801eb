package transform

import (
	"fmt"
	"sort"

	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

const (
	splitMaxCombos = 50
	splitMaxParams = 20
)

// splitMethods implements spec.md §4.7 step 20's first pass: a signature
// with one or more union-typed parameters is replaced by the cross
// product of its parameter branches, one overload per combination,
// subject to the MAX_NUM=50 combination cap and a 20-parameter cap.
func (p *Pipeline) splitMethods(pf *tree.ParsedFile) *tree.ParsedFile {
	return rewriteContainerMembers(pf, expandSplitMethod).(*tree.ParsedFile)
}

func expandSplitMethod(m tree.Tree) ([]tree.Tree, bool) {
	switch n := m.(type) {
	case *tree.DeclFunction:
		sigs := splitSig(n.Sig)
		if len(sigs) <= 1 {
			return nil, false
		}
		out := make([]tree.Tree, len(sigs))
		for i, sig := range sigs {
			cp := *n
			cp.Sig = sig
			if i > 0 {
				cp.Comments = nil
			}
			out[i] = &cp
		}
		return out, true
	case *tree.MemberFunction:
		sigs := splitSig(n.Sig)
		if len(sigs) <= 1 {
			return nil, false
		}
		out := make([]tree.Tree, len(sigs))
		for i, sig := range sigs {
			cp := *n
			cp.Sig = sig
			if i > 0 {
				cp.Comments = nil
			}
			out[i] = &cp
		}
		return out, true
	case *tree.MemberCall:
		sigs := splitSig(n.Sig)
		if len(sigs) <= 1 {
			return nil, false
		}
		out := make([]tree.Tree, len(sigs))
		for i, sig := range sigs {
			cp := *n
			cp.Sig = sig
			if i > 0 {
				cp.Comments = nil
			}
			out[i] = &cp
		}
		return out, true
	case *tree.MemberCtor:
		sigs := splitSig(n.Sig)
		if len(sigs) <= 1 {
			return nil, false
		}
		out := make([]tree.Tree, len(sigs))
		for i, sig := range sigs {
			cp := *n
			cp.Sig = sig
			if i > 0 {
				cp.Comments = nil
			}
			out[i] = &cp
		}
		return out, true
	}
	return nil, false
}

// splitSig enumerates the overloads for sig, or returns sig unchanged
// (as the sole element) when it carries no union parameter, has more than
// splitMaxParams parameters, or its branch cross product would exceed
// splitMaxCombos.
func splitSig(sig tree.FunSig) []tree.FunSig {
	if len(sig.Params) == 0 || len(sig.Params) > splitMaxParams {
		return []tree.FunSig{sig}
	}
	branches := make([][]tree.Type, len(sig.Params))
	anyUnion := false
	for i, param := range sig.Params {
		if u, ok := param.TypeV.(*tree.TypeUnion); ok {
			branches[i] = unionBranches(u)
			anyUnion = true
		} else {
			branches[i] = []tree.Type{param.TypeV}
		}
	}
	if !anyUnion {
		return []tree.FunSig{sig}
	}
	combos := cartesianTypes(branches)
	if combos == nil {
		return []tree.FunSig{sig}
	}

	seen := map[string]bool{}
	var sigs []tree.FunSig
	for _, combo := range combos {
		params := make([]tree.FunParam, len(sig.Params))
		for i, param := range sig.Params {
			np := param
			np.TypeV = combo[i]
			params[i] = np
		}
		for len(params) > 0 && isUndefinedType(params[len(params)-1].TypeV) {
			params = params[:len(params)-1]
		}
		key := sigKey(params, sig.ResultType)
		if seen[key] {
			continue
		}
		seen[key] = true
		sigs = append(sigs, tree.FunSig{TypeParams: sig.TypeParams, Params: params, ResultType: sig.ResultType})
	}
	sort.SliceStable(sigs, func(i, j int) bool { return len(sigs[i].Params) < len(sigs[j].Params) })
	return sigs
}

// unionBranches splits a union's members into cross-product branches,
// grouping every literal member into a single combined branch so a union
// of many string literals contributes one combination slot rather than
// one per literal.
func unionBranches(u *tree.TypeUnion) []tree.Type {
	var literals []tree.Type
	var out []tree.Type
	for _, t := range u.Types {
		if _, ok := t.(*tree.TypeLiteral); ok {
			literals = append(literals, t)
		} else {
			out = append(out, t)
		}
	}
	switch len(literals) {
	case 0:
	case 1:
		out = append(out, literals[0])
	default:
		out = append(out, &tree.TypeUnion{Types: literals})
	}
	if len(out) == 0 {
		return []tree.Type{u}
	}
	return out
}

// cartesianTypes computes the cross product of branches, returning nil if
// the product would exceed splitMaxCombos.
func cartesianTypes(branches [][]tree.Type) [][]tree.Type {
	total := 1
	for _, b := range branches {
		total *= len(b)
		if total > splitMaxCombos {
			return nil
		}
	}
	result := [][]tree.Type{{}}
	for _, b := range branches {
		next := make([][]tree.Type, 0, len(result)*len(b))
		for _, combo := range result {
			for _, t := range b {
				nc := make([]tree.Type, len(combo)+1)
				copy(nc, combo)
				nc[len(combo)] = t
				next = append(next, nc)
			}
		}
		result = next
	}
	return result
}

func isUndefinedType(t tree.Type) bool {
	ref, ok := t.(*tree.TypeRef)
	return ok && len(ref.TParams) == 0 && ref.QIdentV.Last() == "undefined"
}

func sigKey(params []tree.FunParam, result tree.Type) string {
	key := prettyType(result)
	for _, p := range params {
		key += "," + prettyType(p.TypeV)
	}
	return fmt.Sprintf("%d:%s", len(params), key)
}

// removeDifficultInheritance implements spec.md §4.7 step 20's second
// pass: an `extends`/`implements` reference that, after every earlier
// rewrite, is no longer one of the shapes isLegalInheritanceType accepts
// (a non-abstract Ref whose alias-followed target is still a Ref, a
// non-mapped Object, or a Function) is dropped --
// an emitter has nothing faithful to produce for `extends A | B` or
// `extends keyof T`.
func (p *Pipeline) removeDifficultInheritance(pf *tree.ParsedFile) *tree.ParsedFile {
	s := scope.Root(p.cfg.LibName, p.cfg.Pedantic, p.cfg.TransitiveDeps, p.cfg.Logger).Descend(pf)
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		switch n := t.(type) {
		case *tree.DeclInterface:
			kept := filterLegalInheritance(s, n.Inheritance)
			if len(kept) == len(n.Inheritance) {
				return t
			}
			cp := *n
			cp.Inheritance = kept
			return &cp
		case *tree.DeclClass:
			changed := false
			parent := n.Parent
			if parent != nil && !isLegalInheritanceType(s, *parent) {
				parent = nil
				changed = true
			}
			impl := filterLegalInheritance(s, n.Implements)
			if len(impl) != len(n.Implements) {
				changed = true
			}
			if !changed {
				return t
			}
			cp := *n
			cp.Parent = parent
			cp.Implements = impl
			return &cp
		}
		return t
	})
	return out.(*tree.ParsedFile)
}

func filterLegalInheritance(s *scope.Scope, types []tree.Type) []tree.Type {
	var out []tree.Type
	for _, t := range types {
		if isLegalInheritanceType(s, t) {
			out = append(out, t)
		}
	}
	return out
}

// varToNamespace implements spec.md §4.7 step 20's third pass: a
// `declare var X: { ... }` whose declared type is a plain object becomes
// `declare namespace X { ... }`, with the object's members hoisted per
// hoistMembers.
func (p *Pipeline) varToNamespace(pf *tree.ParsedFile) *tree.ParsedFile {
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		v, ok := t.(*tree.DeclVar)
		if !ok {
			return t
		}
		obj, ok := v.TypeV.(*tree.TypeObject)
		if !ok || obj.IsMappedType() {
			return t
		}
		members := hoistMembers(obj.Members)
		if len(members) == 0 {
			return t
		}
		return &tree.Namespace{
			NameV:    v.NameV,
			Comments: v.Comments,
			Declared: v.Declared,
			Members:  members,
			CodePath: v.CodePath,
			JsLoc:    v.JsLoc,
		}
	})
	return out.(*tree.ParsedFile)
}

// hoistMembers implements the Hoisting helper shared by varToNamespace
// and export expansion: a call signature becomes a function named "^", a
// normal method becomes a function of the same name, a property becomes
// a var. Getters, setters, index signatures and constructors have no
// standalone-declaration equivalent and are dropped. The hoisted
// declaration's Declared flag is hardcoded false, matching spec.md §9's
// resolution that it does not propagate from the enclosing var.
func hoistMembers(members []tree.Member) []tree.Tree {
	var out []tree.Tree
	for _, m := range members {
		switch n := m.(type) {
		case *tree.MemberCall:
			out = append(out, &tree.DeclFunction{NameV: "^", Comments: n.Comments, Sig: n.Sig})
		case *tree.MemberFunction:
			if n.MethodType != tree.MethodNormal {
				continue
			}
			out = append(out, &tree.DeclFunction{NameV: n.NameV, Comments: n.Comments, Sig: n.Sig})
		case *tree.MemberProperty:
			out = append(out, &tree.DeclVar{NameV: n.NameV, Comments: n.Comments, TypeV: n.TypeV, Readonly: n.IsReadOnly})
		}
	}
	return out
}
