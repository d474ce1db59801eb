// Package merge implements FlattenTrees (spec.md §4.5): reconciling the
// members of two parsed files (or a file and the accumulator so far) into
// one, applying a fixed set of per-kind merge rules and leaving anything
// that doesn't pair up untouched. It is grounded on the same drive as the
// rest of the pipeline packages: one pass over an ordered member list
// building up an OrdMap-keyed-by-name grouping, then resolving each group.
package merge

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/container"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// FlattenTrees merges two ParsedFiles into one, per spec.md §4.5's pairwise
// member reconciliation. Unnamed members (directives, bare Global blocks)
// are concatenated, combining same-shaped Global blocks into one; named
// members are grouped by simple ident and reduced pairwise with Merge.
func FlattenTrees(a, b *tree.ParsedFile) *tree.ParsedFile {
	members := mergeMemberLists(a.Members, b.Members)
	return &tree.ParsedFile{
		Comments:   comments.Merge(a.Comments, b.Comments),
		Directives: append(append([]tree.Tree(nil), a.Directives...), b.Directives...),
		Members:    members,
		CodePath:   preferSet(a.CodePath, b.CodePath),
		JsLoc:      a.JsLoc.Combine(b.JsLoc),
		IsModule:   a.IsModule || b.IsModule,
	}
}

// mergeMemberLists implements the "global splitting rule": members
// partition into named and unnamed; named members are merged by name,
// preserving the first-seen order of names across both inputs; unnamed
// members other than *tree.Global (imports, exports, ...) follow them
// unchanged in input order; all Global blocks are merged into one,
// appended last.
func mergeMemberLists(a, b []tree.Tree) []tree.Tree {
	var globals []*tree.Global
	var unnamed []tree.Tree
	grouped := container.NewOrdMap[ident.SimpleIdent, []tree.Tree]()
	var order []ident.SimpleIdent

	collect := func(members []tree.Tree) {
		for _, m := range members {
			if g, ok := m.(*tree.Global); ok {
				globals = append(globals, g)
				continue
			}
			named, ok := m.(tree.Named)
			if !ok {
				unnamed = append(unnamed, m)
				continue
			}
			existing, had := grouped.Get(named.Name())
			if !had {
				order = append(order, named.Name())
			}
			grouped.Set(named.Name(), append(existing, m))
		}
	}
	collect(a)
	collect(b)

	out := make([]tree.Tree, 0, len(order)+len(unnamed)+1)
	for _, name := range order {
		group, _ := grouped.Get(name)
		out = append(out, reduceGroup(group)...)
	}
	out = append(out, unnamed...)
	if len(globals) > 0 {
		merged := globals[0]
		for _, g := range globals[1:] {
			merged = mergeGlobal(merged, g)
		}
		out = append(out, merged)
	}
	return out
}

// reduceGroup folds every member sharing one name down via Merge, left to
// right; a group of size 1 passes through untouched.
func reduceGroup(group []tree.Tree) []tree.Tree {
	if len(group) == 0 {
		return nil
	}
	acc := group[0]
	for _, next := range group[1:] {
		merged, ok := Merge(acc, next)
		if !ok {
			// Same-named but unmergeable shapes (e.g. a function and a
			// class): keep both rather than silently dropping one.
			return append([]tree.Tree{acc}, group[1:]...)
		}
		acc = merged
	}
	return []tree.Tree{acc}
}

func mergeGlobal(a, b *tree.Global) *tree.Global {
	return &tree.Global{
		Comments: comments.Merge(a.Comments, b.Comments),
		Members:  mergeMemberLists(a.Members, b.Members),
		CodePath: preferSet(a.CodePath, b.CodePath),
		JsLoc:    a.JsLoc.Combine(b.JsLoc),
	}
}

// preferSet returns the first already-assigned code path, per spec.md
// §4.5 rule 1's "merge code paths (prefer first non-NoPath)".
func preferSet(a, b ident.CodePath) ident.CodePath {
	if a.IsSet() {
		return a
	}
	return b
}

// Merge dispatches to the pairwise rule for a and b's shared name, per
// spec.md §4.5 rules 1-10 (checked in the order listed there). ok is false
// when no rule applies to this pair of shapes, meaning the caller should
// keep both members distinct.
func Merge(a, b tree.Tree) (tree.Tree, bool) {
	switch av := a.(type) {
	case *tree.Namespace:
		switch bv := b.(type) {
		case *tree.Namespace:
			return mergeNamespaceNamespace(av, bv), true
		case *tree.DeclFunction, *tree.DeclVar:
			return mergeNamespaceWithValue(av, bv), true
		}
	case *tree.Module:
		if bv, ok := b.(*tree.Module); ok {
			return mergeModuleModule(av, bv), true
		}
	case *tree.DeclClass:
		switch bv := b.(type) {
		case *tree.DeclClass:
			return mergeClassClass(av, bv), true
		case *tree.DeclInterface:
			return mergeClassInterface(av, bv), true
		}
	case *tree.DeclInterface:
		switch bv := b.(type) {
		case *tree.DeclInterface:
			return mergeInterfaceInterface(av, bv), true
		case *tree.DeclClass:
			merged := mergeClassInterface(bv, av)
			return merged, true
		}
	case *tree.DeclEnum:
		if bv, ok := b.(*tree.DeclEnum); ok {
			return mergeEnumEnum(av, bv), true
		}
	case *tree.DeclTypeAlias:
		if bv, ok := b.(*tree.DeclTypeAlias); ok {
			return mergeTypeAliasTypeAlias(av, bv), true
		}
	case *tree.DeclVar:
		switch bv := b.(type) {
		case *tree.DeclVar:
			return mergeVarVar(av, bv), true
		case *tree.Namespace:
			return mergeNamespaceWithValue(bv, av), true
		}
	case *tree.AugmentedModule:
		if bv, ok := b.(*tree.AugmentedModule); ok {
			return mergeAugmentedAugmented(av, bv), true
		}
	}
	return nil, false
}

// mergeNamespaceNamespace is rule 1.
func mergeNamespaceNamespace(a, b *tree.Namespace) *tree.Namespace {
	return &tree.Namespace{
		NameV:    a.NameV,
		Comments: comments.Merge(a.Comments, b.Comments),
		Declared: a.Declared || b.Declared,
		Members:  mergeMemberLists(a.Members, b.Members),
		CodePath: preferSet(a.CodePath, b.CodePath),
		JsLoc:    a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeNamespaceWithValue is rule 2: the value (function or var) is
// appended into the namespace as a namespaced-named copy (spec.md's
// `Namespaced` ident, "^"), the namespace itself otherwise unchanged.
func mergeNamespaceWithValue(ns *tree.Namespace, value tree.Tree) *tree.Namespace {
	namespacedCopy := renameTo(value, ident.Namespaced)
	return ns.WithMembers(append(append([]tree.Tree(nil), ns.Members...), namespacedCopy))
}

func renameTo(t tree.Tree, name ident.SimpleIdent) tree.Tree {
	switch v := t.(type) {
	case *tree.DeclFunction:
		cp := *v
		cp.NameV = name
		return &cp
	case *tree.DeclVar:
		cp := *v
		cp.NameV = name
		return &cp
	default:
		return t
	}
}

// mergeModuleModule is rule 3, identical in shape to rule 1.
func mergeModuleModule(a, b *tree.Module) *tree.Module {
	return &tree.Module{
		NameV:    a.NameV,
		Spec:     a.Spec,
		Comments: comments.Merge(a.Comments, b.Comments),
		Declared: a.Declared || b.Declared,
		Members:  mergeMemberLists(a.Members, b.Members),
		CodePath: preferSet(a.CodePath, b.CodePath),
		JsLoc:    a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeClassClass is rule 4.
func mergeClassClass(a, b *tree.DeclClass) *tree.DeclClass {
	parent := a.Parent
	if parent == nil {
		parent = b.Parent
	}
	return &tree.DeclClass{
		NameV:      a.NameV,
		Comments:   comments.Merge(a.Comments, b.Comments),
		Declared:   a.Declared || b.Declared,
		TypeParams: longerTypeParams(a.TypeParams, b.TypeParams),
		Parent:     parent,
		Implements: distinctTypeRefs(append(append([]tree.Type(nil), a.Implements...), b.Implements...)),
		IsAbstract: a.IsAbstract && b.IsAbstract,
		Members:    newClassMembers(a.Members, b.Members),
		CodePath:   preferSet(a.CodePath, b.CodePath),
		JsLoc:      a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeClassInterface is rule 5: fold the interface into the class,
// treating its inheritance list as additional `implements` entries.
func mergeClassInterface(cls *tree.DeclClass, iface *tree.DeclInterface) *tree.DeclClass {
	return &tree.DeclClass{
		NameV:      cls.NameV,
		Comments:   comments.Merge(cls.Comments, iface.Comments),
		Declared:   cls.Declared,
		TypeParams: longerTypeParams(cls.TypeParams, iface.TypeParams),
		Parent:     cls.Parent,
		Implements: distinctTypeRefs(append(append([]tree.Type(nil), cls.Implements...), iface.Inheritance...)),
		IsAbstract: cls.IsAbstract,
		Members:    newClassMembers(cls.Members, iface.Members),
		CodePath:   preferSet(cls.CodePath, iface.CodePath),
		JsLoc:      cls.JsLoc.Combine(iface.JsLoc),
	}
}

// mergeInterfaceInterface is rule 6.
func mergeInterfaceInterface(a, b *tree.DeclInterface) *tree.DeclInterface {
	return &tree.DeclInterface{
		NameV:       a.NameV,
		Comments:    comments.Merge(a.Comments, b.Comments),
		Declared:    a.Declared || b.Declared,
		TypeParams:  longerTypeParams(a.TypeParams, b.TypeParams),
		Inheritance: distinctTypeRefs(append(append([]tree.Type(nil), a.Inheritance...), b.Inheritance...)),
		Members:     newClassMembers(a.Members, b.Members),
		CodePath:    preferSet(a.CodePath, b.CodePath),
		JsLoc:       a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeEnumEnum is rule 7.
func mergeEnumEnum(a, b *tree.DeclEnum) *tree.DeclEnum {
	exportedFrom := a.ExportedFrom
	if !exportedFrom.IsSet() {
		exportedFrom = b.ExportedFrom
	}
	members := append([]tree.EnumMember(nil), a.Members...)
	seen := make(map[ident.SimpleIdent]bool, len(members))
	for _, m := range members {
		seen[m.Name] = true
	}
	for _, m := range b.Members {
		if !seen[m.Name] {
			members = append(members, m)
			seen[m.Name] = true
		}
	}
	return &tree.DeclEnum{
		NameV:        a.NameV,
		Comments:     comments.Merge(a.Comments, b.Comments),
		Members:      members,
		IsConst:      a.IsConst,
		IsValue:      a.IsValue || b.IsValue,
		ExportedFrom: exportedFrom,
		CodePath:     preferSet(a.CodePath, b.CodePath),
		JsLoc:        a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeTypeAliasTypeAlias is rule 8: when exactly one side is marked
// trivial, the non-trivial side wins outright; otherwise synthesize an
// intersection of both alias bodies.
func mergeTypeAliasTypeAlias(a, b *tree.DeclTypeAlias) *tree.DeclTypeAlias {
	aTrivial, bTrivial := a.IsTrivial(), b.IsTrivial()
	switch {
	case aTrivial && !bTrivial:
		return b
	case bTrivial && !aTrivial:
		return a
	}
	return &tree.DeclTypeAlias{
		NameV:      a.NameV,
		Comments:   comments.Merge(a.Comments, b.Comments),
		Declared:   a.Declared || b.Declared,
		TypeParams: longerTypeParams(a.TypeParams, b.TypeParams),
		Alias:      &tree.TypeIntersect{Types: []tree.Type{a.Alias, b.Alias}},
		CodePath:   preferSet(a.CodePath, b.CodePath),
		JsLoc:      a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeVarVar is rule 9: intersect the declared types via bothTypes.
func mergeVarVar(a, b *tree.DeclVar) *tree.DeclVar {
	return &tree.DeclVar{
		NameV:    a.NameV,
		Comments: comments.Merge(a.Comments, b.Comments),
		Declared: a.Declared || b.Declared,
		TypeV:    bothTypes(a.TypeV, b.TypeV),
		Readonly: a.Readonly || b.Readonly,
		CodePath: preferSet(a.CodePath, b.CodePath),
		JsLoc:    a.JsLoc.Combine(b.JsLoc),
	}
}

// mergeAugmentedAugmented is rule 10.
func mergeAugmentedAugmented(a, b *tree.AugmentedModule) *tree.AugmentedModule {
	return &tree.AugmentedModule{
		NameV:    a.NameV,
		Spec:     a.Spec,
		Comments: comments.Merge(a.Comments, b.Comments),
		Members:  mergeMemberLists(a.Members, b.Members),
		CodePath: preferSet(a.CodePath, b.CodePath),
		JsLoc:    a.JsLoc.Combine(b.JsLoc),
	}
}

// bothTypes intersects two value types: drops `never` in favor of the
// other side, and prefers a concrete type over a `typeof` query.
func bothTypes(a, b tree.Type) tree.Type {
	if tree.IsNeverType(a) {
		return b
	}
	if tree.IsNeverType(b) {
		return a
	}
	if _, ok := a.(*tree.TypeQuery); ok {
		if _, ok := b.(*tree.TypeQuery); !ok {
			return b
		}
	}
	if _, ok := b.(*tree.TypeQuery); ok {
		return a
	}
	if a == b {
		return a
	}
	return &tree.TypeIntersect{Types: []tree.Type{a, b}}
}

// longerTypeParams prefers whichever type-parameter list is longer, per
// every merge rule's "merge type-params (prefer the longer list)".
func longerTypeParams(a, b []tree.TypeParam) []tree.TypeParam {
	if len(b) > len(a) {
		return b
	}
	return a
}

// distinctTypeRefs deduplicates a list of ref types by their qualified
// ident, keeping first-seen order, per "inheritance (distinct)".
func distinctTypeRefs(types []tree.Type) []tree.Type {
	seen := make(map[string]bool, len(types))
	out := make([]tree.Type, 0, len(types))
	for _, t := range types {
		key := typeRefKey(t)
		if key != "" && seen[key] {
			continue
		}
		if key != "" {
			seen[key] = true
		}
		out = append(out, t)
	}
	return out
}

func typeRefKey(t tree.Type) string {
	if r, ok := t.(*tree.TypeRef); ok {
		return r.QIdentV.Key()
	}
	return ""
}

// newClassMembers implements spec.md §4.5's member-merge helper used by
// class/interface merges: sibling properties merge by (name, isStatic)
// intersecting their types; sibling indexers merge by indexing pattern
// intersecting their value types; everything else is appended as-is.
func newClassMembers(a, b []tree.Member) []tree.Member {
	out := append([]tree.Member(nil), a...)
	for _, m := range b {
		switch bm := m.(type) {
		case *tree.MemberProperty:
			if idx := findProperty(out, bm.NameV, bm.IsStatic); idx >= 0 {
				existing := out[idx].(*tree.MemberProperty)
				merged := *existing
				merged.TypeV = bothTypes(existing.TypeV, bm.TypeV)
				merged.Comments = comments.Merge(existing.Comments, bm.Comments)
				out[idx] = &merged
				continue
			}
			out = append(out, m)
		case *tree.MemberIndex:
			if idx := findIndex(out, bm.Indexing); idx >= 0 {
				existing := out[idx].(*tree.MemberIndex)
				merged := *existing
				merged.ValueV = bothTypes(existing.ValueV, bm.ValueV)
				out[idx] = &merged
				continue
			}
			out = append(out, m)
		default:
			out = append(out, m)
		}
	}
	return out
}

func findProperty(members []tree.Member, name ident.SimpleIdent, isStatic bool) int {
	for i, m := range members {
		p, ok := m.(*tree.MemberProperty)
		if ok && p.NameV == name && p.IsStatic == isStatic {
			return i
		}
	}
	return -1
}

func findIndex(members []tree.Member, indexing tree.Indexing) int {
	for i, m := range members {
		idx, ok := m.(*tree.MemberIndex)
		if ok && idx.Indexing.IsDict == indexing.IsDict && idx.Indexing.KeyName == indexing.KeyName && idx.Indexing.QIdentV.Equal(indexing.QIdentV) {
			return i
		}
	}
	return -1
}
