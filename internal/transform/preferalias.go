package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// preferTypeAlias runs spec.md §4.7 step 17's two passes: a local
// preference conversion between "plain" interfaces and object-bodied type
// aliases, then a library-wide cycle-breaking pass over the type-alias
// reference graph.
func (p *Pipeline) preferTypeAlias(pf *tree.ParsedFile) *tree.ParsedFile {
	pf = preferLocally(pf)
	pf = breakAliasCycles(pf)
	return pf
}

// preferLocally converts a no-inheritance interface whose members are
// either all call signatures or all "simple" (no dictionary/index
// members) into a type alias of the equivalent object type, and converts
// the inverse shape -- a type alias pointing at a non-mapped object type
// whose members are neither all call signatures nor all simple (one with a
// dictionary/index member, or an empty object) -- into a plain interface, matching
// spec.md §4.7's "Local preference" rule.
func preferLocally(pf *tree.ParsedFile) *tree.ParsedFile {
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		switch n := t.(type) {
		case *tree.DeclInterface:
			if len(n.Inheritance) != 0 {
				return t
			}
			if !isCallOnly(n.Members) && !isSimpleObjectMembers(n.Members) {
				return t
			}
			return &tree.DeclTypeAlias{
				NameV:      n.NameV,
				Comments:   n.Comments,
				Declared:   n.Declared,
				TypeParams: n.TypeParams,
				Alias:      &tree.TypeObject{Members: n.Members},
				CodePath:   n.CodePath,
				JsLoc:      n.JsLoc,
			}
		case *tree.DeclTypeAlias:
			obj, ok := n.Alias.(*tree.TypeObject)
			if !ok || obj.IsMappedType() {
				return t
			}
			if isCallOnly(obj.Members) || isSimpleObjectMembers(obj.Members) {
				return t
			}
			return &tree.DeclInterface{
				NameV:      n.NameV,
				Comments:   n.Comments,
				Declared:   n.Declared,
				TypeParams: n.TypeParams,
				Members:    obj.Members,
				CodePath:   n.CodePath,
				JsLoc:      n.JsLoc,
			}
		}
		return t
	})
	return out.(*tree.ParsedFile)
}

func isCallOnly(members []tree.Member) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if _, ok := m.(*tree.MemberCall); !ok {
			return false
		}
	}
	return true
}

func isSimpleObjectMembers(members []tree.Member) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		switch n := m.(type) {
		case *tree.MemberProperty:
		case *tree.MemberFunction:
			if n.MethodType != tree.MethodNormal {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// breakAliasCycles finds every strongly-connected group of type aliases
// whose reference graph cycles within pf, then rewrites one member of each
// group into an interface encoding its former body, replacing in-cycle
// references within that rewritten declaration with `any` (spec.md §4.7's
// "Cycle breaking" rule). The chosen target prefers an alias whose body is
// itself a Ref (other than to `Array`), a Function, or a non-mapping
// Object; ties fall back to the lexicographically first name in the group,
// a deterministic stand-in for "most-frequent name" given no richer
// frequency signal is available at this point in the pipeline.
func breakAliasCycles(pf *tree.ParsedFile) *tree.ParsedFile {
	aliases := map[ident.SimpleIdent]*tree.DeclTypeAlias{}
	for _, m := range tree.Children(pf) {
		if a, ok := m.(*tree.DeclTypeAlias); ok {
			aliases[a.NameV] = a
		}
	}
	if len(aliases) == 0 {
		return pf
	}
	graph := map[ident.SimpleIdent][]ident.SimpleIdent{}
	for name, a := range aliases {
		graph[name] = referencedAliasNames(a.Alias, aliases)
	}
	groups := stronglyConnected(graph)

	rewrites := map[ident.SimpleIdent]*tree.DeclInterface{}
	for _, group := range groups {
		if len(group) < 2 && !selfReferential(graph, group[0]) {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i] < group[j] })
		target := choosePreferredTarget(group, aliases)
		alias := aliases[target]
		inCycle := map[ident.SimpleIdent]bool{}
		for _, n := range group {
			inCycle[n] = true
		}
		body := tree.RewriteType(alias.Alias, func(ty tree.Type) tree.Type {
			ref, ok := ty.(*tree.TypeRef)
			if !ok || !inCycle[ref.QIdentV.Last()] {
				return ty
			}
			return &tree.TypeRef{QIdentV: ident.NewQIdent("any")}
		})
		doc := comments.Text(fmt.Sprintf("cyclic with: %s", strings.Join(simpleIdentStrings(group), ", ")))
		iface := &tree.DeclInterface{
			NameV:      alias.NameV,
			Comments:   append(append(comments.List{}, alias.Comments...), doc),
			Declared:   alias.Declared,
			TypeParams: alias.TypeParams,
			CodePath:   alias.CodePath,
			JsLoc:      alias.JsLoc,
		}
		switch b := body.(type) {
		case *tree.TypeObject:
			iface.Members = b.Members
		case *tree.TypeRef:
			iface.Inheritance = []tree.Type{b}
		default:
			iface.Members = []tree.Member{&tree.MemberProperty{NameV: "value", TypeV: b}}
		}
		rewrites[target] = iface
	}
	if len(rewrites) == 0 {
		return pf
	}
	out := tree.WalkUnit(pf, nil, func(t tree.Tree) tree.Tree {
		a, ok := t.(*tree.DeclTypeAlias)
		if !ok {
			return t
		}
		if iface, ok := rewrites[a.NameV]; ok {
			return iface
		}
		return t
	})
	return out.(*tree.ParsedFile)
}

func referencedAliasNames(t tree.Type, aliases map[ident.SimpleIdent]*tree.DeclTypeAlias) []ident.SimpleIdent {
	var out []ident.SimpleIdent
	tree.RewriteType(t, func(ty tree.Type) tree.Type {
		if ref, ok := ty.(*tree.TypeRef); ok {
			if _, isAlias := aliases[ref.QIdentV.Last()]; isAlias {
				out = append(out, ref.QIdentV.Last())
			}
		}
		return ty
	})
	return out
}

func selfReferential(graph map[ident.SimpleIdent][]ident.SimpleIdent, name ident.SimpleIdent) bool {
	for _, n := range graph[name] {
		if n == name {
			return true
		}
	}
	return false
}

// stronglyConnected runs Tarjan's algorithm over graph, returning every SCC
// (including singletons) as a slice of node names.
func stronglyConnected(graph map[ident.SimpleIdent][]ident.SimpleIdent) [][]ident.SimpleIdent {
	index := 0
	indices := map[ident.SimpleIdent]int{}
	lowlink := map[ident.SimpleIdent]int{}
	onStack := map[ident.SimpleIdent]bool{}
	var stack []ident.SimpleIdent
	var groups [][]ident.SimpleIdent

	names := make([]ident.SimpleIdent, 0, len(graph))
	for n := range graph {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	var strongconnect func(v ident.SimpleIdent)
	strongconnect = func(v ident.SimpleIdent) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, ok := indices[w]; !ok {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var group []ident.SimpleIdent
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				group = append(group, w)
				if w == v {
					break
				}
			}
			groups = append(groups, group)
		}
	}

	for _, n := range names {
		if _, ok := indices[n]; !ok {
			strongconnect(n)
		}
	}
	return groups
}

func choosePreferredTarget(group []ident.SimpleIdent, aliases map[ident.SimpleIdent]*tree.DeclTypeAlias) ident.SimpleIdent {
	for _, name := range group {
		switch b := aliases[name].Alias.(type) {
		case *tree.TypeRef:
			if b.QIdentV.Last() != "Array" {
				return name
			}
		case *tree.TypeFunction:
			return name
		case *tree.TypeObject:
			if !b.IsMappedType() {
				return name
			}
		}
	}
	return group[0]
}

func simpleIdentStrings(names []ident.SimpleIdent) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}
