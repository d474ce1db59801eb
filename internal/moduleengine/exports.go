package moduleengine

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// ExportKind mirrors tree.ExportKind for the tree-export case, naming the
// three shapes spec.md §4.6 expands: Namespaced (`export * as ns`-flavored
// wrapping), Named (`export { x }`/`export class X`), Defaulted
// (`export default X`).
type ExportKind = tree.ExportKind

const (
	Namespaced = tree.ExportNamespaced
	Named      = tree.ExportNamed
	Defaulted  = tree.ExportDefaulted
)

// ExportOwner is the container path/location an export is rewritten into
// (a module, namespace, or the file root).
type ExportOwner struct {
	Path ident.CodePath
	Loc  ident.JsLocation
}

// ExportTree expands `export(owner, kind, decl, renamed)` — spec.md §4.6's
// "Tree export of a named decl" — into the declarations it introduces.
// renamed is empty to keep decl's own name.
func ExportTree(owner ExportOwner, kind ExportKind, decl tree.Tree, renamed ident.SimpleIdent) []tree.Tree {
	switch kind {
	case Namespaced:
		if ct, ok := decl.(tree.ChildScopeTree); ok {
			members := tree.Children(ct)
			out := make([]tree.Tree, 0, len(members))
			for _, m := range members {
				named, ok := m.(tree.Named)
				if !ok {
					continue
				}
				childPath := owner.Path
				if childPath.IsSet() {
					childPath = childPath.Add(named.Name())
				}
				out = append(out, DeriveCopy(m, childPath, owner.Loc.Add(named.Name())))
			}
			return out
		}
		// Not a container: wrap as a single namespaced ("^") member.
		return []tree.Tree{wrapNamespaced(owner, decl)}
	case Defaulted:
		return []tree.Tree{exportNamedOrDefault(owner, decl, ident.Default)}
	default: // Named
		name := renamed
		if name == "" {
			if n, ok := decl.(tree.Named); ok {
				name = n.Name()
			}
		}
		return []tree.Tree{exportNamedOrDefault(owner, decl, name)}
	}
}

func exportNamedOrDefault(owner ExportOwner, decl tree.Tree, name ident.SimpleIdent) tree.Tree {
	path := owner.Path
	if path.IsSet() {
		path = path.Add(name)
	}
	return DeriveCopy(decl, path, owner.Loc.Add(name))
}

func wrapNamespaced(owner ExportOwner, decl tree.Tree) tree.Tree {
	return DeriveCopy(decl, pathOf(owner, ident.Namespaced), owner.Loc.Add(ident.Namespaced))
}

func pathOf(owner ExportOwner, name ident.SimpleIdent) ident.CodePath {
	if !owner.Path.IsSet() {
		return owner.Path
	}
	return owner.Path.Add(name)
}

// ExportImport expands a tree export of an Import whose single imported
// ident is localName (spec.md §4.6: "Tree export of an Import"): resolve
// the import, then export each resulting declaration under localName with
// the given kind.
func ExportImport(owner ExportOwner, kind ExportKind, expanded ExpandedMod, localName ident.SimpleIdent) []tree.Tree {
	var out []tree.Tree
	for _, d := range expanded.Decls() {
		out = append(out, ExportTree(owner, kind, d, localName)...)
	}
	return out
}

// ExportNamed expands `export { a, b as c } [from "m"]` (spec.md §4.6's
// "Named exports"): when from is non-nil, look up each name in that
// module's scope; otherwise look it up in s itself.
func ExportNamed(owner ExportOwner, kind ExportKind, names []tree.ExportedName, from *scope.Scope, s *scope.Scope) []tree.Tree {
	lookupIn := s
	if from != nil {
		lookupIn = from
	}
	var out []tree.Tree
	for _, n := range names {
		found := lookupIn.Lookup(n.QIdentV, true)
		alias := n.Alias
		if alias == "" {
			alias = n.QIdentV.Last()
		}
		for _, decl := range found {
			out = append(out, ExportTree(owner, kind, decl, alias)...)
		}
	}
	return out
}

// ExportStar expands `export * from "m"` (spec.md §4.6's "Star exports"):
// moduleScope is m's own resolved scope; its own exports are assumed
// already expanded into plain declarations (ReplaceExports runs inside out,
// innermost modules first, so by the time a star-export is processed the
// source module's own Export nodes are gone). Every named child except
// `default` is re-exported under kind.
func ExportStar(owner ExportOwner, kind ExportKind, moduleScope *scope.Scope, moduleMembers []tree.Tree) []tree.Tree {
	var out []tree.Tree
	for _, m := range moduleMembers {
		named, ok := m.(tree.Named)
		if !ok || named.Name() == ident.Default {
			continue
		}
		out = append(out, ExportTree(owner, kind, m, "")...)
	}
	return out
}
