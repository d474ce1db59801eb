package moduleengine

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// ExpandedMod is the two-shaped result of resolving an Import's source
// module, spec.md §4.6: Whole for a namespace import (`import * as X` /
// `import x = require(...)`), Picked for specific named bindings.
type ExpandedMod struct {
	isWhole bool

	// Whole fields.
	Defaults   []tree.Tree
	Namespaced []tree.Tree
	Rest       []tree.Tree
	WholeScope *scope.Scope

	// Picked fields: one (decl, scope) pair per resolved binding.
	Things []DeclInScope
}

// DeclInScope pairs a resolved declaration with the scope it was found in,
// mirroring scope.DeclWithScope but kept local to this package's public
// surface so callers don't need to import internal/scope just to read a
// Picked result's members.
type DeclInScope struct {
	Decl  tree.Tree
	Scope *scope.Scope
}

// Whole builds the namespace-import shape of ExpandedMod.
func Whole(defaults, namespaced, rest []tree.Tree, s *scope.Scope) ExpandedMod {
	return ExpandedMod{isWhole: true, Defaults: defaults, Namespaced: namespaced, Rest: rest, WholeScope: s}
}

// Picked builds the named-bindings shape of ExpandedMod.
func Picked(things []DeclInScope) ExpandedMod {
	return ExpandedMod{Things: things}
}

// IsWhole reports which of the two shapes this value holds.
func (m ExpandedMod) IsWhole() bool { return m.isWhole }

// Decls flattens either shape into a plain declaration list, used by
// ExportImport (which only cares about the declarations an import actually
// introduces, not which shape produced them).
func (m ExpandedMod) Decls() []tree.Tree {
	if m.isWhole {
		out := make([]tree.Tree, 0, len(m.Defaults)+len(m.Namespaced)+len(m.Rest))
		out = append(out, m.Defaults...)
		out = append(out, m.Namespaced...)
		out = append(out, m.Rest...)
		return out
	}
	out := make([]tree.Tree, len(m.Things))
	for i, t := range m.Things {
		out[i] = t.Decl
	}
	return out
}

// ExpandImport resolves imp against s, producing the ExpandedMod its
// binding forms need: a bare `import "m"` or a namespace/require form
// (ImportedNamespaced, or no bindings at all) produces Whole by splitting
// the target module's own members into defaults/namespaced/rest; a named
// import list produces Picked, one lookup per requested name.
func ExpandImport(imp *tree.Import, targetScope *scope.Scope, targetMembers []tree.Tree) ExpandedMod {
	wantsWhole := len(imp.Imported) == 0
	for _, bound := range imp.Imported {
		if bound.Kind == tree.ImportedNamespaced {
			wantsWhole = true
		}
	}
	if wantsWhole {
		var defaults, namespaced, rest []tree.Tree
		for _, m := range targetMembers {
			named, ok := m.(tree.Named)
			if !ok {
				rest = append(rest, m)
				continue
			}
			switch named.Name() {
			case ident.Default:
				defaults = append(defaults, m)
			case ident.Namespaced:
				namespaced = append(namespaced, m)
			default:
				rest = append(rest, m)
			}
		}
		return Whole(defaults, namespaced, rest, targetScope)
	}

	var things []DeclInScope
	for _, bound := range imp.Imported {
		wantName := bound.From
		if wantName == "" {
			wantName = bound.Name
		}
		for _, pair := range targetScope.LookupIncludeScope(scope.AnyDecl, ident.NewQIdent(wantName)) {
			things = append(things, DeclInScope{Decl: pair.Decl, Scope: pair.Scope})
		}
	}
	return Picked(things)
}
