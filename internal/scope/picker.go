package scope

import "github.com/tsdecl/tsconv/internal/tree"

// Picker discriminates which declaration kinds a lookup is allowed to
// return, per spec.md §4.3's "picker filters by declaration kind". A
// closed enum (rather than an arbitrary predicate func) keeps lookups
// nameable, which the caching wrapper relies on for its memo key.
type Picker int

const (
	// AnyDecl matches any named declaration.
	AnyDecl Picker = iota
	// TypeDecl matches declarations usable in a type position: classes,
	// interfaces, enums, type aliases, namespaces (as a type-query target),
	// modules.
	TypeDecl
	// ValueDecl matches declarations usable in a value position: functions,
	// vars, enums, classes (a class name is both a type and a constructor
	// value).
	ValueDecl
	// NamespaceDecl matches only namespace/module-shaped containers, used
	// when resolving the left side of a qualified name (`Foo.Bar` requires
	// `Foo` to name a container, not a function or property).
	NamespaceDecl
)

func (p Picker) String() string {
	switch p {
	case TypeDecl:
		return "type"
	case ValueDecl:
		return "value"
	case NamespaceDecl:
		return "namespace"
	default:
		return "any"
	}
}

// matches reports whether decl is acceptable for this picker.
func (p Picker) matches(decl tree.Tree) bool {
	switch p {
	case TypeDecl:
		switch decl.(type) {
		case *tree.DeclClass, *tree.DeclInterface, *tree.DeclEnum, *tree.DeclTypeAlias,
			*tree.Namespace, *tree.Module, *tree.AugmentedModule, *tree.Global:
			return true
		default:
			return false
		}
	case ValueDecl:
		switch decl.(type) {
		case *tree.DeclFunction, *tree.DeclVar, *tree.DeclClass, *tree.DeclEnum:
			return true
		default:
			return false
		}
	case NamespaceDecl:
		switch decl.(type) {
		case *tree.Namespace, *tree.Module, *tree.AugmentedModule, *tree.Global:
			return true
		default:
			return false
		}
	default:
		return true
	}
}
