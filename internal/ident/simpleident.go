// Package ident implements the identifiers and code paths of spec.md §3.1:
// simple and qualified names, library and module names, code paths and JS
// locations. Everything here is a plain comparable value type, mirroring the
// way the teacher keeps pkg/types free of behavior beyond simple helpers.
package ident

import "fmt"

// SimpleIdent is a single, non-empty name, e.g. "Foo".
//
// A handful of names are reserved singletons used by the rest of the system
// to stand for constructs that have no spelled name in source: Default is
// the name a `default` export is rebound to, Apply names a call signature
// once it is hoisted to a standalone function, Namespaced ("^") names a
// value hoisted alongside a same-named namespace, Global is the root
// container name, and ConstructorIdent is a class's constructor member.
type SimpleIdent string

// Reserved singleton idents (spec.md §3.1).
const (
	Default     SimpleIdent = "default"
	Apply       SimpleIdent = "Apply"
	Namespaced  SimpleIdent = "^"
	Global      SimpleIdent = "Global"
	Constructor SimpleIdent = "constructor"
	Std         SimpleIdent = "std"
	Node        SimpleIdent = "node"
)

// Validate reports an error for the empty ident; callers construct
// SimpleIdent directly everywhere a non-empty name is already known, and
// validate only at the few places untrusted text enters the system (the
// parser, the module name parser).
func (s SimpleIdent) Validate() error {
	if s == "" {
		return fmt.Errorf("ident: empty simple ident")
	}
	return nil
}

func (s SimpleIdent) String() string { return string(s) }
