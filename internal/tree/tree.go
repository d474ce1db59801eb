// Package tree implements the sealed sum-typed AST of spec.md §3.2: the
// TypeScript declaration tree model shared by the whole pipeline.
//
// The TypeScript source this system ports uses a discriminated union
// (`_tag` field) for every one of these shapes; spec.md §9 calls for Go to
// use "interfaces plus type switches" in place of that. Every node
// implements a small sealed marker interface (Tree, Type, Member) via an
// unexported method, so the interface set is effectively closed to this
// package: exhaustive `switch x := n.(type)` blocks elsewhere in the module
// are the single place each node kind's behavior is spelled out, mirroring
// the exhaustive-match style spec.md §9 asks for.
package tree

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
)

// Tree is implemented by every node in the AST: containers, named value and
// type declarations, members, imports/exports, and directives.
type Tree interface {
	isTree()
}

// Type is implemented by every type-position node (Ref, Object, Union, ...).
type Type interface {
	isType()
}

// Member is implemented by every member of an object-like type or class
// (MemberCall, MemberProperty, ...).
type Member interface {
	Tree
	isMember()
}

// Named is implemented by any declaration that carries a simple-ident name:
// classes, interfaces, functions, vars, enums, type aliases, namespaces,
// modules. Containers additionally implement ContainerTree.
type Named interface {
	Tree
	Name() ident.SimpleIdent
	GetCodePath() ident.CodePath
	GetComments() comments.List
}

// ContainerTree is implemented by the container variants: ParsedFile,
// Namespace, Module, AugmentedModule, Global. Each holds ordered members,
// comments, a declared flag, a code path and a JS location.
type ContainerTree interface {
	Tree
	GetMembers() []Tree
	GetComments() comments.List
	GetDeclared() bool
	GetCodePath() ident.CodePath
	GetJsLocation() ident.JsLocation
}
