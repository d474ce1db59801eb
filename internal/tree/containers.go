package tree

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/container"
	"github.com/tsdecl/tsconv/internal/ident"
)

// ParsedFile is the root container produced by the parser for one .d.ts
// file, and the unit FlattenTrees merges (spec.md §3.2, §4.5).
type ParsedFile struct {
	Comments   comments.List
	Directives []Tree // NoStdLib, PathRef, TypesRef, LibRef, AmdModule
	Members    []Tree
	CodePath   ident.CodePath
	JsLoc      ident.JsLocation
	IsModule   bool // true when the source file contains top-level import/export
}

func (*ParsedFile) isTree()                          {}
func (p *ParsedFile) GetMembers() []Tree              { return p.Members }
func (p *ParsedFile) GetComments() comments.List       { return p.Comments }
func (p *ParsedFile) GetDeclared() bool                { return true }
func (p *ParsedFile) GetCodePath() ident.CodePath       { return p.CodePath }
func (p *ParsedFile) GetJsLocation() ident.JsLocation   { return p.JsLoc }

// WithMembers returns a copy of p with its members replaced, preserving
// object identity only when members is unchanged (the walker relies on this
// to avoid needless allocation when a visitor pass is a no-op for this
// subtree).
func (p *ParsedFile) WithMembers(members []Tree) *ParsedFile {
	if sameSlice(p.Members, members) {
		return p
	}
	cp := *p
	cp.Members = members
	return &cp
}

// Namespace is `namespace N { ... }` / `module N { ... }` (non-string name).
type Namespace struct {
	NameV    ident.SimpleIdent
	Comments comments.List
	Declared bool
	Members  []Tree
	CodePath ident.CodePath
	JsLoc    ident.JsLocation
}

func (*Namespace) isTree()                        {}
func (n *Namespace) Name() ident.SimpleIdent        { return n.NameV }
func (n *Namespace) GetMembers() []Tree             { return n.Members }
func (n *Namespace) GetComments() comments.List      { return n.Comments }
func (n *Namespace) GetDeclared() bool               { return n.Declared }
func (n *Namespace) GetCodePath() ident.CodePath      { return n.CodePath }
func (n *Namespace) GetJsLocation() ident.JsLocation  { return n.JsLoc }

func (n *Namespace) WithMembers(members []Tree) *Namespace {
	if sameSlice(n.Members, members) {
		return n
	}
	cp := *n
	cp.Members = members
	return &cp
}

// Module is `declare module "spec" { ... }` (string-literal name).
type Module struct {
	NameV    ident.ModuleName
	Spec     ident.ModuleSpec // the literal text as spelled in source
	Comments comments.List
	Declared bool
	Members  []Tree
	CodePath ident.CodePath
	JsLoc    ident.JsLocation
}

func (*Module) isTree()                       {}
func (m *Module) Name() ident.SimpleIdent       { return ident.SimpleIdent(m.NameV.String()) }
func (m *Module) GetMembers() []Tree            { return m.Members }
func (m *Module) GetComments() comments.List     { return m.Comments }
func (m *Module) GetDeclared() bool              { return m.Declared }
func (m *Module) GetCodePath() ident.CodePath     { return m.CodePath }
func (m *Module) GetJsLocation() ident.JsLocation { return m.JsLoc }

func (m *Module) WithMembers(members []Tree) *Module {
	if sameSlice(m.Members, members) {
		return m
	}
	cp := *m
	cp.Members = members
	return &cp
}

// AugmentedModule is `declare module "spec" { ... }` written against a
// module this library does not itself define — merged into the target by
// AugmentModules rather than standing as a module of its own.
type AugmentedModule struct {
	NameV    ident.ModuleName
	Spec     ident.ModuleSpec
	Comments comments.List
	Members  []Tree
	CodePath ident.CodePath
	JsLoc    ident.JsLocation
}

func (*AugmentedModule) isTree()                        {}
func (a *AugmentedModule) Name() ident.SimpleIdent        { return ident.SimpleIdent(a.NameV.String()) }
func (a *AugmentedModule) GetMembers() []Tree             { return a.Members }
func (a *AugmentedModule) GetComments() comments.List      { return a.Comments }
func (a *AugmentedModule) GetDeclared() bool               { return true }
func (a *AugmentedModule) GetCodePath() ident.CodePath      { return a.CodePath }
func (a *AugmentedModule) GetJsLocation() ident.JsLocation  { return a.JsLoc }

func (a *AugmentedModule) WithMembers(members []Tree) *AugmentedModule {
	if sameSlice(a.Members, members) {
		return a
	}
	cp := *a
	cp.Members = members
	return &cp
}

// Global is `declare global { ... }`.
type Global struct {
	Comments comments.List
	Members  []Tree
	CodePath ident.CodePath
	JsLoc    ident.JsLocation
}

func (*Global) isTree()                       {}
func (g *Global) Name() ident.SimpleIdent       { return ident.Global }
func (g *Global) GetMembers() []Tree            { return g.Members }
func (g *Global) GetComments() comments.List     { return g.Comments }
func (g *Global) GetDeclared() bool              { return true }
func (g *Global) GetCodePath() ident.CodePath     { return g.CodePath }
func (g *Global) GetJsLocation() ident.JsLocation { return g.JsLoc }

func (g *Global) WithMembers(members []Tree) *Global {
	if sameSlice(g.Members, members) {
		return g
	}
	cp := *g
	cp.Members = members
	return &cp
}

func sameSlice(a, b []Tree) bool {
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

// MembersByName groups a container's ordered members by simple ident,
// implementing the "membersByName view" spec.md §3.3 invariant 2 requires:
// callers never observe stale groupings because this always recomputes from
// the live Members slice rather than caching across a rewrite.
func MembersByName(members []Tree) *container.OrdMap[ident.SimpleIdent, []Tree] {
	m := container.NewOrdMap[ident.SimpleIdent, []Tree]()
	for _, mem := range members {
		n, ok := mem.(Named)
		if !ok {
			continue
		}
		existing, _ := m.Get(n.Name())
		m.Set(n.Name(), append(existing, mem))
	}
	return m
}

// ChildScopeTree is any container that descending a Scope one level
// corresponds to visiting, used by the scope/ package without importing it
// back (scope depends on tree, not the reverse).
type ChildScopeTree = ContainerTree
