// Package scope implements the nested lexical environment of spec.md §4.3:
// declaration lookup through enclosing containers, a library's own exported
// surface, and its transitive dependencies. It sits above package tree (it
// is the one package allowed to import tree for traversal while tree stays
// dependency-free), which is also where the JS-location "descend into a
// container" logic that spec.md describes as part of JsLocation lives
// (kept out of package ident to avoid an ident -> tree import cycle).
package scope

import (
	"fmt"

	"github.com/tsdecl/tsconv/internal/container"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// Logger is the minimal sink Scope writes diagnostics to (cycle warnings,
// unresolved-lookup notices at non-pedantic sites). internal/logging's
// Logger satisfies this; tests pass a stdlib *log.Logger or a no-op stub.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Decl is a resolved declaration: any Named tree node, or a class/interface
// Member reached by descending a qualified lookup through a container.
type Decl = tree.Tree

// DeclWithScope pairs a resolved declaration with the scope it was found
// in, for LookupIncludeScope callers that need to keep resolving relative
// to where the declaration actually lives (e.g. expanding a generic alias
// in its defining scope, not the call site's).
type DeclWithScope struct {
	Decl  Decl
	Scope *Scope
}

// Scope is a nested environment, per spec.md §4.3. Values are cheap to
// copy (everything but the members map is a slice/map reference), so
// Descend/WithTypeParams/caching() all return a new Scope rather than
// mutating in place.
type Scope struct {
	libName  ident.LibraryName
	pedantic bool
	logger   Logger

	// stack holds the enclosing containers, outermost first, innermost
	// (current) last. Lookups walk it back-to-front.
	stack []tree.ChildScopeTree

	// moduleScopes indexes every declared module's scope by canonical
	// name, shared by reference across all descendants of the same root so
	// a lookup anywhere in the library can jump straight to another
	// module's surface without re-walking the stack.
	moduleScopes *container.OrdMap[string, *Scope]

	// transitiveDeps holds one ParsedFile per dependency library already
	// resolved and flattened, searched only after the library's own scope
	// is exhausted.
	transitiveDeps []*tree.ParsedFile

	// abstractIdents holds the names bound by `extends`-clause style type
	// parameters enclosing this point (isAbstract queries this).
	abstractIdents *container.Set[ident.SimpleIdent]

	unqualified bool

	cache *memo // nil until caching() is called
}

// Root constructs the root scope for a library: no enclosing containers yet
// (the library's own top-level ParsedFile is pushed via Descend once
// parsing/flattening has produced it), just its name, pedantic mode, and
// its already-resolved transitive dependencies.
func Root(libName ident.LibraryName, pedantic bool, transitiveDeps []*tree.ParsedFile, logger Logger) *Scope {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Scope{
		libName:         libName,
		pedantic:        pedantic,
		logger:          logger,
		moduleScopes:    container.NewOrdMap[string, *Scope](),
		transitiveDeps:  transitiveDeps,
		abstractIdents:  container.NewSet[ident.SimpleIdent](),
	}
}

// LibName returns the owning library's name.
func (s *Scope) LibName() ident.LibraryName { return s.libName }

// Pedantic reports whether this library is resolved in pedantic mode (an
// unresolved module reference is fatal rather than a warning).
func (s *Scope) Pedantic() bool { return s.pedantic }

// Stack returns the outer-to-inner enclosing trees, per spec.md §4.3's
// `stack: Seq[Tree]`. Callers must not mutate the returned slice.
func (s *Scope) Stack() []tree.ChildScopeTree { return s.stack }

// Descend returns the child scope entered by visiting t, per spec.md §4.3's
// `scope / tree` constructor. When t is a *tree.Module, it is additionally
// registered in moduleScopes so other parts of the library can look it up
// directly by name without re-walking the stack.
func (s *Scope) Descend(t tree.ChildScopeTree) *Scope {
	next := s.shallowCopy()
	next.stack = append(append([]tree.ChildScopeTree(nil), s.stack...), t)
	if mod, ok := t.(*tree.Module); ok {
		next.moduleScopes.Set(mod.NameV.String(), next)
	}
	return next
}

// WithTypeParams returns a child scope with tps' names bound as abstract
// (isAbstract) idents, for descending into a generic declaration's body.
func (s *Scope) WithTypeParams(tps []tree.TypeParam) *Scope {
	if len(tps) == 0 {
		return s
	}
	next := s.shallowCopy()
	abstract := next.abstractIdents.Clone()
	for _, tp := range tps {
		abstract.Add(tp.Name)
	}
	next.abstractIdents = abstract
	return next
}

// EnableUnqualifiedLookup returns a scope where a single bare ident may
// resolve via fallback single-ident matching across the whole scope (used
// for namespace merge lookups where qualification is optional).
func (s *Scope) EnableUnqualifiedLookup() *Scope {
	next := s.shallowCopy()
	next.unqualified = true
	return next
}

// IsAbstract reports whether qident names a type parameter bound by an
// enclosing generic declaration.
func (s *Scope) IsAbstract(q ident.QIdent) bool {
	return len(q.Parts) == 1 && s.abstractIdents.Contains(q.Head())
}

// ModuleScope looks up the scope registered for a declared module by name.
func (s *Scope) ModuleScope(name ident.ModuleName) (*Scope, bool) {
	return s.moduleScopes.Get(name.String())
}

func (s *Scope) shallowCopy() *Scope {
	cp := *s
	return &cp
}

// Caching returns a wrapper scope that memoizes Lookup/LookupType results
// by (picker, qident), per spec.md §4.3's `caching()`. Every cached lookup
// starts from a fresh loop detector, so the detector is not part of the
// key (see memo).
// The cache is shared with every scope later derived from the returned
// value (Descend, WithTypeParams, ...), matching the teacher's pattern of a
// single shared memo table scoped to one pipeline run rather than a new
// cache per frame.
func (s *Scope) Caching() *Scope {
	next := s.shallowCopy()
	next.cache = newMemo()
	return next
}

// Lookup resolves a qualified ident to every matching declaration, walking
// outward through enclosing containers, then the library's own module
// registry, then transitive dependencies. skipValidation suppresses the
// "nothing found" diagnostic a caller doesn't want logged (e.g. a
// speculative probe).
func (s *Scope) Lookup(q ident.QIdent, skipValidation bool) container.Seq[Decl] {
	return s.lookupPicker(AnyDecl, q, skipValidation)
}

// LookupType is Lookup restricted to type-position declarations.
func (s *Scope) LookupType(q ident.QIdent, skipValidation bool) container.Seq[Decl] {
	return s.lookupPicker(TypeDecl, q, skipValidation)
}

func (s *Scope) lookupPicker(picker Picker, q ident.QIdent, skipValidation bool) container.Seq[Decl] {
	pairs := s.LookupIncludeScope(picker, q)
	out := make(container.Seq[Decl], 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Decl)
	}
	if len(out) == 0 && !skipValidation {
		s.logger.Printf("scope: unresolved %s reference %q in %s", picker, q.String(), s.libName.String())
	}
	return out
}

// LookupIncludeScope is Lookup, but pairs each result with the scope it was
// found in, per spec.md §4.3's `lookupIncludeScope`.
func (s *Scope) LookupIncludeScope(picker Picker, q ident.QIdent) container.Seq[DeclWithScope] {
	if s.cache != nil {
		if cached, ok := s.cache.get(picker, q); ok {
			return cached
		}
		res := s.LookupInternal(picker, q, NewLoopDetector())
		s.cache.set(picker, q, res)
		return res
	}
	return s.LookupInternal(picker, q, NewLoopDetector())
}

// LookupInternal is the primitive every Lookup* variant is built on, per
// spec.md §4.3. It is exported so passes that already hold a LoopDetector
// (recursive type expansion, cyclic-reference detection) can extend it
// themselves instead of starting a fresh one per recursive step.
func (s *Scope) LookupInternal(picker Picker, q ident.QIdent, loop LoopDetector) container.Seq[DeclWithScope] {
	if q.Empty() {
		return nil
	}
	key := fmt.Sprintf("%p|%s|%s", s, picker, q.Key())
	nextLoop, ok := loop.Including(key)
	if !ok {
		s.logger.Printf("scope: cycle detected resolving %s in %s", q.String(), s.libName.String())
		return nil
	}

	if found := s.lookupInStack(picker, q, nextLoop); len(found) > 0 {
		return found
	}
	if found := s.lookupInModuleRegistry(picker, q, nextLoop); len(found) > 0 {
		return found
	}
	return s.lookupInTransitiveDeps(picker, q, nextLoop)
}

// lookupInStack walks the enclosing container stack innermost-to-outermost;
// the first frame producing any match wins (lexical shadowing).
func (s *Scope) lookupInStack(picker Picker, q ident.QIdent, loop LoopDetector) container.Seq[DeclWithScope] {
	for i := len(s.stack) - 1; i >= 0; i-- {
		frameScope := s.scopeUpTo(i)
		if found := frameScope.lookupInFrame(s.stack[i], picker, q, loop); len(found) > 0 {
			return found
		}
	}
	return nil
}

// lookupInModuleRegistry is consulted once the lexical stack is exhausted:
// it covers references to declarations of a sibling module (or a global
// augmentation) that the current lexical nesting doesn't pass through.
func (s *Scope) lookupInModuleRegistry(picker Picker, q ident.QIdent, loop LoopDetector) container.Seq[DeclWithScope] {
	var out container.Seq[DeclWithScope]
	for _, key := range s.moduleScopes.Keys() {
		modScope, _ := s.moduleScopes.Get(key)
		if len(modScope.stack) == 0 {
			continue
		}
		top := modScope.stack[len(modScope.stack)-1]
		if found := modScope.lookupInFrame(top, picker, q, loop); len(found) > 0 {
			out = out.Concat(found)
		}
	}
	return out
}

// lookupInTransitiveDeps searches each already-resolved dependency
// library's flattened file, per spec.md §4.3's "then transitive deps".
func (s *Scope) lookupInTransitiveDeps(picker Picker, q ident.QIdent, loop LoopDetector) container.Seq[DeclWithScope] {
	var out container.Seq[DeclWithScope]
	for _, dep := range s.transitiveDeps {
		depScope := Root(s.libName, s.pedantic, nil, s.logger).Descend(dep)
		if found := depScope.lookupInFrame(dep, picker, q, loop); len(found) > 0 {
			out = out.Concat(found)
		}
	}
	return out
}

// lookupInFrame searches one container's direct members for q.Head(),
// recursing into the matched member for q.Tail() when q is multi-part.
func (s *Scope) lookupInFrame(frame tree.Tree, picker Picker, q ident.QIdent, loop LoopDetector) container.Seq[DeclWithScope] {
	head := q.Head()
	rest := q.Tail()

	members := tree.Children(frame)
	var out container.Seq[DeclWithScope]
	for _, m := range members {
		named, ok := m.(tree.Named)
		if !ok || named.Name() != head {
			continue
		}
		if rest.Empty() {
			if picker.matches(m) {
				out = append(out, DeclWithScope{Decl: m, Scope: s})
			}
			continue
		}
		if ct, ok := m.(tree.ChildScopeTree); ok {
			child := s.Descend(ct)
			out = out.Concat(child.LookupInternal(picker, rest, loop))
			continue
		}
		if dc, ok := m.(*tree.DeclClass); ok {
			out = out.Concat(lookupInClassMembers(s, dc.Members, picker, rest))
			continue
		}
		if di, ok := m.(*tree.DeclInterface); ok {
			out = out.Concat(lookupInClassMembers(s, di.Members, picker, rest))
			continue
		}
	}

	if len(out) == 0 && s.unqualified && !rest.Empty() {
		// Fallback: treat the whole qident as if only its last component
		// mattered, for namespaces that merge unqualified.
		return s.lookupInFrame(frame, picker, ident.NewQIdent(q.Last()), loop)
	}
	return out
}

func lookupInClassMembers(s *Scope, members []tree.Member, picker Picker, q ident.QIdent) container.Seq[DeclWithScope] {
	if !q.Tail().Empty() {
		// Members don't nest further; a deeper qualification into a class
		// member has no meaning here.
		return nil
	}
	head := q.Head()
	var out container.Seq[DeclWithScope]
	for _, m := range members {
		// Members carry a name but no code path, so they do not satisfy
		// tree.Named; match on the name alone.
		named, ok := m.(interface{ Name() ident.SimpleIdent })
		if !ok || named.Name() != head {
			continue
		}
		if picker.matches(m) {
			out = append(out, DeclWithScope{Decl: m, Scope: s})
		}
	}
	return out
}

// scopeUpTo returns a copy of s truncated to the first i+1 stack frames,
// used while walking outward so a recursive lookup starting from an outer
// frame doesn't see frames inside it.
func (s *Scope) scopeUpTo(i int) *Scope {
	next := s.shallowCopy()
	next.stack = s.stack[:i+1]
	return next
}
