package ident

// CodePath is the canonical location of a declaration within a library:
// either NoPath (not yet assigned, only legal transiently during the early
// stages of the pipeline) or HasPath{Lib, Path}.
//
// This mirrors spec.md §3.1's sum type with a tagged struct rather than an
// interface, since the two cases carry almost the same shape and Go code
// switching on a boolean tag is simpler to read here than a two-case
// interface would be; the sum-typed variants that actually benefit from an
// interface (Tree, Type) get one in package tree.
type CodePath struct {
	has  bool
	Lib  LibraryName
	Path QIdent
}

// NoPath is the zero value: no code path assigned yet.
var NoPath = CodePath{}

// HasPath constructs an assigned code path.
func HasPath(lib LibraryName, path QIdent) CodePath {
	return CodePath{has: true, Lib: lib, Path: path}
}

// IsSet reports whether this is a HasPath value.
func (c CodePath) IsSet() bool { return c.has }

// Add extends the path by one ident; it is only valid to call on an
// already-set path.
func (c CodePath) Add(x SimpleIdent) CodePath {
	if !c.has {
		return c
	}
	return HasPath(c.Lib, c.Path.Add(x))
}

// ReplaceLast substitutes the final path segment.
func (c CodePath) ReplaceLast(x SimpleIdent) CodePath {
	if !c.has {
		return c
	}
	return HasPath(c.Lib, c.Path.ReplaceLast(x))
}

// ForceHasPath panics (loudly, per spec.md §4.2) when called on an unset
// path outside of the controlled construction sites (SetCodePath) that are
// allowed to assign the initial path.
func (c CodePath) ForceHasPath() CodePath {
	if !c.has {
		panic("codepath: ForceHasPath called on NoPath")
	}
	return c
}

// Equal is structural equality.
func (c CodePath) Equal(o CodePath) bool {
	if c.has != o.has {
		return false
	}
	if !c.has {
		return true
	}
	return c.Lib.Equal(o.Lib) && c.Path.Equal(o.Path)
}

func (c CodePath) String() string {
	if !c.has {
		return "<no-path>"
	}
	return c.Lib.String() + "/" + c.Path.String()
}
