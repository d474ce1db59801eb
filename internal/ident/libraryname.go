package ident

import "strings"

// LibraryName is an npm library name, either unscoped ("lodash") or scoped
// ("@types/node" -> Scope "types", Name "node").
type LibraryName struct {
	Scope string // empty when unscoped
	Name  string
}

// ParseLibraryName parses the npm spelling of a library name.
func ParseLibraryName(s string) LibraryName {
	s = strings.TrimPrefix(s, "@")
	if i := strings.Index(s, "/"); i >= 0 {
		return LibraryName{Scope: s[:i], Name: s[i+1:]}
	}
	return LibraryName{Name: s}
}

// Scoped reports whether the library carries an npm scope.
func (l LibraryName) Scoped() bool { return l.Scope != "" }

// IsTypesPackage reports whether this is a `@types/*` shadow package,
// e.g. "@types/node" backing the unscoped library "node".
func (l LibraryName) IsTypesPackage() bool { return l.Scope == "types" }

// Unscoped strips any `@types` scope, returning the library the package
// actually provides typings for: `@types/node` -> `node`,
// `@types/babel__core` -> `@babel/core`.
func (l LibraryName) Unscoped() LibraryName {
	if !l.IsTypesPackage() {
		return l
	}
	if parts := strings.SplitN(l.Name, "__", 2); len(parts) == 2 {
		return LibraryName{Scope: parts[0], Name: parts[1]}
	}
	return LibraryName{Name: l.Name}
}

// String renders the canonical npm spelling.
func (l LibraryName) String() string {
	if l.Scope == "" {
		return l.Name
	}
	return "@" + l.Scope + "/" + l.Name
}

// Equal compares two library names structurally.
func (l LibraryName) Equal(o LibraryName) bool {
	return l.Scope == o.Scope && l.Name == o.Name
}
