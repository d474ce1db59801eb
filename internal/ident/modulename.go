package ident

import (
	"fmt"
	"strings"
)

// ModuleName is an optional npm scope plus an ordered list of path
// fragments, e.g. `@babel/plugin-transform-runtime` -> Scope "babel",
// Fragments ["plugin-transform-runtime"].
type ModuleName struct {
	Scope     string
	Fragments []string
}

// String renders the canonical npm-style module specifier text.
func (m ModuleName) String() string {
	body := strings.Join(m.Fragments, "/")
	if m.Scope == "" {
		return body
	}
	return "@" + m.Scope + "/" + body
}

// Equal compares two module names structurally.
func (m ModuleName) Equal(o ModuleName) bool {
	if m.Scope != o.Scope || len(m.Fragments) != len(o.Fragments) {
		return false
	}
	for i := range m.Fragments {
		if m.Fragments[i] != o.Fragments[i] {
			return false
		}
	}
	return true
}

// ModuleNameParser normalizes raw fragment lists into a canonical ModuleName,
// per spec.md §4.2. Rules are applied in this fixed order:
//
//  1. drop a leading "@types" fragment;
//  2. strip leading "~" from the first fragment;
//  3. if the first remaining fragment contains "scope__name", split into npm
//     scope + name, matching how `@types` package folder names spell scoped
//     packages: "babel__core" -> "@babel/core" (this checks the first
//     fragment regardless of how many fragments remain, since the scoped
//     folder is always the first path segment, e.g.
//     ["babel__core", "index.d.ts"] -> "@babel/core");
//  4. strip a trailing ".d.ts" or ".ts" suffix from the last fragment;
//  5. when KeepIndexFragment is false, drop a trailing "index" fragment.
//
// An empty fragment list after normalization is an error.
type ModuleNameParser struct {
	KeepIndexFragment bool
}

// Parse normalizes a slice of raw path/string fragments into a ModuleName.
func (p ModuleNameParser) Parse(fragments []string) (ModuleName, error) {
	frags := append([]string(nil), fragments...)

	if len(frags) > 0 && frags[0] == "@types" {
		frags = frags[1:]
	}

	if len(frags) > 0 {
		frags[0] = strings.TrimPrefix(frags[0], "~")
	}

	var scope string
	if len(frags) > 0 {
		if s, name, ok := splitScopedFolder(frags[0]); ok {
			scope = s
			frags[0] = name
		} else if strings.HasPrefix(frags[0], "@") {
			scope = strings.TrimPrefix(frags[0], "@")
			frags = frags[1:]
		}
	}

	if n := len(frags); n > 0 {
		last := frags[n-1]
		switch {
		case strings.HasSuffix(last, ".d.ts"):
			last = strings.TrimSuffix(last, ".d.ts")
		case strings.HasSuffix(last, ".ts"):
			last = strings.TrimSuffix(last, ".ts")
		}
		frags[n-1] = last
	}

	// Drop any fragments left empty by a suffix strip (e.g. the whole last
	// fragment was exactly ".d.ts" worth of name, which doesn't happen in
	// practice, but keep the invariant that fragments are non-empty).
	frags = dropEmpty(frags)

	if !p.KeepIndexFragment && len(frags) > 1 && frags[len(frags)-1] == "index" {
		frags = frags[:len(frags)-1]
	}

	if len(frags) == 0 {
		return ModuleName{}, fmt.Errorf("modulename: empty fragment list after normalization")
	}

	return ModuleName{Scope: scope, Fragments: frags}, nil
}

// splitScopedFolder splits an `@types` folder spelling of a scoped package,
// "scope__name", into its npm scope and name. Only fires when a literal
// "__" separator is present.
func splitScopedFolder(frag string) (scope, name string, ok bool) {
	if i := strings.Index(frag, "__"); i > 0 {
		return frag[:i], frag[i+2:], true
	}
	return "", "", false
}

func dropEmpty(frags []string) []string {
	out := frags[:0]
	for _, f := range frags {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// FromLibraryName derives the identity module name for a library: its own
// root module, used when an import resolves to "the library itself" rather
// than a named submodule.
func FromLibraryName(lib LibraryName) ModuleName {
	return ModuleName{Scope: lib.Scope, Fragments: []string{lib.Name}}
}
