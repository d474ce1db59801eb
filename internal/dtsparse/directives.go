package dtsparse

import (
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tsdecl/tsconv/internal/tree"
)

// Exact directive line forms spec.md §6.5 recognizes; anything else is
// ignored without complaint.
var (
	reNoDefaultLib = regexp.MustCompile(`^///\s*<reference\s+no-default-lib="true"\s*/>\s*$`)
	rePathRef      = regexp.MustCompile(`^///\s*<reference\s+path="([^"]*)"\s*/>\s*$`)
	reTypesRef     = regexp.MustCompile(`^///\s*<reference\s+types="([^"]*)"\s*/>\s*$`)
	reLibRef       = regexp.MustCompile(`^///\s*<reference\s+lib="([^"]*)"\s*/>\s*$`)
	reAmdModule    = regexp.MustCompile(`^///\s*<amd-module\s+name="([^"]*)"\s*/>\s*$`)
)

// scanDirective classifies a single leading line comment's full text
// (including the leading "///") as one of the five recognized directive
// forms.
func scanDirective(line string) (tree.Tree, bool) {
	switch {
	case reNoDefaultLib.MatchString(line):
		return tree.NoStdLib{}, true
	case rePathRef.MatchString(line):
		return tree.PathRef{Path: rePathRef.FindStringSubmatch(line)[1]}, true
	case reTypesRef.MatchString(line):
		return tree.TypesRef{Name: reTypesRef.FindStringSubmatch(line)[1]}, true
	case reLibRef.MatchString(line):
		return tree.LibRef{Name: reLibRef.FindStringSubmatch(line)[1]}, true
	case reAmdModule.MatchString(line):
		return tree.AmdModule{Name: reAmdModule.FindStringSubmatch(line)[1]}, true
	default:
		return nil, false
	}
}

// scanDirectives reads the file's leading run of `///` comment nodes (the
// grammar treats them as ordinary comment nodes preceding the first real
// statement) and classifies each as one of the five recognized directive
// forms, discarding anything else without complaint, per spec.md §6.5.
func scanDirectives(root *tree_sitter.Node, content []byte) []tree.Tree {
	var out []tree.Tree
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() != "comment" {
			break
		}
		raw := string(content[child.StartByte():child.EndByte()])
		line := strings.TrimSpace(raw)
		if d, ok := scanDirective(line); ok {
			out = append(out, d)
		}
	}
	return out
}
