package moduleengine

import (
	"fmt"
	"strings"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// ProxyModule constructs the synthetic `declare module "<libName>/<subpath>"
// { export * from "<resolved>" }` modules spec.md §4.6 derives from
// `package.json#exports`. pattern is the exports map's key (e.g. "./*" or
// "./feature"), target is its `types` value (e.g. "./dist/*.d.ts"), and
// files is every relative path already discovered under the package root
// (the caller -- internal/resolver -- supplies this via
// internal/fsio's walk rather than this package doing its own I/O, keeping
// the synthesis logic independent of the filesystem). Exactly one `*` is
// supported; more than one in either pattern or target is fatal, matching
// the spec's "multiple is a fatal" rule.
func ProxyModule(libName ident.LibraryName, pattern, target string, files []string) ([]*tree.Module, error) {
	if strings.Count(pattern, "*") > 1 || strings.Count(target, "*") > 1 {
		return nil, fmt.Errorf("moduleengine: ProxyModule pattern %q / target %q has more than one '*'", pattern, target)
	}

	if !strings.Contains(pattern, "*") {
		spec := ident.ModuleSpec(proxySpec(libName, stripDts(trimDotSlash(pattern))))
		resolved := ident.ModuleSpec(stripDts(trimDotSlash(target)))
		return []*tree.Module{starExportModule(spec, resolved)}, nil
	}

	pre, post, _ := strings.Cut(pattern, "*")
	tpre, tpost, _ := strings.Cut(target, "*")
	tprefix := trimDotSlash(tpre)

	var out []*tree.Module
	for _, f := range files {
		rel := trimDotSlash(f)
		if !strings.HasPrefix(rel, tprefix) || !strings.HasSuffix(rel, tpost) {
			continue
		}
		mid := rel[len(tprefix) : len(rel)-len(tpost)]
		subpath := pre + mid + post

		spec := ident.ModuleSpec(proxySpec(libName, trimDotSlash(subpath)))
		resolved := ident.ModuleSpec(stripDts(rel))
		out = append(out, starExportModule(spec, resolved))
	}
	return out, nil
}

func proxySpec(libName ident.LibraryName, subpath string) string {
	if subpath == "" {
		return libName.String()
	}
	return libName.String() + "/" + subpath
}

func trimDotSlash(s string) string {
	return strings.TrimPrefix(s, "./")
}

func stripDts(s string) string {
	return strings.TrimSuffix(s, ".d.ts")
}

func starExportModule(spec, resolved ident.ModuleSpec) *tree.Module {
	exportStar := &tree.Export{
		Kind: tree.ExportNamed,
		Exported: tree.Exportee{
			Kind:    tree.ExporteeStar,
			From:    resolved,
			HasFrom: true,
		},
	}
	name, err := ident.ModuleNameParser{KeepIndexFragment: true}.Parse(strings.Split(string(spec), "/"))
	if err != nil {
		name = ident.ModuleName{Fragments: []string{string(spec)}}
	}
	return &tree.Module{
		NameV:    name,
		Spec:     spec,
		Declared: true,
		Members:  []tree.Tree{exportStar},
	}
}
