package transform

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// handleCommonJsModules canonicalizes `export import X = require("m")`
// (the CommonJS/AMD interop idiom for re-exporting a whole required module
// under a local name) into a plain `Import` plus a `Named` export of the
// bound name, so ReplaceExports (spec.md §4.7 step 8) only ever has to
// handle the "named exports" shape instead of also special-casing
// ExporteeImport at expansion time.
func (p *Pipeline) handleCommonJsModules(pf *tree.ParsedFile) *tree.ParsedFile {
	return rewriteContainerMembers(pf, expandExportImport).(*tree.ParsedFile)
}

func expandExportImport(m tree.Tree) ([]tree.Tree, bool) {
	exp, ok := m.(*tree.Export)
	if !ok || exp.Exported.Kind != tree.ExporteeImport || exp.Exported.Import == nil {
		return nil, false
	}
	imp := exp.Exported.Import
	if len(imp.Imported) == 0 {
		return nil, false
	}
	localName := imp.Imported[0].Name
	reexport := &tree.Export{
		Comments: exp.Comments,
		TypeOnly: exp.TypeOnly,
		Kind:     exp.Kind,
		Exported: tree.Exportee{Kind: tree.ExporteeNames, Names: []tree.ExportedName{{QIdentV: ident.NewQIdent(localName)}}},
	}
	return []tree.Tree{imp, reexport}, true
}

// rewriteExportStarAs desugars `export * as ns from "m"` into
// `import * as ns from "m"; export { ns };`, matching the native TypeScript
// compiler's own expansion of that form (spec.md §4.7 step 4), so the rest
// of the pipeline only ever sees a plain namespace import and a named
// export rather than a fourth export shape.
func (p *Pipeline) rewriteExportStarAs(pf *tree.ParsedFile) *tree.ParsedFile {
	return rewriteContainerMembers(pf, expandExportStarAs).(*tree.ParsedFile)
}

func expandExportStarAs(m tree.Tree) ([]tree.Tree, bool) {
	exp, ok := m.(*tree.Export)
	if !ok || exp.Exported.Kind != tree.ExporteeStar || exp.Exported.StarAs == "" {
		return nil, false
	}
	ns := exp.Exported.StarAs
	imp := &tree.Import{
		Imported: []tree.ImportedName{{Kind: tree.ImportedNamespaced, Name: ns}},
		From:     tree.Importee{Kind: tree.ImporteeFrom, Module: exp.Exported.From},
	}
	reexport := &tree.Export{
		Comments: exp.Comments,
		TypeOnly: exp.TypeOnly,
		Kind:     exp.Kind,
		Exported: tree.Exportee{Kind: tree.ExporteeNames, Names: []tree.ExportedName{{QIdentV: ident.NewQIdent(ns)}}},
	}
	return []tree.Tree{imp, reexport}, true
}

// rewriteContainerMembers recursively applies expand to every member of
// every container in t (ParsedFile, Namespace, Module, AugmentedModule,
// Global), replacing any member expand matches with the (possibly
// multi-node) replacement it returns. Used by both the CommonJS-import and
// export-star-as desugarings, which both need to turn one member into two
// -- something tree.WalkUnit's one-in-one-out Rebuild contract can't do on
// its own.
func rewriteContainerMembers(t tree.Tree, expand func(tree.Tree) ([]tree.Tree, bool)) tree.Tree {
	ct, ok := t.(tree.ContainerTree)
	if !ok {
		return t
	}
	members := tree.Children(ct)
	out := make([]tree.Tree, 0, len(members))
	changed := false
	for _, m := range members {
		m = rewriteContainerMembers(m, expand)
		if replacement, ok := expand(m); ok {
			out = append(out, replacement...)
			changed = true
			continue
		}
		out = append(out, m)
	}
	if !changed {
		return t
	}
	return tree.Rebuild(t, out)
}
