package transform

import (
	"strings"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/moduleengine"
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/scope"
	"github.com/tsdecl/tsconv/internal/tree"
)

// replaceExports expands every Export node in pf into the plain
// declarations it introduces, innermost container first (spec.md §4.7 step
// 8, reusing the per-shape expanders of internal/moduleengine), so an
// `export * from "m"` sees m's own exports already expanded into ordinary
// members by the time it runs.
func (p *Pipeline) replaceExports(pf *tree.ParsedFile, s *scope.Scope) *tree.ParsedFile {
	return p.replaceExportsIn(pf, s).(*tree.ParsedFile)
}

func (p *Pipeline) replaceExportsIn(t tree.Tree, s *scope.Scope) tree.Tree {
	ct, ok := t.(tree.ContainerTree)
	if !ok {
		return t
	}
	childScope := s
	if cst, ok := t.(tree.ChildScopeTree); ok {
		childScope = s.Descend(cst)
	}

	members := tree.Children(ct)
	out := make([]tree.Tree, 0, len(members))
	for _, m := range members {
		m = p.replaceExportsIn(m, childScope)
		exp, ok := m.(*tree.Export)
		if !ok {
			out = append(out, m)
			continue
		}
		out = append(out, p.expandExport(exp, ct, childScope)...)
	}
	return tree.Rebuild(t, out)
}

func (p *Pipeline) expandExport(exp *tree.Export, owner tree.ContainerTree, s *scope.Scope) []tree.Tree {
	eo := moduleengine.ExportOwner{Path: owner.GetCodePath(), Loc: owner.GetJsLocation()}
	switch exp.Exported.Kind {
	case tree.ExporteeTree:
		return moduleengine.ExportTree(eo, exp.Kind, exp.Exported.Tree, "")
	case tree.ExporteeNames:
		from := p.exportFromScope(exp.Exported, s)
		return moduleengine.ExportNamed(eo, exp.Kind, exp.Exported.Names, from, s)
	case tree.ExporteeStar:
		from := p.exportFromScope(exp.Exported, s)
		if from == nil {
			p.warn(&phaseerr.ResolveWarning{Module: string(exp.Exported.From)})
			return nil
		}
		stack := from.Stack()
		if len(stack) == 0 {
			return nil
		}
		return moduleengine.ExportStar(eo, exp.Kind, from, tree.Children(stack[len(stack)-1]))
	default: // ExporteeImport: handleCommonJsModules (step 4) already canonicalized this away.
		return []tree.Tree{exp}
	}
}

// exportFromScope resolves an Exportee's optional `from "m"` clause to that
// module's own scope, returning nil when unresolved or when the Exportee
// carries no from clause at all.
func (p *Pipeline) exportFromScope(ee tree.Exportee, s *scope.Scope) *scope.Scope {
	if !ee.HasFrom {
		return nil
	}
	name, err := (ident.ModuleNameParser{}).Parse(strings.Split(string(ee.From), "/"))
	if err != nil {
		return nil
	}
	found, ok := s.ModuleScope(name)
	if !ok {
		return nil
	}
	return found
}
