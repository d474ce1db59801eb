package moduleengine

import (
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// ModuleAsGlobalNamespace implements spec.md §4.6: when mod contains an
// ExportAsNamespace(X), lift mod's contents into a Global -> Namespace(X)
// surface. If mod has a `default` export, the lifted namespace holds
// aliases named X pointing at those defaults (a library whose default
// export is a single function/class, as `export as namespace L`
// conventionally requires); otherwise the namespace directly mirrors mod's
// own members. Returns (nil, false) when mod carries no ExportAsNamespace.
func ModuleAsGlobalNamespace(mod *tree.Module) (*tree.Global, bool) {
	var asName ident.SimpleIdent
	found := false
	var rest []tree.Tree
	for _, m := range mod.Members {
		if ean, ok := m.(*tree.ExportAsNamespace); ok {
			asName = ean.Ident
			found = true
			continue
		}
		rest = append(rest, m)
	}
	if !found {
		return nil, false
	}

	var defaults []tree.Tree
	var others []tree.Tree
	for _, m := range rest {
		if named, ok := m.(tree.Named); ok && named.Name() == ident.Default {
			defaults = append(defaults, m)
			continue
		}
		others = append(others, m)
	}

	nsPath := ident.HasPath(mod.CodePath.Lib, ident.NewQIdent(asName))
	globalLoc := ident.NewJsGlobal(ident.NewQIdent(asName))

	var nsMembers []tree.Tree
	if len(defaults) > 0 {
		for _, d := range defaults {
			nsMembers = append(nsMembers, DeriveCopy(d, nsPath, globalLoc.Add(asName)))
		}
	} else {
		nsMembers = others
	}

	ns := &tree.Namespace{
		NameV:    asName,
		Declared: true,
		Members:  nsMembers,
		CodePath: nsPath,
		JsLoc:    globalLoc,
	}
	return &tree.Global{Members: []tree.Tree{ns}}, true
}
