package tree

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
)

// Importee discriminates what an Import pulls from.
type ImporteeKind int

const (
	ImporteeFrom ImporteeKind = iota // `import {a} from "m"`
	ImporteeRequired                 // `import x = require("m")`
	ImporteeLocal                    // `import x = Other.Qualified.Name`
)

type Importee struct {
	Kind    ImporteeKind
	Module  ident.ModuleSpec // ImporteeFrom / ImporteeRequired
	QIdentV ident.QIdent      // ImporteeLocal
}

// ImportedName is one imported binding: `a` or `a as b`, or the module
// default/namespace forms.
type ImportedKind int

const (
	ImportedNamed ImportedKind = iota
	ImportedDefaulted
	ImportedNamespaced // `import * as X from "m"`
)

type ImportedName struct {
	Kind  ImportedKind
	Name  ident.SimpleIdent // the local binding name
	From  ident.SimpleIdent // for ImportedNamed: the exported name (pre-alias)
}

// Import is `import {a, b as c} from "m"`, `import x = require("m")`,
// `import X = Q.Name`, `import * as X from "m"`, or `import "m"` (no
// bindings — Imported is empty).
type Import struct {
	Comments comments.List
	TypeOnly bool
	Imported []ImportedName
	From     Importee
}

func (*Import) isTree() {}

// ExportKind discriminates Export's three shapes.
type ExportKind int

const (
	ExportNamed ExportKind = iota
	ExportDefaulted
	ExportNamespaced
)

// ExporteeKind discriminates what an Export re-exports.
type ExporteeKind int

const (
	ExporteeTree   ExporteeKind = iota // `export class C {}` / `export default X`
	ExporteeImport                     // `export import X = require(...)` (import-and-export)
	ExporteeNames                      // `export { a, b as c } [from "m"]`
	ExporteeStar                       // `export * from "m"` / `export * as ns from "m"`
)

// ExportedName is one `a` or `a as b` entry of a named re-export list.
type ExportedName struct {
	QIdentV ident.QIdent
	Alias   ident.SimpleIdent // empty when no alias given
}

type Exportee struct {
	Kind     ExporteeKind
	Tree     Tree           // ExporteeTree
	Import   *Import        // ExporteeImport
	Names    []ExportedName // ExporteeNames
	From     ident.ModuleSpec // ExporteeNames (optional) / ExporteeStar
	HasFrom  bool
	StarAs   ident.SimpleIdent // ExporteeStar with `as ns`, empty otherwise
}

// Export is a not-yet-expanded export statement; ReplaceExports (spec.md
// §4.6, §4.7 step 8) rewrites every Export node in a module/namespace into
// the concrete declarations it introduces.
type Export struct {
	Comments comments.List
	TypeOnly bool
	Kind     ExportKind
	Exported Exportee
}

func (*Export) isTree() {}

// ExportAsNamespace is `export as namespace X`, consumed by
// ModuleAsGlobalNamespace (spec.md §4.6).
type ExportAsNamespace struct {
	Comments comments.List
	Ident    ident.SimpleIdent
}

func (*ExportAsNamespace) isTree() {}
