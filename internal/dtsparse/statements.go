package dtsparse

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// convertBlock converts every statement-level child of a container node
// (the file's program node, a `{ ... }` module/namespace body, or a
// `declare global { ... }` body) into tree.Tree members, attaching any
// run of immediately preceding comment nodes to the statement that follows
// them. Tree-sitter exposes comments as ordinary siblings of the statement
// they document rather than as trivia hung off it, so attachment has to be
// reconstructed here rather than read off a single node.
func (c *converter) convertBlock(node *tree_sitter.Node) []tree.Tree {
	var out []tree.Tree
	var pending comments.List
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "comment":
			pending = append(pending, c.commentOf(child))
			continue
		case "{", "}", ";", "hash_bang_line":
			continue
		}
		member := c.convertStatement(child, pending)
		pending = nil
		if member != nil {
			out = append(out, member)
		}
	}
	return out
}

func (c *converter) commentOf(n *tree_sitter.Node) comments.Comment {
	text := c.text(n)
	text = strings.TrimPrefix(text, "///")
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return comments.Text(strings.TrimSpace(text))
}

// convertStatement dispatches on a top-level statement node's kind. Only an
// enclosing `declare` (ambient_declaration, via convertAmbientDeclaration)
// marks the inner declaration Declared; a declaration reached here directly,
// including through `export` (e.g. `export interface I {}`), is converted
// with Declared false.
func (c *converter) convertStatement(node *tree_sitter.Node, lead comments.List) tree.Tree {
	switch node.Kind() {
	case "ambient_declaration":
		return c.convertAmbientDeclaration(node, lead)
	case "export_statement":
		return c.convertExportStatement(node, lead)
	case "import_statement", "import_alias":
		return c.convertImport(node, lead, false)
	case "interface_declaration":
		return c.convertInterface(node, lead, false)
	case "type_alias_declaration":
		return c.convertTypeAlias(node, lead, false)
	case "function_signature", "function_declaration":
		return c.convertFunction(node, lead, false)
	case "lexical_declaration", "variable_declaration":
		return c.convertVar(node, lead, false)
	case "class_declaration", "abstract_class_declaration":
		return c.convertClass(node, lead, false)
	case "enum_declaration":
		return c.convertEnum(node, lead, false)
	case "internal_module", "module":
		return c.convertNamespaceOrModule(node, lead, false)
	case "global":
		return &tree.Global{Comments: lead, Members: c.convertBlock(bodyOf(node))}
	default:
		return nil
	}
}

func bodyOf(node *tree_sitter.Node) *tree_sitter.Node {
	if b := node.ChildByFieldName("body"); b != nil {
		return b
	}
	return node
}

// convertAmbientDeclaration unwraps `declare ...`, marking the inner
// declaration Declared and threading lead comments through.
func (c *converter) convertAmbientDeclaration(node *tree_sitter.Node, lead comments.List) tree.Tree {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() == "declare" {
			continue
		}
		switch child.Kind() {
		case "interface_declaration":
			return c.convertInterface(child, lead, true)
		case "type_alias_declaration":
			return c.convertTypeAlias(child, lead, true)
		case "function_signature", "function_declaration":
			return c.convertFunction(child, lead, true)
		case "lexical_declaration", "variable_declaration":
			return c.convertVar(child, lead, true)
		case "class_declaration", "abstract_class_declaration":
			return c.convertClass(child, lead, true)
		case "enum_declaration":
			return c.convertEnum(child, lead, true)
		case "internal_module", "module":
			return c.convertNamespaceOrModule(child, lead, true)
		case "global":
			return &tree.Global{Comments: lead, Members: c.convertBlock(bodyOf(child))}
		default:
			return c.convertStatement(child, lead)
		}
	}
	return nil
}

// convertExportStatement handles every `export ...` shape: a direct
// declaration (`export interface I {}`), a default export, a named
// re-export list, or a star re-export.
func (c *converter) convertExportStatement(node *tree_sitter.Node, lead comments.List) tree.Tree {
	isDefault := false
	isTypeOnly := false
	var starAs ident.SimpleIdent
	isStar := false
	var fromSpec ident.ModuleSpec
	hasFrom := false
	var names []tree.ExportedName
	var declChild *tree_sitter.Node

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "default":
			isDefault = true
		case "type":
			isTypeOnly = true
		case "*":
			isStar = true
		case "namespace_export":
			// `* as ns`
			if id := child.ChildByFieldName("name"); id != nil {
				starAs = ident.SimpleIdent(c.text(id))
			}
		case "export_clause":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "export_specifier" {
					continue
				}
				name := ident.ParseQIdent(c.text(spec.ChildByFieldName("name")))
				alias := ident.SimpleIdent("")
				if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
					alias = ident.SimpleIdent(c.text(aliasNode))
				}
				names = append(names, tree.ExportedName{QIdentV: name, Alias: alias})
			}
		case "string":
			fromSpec = ident.ModuleSpec(unquote(c.text(child)))
			hasFrom = true
		case "import_alias":
			return c.convertImport(child, lead, true)
		case "=":
			// `export = Expr` (export assignment) has no dedicated node in
			// this AST and is not expanded: the assigned name is not
			// recorded, and the statement yields a named export with an
			// empty name list.
		case "identifier", "nested_identifier":
			if isDefault {
				// `export default someAlreadyDeclaredName;` re-exports a
				// name rather than introducing a fresh declaration.
				return &tree.Export{Comments: lead, TypeOnly: isTypeOnly, Kind: tree.ExportDefaulted,
					Exported: tree.Exportee{Kind: tree.ExporteeNames, Names: []tree.ExportedName{{QIdentV: ident.ParseQIdent(c.text(child))}}}}
			}
		default:
			if isTreeDeclarationKind(child.Kind()) {
				declChild = child
			}
		}
	}

	if declChild != nil {
		inner := c.convertStatement(declChild, nil)
		if inner == nil {
			return nil
		}
		if isDefault {
			return &tree.Export{Comments: lead, TypeOnly: isTypeOnly, Kind: tree.ExportDefaulted,
				Exported: tree.Exportee{Kind: tree.ExporteeTree, Tree: inner}}
		}
		return &tree.Export{Comments: lead, TypeOnly: isTypeOnly, Kind: tree.ExportNamed,
			Exported: tree.Exportee{Kind: tree.ExporteeTree, Tree: inner}}
	}

	if isStar {
		return &tree.Export{Comments: lead, TypeOnly: isTypeOnly, Kind: tree.ExportNamed,
			Exported: tree.Exportee{Kind: tree.ExporteeStar, From: fromSpec, HasFrom: hasFrom, StarAs: starAs}}
	}

	return &tree.Export{Comments: lead, TypeOnly: isTypeOnly, Kind: tree.ExportNamed,
		Exported: tree.Exportee{Kind: tree.ExporteeNames, Names: names, From: fromSpec, HasFrom: hasFrom}}
}

func isTreeDeclarationKind(kind string) bool {
	switch kind {
	case "interface_declaration", "type_alias_declaration", "function_signature",
		"function_declaration", "lexical_declaration", "variable_declaration",
		"class_declaration", "abstract_class_declaration", "enum_declaration",
		"internal_module", "module", "ambient_declaration":
		return true
	}
	return false
}

// convertImport handles every import shape: `import {a, b as c} from "m"`,
// `import * as X from "m"`, `import X = require("m")`, `import X = Q.Name`,
// and bare `import "m"`.
func (c *converter) convertImport(node *tree_sitter.Node, lead comments.List, exported bool) tree.Tree {
	typeOnly := false
	var imported []tree.ImportedName
	from := tree.Importee{Kind: tree.ImporteeFrom}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "type":
			typeOnly = true
		case "import_clause":
			imported = append(imported, c.convertImportClause(child)...)
		case "namespace_import":
			if id := child.ChildByFieldName("name"); id != nil {
				imported = append(imported, tree.ImportedName{Kind: tree.ImportedNamespaced, Name: ident.SimpleIdent(c.text(id))})
			}
		case "string":
			from = tree.Importee{Kind: tree.ImporteeFrom, Module: ident.ModuleSpec(unquote(c.text(child)))}
		case "import_require_clause":
			name := ident.SimpleIdent(c.text(child.ChildByFieldName("name")))
			src := child.ChildByFieldName("source")
			imported = []tree.ImportedName{{Kind: tree.ImportedDefaulted, Name: name}}
			from = tree.Importee{Kind: tree.ImporteeRequired, Module: ident.ModuleSpec(unquote(c.text(src)))}
		case "identifier", "nested_identifier", "qualified_name":
			if len(imported) > 0 {
				from = tree.Importee{Kind: tree.ImporteeLocal, QIdentV: ident.ParseQIdent(c.text(child))}
			}
		}
	}

	// `import X = require("m")` / `import X = Q.Name` spell their bound
	// name as the statement's own "name" field rather than inside a clause.
	if name := node.ChildByFieldName("name"); name != nil && len(imported) == 0 {
		imported = []tree.ImportedName{{Kind: tree.ImportedDefaulted, Name: ident.SimpleIdent(c.text(name))}}
	}

	imp := &tree.Import{Comments: lead, TypeOnly: typeOnly, Imported: imported, From: from}
	if exported {
		return &tree.Export{Comments: lead, Kind: tree.ExportNamed,
			Exported: tree.Exportee{Kind: tree.ExporteeImport, Import: imp}}
	}
	return imp
}

func (c *converter) convertImportClause(node *tree_sitter.Node) []tree.ImportedName {
	var out []tree.ImportedName
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			out = append(out, tree.ImportedName{Kind: tree.ImportedDefaulted, Name: ident.SimpleIdent(c.text(child))})
		case "namespace_import":
			if id := child.ChildByFieldName("name"); id != nil {
				out = append(out, tree.ImportedName{Kind: tree.ImportedNamespaced, Name: ident.SimpleIdent(c.text(id))})
			}
		case "named_imports":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				from := ident.SimpleIdent(c.text(spec.ChildByFieldName("name")))
				local := from
				if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
					local = ident.SimpleIdent(c.text(aliasNode))
				}
				out = append(out, tree.ImportedName{Kind: tree.ImportedNamed, Name: local, From: from})
			}
		}
	}
	return out
}

func (c *converter) convertTypeParams(node *tree_sitter.Node) []tree.TypeParam {
	tp := node.ChildByFieldName("type_parameters")
	if tp == nil {
		return nil
	}
	var out []tree.TypeParam
	for i := uint(0); i < tp.ChildCount(); i++ {
		child := tp.Child(i)
		if child == nil || child.Kind() != "type_parameter" {
			continue
		}
		p := tree.TypeParam{Name: ident.SimpleIdent(c.text(child.ChildByFieldName("name")))}
		if constraint := child.ChildByFieldName("constraint"); constraint != nil {
			p.Upper = c.convertType(constraint)
		}
		if def := child.ChildByFieldName("value"); def != nil {
			p.Default = c.convertType(def)
		}
		out = append(out, p)
	}
	return out
}

func (c *converter) convertInterface(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	d := &tree.DeclInterface{
		NameV:      ident.SimpleIdent(c.text(node.ChildByFieldName("name"))),
		Comments:   lead,
		Declared:   declared,
		TypeParams: c.convertTypeParams(node),
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "extends_type_clause" {
			for j := uint(0); j < child.ChildCount(); j++ {
				t := child.Child(j)
				if t != nil && isTypeNodeKind(t.Kind()) {
					d.Inheritance = append(d.Inheritance, c.convertType(t))
				}
			}
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		d.Members = c.convertMemberBody(body)
	}
	return d
}

func (c *converter) convertTypeAlias(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	return &tree.DeclTypeAlias{
		NameV:      ident.SimpleIdent(c.text(node.ChildByFieldName("name"))),
		Comments:   lead,
		Declared:   declared,
		TypeParams: c.convertTypeParams(node),
		Alias:      c.convertType(node.ChildByFieldName("value")),
	}
}

func (c *converter) convertFunction(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	return &tree.DeclFunction{
		NameV:    ident.SimpleIdent(c.text(node.ChildByFieldName("name"))),
		Comments: lead,
		Declared: declared,
		Sig:      c.convertSig(node),
	}
}

func (c *converter) convertVar(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	readonly := node.Kind() == "variable_declaration" && c.hasKeywordChild(node, "const")
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		var t tree.Type
		if ta := child.ChildByFieldName("type"); ta != nil {
			t = c.convertType(typeAnnotationInner(ta))
		}
		return &tree.DeclVar{
			NameV:    ident.SimpleIdent(c.text(child.ChildByFieldName("name"))),
			Comments: lead,
			Declared: declared,
			TypeV:    t,
			Readonly: readonly,
		}
	}
	return nil
}

func (c *converter) hasKeywordChild(node *tree_sitter.Node, kw string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == kw {
			return true
		}
	}
	return false
}

// typeAnnotationInner unwraps a `: T` type_annotation node down to the type
// expression itself.
func typeAnnotationInner(node *tree_sitter.Node) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	if node.Kind() == "type_annotation" {
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil && isTypeNodeKind(child.Kind()) {
				return child
			}
		}
	}
	return node
}

func (c *converter) convertClass(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	d := &tree.DeclClass{
		NameV:      ident.SimpleIdent(c.text(node.ChildByFieldName("name"))),
		Comments:   lead,
		Declared:   declared,
		TypeParams: c.convertTypeParams(node),
		IsAbstract: node.Kind() == "abstract_class_declaration",
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "class_heritage" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			h := child.Child(j)
			if h == nil {
				continue
			}
			switch h.Kind() {
			case "extends_clause":
				for k := uint(0); k < h.ChildCount(); k++ {
					if t := h.Child(k); t != nil && isTypeNodeKind(t.Kind()) {
						pt := c.convertType(t)
						d.Parent = &pt
					}
				}
			case "implements_clause":
				for k := uint(0); k < h.ChildCount(); k++ {
					if t := h.Child(k); t != nil && isTypeNodeKind(t.Kind()) {
						d.Implements = append(d.Implements, c.convertType(t))
					}
				}
			}
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		d.Members = c.convertMemberBody(body)
	}
	return d
}

func (c *converter) convertEnum(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	d := &tree.DeclEnum{
		NameV:    ident.SimpleIdent(c.text(node.ChildByFieldName("name"))),
		Comments: lead,
		IsConst:  c.hasKeywordChild(node, "const"),
		IsValue:  true,
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return d
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		if member == nil {
			continue
		}
		switch member.Kind() {
		case "property_identifier", "identifier":
			d.Members = append(d.Members, tree.EnumMember{Name: ident.SimpleIdent(c.text(member))})
		case "enum_assignment":
			name := ident.SimpleIdent(c.text(member.ChildByFieldName("name")))
			var val *tree.EnumValue
			if v := member.ChildByFieldName("value"); v != nil {
				val = enumValueOf(c.text(v))
			}
			d.Members = append(d.Members, tree.EnumMember{Name: name, Value: val})
		}
	}
	return d
}

func enumValueOf(text string) *tree.EnumValue {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') {
		return &tree.EnumValue{IsString: true, Str: unquote(text)}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return &tree.EnumValue{Num: n}
	}
	return nil
}

func (c *converter) convertNamespaceOrModule(node *tree_sitter.Node, lead comments.List, declared bool) tree.Tree {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	var members []tree.Tree
	if body != nil {
		members = c.convertBlock(body)
	}
	if nameNode != nil && nameNode.Kind() == "string" {
		spec := ident.ModuleSpec(unquote(c.text(nameNode)))
		name, err := (ident.ModuleNameParser{}).Parse(strings.Split(strings.TrimPrefix(string(spec), "@"), "/"))
		if err != nil {
			name = ident.ModuleName{Fragments: []string{string(spec)}}
		}
		return &tree.Module{NameV: name, Spec: spec, Comments: lead, Declared: true, Members: members}
	}
	return &tree.Namespace{
		NameV:    ident.SimpleIdent(c.text(nameNode)),
		Comments: lead,
		Declared: declared,
		Members:  members,
	}
}
