package dtsparse

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// isTypeNodeKind reports whether kind names a type-expression node, used to
// skip the punctuation ("&", "|", "<", ">", ",") tree-sitter also exposes as
// children of list-like nodes (extends clauses, type argument lists).
func isTypeNodeKind(kind string) bool {
	switch kind {
	case "predefined_type", "type_identifier", "nested_type_identifier",
		"generic_type", "object_type", "function_type", "constructor_type",
		"tuple_type", "array_type", "union_type", "intersection_type",
		"type_query", "keyof_type", "readonly_type", "index_type_query",
		"lookup_type", "conditional_type", "infer_type", "parenthesized_type",
		"literal_type", "this_type", "existential_type", "flow_maybe_type",
		"template_literal_type", "optional_type", "rest_type", "type_predicate",
		"asserts", "undefined_type", "null_type", "void_type":
		return true
	}
	return false
}

// convertSig builds a FunSig from a node exposing the grammar's common
// "parameters"/"return_type"/"type_parameters" fields — shared by function
// declarations, call/construct signatures, and method definitions.
func (c *converter) convertSig(node *tree_sitter.Node) tree.FunSig {
	sig := tree.FunSig{TypeParams: c.convertTypeParams(node)}
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig.Params = c.convertParams(params)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig.ResultType = c.convertType(typeAnnotationInner(ret))
	}
	return sig
}

func (c *converter) convertParams(node *tree_sitter.Node) []tree.FunParam {
	var out []tree.FunParam
	for i := uint(0); i < node.ChildCount(); i++ {
		p := node.Child(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			out = append(out, c.convertParam(p, p.Kind() == "optional_parameter", false))
		case "rest_parameter":
			out = append(out, c.convertParam(p, false, true))
		}
	}
	return out
}

func (c *converter) convertParam(node *tree_sitter.Node, optional, rest bool) tree.FunParam {
	pattern := node.ChildByFieldName("pattern")
	name := c.text(pattern)
	if pattern != nil && pattern.Kind() == "this" {
		name = "this"
	}
	fp := tree.FunParam{Name: ident.SimpleIdent(name), Optional: optional, IsRest: rest}
	if ta := node.ChildByFieldName("type"); ta != nil {
		fp.TypeV = c.convertType(typeAnnotationInner(ta))
	}
	if v := node.ChildByFieldName("value"); v != nil {
		fp.DefaultValue = c.text(v)
	}
	return fp
}

// convertType converts a type-expression node into a tree.Type. Constructs
// this system's grammar coverage doesn't yet model fall back to AnyType
// rather than claim a fidelity the converter doesn't have.
func (c *converter) convertType(node *tree_sitter.Node) tree.Type {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "parenthesized_type":
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil && isTypeNodeKind(child.Kind()) {
				return c.convertType(child)
			}
		}
		return tree.AnyType()

	case "predefined_type", "undefined_type", "null_type", "void_type":
		return &tree.TypeRef{QIdentV: ident.NewQIdent(ident.SimpleIdent(c.text(node)))}

	case "type_identifier":
		return &tree.TypeRef{QIdentV: ident.NewQIdent(ident.SimpleIdent(c.text(node)))}

	case "nested_type_identifier":
		return &tree.TypeRef{QIdentV: ident.ParseQIdent(c.text(node))}

	case "generic_type":
		nameNode := node.ChildByFieldName("name")
		var q ident.QIdent
		if nameNode != nil {
			q = ident.ParseQIdent(c.text(nameNode))
		}
		var targs []tree.Type
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			for i := uint(0); i < args.ChildCount(); i++ {
				t := args.Child(i)
				if t != nil && isTypeNodeKind(t.Kind()) {
					targs = append(targs, c.convertType(t))
				}
			}
		}
		return &tree.TypeRef{QIdentV: q, TParams: targs}

	case "literal_type":
		for i := uint(0); i < node.ChildCount(); i++ {
			return c.convertLiteral(node.Child(i))
		}
		return tree.AnyType()

	case "object_type":
		return &tree.TypeObject{Members: c.convertMemberBody(node)}

	case "function_type":
		return &tree.TypeFunction{Sig: c.convertSig(node)}

	case "constructor_type":
		abstract := c.hasKeywordChild(node, "abstract")
		return &tree.TypeConstructor{Sig: c.convertSig(node), IsAbstract: abstract}

	case "tuple_type":
		var elems []tree.Type
		for i := uint(0); i < node.ChildCount(); i++ {
			t := node.Child(i)
			if t == nil {
				continue
			}
			if t.Kind() == "rest_type" {
				inner := c.firstTypeChild(t)
				elems = append(elems, &tree.TypeRepeated{Elem: inner})
				continue
			}
			if isTypeNodeKind(t.Kind()) {
				elems = append(elems, c.convertType(t))
			}
		}
		return &tree.TypeTuple{Elems: elems}

	case "array_type":
		// `T[]` is spelled as the library-defined `Array<T>` ref elsewhere
		// in the pipeline (transform.preferalias's Array-ref special case),
		// so the parser produces that same shape rather than a dedicated
		// array-type node.
		elem := c.firstTypeChild(node)
		return &tree.TypeRef{QIdentV: ident.NewQIdent("Array"), TParams: []tree.Type{elem}}

	case "union_type":
		return &tree.TypeUnion{Types: c.typeChildren(node)}

	case "intersection_type":
		return &tree.TypeIntersect{Types: c.typeChildren(node)}

	case "type_query":
		var q ident.QIdent
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil && child.Kind() != "typeof" {
				q = ident.ParseQIdent(c.text(child))
				break
			}
		}
		return &tree.TypeQuery{QIdentV: q}

	case "keyof_type":
		return &tree.TypeKeyOf{Operand: c.firstTypeChild(node)}

	case "readonly_type":
		return c.firstTypeChildConverted(node)

	case "lookup_type":
		from := c.convertType(node.ChildByFieldName("object"))
		key := c.convertType(node.ChildByFieldName("index"))
		return &tree.TypeLookup{From: from, Key: key}

	case "this_type":
		return &tree.TypeThis{}

	case "type_predicate":
		name := node.ChildByFieldName("name")
		typeNode := node.ChildByFieldName("type")
		assertsKw := c.hasKeywordChild(node, "asserts")
		id := ident.SimpleIdent(c.text(name))
		if assertsKw {
			var opt tree.Type
			if typeNode != nil {
				opt = c.convertType(typeNode)
			}
			return &tree.TypeAsserts{Ident: id, Opt: opt}
		}
		return &tree.TypeIs{Ident: id, TypeV: c.convertType(typeNode)}

	case "conditional_type":
		left := c.convertType(node.ChildByFieldName("left"))
		right := c.convertType(node.ChildByFieldName("right"))
		cons := c.convertType(node.ChildByFieldName("consequence"))
		alt := c.convertType(node.ChildByFieldName("alternative"))
		return &tree.TypeConditional{Pred: &tree.TypeExtends{TypeV: left, Extends: right}, IfTrue: cons, IfFalse: alt}

	case "infer_type":
		name := ident.SimpleIdent(c.text(node.ChildByFieldName("name")))
		tp := tree.TypeParam{Name: name}
		if constraint := node.ChildByFieldName("constraint"); constraint != nil {
			tp.Upper = c.convertType(constraint)
		}
		return &tree.TypeInfer{TypeParam: tp}

	case "template_literal_type", "existential_type", "flow_maybe_type", "index_type_query", "asserts":
		return tree.AnyType()

	default:
		return tree.AnyType()
	}
}

func (c *converter) convertLiteral(n *tree_sitter.Node) tree.Type {
	if n == nil {
		return tree.AnyType()
	}
	switch n.Kind() {
	case "string":
		return &tree.TypeLiteral{Kind: tree.LiteralString, Str: unquote(c.text(n))}
	case "number":
		f, _ := strconv.ParseFloat(c.text(n), 64)
		return &tree.TypeLiteral{Kind: tree.LiteralNumber, Num: f}
	case "true", "false":
		return &tree.TypeLiteral{Kind: tree.LiteralBool, Bool: n.Kind() == "true"}
	case "unary_expression":
		// a negative numeric literal, `-1`
		text := strings.TrimSpace(c.text(n))
		f, _ := strconv.ParseFloat(text, 64)
		return &tree.TypeLiteral{Kind: tree.LiteralNumber, Num: f}
	default:
		return tree.AnyType()
	}
}

func (c *converter) typeChildren(node *tree_sitter.Node) []tree.Type {
	var out []tree.Type
	for i := uint(0); i < node.ChildCount(); i++ {
		t := node.Child(i)
		if t != nil && isTypeNodeKind(t.Kind()) {
			out = append(out, c.convertType(t))
		}
	}
	return out
}

func (c *converter) firstTypeChild(node *tree_sitter.Node) tree.Type {
	for i := uint(0); i < node.ChildCount(); i++ {
		if t := node.Child(i); t != nil && isTypeNodeKind(t.Kind()) {
			return c.convertType(t)
		}
	}
	return tree.AnyType()
}

func (c *converter) firstTypeChildConverted(node *tree_sitter.Node) tree.Type {
	return c.firstTypeChild(node)
}
