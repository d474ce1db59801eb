package dtsparse

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/tree"
)

// convertMemberBody converts the member list of an interface body, object
// type literal, or class body into tree.Member nodes, attaching leading
// comments the same way convertBlock does for top-level statements.
func (c *converter) convertMemberBody(node *tree_sitter.Node) []tree.Member {
	var out []tree.Member
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
		case "{", "}", ";", ",":
			continue
		}
		m := c.convertMember(child, pending)
		pending = nil
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (c *converter) convertMember(node *tree_sitter.Node, lead comments.List) tree.Member {
	static := c.hasKeywordChild(node, "static")
	readonly := c.hasKeywordChild(node, "readonly")
	optional := hasOptionalMark(node)

	switch node.Kind() {
	case "call_signature":
		return &tree.MemberCall{Comments: lead, Sig: c.convertSig(node)}

	case "construct_signature":
		return &tree.MemberCtor{Comments: lead, Sig: c.convertSig(node)}

	case "method_signature", "method_definition", "abstract_method_signature":
		kind := tree.MethodNormal
		if c.hasKeywordChild(node, "get") {
			kind = tree.MethodGetter
		} else if c.hasKeywordChild(node, "set") {
			kind = tree.MethodSetter
		}
		return &tree.MemberFunction{
			NameV:      ident.SimpleIdent(c.propertyName(node)),
			Comments:   lead,
			MethodType: kind,
			IsStatic:   static,
			IsReadOnly: readonly,
			IsOptional: optional,
			Sig:        c.convertSig(node),
		}

	case "property_signature", "public_field_definition":
		var t tree.Type
		if ta := node.ChildByFieldName("type"); ta != nil {
			t = c.convertType(typeAnnotationInner(ta))
		}
		return &tree.MemberProperty{
			NameV:      ident.SimpleIdent(c.propertyName(node)),
			Comments:   lead,
			IsStatic:   static,
			IsReadOnly: readonly,
			IsOptional: optional,
			TypeV:      t,
		}

	case "index_signature":
		idx := tree.Indexing{IsDict: true}
		if name := node.ChildByFieldName("name"); name != nil {
			idx.KeyName = ident.SimpleIdent(c.text(name))
		}
		var value tree.Type
		if ta := node.ChildByFieldName("type"); ta != nil {
			value = c.convertType(typeAnnotationInner(ta))
		}
		return &tree.MemberIndex{Comments: lead, Indexing: idx, ValueV: value, IsReadOnly: readonly}

	case "mapped_type_clause":
		return c.convertMappedType(node, lead)

	default:
		return nil
	}
}

// propertyName extracts a member's name from whichever field the grammar
// uses for it ("name" on most member kinds).
func (c *converter) propertyName(node *tree_sitter.Node) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return c.text(n)
	}
	return ""
}

func hasOptionalMark(node *tree_sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == "?" {
			return true
		}
	}
	return false
}

func (c *converter) convertMappedType(node *tree_sitter.Node, lead comments.List) tree.Member {
	m := &tree.MemberTypeMapped{Comments: lead}
	if name := node.ChildByFieldName("name"); name != nil {
		m.ParamName = ident.SimpleIdent(c.text(name))
	}
	if constraint := node.ChildByFieldName("constraint"); constraint != nil {
		m.Constraint = c.convertType(constraint)
	}
	if alias := node.ChildByFieldName("alias"); alias != nil {
		m.NameType = c.convertType(alias)
	}
	if ta := node.ChildByFieldName("type"); ta != nil {
		m.ValueV = c.convertType(typeAnnotationInner(ta))
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "readonly":
			m.ReadonlyMod = modifierFor(node, "readonly")
		case "?":
			m.OptionalMod = modifierFor(node, "?")
		}
	}
	return m
}

// modifierFor reads the +/- prefix tree-sitter attaches to a mapped type's
// readonly/optional marker, if any immediately precedes the marker token.
func modifierFor(node *tree_sitter.Node, marker string) tree.Modifier {
	var prevKind string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == marker {
			switch prevKind {
			case "+":
				return tree.ModifierAdd
			case "-":
				return tree.ModifierRemove
			}
			return tree.ModifierNone
		}
		prevKind = child.Kind()
	}
	return tree.ModifierNone
}
