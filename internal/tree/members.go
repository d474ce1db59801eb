package tree

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
)

// MemberCall is a call signature, `(...): T`, inside an object type/interface.
type MemberCall struct {
	Comments comments.List
	Sig      FunSig
}

func (*MemberCall) isTree()                  {}
func (*MemberCall) isMember()                {}
func (m *MemberCall) GetComments() comments.List { return m.Comments }

// MemberCtor is a construct signature, `new (...): T`.
type MemberCtor struct {
	Comments comments.List
	Sig      FunSig
}

func (*MemberCtor) isTree()                  {}
func (*MemberCtor) isMember()                {}
func (m *MemberCtor) GetComments() comments.List { return m.Comments }

// MethodType discriminates MemberFunction's flavor.
type MethodType int

const (
	MethodNormal MethodType = iota
	MethodGetter
	MethodSetter
)

// MemberFunction is a method, getter, or setter.
type MemberFunction struct {
	NameV      ident.SimpleIdent
	Comments   comments.List
	MethodType MethodType
	IsStatic   bool
	IsReadOnly bool
	IsOptional bool
	Sig        FunSig
}

func (*MemberFunction) isTree()                  {}
func (*MemberFunction) isMember()                {}
func (m *MemberFunction) Name() ident.SimpleIdent  { return m.NameV }
func (m *MemberFunction) GetComments() comments.List { return m.Comments }

// MemberProperty is a property (non-function-valued member).
type MemberProperty struct {
	NameV      ident.SimpleIdent
	Comments   comments.List
	IsStatic   bool
	IsReadOnly bool
	IsOptional bool
	TypeV      Type
}

func (*MemberProperty) isTree()                  {}
func (*MemberProperty) isMember()                {}
func (m *MemberProperty) Name() ident.SimpleIdent  { return m.NameV }
func (m *MemberProperty) GetComments() comments.List { return m.Comments }

// Indexing discriminates MemberIndex's two forms.
type Indexing struct {
	IsDict bool
	// Dict form:
	KeyName ident.SimpleIdent
	KeyType Type
	// Single form (an indexer keyed by a union of literal types / a
	// qualified ident rather than `string`/`number`):
	QIdentV ident.QIdent
}

// MemberIndex is `[key: string]: T` (Dict) or `[K in keyof X]` style single
// indexers that reference another type's keys (Single).
type MemberIndex struct {
	Comments comments.List
	Indexing Indexing
	ValueV   Type
	IsReadOnly bool
}

func (*MemberIndex) isTree()                  {}
func (*MemberIndex) isMember()                {}
func (m *MemberIndex) GetComments() comments.List { return m.Comments }

// MemberTypeMapped is a mapped type member, `[K in Keys]: T` (with optional
// `readonly`/`?` modifiers spelled as +/-/plain).
type MemberTypeMapped struct {
	Comments    comments.List
	ParamName   ident.SimpleIdent
	Constraint  Type // the `Keys` in `K in Keys`
	NameType    Type // `as` clause, nil if absent
	ValueV      Type
	ReadonlyMod Modifier
	OptionalMod Modifier
}

func (*MemberTypeMapped) isTree()                  {}
func (*MemberTypeMapped) isMember()                {}
func (m *MemberTypeMapped) GetComments() comments.List { return m.Comments }

// Modifier is the +/-/absent modifier on mapped-type readonly/optional.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierAdd
	ModifierRemove
)
