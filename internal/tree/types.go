package tree

import "github.com/tsdecl/tsconv/internal/ident"

// TypeRef is a reference to a named type, with optional type arguments,
// e.g. `Array<T>` or a bare `T`.
type TypeRef struct {
	QIdentV ident.QIdent
	TParams []Type
}

func (*TypeRef) isType() {}

// LiteralKind discriminates TypeLiteral's payload.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
)

// TypeLiteral is a literal type, `"a"`, `1`, `true`.
type TypeLiteral struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

func (*TypeLiteral) isType() {}

// TypeObject is an inline object type, `{ ... }`.
type TypeObject struct {
	Members []Member
}

func (*TypeObject) isType() {}

// IsMappedType reports whether this object type is a mapped type (contains
// exactly one MemberTypeMapped and nothing else), used throughout the
// pipeline to distinguish plain object shapes from mapped-type expressions.
func (t *TypeObject) IsMappedType() bool {
	if len(t.Members) != 1 {
		return false
	}
	_, ok := t.Members[0].(*MemberTypeMapped)
	return ok
}

// TypeFunction is a function type, `(...) => T`.
type TypeFunction struct {
	Sig FunSig
}

func (*TypeFunction) isType() {}

// TypeConstructor is `new (...) => T`.
type TypeConstructor struct {
	Sig        FunSig
	IsAbstract bool
}

func (*TypeConstructor) isType() {}

// TypeIs is a type predicate, `x is T` (optionally `asserts x is T`, which
// RewriteTypeThis and the type-mapping passes treat as distinct from a plain
// TypeIs; `asserts` is modeled separately as TypeAsserts).
type TypeIs struct {
	Ident ident.SimpleIdent
	TypeV Type
}

func (*TypeIs) isType() {}

// TypeTuple is `[A, B, C]`.
type TypeTuple struct {
	Elems []Type
}

func (*TypeTuple) isType() {}

// TypeQuery is `typeof X`.
type TypeQuery struct {
	QIdentV ident.QIdent
}

func (*TypeQuery) isType() {}

// TypeRepeated is a rest/spread element inside a tuple, `...T[]`.
type TypeRepeated struct {
	Elem Type
}

func (*TypeRepeated) isType() {}

// TypeKeyOf is `keyof T`.
type TypeKeyOf struct {
	Operand Type
}

func (*TypeKeyOf) isType() {}

// TypeLookup is an indexed access type, `From[Key]`.
type TypeLookup struct {
	From Type
	Key  Type
}

func (*TypeLookup) isType() {}

// TypeThis is the `this` type.
type TypeThis struct{}

func (*TypeThis) isType() {}

// TypeAsserts is `asserts x` or `asserts x is T` (Opt is nil for the former).
type TypeAsserts struct {
	Ident ident.SimpleIdent
	Opt   Type
}

func (*TypeAsserts) isType() {}

// TypeUnion is `A | B | C`.
type TypeUnion struct {
	Types []Type
}

func (*TypeUnion) isType() {}

// TypeIntersect is `A & B & C`.
type TypeIntersect struct {
	Types []Type
}

func (*TypeIntersect) isType() {}

// TypeConditional is `Pred extends Ignored ? IfTrue : IfFalse` already
// resolved to its branches form; used for expanded conditional types where
// the `extends` clause itself has been factored into the Extends node
// during parsing, so TypeConditional only needs to carry the already-tested
// predicate outcome branches.
type TypeConditional struct {
	Pred    Type
	IfTrue  Type
	IfFalse Type
}

func (*TypeConditional) isType() {}

// TypeExtends is the `T extends U` test of a conditional type, kept as its
// own node (rather than folded into TypeConditional) so passes like
// ExpandTypeMappings's Exclude/Extract handling can pattern-match on it
// directly: `T extends U ? never : T` arrives as
// TypeConditional{Pred: TypeExtends{T,U}, IfTrue: never, IfFalse: T}.
type TypeExtends struct {
	TypeV    Type
	Extends  Type
}

func (*TypeExtends) isType() {}

// TypeInfer is `infer X` inside a conditional type's Extends clause.
type TypeInfer struct {
	TypeParam TypeParam
}

func (*TypeInfer) isType() {}

// NeverType is the common `never` sentinel ref, used by several passes
// (bothTypes, Exclude/Extract) that special-case it.
func NeverType() Type { return &TypeRef{QIdentV: ident.NewQIdent("never")} }

// IsNeverType reports whether t is the `never` sentinel ref.
func IsNeverType(t Type) bool {
	r, ok := t.(*TypeRef)
	return ok && len(r.TParams) == 0 && r.QIdentV.Equal(ident.NewQIdent("never"))
}

// AnyType is the `any` sentinel ref, used when PreferTypeAlias breaks a
// cycle by substituting `any` for in-cycle references.
func AnyType() Type { return &TypeRef{QIdentV: ident.NewQIdent("any")} }
