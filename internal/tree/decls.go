package tree

import (
	"github.com/tsdecl/tsconv/internal/comments"
	"github.com/tsdecl/tsconv/internal/ident"
)

// TypeParam is a generic type parameter, e.g. `T extends U = Default`.
type TypeParam struct {
	Name    ident.SimpleIdent
	Upper   Type // constraint ("extends"), nil if none
	Default Type // nil if none
}

// FunSig is a function/method/constructor/call signature.
type FunSig struct {
	TypeParams []TypeParam
	Params     []FunParam
	ResultType Type // nil means unspecified/void
}

// FunParam is one parameter of a signature.
type FunParam struct {
	Name         ident.SimpleIdent
	TypeV        Type
	Optional     bool
	IsRest       bool
	DefaultValue string // rarely present in .d.ts, kept as raw text when it is
}

// DeclFunction is `declare function f(...): T` or an overload thereof.
type DeclFunction struct {
	NameV    ident.SimpleIdent
	Comments comments.List
	Declared bool
	Sig      FunSig
	CodePath ident.CodePath
	JsLoc    ident.JsLocation
}

func (*DeclFunction) isTree()                       {}
func (d *DeclFunction) Name() ident.SimpleIdent       { return d.NameV }
func (d *DeclFunction) GetComments() comments.List     { return d.Comments }
func (d *DeclFunction) GetCodePath() ident.CodePath     { return d.CodePath }
func (d *DeclFunction) GetJsLocation() ident.JsLocation { return d.JsLoc }

// DeclVar is `declare var/let/const x: T`.
type DeclVar struct {
	NameV    ident.SimpleIdent
	Comments comments.List
	Declared bool
	TypeV    Type
	Readonly bool
	CodePath ident.CodePath
	JsLoc    ident.JsLocation
}

func (*DeclVar) isTree()                       {}
func (d *DeclVar) Name() ident.SimpleIdent       { return d.NameV }
func (d *DeclVar) GetComments() comments.List     { return d.Comments }
func (d *DeclVar) GetCodePath() ident.CodePath     { return d.CodePath }
func (d *DeclVar) GetJsLocation() ident.JsLocation { return d.JsLoc }

// EnumMember is one member of an enum.
type EnumMember struct {
	Name  ident.SimpleIdent
	Value *EnumValue // nil when the member's value is implicit
}

// EnumValue is a known, statically-resolved enum member value.
type EnumValue struct {
	IsString bool
	Str      string
	Num      float64
}

// DeclEnum is `const enum E { ... }` or `enum E { ... }`.
type DeclEnum struct {
	NameV        ident.SimpleIdent
	Comments     comments.List
	Members      []EnumMember
	IsConst      bool
	IsValue      bool // true for a plain `enum`, false for `declare const enum` type-only
	ExportedFrom ident.CodePath
	CodePath     ident.CodePath
	JsLoc        ident.JsLocation
}

func (*DeclEnum) isTree()                       {}
func (d *DeclEnum) Name() ident.SimpleIdent       { return d.NameV }
func (d *DeclEnum) GetComments() comments.List     { return d.Comments }
func (d *DeclEnum) GetCodePath() ident.CodePath     { return d.CodePath }
func (d *DeclEnum) GetJsLocation() ident.JsLocation { return d.JsLoc }

// LookupValue finds a member's statically-known value by name.
func (d *DeclEnum) LookupValue(name ident.SimpleIdent) (*EnumValue, bool) {
	for _, m := range d.Members {
		if m.Name == name && m.Value != nil {
			return m.Value, true
		}
	}
	return nil, false
}

// DeclClass is `declare class C extends P implements I1,I2 { ... }`.
type DeclClass struct {
	NameV       ident.SimpleIdent
	Comments    comments.List
	Declared    bool
	TypeParams  []TypeParam
	Parent      *Type // element type is a Ref; pointer so "no parent" is nil
	Implements  []Type
	IsAbstract  bool
	Members     []Member
	CodePath    ident.CodePath
	JsLoc       ident.JsLocation
}

func (*DeclClass) isTree()                       {}
func (d *DeclClass) Name() ident.SimpleIdent       { return d.NameV }
func (d *DeclClass) GetComments() comments.List     { return d.Comments }
func (d *DeclClass) GetCodePath() ident.CodePath     { return d.CodePath }
func (d *DeclClass) GetJsLocation() ident.JsLocation { return d.JsLoc }

func (d *DeclClass) WithMembers(members []Member) *DeclClass {
	cp := *d
	cp.Members = members
	return &cp
}

// DeclInterface is `interface I extends P1,P2 { ... }`.
type DeclInterface struct {
	NameV      ident.SimpleIdent
	Comments   comments.List
	Declared   bool
	TypeParams []TypeParam
	Inheritance []Type
	Members    []Member
	CodePath   ident.CodePath
	JsLoc      ident.JsLocation
}

func (*DeclInterface) isTree()                       {}
func (d *DeclInterface) Name() ident.SimpleIdent       { return d.NameV }
func (d *DeclInterface) GetComments() comments.List     { return d.Comments }
func (d *DeclInterface) GetCodePath() ident.CodePath     { return d.CodePath }
func (d *DeclInterface) GetJsLocation() ident.JsLocation { return d.JsLoc }

func (d *DeclInterface) WithMembers(members []Member) *DeclInterface {
	cp := *d
	cp.Members = members
	return &cp
}

// DeclTypeAlias is `type T<P> = Type`.
type DeclTypeAlias struct {
	NameV      ident.SimpleIdent
	Comments   comments.List
	Declared   bool
	TypeParams []TypeParam
	Alias      Type
	CodePath   ident.CodePath
	JsLoc      ident.JsLocation
}

func (*DeclTypeAlias) isTree()                       {}
func (d *DeclTypeAlias) Name() ident.SimpleIdent       { return d.NameV }
func (d *DeclTypeAlias) GetComments() comments.List     { return d.Comments }
func (d *DeclTypeAlias) GetCodePath() ident.CodePath     { return d.CodePath }
func (d *DeclTypeAlias) GetJsLocation() ident.JsLocation { return d.JsLoc }

// IsTrivial reports whether this alias is marked trivial (points directly
// at another named type with no added shape), used by FlattenTrees rule 8.
func (d *DeclTypeAlias) IsTrivial() bool {
	_, ok := comments.HasMarker(d.Comments, comments.IsTrivial)
	return ok
}
