package ident

// ModuleSpec is the textual module specifier a JS location binds through,
// e.g. `"lodash"` or `"lodash/fp"`.
type ModuleSpec string

// JsLocationKind discriminates the JsLocation sum type.
type JsLocationKind int

const (
	JsZero JsLocationKind = iota
	JsGlobal
	JsModule
	JsBoth
)

// JsLocation describes the runtime binding site of a declaration: nowhere
// (Zero, before SetJsLocation has run), a path in the global namespace, a
// module export, or both (re-exported into the global namespace from a
// module, which `ModuleAsGlobalNamespace` produces).
type JsLocation struct {
	Kind   JsLocationKind
	Global QIdent
	Module ModuleName
	Spec   ModuleSpec
}

// JsZeroLoc is the absence of a location.
var JsZeroLoc = JsLocation{Kind: JsZero}

// NewJsGlobal builds a global JsLocation.
func NewJsGlobal(q QIdent) JsLocation { return JsLocation{Kind: JsGlobal, Global: q} }

// NewJsModule builds a module JsLocation.
func NewJsModule(mod ModuleName, spec ModuleSpec) JsLocation {
	return JsLocation{Kind: JsModule, Module: mod, Spec: spec}
}

// NewJsBoth builds a combined location.
func NewJsBoth(mod ModuleName, spec ModuleSpec, global QIdent) JsLocation {
	return JsLocation{Kind: JsBoth, Global: global, Module: mod, Spec: spec}
}

// Add extends a JsLocation by one ident. For Global and the global half of
// Both it appends to the global path; for Module-only locations it is a
// no-op (the module specifier does not grow per-member — members of a
// module are addressed by export name at lookup time, not by an extended
// JS path), matching how the teacher-pattern "rebase" helpers in derive-copy
// only ever touch the global QIdent half of a location.
//
// The one documented exception (spec.md §8 property 5) is that Add does not
// commute with Navigate when x is the Namespaced ident ("^"): a namespaced
// member is bound at its *owner's* location, not one level deeper, so
// Add(Namespaced) is intentionally the identity.
func (j JsLocation) Add(x SimpleIdent) JsLocation {
	if x == Namespaced {
		return j
	}
	switch j.Kind {
	case JsGlobal:
		return NewJsGlobal(j.Global.Add(x))
	case JsBoth:
		return NewJsBoth(j.Module, j.Spec, j.Global.Add(x))
	default:
		return j
	}
}

// IsZero reports whether no location has been assigned yet.
func (j JsLocation) IsZero() bool { return j.Kind == JsZero }

// HasModule reports whether this location includes a module component.
func (j JsLocation) HasModule() bool { return j.Kind == JsModule || j.Kind == JsBoth }

// HasGlobal reports whether this location includes a global component.
func (j JsLocation) HasGlobal() bool { return j.Kind == JsGlobal || j.Kind == JsBoth }

// Combine merges two locations, preferring Both over either side alone, per
// the FlattenTrees JS-location merge rule (spec.md §4.5 rule 1).
func (j JsLocation) Combine(o JsLocation) JsLocation {
	if j.Kind == JsZero {
		return o
	}
	if o.Kind == JsZero {
		return j
	}
	if j.Kind == JsBoth {
		return j
	}
	if o.Kind == JsBoth {
		return o
	}
	if j.Kind == JsModule && o.Kind == JsGlobal {
		return NewJsBoth(j.Module, j.Spec, o.Global)
	}
	if j.Kind == JsGlobal && o.Kind == JsModule {
		return NewJsBoth(o.Module, o.Spec, j.Global)
	}
	return j
}

func (j JsLocation) String() string {
	switch j.Kind {
	case JsGlobal:
		return "global:" + j.Global.String()
	case JsModule:
		return "module:" + string(j.Spec) + "#" + j.Global.String()
	case JsBoth:
		return "both(module:" + string(j.Spec) + ",global:" + j.Global.String() + ")"
	default:
		return "<zero>"
	}
}
