package ident

import "strings"

// QIdent is an ordered sequence of simple idents, e.g. `Foo.Bar.Baz`.
// Equality is componentwise (spec.md §3.1, testable property 4).
type QIdent struct {
	Parts []SimpleIdent
}

// NewQIdent builds a QIdent from one or more simple idents.
func NewQIdent(parts ...SimpleIdent) QIdent {
	cp := make([]SimpleIdent, len(parts))
	copy(cp, parts)
	return QIdent{Parts: cp}
}

// ParseQIdent splits a dotted string into a QIdent, e.g. "A.B.C".
func ParseQIdent(s string) QIdent {
	if s == "" {
		return QIdent{}
	}
	segs := strings.Split(s, ".")
	parts := make([]SimpleIdent, len(segs))
	for i, seg := range segs {
		parts[i] = SimpleIdent(seg)
	}
	return QIdent{Parts: parts}
}

// Empty reports whether the identifier has no parts.
func (q QIdent) Empty() bool { return len(q.Parts) == 0 }

// Head is the first part; it panics on an empty identifier, as does every
// other accessor in this file — callers only ever hold a QIdent that was
// constructed with at least one part.
func (q QIdent) Head() SimpleIdent { return q.Parts[0] }

// Last is the last part.
func (q QIdent) Last() SimpleIdent { return q.Parts[len(q.Parts)-1] }

// Init is every part but the last.
func (q QIdent) Init() QIdent { return QIdent{Parts: q.Parts[:len(q.Parts)-1]} }

// Tail is every part but the first.
func (q QIdent) Tail() QIdent { return QIdent{Parts: q.Parts[1:]} }

// Add appends one ident, returning a new QIdent (structural sharing with the
// caller's backing array is deliberately avoided by copying, since
// code paths are cheap and frequently forked).
func (q QIdent) Add(x SimpleIdent) QIdent {
	parts := make([]SimpleIdent, len(q.Parts)+1)
	copy(parts, q.Parts)
	parts[len(q.Parts)] = x
	return QIdent{Parts: parts}
}

// AddPath concatenates another QIdent onto this one.
func (q QIdent) AddPath(other QIdent) QIdent {
	parts := make([]SimpleIdent, len(q.Parts)+len(other.Parts))
	copy(parts, q.Parts)
	copy(parts[len(q.Parts):], other.Parts)
	return QIdent{Parts: parts}
}

// ReplaceLast substitutes the final segment.
func (q QIdent) ReplaceLast(x SimpleIdent) QIdent {
	if q.Empty() {
		return QIdent{Parts: []SimpleIdent{x}}
	}
	parts := make([]SimpleIdent, len(q.Parts))
	copy(parts, q.Parts)
	parts[len(parts)-1] = x
	return QIdent{Parts: parts}
}

// Equal is componentwise equality.
func (q QIdent) Equal(other QIdent) bool {
	if len(q.Parts) != len(other.Parts) {
		return false
	}
	for i, p := range q.Parts {
		if p != other.Parts[i] {
			return false
		}
	}
	return true
}

// StartsWith reports whether q begins with the given prefix.
func (q QIdent) StartsWith(prefix QIdent) bool {
	if len(prefix.Parts) > len(q.Parts) {
		return false
	}
	for i, p := range prefix.Parts {
		if q.Parts[i] != p {
			return false
		}
	}
	return true
}

// String renders the canonical dotted form.
func (q QIdent) String() string {
	strs := make([]string, len(q.Parts))
	for i, p := range q.Parts {
		strs[i] = string(p)
	}
	return strings.Join(strs, ".")
}

// Key is a hashable representation suitable for use as a map key, since
// QIdent itself holds a slice and so is not comparable with ==.
func (q QIdent) Key() string { return q.String() }
