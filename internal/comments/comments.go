// Package comments models the comment lists attached to tree nodes.
// spec.md §9 ("Comments as markers") calls for modeling the structured
// markers some passes stash inside comment lists — IsTrivial, ExpandedClass,
// NameHint — as a small closed enum alongside raw text, rather than parsing
// comment strings back out. This is the one place in the port that
// deliberately diverges from "parse the source text" in favor of a typed
// representation, since round-tripping marker comments through string
// matching is exactly the kind of stringly-typed code the rest of this
// system avoids.
package comments

// Comment is either freeform source text or a structured marker left by an
// earlier pass.
type Comment struct {
	Text   string // set when Marker == nil
	Marker *Marker
}

// MarkerKind enumerates the structured comment markers passes recognize.
type MarkerKind int

const (
	// IsTrivial marks a type alias whose body is exactly another ref with
	// no added members, so FlattenTrees' TypeAlias+TypeAlias merge rule can
	// prefer the non-trivial side (spec.md §4.5 rule 8).
	IsTrivial MarkerKind = iota
	// ExpandedClass marks a class synthesized by ExtractClasses from an
	// anonymous constructible type.
	ExpandedClass
	// NameHint carries a chosen name in Marker.Hint. No pass attaches or
	// reads it; DeriveNonConflictingName derives each name afresh.
	NameHint
)

type Marker struct {
	Kind MarkerKind
	Hint string // populated for NameHint
}

func Text(s string) Comment { return Comment{Text: s} }

func MarkerComment(kind MarkerKind, hint string) Comment {
	return Comment{Marker: &Marker{Kind: kind, Hint: hint}}
}

func IsTrivialComment() Comment { return MarkerComment(IsTrivial, "") }

func NameHintComment(name string) Comment { return MarkerComment(NameHint, name) }

// List is an ordered, append-only sequence of comments (spec.md §3.3
// invariant 6: comments are append-only; merges deduplicate when the two
// sequences are identical).
type List []Comment

// Merge implements the FlattenTrees comment-merge rule: if the two lists are
// identical, keep one copy; otherwise append b after a.
func Merge(a, b List) List {
	if equalLists(a, b) {
		return a
	}
	out := make(List, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func equalLists(a, b List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalComment(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalComment(a, b Comment) bool {
	if (a.Marker == nil) != (b.Marker == nil) {
		return false
	}
	if a.Marker != nil {
		return *a.Marker == *b.Marker
	}
	return a.Text == b.Text
}

// HasMarker reports whether any comment in the list carries the given
// marker kind, and returns the first such marker.
func HasMarker(cs List, kind MarkerKind) (Marker, bool) {
	for _, c := range cs {
		if c.Marker != nil && c.Marker.Kind == kind {
			return *c.Marker, true
		}
	}
	return Marker{}, false
}
