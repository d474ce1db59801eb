// Package container provides the small ordered-collection primitives
// spec.md §4.1 names: a generic ordered sequence with a partial-function
// collect, a set, and an order-preserving map. The teacher has no direct
// analogue (Go's stdlib slices/maps cover its needs), so these are grounded
// on the spec's own description of fp-ts-style Seq combinators (spec.md §9,
// "tuples as structs... fp-ts Option/Either maps directly"); the style
// (small generic helpers, no external collections library) follows the
// teacher's general preference for stdlib-shaped code over a heavyweight
// dependency for something this size.
package container

import "sort"

// PartialFunction pairs a predicate with a transform that is only ever
// invoked where the predicate held; this is what spec.md §4.1 calls
// "collect".
type PartialFunction[T, R any] struct {
	Defined func(T) bool
	Apply   func(T) R
}

// Seq is an immutable ordered sequence. All operations return new slices;
// none mutate the receiver's backing array.
type Seq[T any] []T

// NewSeq wraps a slice (copying it) as a Seq.
func NewSeq[T any](items ...T) Seq[T] {
	cp := make(Seq[T], len(items))
	copy(cp, items)
	return cp
}

func (s Seq[T]) Length() int { return len(s) }

func (s Seq[T]) Get(i int) T { return s[i] }

func (s Seq[T]) Head() T { return s[0] }

func (s Seq[T]) Tail() Seq[T] { return s[1:] }

func (s Seq[T]) Init() Seq[T] { return s[:len(s)-1] }

func (s Seq[T]) Last() T { return s[len(s)-1] }

func (s Seq[T]) IsEmpty() bool { return len(s) == 0 }

func (s Seq[T]) Reverse() Seq[T] {
	out := make(Seq[T], len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func (s Seq[T]) Concat(o Seq[T]) Seq[T] {
	out := make(Seq[T], 0, len(s)+len(o))
	out = append(out, s...)
	out = append(out, o...)
	return out
}

func (s Seq[T]) Append(v T) Seq[T] {
	out := make(Seq[T], len(s)+1)
	copy(out, s)
	out[len(s)] = v
	return out
}

func (s Seq[T]) Prepend(v T) Seq[T] {
	out := make(Seq[T], len(s)+1)
	out[0] = v
	copy(out[1:], s)
	return out
}

// Distinct removes duplicates, keeping the first occurrence, using key as
// the equality witness (identity-or-equality based per spec.md §4.1).
func Distinct[T any, K comparable](s Seq[T], key func(T) K) Seq[T] {
	seen := make(map[K]bool, len(s))
	out := make(Seq[T], 0, len(s))
	for _, v := range s {
		k := key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}

func Filter[T any](s Seq[T], pred func(T) bool) Seq[T] {
	out := make(Seq[T], 0, len(s))
	for _, v := range s {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func MapSeq[T, R any](s Seq[T], f func(T) R) Seq[R] {
	out := make(Seq[R], len(s))
	for i, v := range s {
		out[i] = f(v)
	}
	return out
}

func FlatMap[T, R any](s Seq[T], f func(T) Seq[R]) Seq[R] {
	out := make(Seq[R], 0, len(s))
	for _, v := range s {
		out = append(out, f(v)...)
	}
	return out
}

func FoldLeft[T, A any](s Seq[T], zero A, f func(A, T) A) A {
	acc := zero
	for _, v := range s {
		acc = f(acc, v)
	}
	return acc
}

// Collect applies pf.Apply to every element where pf.Defined holds, per
// spec.md §4.1's partial-function collect.
func Collect[T, R any](s Seq[T], pf PartialFunction[T, R]) Seq[R] {
	out := make(Seq[R], 0, len(s))
	for _, v := range s {
		if pf.Defined(v) {
			out = append(out, pf.Apply(v))
		}
	}
	return out
}

// PartitionCollect splits s into (matched-and-transformed, rest).
func PartitionCollect[T, R any](s Seq[T], pf PartialFunction[T, R]) (Seq[R], Seq[T]) {
	matched := make(Seq[R], 0, len(s))
	rest := make(Seq[T], 0, len(s))
	for _, v := range s {
		if pf.Defined(v) {
			matched = append(matched, pf.Apply(v))
		} else {
			rest = append(rest, v)
		}
	}
	return matched, rest
}

// PartitionCollect2 runs two partial functions over the same sequence,
// returning both transformed buckets plus whatever matched neither.
func PartitionCollect2[T, R1, R2 any](s Seq[T], pf1 PartialFunction[T, R1], pf2 PartialFunction[T, R2]) (Seq[R1], Seq[R2], Seq[T]) {
	m1 := make(Seq[R1], 0, len(s))
	m2 := make(Seq[R2], 0, len(s))
	rest := make(Seq[T], 0, len(s))
	for _, v := range s {
		switch {
		case pf1.Defined(v):
			m1 = append(m1, pf1.Apply(v))
		case pf2.Defined(v):
			m2 = append(m2, pf2.Apply(v))
		default:
			rest = append(rest, v)
		}
	}
	return m1, m2, rest
}

// CollectFirst returns the first transformed element for which pf is
// defined, if any.
func CollectFirst[T, R any](s Seq[T], pf PartialFunction[T, R]) (R, bool) {
	for _, v := range s {
		if pf.Defined(v) {
			return pf.Apply(v), true
		}
	}
	var zero R
	return zero, false
}

// MapNotNil maps and drops results where ok is false (spec's
// mapNotNoneOption).
func MapNotNil[T, R any](s Seq[T], f func(T) (R, bool)) Seq[R] {
	out := make(Seq[R], 0, len(s))
	for _, v := range s {
		if r, ok := f(v); ok {
			out = append(out, r)
		}
	}
	return out
}

type Indexed[T any] struct {
	Index int
	Value T
}

func ZipWithIndex[T any](s Seq[T]) Seq[Indexed[T]] {
	out := make(Seq[Indexed[T]], len(s))
	for i, v := range s {
		out[i] = Indexed[T]{Index: i, Value: v}
	}
	return out
}

// SortBy stably sorts by a comparable projection.
func SortBy[T any, K int | int64 | float64 | string](s Seq[T], key func(T) K) Seq[T] {
	out := make(Seq[T], len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

func Forall[T any](s Seq[T], pred func(T) bool) bool {
	for _, v := range s {
		if !pred(v) {
			return false
		}
	}
	return true
}

func Exists[T any](s Seq[T], pred func(T) bool) bool {
	for _, v := range s {
		if pred(v) {
			return true
		}
	}
	return false
}

// StartsWith reports whether s begins with the elements of prefix, using eq
// for element comparison.
func StartsWith[T any](s, prefix Seq[T], eq func(a, b T) bool) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, v := range prefix {
		if !eq(s[i], v) {
			return false
		}
	}
	return true
}
