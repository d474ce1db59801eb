package scope

// LoopDetector records the (scope, picker, qident) triples a lookup has
// already visited, per spec.md §4.3: "a small value that records visited
// (tree,scope) pairs; including(x) either returns an extended detector or
// signals a cycle. Every recursive lookup/expansion takes a detector and
// extends it before recursing."
//
// LoopDetector is an immutable value: Including never mutates the receiver,
// it returns a new detector carrying the extra entry, so two independent
// branches of a lookup fan-out never interfere with each other's visited
// sets.
type LoopDetector struct {
	seen map[string]bool
}

// NewLoopDetector returns an empty detector.
func NewLoopDetector() LoopDetector {
	return LoopDetector{}
}

// Including extends the detector with key. ok is false when key was already
// present, signaling a cycle; the caller must stop recursing in that case.
func (d LoopDetector) Including(key string) (next LoopDetector, ok bool) {
	if d.seen[key] {
		return d, false
	}
	out := make(map[string]bool, len(d.seen)+1)
	for k := range d.seen {
		out[k] = true
	}
	out[key] = true
	return LoopDetector{seen: out}, true
}
