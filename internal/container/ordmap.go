package container

// OrdMap is an insertion-order-preserving map, used for the "membersByName"
// views spec.md §3.3 invariant 2 requires and for the sourceToLibrary map of
// spec.md §3.4 ("a Library is shared by reference among dependents via an
// ordered map from source to library").
type OrdMap[K comparable, V any] struct {
	order []K
	vals  map[K]V
}

func NewOrdMap[K comparable, V any]() *OrdMap[K, V] {
	return &OrdMap[K, V]{vals: make(map[K]V)}
}

func (m *OrdMap[K, V]) Set(k K, v V) {
	if _, ok := m.vals[k]; !ok {
		m.order = append(m.order, k)
	}
	m.vals[k] = v
}

func (m *OrdMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

func (m *OrdMap[K, V]) Has(k K) bool {
	_, ok := m.vals[k]
	return ok
}

func (m *OrdMap[K, V]) Len() int { return len(m.order) }

// Keys returns keys in insertion order.
func (m *OrdMap[K, V]) Keys() []K { return m.order }

// Values returns values in insertion-key order.
func (m *OrdMap[K, V]) Values() []V {
	out := make([]V, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.vals[k])
	}
	return out
}

// GroupBy groups items by key, keeping keys in first-seen order and each
// group's items in input order. Used to build "group by name" views over an
// ordered member list.
func GroupBy[V any, K comparable](items []V, key func(V) K) *OrdMap[K, []V] {
	m := NewOrdMap[K, []V]()
	for _, it := range items {
		k := key(it)
		existing, _ := m.Get(k)
		m.Set(k, append(existing, it))
	}
	return m
}
