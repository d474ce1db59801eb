package container

import "testing"

func TestOrdMapSetGet(t *testing.T) {
	m := NewOrdMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	v, ok := m.Get("a")
	if !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("Get(missing) should report false")
	}
}

func TestOrdMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrdMap[string, int]()
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("z", 3) // re-setting an existing key must not move it

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("Keys order: %+v", keys)
	}
	values := m.Values()
	if len(values) != 2 || values[0] != 3 || values[1] != 2 {
		t.Fatalf("Values: %+v", values)
	}
}

func TestGroupBy(t *testing.T) {
	items := []string{"apple", "avocado", "banana", "blueberry", "cherry"}
	grouped := GroupBy(items, func(s string) byte { return s[0] })

	keys := grouped.Keys()
	if len(keys) != 3 || keys[0] != 'a' || keys[1] != 'b' || keys[2] != 'c' {
		t.Fatalf("GroupBy keys: %+v", keys)
	}
	as, _ := grouped.Get('a')
	if len(as) != 2 {
		t.Fatalf("GroupBy['a'] = %+v", as)
	}
}
