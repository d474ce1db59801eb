package container

import "testing"

func TestSetAddAndContains(t *testing.T) {
	s := NewSet[string]()
	if !s.Add("a") {
		t.Fatalf("first Add should report true")
	}
	if s.Add("a") {
		t.Fatalf("duplicate Add should report false")
	}
	if !s.Contains("a") || s.Len() != 1 {
		t.Fatalf("unexpected set state: %+v", s.Items())
	}
}

func TestSetPreservesInsertionOrder(t *testing.T) {
	s := NewSet("c", "a", "b", "a")
	got := s.Items()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Items: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items order mismatch at %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestSetUnion(t *testing.T) {
	a := NewSet(1, 2)
	b := NewSet(2, 3)
	u := a.Union(b)
	if u.Len() != 3 || !u.Contains(1) || !u.Contains(2) || !u.Contains(3) {
		t.Fatalf("Union: %+v", u.Items())
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	a := NewSet(1, 2)
	b := a.Clone()
	b.Add(3)
	if a.Contains(3) {
		t.Fatalf("Clone should be independent of the original")
	}
}
