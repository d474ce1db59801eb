package digest

import "testing"

func TestOfStringsWhitespaceInsensitive(t *testing.T) {
	a := OfStrings([]string{"hello world", "foo"})
	b := OfStrings([]string{"hello   world", "  foo"})
	if a != b {
		t.Fatalf("expected whitespace-insensitive digests to match: %q vs %q", a, b)
	}
}

func TestOfStringsOrderSensitive(t *testing.T) {
	a := OfStrings([]string{"a", "b"})
	b := OfStrings([]string{"b", "a"})
	if a == b {
		t.Fatalf("digest should be sensitive to element order")
	}
}

func TestOfStringsIsDeterministic(t *testing.T) {
	in := []string{"alpha", "beta", "gamma"}
	a := OfStrings(in)
	b := OfStrings(in)
	if a != b {
		t.Fatalf("digest should be deterministic")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32-char hex digest, got %d chars: %q", len(a), a)
	}
}

func TestOfBytesDigestable(t *testing.T) {
	a := Of([][]byte{[]byte("a"), []byte("b")}, BytesDigestable{})
	b := Of([][]byte{[]byte("a"), []byte("b")}, BytesDigestable{})
	if a != b {
		t.Fatalf("expected deterministic digest for bytes")
	}
}
