// Package digest computes the MD5 fingerprints spec.md §4.2 and §6.7
// require for cheap structural-identity checks (e.g. recognizing that two
// proxy modules or two derived copies describe the same thing without a
// full deep-equal).
package digest

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// Digestable converts a value to the bytes fed into the hash.
type Digestable[T any] interface {
	Bytes(v T) []byte
}

// StringDigestable strips all whitespace before UTF-8 encoding, per
// spec.md §4.2 and the idempotence property in spec.md §8 property 10.
type StringDigestable struct{}

func (StringDigestable) Bytes(v string) []byte {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return []byte(b.String())
}

// BytesDigestable passes bytes through unchanged.
type BytesDigestable struct{}

func (BytesDigestable) Bytes(v []byte) []byte { return v }

// Of computes the digest of an ordered sequence of values given a
// Digestable. Output is lowercase hex, zero-padded to 32 characters.
func Of[T any](values []T, d Digestable[T]) string {
	h := md5.New()
	for _, v := range values {
		h.Write(d.Bytes(v))
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// OfStrings is the common case: digest an ordered list of strings, with
// whitespace stripped from each before hashing.
func OfStrings(values []string) string {
	return Of(values, StringDigestable{})
}
