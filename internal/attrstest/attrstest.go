// Package attrstest holds comparison helpers for tests that assert on
// attribute maps.
package attrstest

import (
	"github.com/google/go-cmp/cmp"

	"github.com/pthm/hxslot/lib/attrs"
)

// Entries makes cmp compare *attrs.Map values as ordered entry lists,
// recursing into nested maps.
var Entries = cmp.Transformer("attrs.Entries", func(m *attrs.Map) []attrs.Entry {
	if m == nil {
		return nil
	}
	return m.Entries()
})

// Diff returns a human-readable diff of two values that may hold
// *attrs.Map, or "" when they are equal.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, append([]cmp.Option{Entries}, opts...)...)
}
