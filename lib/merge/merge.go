// Package merge combines partial attribute maps into one prop set.
package merge

import (
	"github.com/pthm/hxslot/lib/attrs"
)

// Props deep-merges sources left to right into a new map. Later sources
// win on conflicting keys. nil sources are skipped and no source is
// modified.
//
// Plain maps (*attrs.Map or map[string]any) are merged recursively with
// whatever map already sits under the same key. Funcs are stored by
// reference. Every other value is stored as a Clone, so slices replace
// maps and maps replace slices wholesale.
func Props(sources ...*attrs.Map) *attrs.Map {
	dst := attrs.New()
	for _, src := range sources {
		if src == nil {
			continue
		}
		into(dst, src)
	}
	return dst
}

// into merges src into dst. dst is always owned by the merge, never an
// input.
func into(dst, src *attrs.Map) {
	src.Each(func(key string, value any) {
		if m, ok := plainMap(value); ok {
			current, _ := plainMap(dst.Value(key))
			dst.Set(key, Props(current, m))
			return
		}
		if isFunc(value) {
			dst.Set(key, value)
			return
		}
		dst.Set(key, Clone(value))
	})
}

// plainMap reports whether v is a plain data map and returns it as an
// *attrs.Map. Go maps convert with sorted keys.
func plainMap(v any) (*attrs.Map, bool) {
	switch m := v.(type) {
	case *attrs.Map:
		return m, m != nil
	case map[string]any:
		return attrs.FromMap(m), m != nil
	}
	return nil, false
}
