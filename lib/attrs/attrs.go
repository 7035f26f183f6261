// Package attrs provides the insertion-ordered attribute map that carries
// props between slot owners, slot overrides and renderables.
//
// Key order matters: it is the order attributes are written to HTML and the
// order class maps are joined in, so a plain Go map cannot be used.
package attrs

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Well-known attribute keys.
const (
	ClassKey = "class"
	RefKey   = "ref"
)

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

func (UndefinedType) String() string { return "undefined" }

// Undefined marks a key that is present but carries no value. It differs
// from a missing key: merging a map holding Undefined over another map
// overwrites the earlier value. nil plays the role of an explicit null.
var Undefined = UndefinedType{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(UndefinedType)
	return ok
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is an insertion-ordered map from attribute name to value.
//
// The zero value is an empty map ready to use. Read methods are safe on a
// nil *Map and behave as on an empty map.
type Map struct {
	om *orderedmap.OrderedMap[string, any]
}

// New returns an empty Map.
func New() *Map {
	return &Map{om: orderedmap.New[string, any]()}
}

// Of builds a Map from alternating keys and values:
//
//	attrs.Of("id", "main", "class", "card")
//
// Panics on an odd argument count or a non-string key.
func Of(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("attrs: Of requires an even number of arguments")
	}
	m := New()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("attrs: key %d is %T, not string", i/2, kv[i]))
		}
		m.Set(k, kv[i+1])
	}
	return m
}

// FromMap copies a Go map into a new Map, keys in sorted order.
// Nested values are not converted.
func FromMap(src map[string]any) *Map {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := New()
	for _, k := range keys {
		m.Set(k, src[k])
	}
	return m
}

func (m *Map) init() {
	if m.om == nil {
		m.om = orderedmap.New[string, any]()
	}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.om == nil {
		return nil, false
	}
	return m.om.Get(key)
}

// Value returns the value stored under key, or nil.
func (m *Map) Value(key string) any {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is present, even when its value is nil or
// Undefined.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// GetString returns the value under key when it is a string.
func (m *Map) GetString(key string) string {
	s, _ := m.Value(key).(string)
	return s
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value any) {
	m.init()
	m.om.Set(key, value)
}

// Delete removes key.
func (m *Map) Delete(key string) {
	if m == nil || m.om == nil {
		return
	}
	m.om.Delete(key)
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(key string, value any)) {
	if m == nil || m.om == nil {
		return
	}
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Each(func(k string, _ any) {
		keys = append(keys, k)
	})
	return keys
}

// Entries returns the entries in insertion order. Nested maps are left as
// *Map values.
func (m *Map) Entries() []Entry {
	entries := make([]Entry, 0, m.Len())
	m.Each(func(k string, v any) {
		entries = append(entries, Entry{Key: k, Value: v})
	})
	return entries
}

// ToMap converts the Map, and any nested *Map, into plain Go maps.
func (m *Map) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, m.Len())
	m.Each(func(k string, v any) {
		if nested, ok := v.(*Map); ok {
			out[k] = nested.ToMap()
			return
		}
		out[k] = v
	})
	return out
}

// GoString makes %#v output readable in test failures.
func (m *Map) GoString() string {
	return fmt.Sprintf("attrs.Map%v", m.Entries())
}
