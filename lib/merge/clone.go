package merge

import (
	"reflect"
	"regexp"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/pthm/hxslot/lib/attrs"
)

// Clone returns a deep structural copy of v that shares no mutable state
// with it.
//
// Plain data is copied recursively: *attrs.Map, map[string]any and []any,
// plus any other slice, array or map kind, whose elements follow the same
// rules. Dates and regexps are copied as opaque values. Funcs, other
// pointers, channels and structs are returned as is.
func Clone(v any) any {
	switch val := v.(type) {
	case nil, attrs.UndefinedType, string, bool, time.Time:
		return v
	case *attrs.Map:
		if val == nil {
			return val
		}
		out := attrs.New()
		val.Each(func(k string, item any) {
			out.Set(k, cloneItem(item))
		})
		return out
	case map[string]any:
		if val == nil {
			return val
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneItem(item)
		}
		return out
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneItem(item)
		}
		return out
	case *time.Time:
		if val == nil {
			return val
		}
		t := *val
		return &t
	case *regexp.Regexp:
		if val == nil {
			return val
		}
		re := *val
		return &re
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if plain(rv.Type()) {
			return deepcopy.Copy(v)
		}
		return cloneContainer(rv).Interface()
	}
	return v
}

// plain reports whether t holds only scalars and strings, which deepcopy
// copies without loss.
func plain(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Slice, reflect.Array:
		return plain(t.Elem())
	case reflect.Map:
		return plain(t.Key()) && plain(t.Elem())
	}
	return false
}

// cloneContainer copies a typed slice, array or map, cloning every element.
// Map keys are kept as they are.
func cloneContainer(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			setElem(out.Index(i), rv.Index(i))
		}
		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			setElem(out.Index(i), rv.Index(i))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		elem := reflect.New(rv.Type().Elem()).Elem()
		iter := rv.MapRange()
		for iter.Next() {
			elem.SetZero()
			setElem(elem, iter.Value())
			out.SetMapIndex(iter.Key(), elem)
		}
		return out
	}
	return rv
}

func setElem(dst, src reflect.Value) {
	if src.Kind() == reflect.Interface && src.IsNil() {
		return
	}
	dst.Set(reflect.ValueOf(cloneItem(src.Interface())))
}

func cloneItem(v any) any {
	if isFunc(v) {
		return v
	}
	return Clone(v)
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
