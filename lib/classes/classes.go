// Package classes builds class attribute strings from heterogeneous inputs.
//
// Join follows the truthiness rules of the classic "classnames" helper:
// strings and numbers contribute their text, slices are flattened, maps
// contribute the keys whose values are truthy, everything else is ignored.
package classes

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pthm/hxslot/lib/attrs"
)

// Join concatenates the contributions of all inputs with single spaces.
//
//	classes.Join("btn", map[string]bool{"active": true}, []any{"a", 0}) // "btn active a"
func Join(inputs ...any) string {
	parts := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if !Truthy(in) {
			continue
		}
		if s := contribution(in); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func contribution(in any) string {
	switch v := in.(type) {
	case string:
		return v
	case *attrs.Map:
		var keys []string
		v.Each(func(k string, val any) {
			if Truthy(val) {
				keys = appendNonEmpty(keys, Join(k))
			}
		})
		return strings.Join(keys, " ")
	case bool:
		return ""
	}

	rv := reflect.ValueOf(in)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float(), rv.Type().Bits())
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return Join(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return ""
		}
		names := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			names = append(names, k.String())
		}
		sort.Strings(names)
		var keys []string
		for _, name := range names {
			val := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if Truthy(val.Interface()) {
				keys = appendNonEmpty(keys, Join(name))
			}
		}
		return strings.Join(keys, " ")
	}
	return ""
}

func appendNonEmpty(dst []string, s string) []string {
	if s == "" {
		return dst
	}
	return append(dst, s)
}

// formatFloat renders f the way JavaScript stringifies numbers: plain
// decimals between 1e-6 and 1e21, exponent form ("1e-7", "1e+21")
// outside that range.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Truthy reports whether v counts as set. nil, attrs.Undefined, false,
// zero and NaN numbers, empty strings and nil references are falsy.
// Non-nil slices and maps are truthy even when empty, and so are funcs.
func Truthy(v any) bool {
	if v == nil || attrs.IsUndefined(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// Dedupe drops repeated class tokens, keeping the first occurrence of each.
// It fits as the class merge function of hxslot.Params.
func Dedupe(class string) string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Fields(class) {
		if !seen[part] {
			seen[part] = true
			out = append(out, part)
		}
	}
	return strings.Join(out, " ")
}
