package attrs

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func TestOfPreservesOrder(t *testing.T) {
	m := Of("z", 1, "a", 2, "m", 3)

	want := []string{"z", "a", "m"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestOfPanicsOnOddArgs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for odd argument count")
		}
	}()
	Of("a")
}

func TestSetKeepsPosition(t *testing.T) {
	m := Of("a", 1, "b", 2)
	m.Set("a", 3)
	m.Set("c", 4)

	want := []string{"a", "b", "c"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := m.Value("a"); got != 3 {
		t.Errorf("Value(a) = %v, want 3", got)
	}
}

func TestNilMapReads(t *testing.T) {
	var m *Map

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if m.Has("x") {
		t.Error("Has(x) on nil map should be false")
	}
	if len(m.Keys()) != 0 {
		t.Errorf("Keys() = %v, want empty", m.Keys())
	}
	m.Delete("x")
}

func TestZeroValueUsable(t *testing.T) {
	var m Map
	m.Set("id", "x")
	if m.GetString("id") != "x" {
		t.Errorf("GetString(id) = %q, want %q", m.GetString("id"), "x")
	}
}

func TestUndefinedIsPresent(t *testing.T) {
	m := Of("value", Undefined)

	v, ok := m.Get("value")
	if !ok {
		t.Fatal("key with Undefined value should be present")
	}
	if !IsUndefined(v) {
		t.Errorf("Get(value) = %v, want Undefined", v)
	}
	if IsUndefined(nil) {
		t.Error("nil is not Undefined")
	}
}

func TestFromMapSortsKeys(t *testing.T) {
	m := FromMap(map[string]any{"b": 1, "a": 2, "c": 3})

	want := []string{"a", "b", "c"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestToMap(t *testing.T) {
	m := Of("a", 1, "nested", Of("b", "x"))

	want := map[string]any{"a": 1, "nested": map[string]any{"b": "x"}}
	if got := m.ToMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToMap() = %v, want %v", got, want)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	m := Of(
		"z", "last-first",
		"class", "card",
		"onClick", func() {},
		"hidden", Undefined,
		"style", Of("color", "red", "border", "none"),
	)

	packed, err := msgpack.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded := New()
	if err := msgpack.Unmarshal(packed, decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := []string{"z", "class", "style"}
	if got := decoded.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	style, ok := decoded.Value("style").(*Map)
	if !ok {
		t.Fatalf("style decoded as %T, want *Map", decoded.Value("style"))
	}
	if got := style.Keys(); !reflect.DeepEqual(got, []string{"color", "border"}) {
		t.Errorf("style keys = %v", got)
	}
}

func TestUnmarshalYAMLPreservesOrder(t *testing.T) {
	src := `
id: main
class: card shadow
style:
  width: 10px
  color: red
tags: [a, b]
`
	m := New()
	if err := yaml.Unmarshal([]byte(src), m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := []string{"id", "class", "style", "tags"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	style := m.Value("style").(*Map)
	if got := style.Keys(); !reflect.DeepEqual(got, []string{"width", "color"}) {
		t.Errorf("style keys = %v", got)
	}

	if got := m.Value("tags"); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("tags = %#v", got)
	}
}

func TestUnmarshalYAMLRejectsScalar(t *testing.T) {
	m := New()
	if err := yaml.Unmarshal([]byte("just a string"), m); err == nil {
		t.Fatal("expected error for scalar document")
	}
}

func TestMarshalYAML(t *testing.T) {
	m := Of("b", 1, "a", Of("y", true, "x", "s"), "fn", func() {})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := "b: 1\na:\n  y: true\n  x: s\n"
	if got := buf.String(); got != want {
		t.Errorf("yaml = %q, want %q", got, want)
	}
	if strings.Contains(buf.String(), "fn") {
		t.Error("func values should not be marshaled")
	}
}
