package attrs

import (
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gopkg.in/yaml.v3"
)

// serializable reports whether a value can leave the process. Funcs and
// Undefined only have meaning in memory.
func serializable(v any) bool {
	if IsUndefined(v) {
		return false
	}
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Kind() != reflect.Func
}

// EncodeMsgpack writes the map as a msgpack map, preserving key order.
// Func and Undefined values are dropped.
func (m *Map) EncodeMsgpack(enc *msgpack.Encoder) error {
	if m == nil {
		return enc.EncodeNil()
	}

	n := 0
	m.Each(func(_ string, v any) {
		if serializable(v) {
			n++
		}
	})
	if err := enc.EncodeMapLen(n); err != nil {
		return err
	}

	var err error
	m.Each(func(k string, v any) {
		if err != nil || !serializable(v) {
			return
		}
		if err = enc.EncodeString(k); err != nil {
			return
		}
		err = enc.Encode(v)
	})
	return err
}

// DecodeMsgpack reads a msgpack map. Nested maps decode as *Map so their
// key order survives too.
func (m *Map) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	m.init()
	for i := 0; i < n; i++ {
		k, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := decodeMsgpackValue(dec)
		if err != nil {
			return fmt.Errorf("attrs: key %q: %w", k, err)
		}
		m.Set(k, v)
	}
	return nil
}

func decodeMsgpackValue(dec *msgpack.Decoder) (any, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	if msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32 {
		nested := New()
		if err := nested.DecodeMsgpack(dec); err != nil {
			return nil, err
		}
		return nested, nil
	}
	return dec.DecodeInterface()
}

// UnmarshalYAML decodes a YAML mapping, preserving key order. Nested
// mappings become *Map values and sequences become []any.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("attrs: line %d: expected a mapping", node.Line)
	}
	m.init()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		v, err := yamlValue(node.Content[i+1])
		if err != nil {
			return err
		}
		m.Set(key.Value, v)
	}
	return nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.MappingNode:
		nested := New()
		if err := nested.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return nested, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// MarshalYAML encodes the map as an ordered YAML mapping. Func and
// Undefined values are dropped.
func (m *Map) MarshalYAML() (any, error) {
	if m == nil {
		return nil, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.Each(func(k string, v any) {
		if err != nil || !serializable(v) {
			return
		}
		var value yaml.Node
		if err = value.Encode(v); err != nil {
			return
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}
