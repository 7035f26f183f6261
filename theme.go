package hxslot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm/hxslot/lib/attrs"
	"github.com/pthm/hxslot/lib/merge"
)

// LoadTheme reads slot props from YAML. The document maps slot names to
// attribute mappings; attribute order is preserved:
//
//	header:
//	  class: card-header
//	  data-role: banner
//	footer:
//	  class: card-footer
//
// An empty document yields empty SlotProps.
func LoadTheme(r io.Reader) (SlotProps, error) {
	var doc map[string]*attrs.Map
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return SlotProps{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if doc == nil {
		return SlotProps{}, nil
	}
	return SlotProps(doc), nil
}

// LoadThemeFile is LoadTheme on the named file.
func LoadThemeFile(path string) (SlotProps, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	props, err := LoadTheme(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return props, nil
}

// MergeSlotProps deep-merges slot props slot by slot, later sets winning.
func MergeSlotProps(sets ...SlotProps) SlotProps {
	out := make(SlotProps)
	for _, set := range sets {
		for slot, props := range set {
			out[slot] = merge.Props(out[slot], props)
		}
	}
	return out
}
