package hxslot

import (
	"reflect"
	"sync"

	"github.com/a-h/templ"

	"github.com/pthm/hxslot/lib/attrs"
	"github.com/pthm/hxslot/lib/merge"
)

// Slots maps slot names to the renderables a consumer substitutes.
type Slots map[string]Renderable

// SlotProps maps slot names to extra props a consumer merges into that
// slot only.
type SlotProps map[string]*attrs.Map

// Overrides is what a consumer passes to a slottable component.
type Overrides struct {
	Slots     Slots
	SlotProps SlotProps
}

// Options is what a component author passes for one slot.
type Options struct {
	// Default renders when the consumer supplies no override.
	Default Renderable
	// Props are fixed props that win over both call-time props and the
	// consumer's slot props.
	Props *attrs.Map
}

// SlotRenderer is the resolved form of one slot. Render it as many times
// as needed; it holds no state beyond its inputs.
type SlotRenderer struct {
	name       string
	renderable Renderable
	slotProps  *attrs.Map
	extra      *attrs.Map
}

// Use resolves slot name against the consumer's overrides and the author's
// options. The renderable is the consumer's override, else opts.Default,
// else None.
//
//	header := hxslot.Use("header", owner, hxslot.Options{Default: hxslot.Tag("header")})
//	@header.Render(attrs.Of("id", "top")) { ... }
func Use(name string, owner Overrides, opts Options) *SlotRenderer {
	checkSlotName(name)

	r := opts.Default
	if o, ok := owner.Slots[name]; ok && !o.IsNone() {
		r = o
	}
	return &SlotRenderer{
		name:       name,
		renderable: r,
		slotProps:  owner.SlotProps[name],
		extra:      opts.Props,
	}
}

// Name returns the slot name.
func (s *SlotRenderer) Name() string {
	return s.name
}

// Renderable returns the resolved renderable.
func (s *SlotRenderer) Renderable() Renderable {
	return s.renderable
}

// Props merges call-time props, the consumer's slot props and the
// author's fixed props, in increasing precedence.
func (s *SlotRenderer) Props(props *attrs.Map) *attrs.Map {
	return merge.Props(props, s.slotProps, s.extra)
}

// Render instantiates the resolved renderable with merged props. A None
// renderable renders nothing.
func (s *SlotRenderer) Render(props *attrs.Map) templ.Component {
	if s.renderable.IsNone() {
		return templ.NopComponent
	}
	return s.renderable.Instantiate(s.Props(props))
}

type useKey struct {
	name      string
	slots     uintptr
	slotProps uintptr
	def       Renderable
	props     *attrs.Map
}

// Cell memoizes Use for one call site. It returns the same *SlotRenderer
// while the slot name, the identity of the override maps, the default
// renderable and the identity of the fixed props are unchanged.
//
// Maps are compared by identity: mutating an override map in place does
// not invalidate the cell.
type Cell struct {
	mu  sync.Mutex
	key useKey
	r   *SlotRenderer
}

// Use is the memoized form of the package-level Use.
func (c *Cell) Use(name string, owner Overrides, opts Options) *SlotRenderer {
	key := useKey{
		name:      name,
		slots:     mapID(owner.Slots),
		slotProps: mapID(owner.SlotProps),
		def:       opts.Default,
		props:     opts.Props,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.r != nil && c.key == key {
		observeMemo(CacheUse, true)
		return c.r
	}
	observeMemo(CacheUse, false)
	c.key, c.r = key, Use(name, owner, opts)
	return c.r
}

// mapID returns the identity of a map, or 0 for nil.
func mapID(m any) uintptr {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Map || v.IsNil() {
		return 0
	}
	return v.Pointer()
}
