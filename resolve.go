package hxslot

import (
	"reflect"
	"sync"

	"github.com/pthm/hxslot/lib/attrs"
	"github.com/pthm/hxslot/lib/classes"
	"github.com/pthm/hxslot/lib/merge"
)

// RootSlot is the reserved name of a component's outermost element.
const RootSlot = "root"

// OwnerProps are the props a consumer passed to the owning component.
type OwnerProps struct {
	// Component replaces the root renderable. Only read for RootSlot.
	Component Renderable
	// ClassName is the consumer's own class. Only read for RootSlot.
	ClassName string
	Slots     Slots
	SlotProps SlotProps
	// Attrs are the remaining consumer attributes, forwarded to the root.
	Attrs *attrs.Map
}

// Params configures Resolve for one slot.
type Params struct {
	// Ref is a handle attached to the resolved props as is, under "ref".
	// Expected for RootSlot.
	Ref any
	// Default renders when nothing overrides the slot. None falls back to
	// Fragment.
	Default Renderable
	// ClassName is the author's class for this slot.
	ClassName string
	Props     OwnerProps
	// Extra are fixed props from the author.
	Extra *attrs.Map
	// MergeClass post-processes the joined class string, for example
	// classes.Dedupe. nil leaves it unchanged.
	MergeClass func(string) string
}

// Resolve returns the renderable and props for slot name.
//
// The renderable is, in order: the consumer's Component for RootSlot, the
// consumer's slot override, Default, Fragment. The class joins the
// author's class, the consumer's class (root only), Extra's class and the
// slot props' class. Props merge the consumer's Attrs (root only), Extra,
// the slot props and the joined class, later winning.
func Resolve(name string, p Params) (Renderable, *attrs.Map) {
	checkSlotName(name)

	root := name == RootSlot
	if root && p.Ref == nil {
		advise("hxslot: root slot resolved without a ref", "slot", name)
	}

	r := p.Default
	if root && !p.Props.Component.IsNone() {
		r = p.Props.Component
	} else if o, ok := p.Props.Slots[name]; ok && !o.IsNone() {
		r = o
	}
	if r.IsNone() {
		r = Fragment
	}

	slotProps := p.Props.SlotProps[name]

	var ownerClass string
	var base *attrs.Map
	if root {
		ownerClass = p.Props.ClassName
		base = p.Props.Attrs
	}

	class := classes.Join(
		p.ClassName,
		ownerClass,
		p.Extra.Value(attrs.ClassKey),
		slotProps.Value(attrs.ClassKey),
	)
	if p.MergeClass != nil {
		class = p.MergeClass(class)
	}

	var classEntry *attrs.Map
	if class != "" {
		classEntry = attrs.Of(attrs.ClassKey, class)
	}

	props := merge.Props(base, p.Extra, slotProps, classEntry)
	// The ref is a handle, not data: attach it without cloning.
	if p.Ref != nil {
		props.Set(attrs.RefKey, p.Ref)
	}
	return r, props
}

type resolveKey struct {
	name       string
	ref        any
	def        Renderable
	className  string
	component  Renderable
	ownerClass string
	slots      uintptr
	slotProps  uintptr
	attrs      *attrs.Map
	extra      *attrs.Map
	mergeClass uintptr
}

// ResolveCell memoizes Resolve for one call site, keyed on the identity of
// every input. A Ref of an uncomparable type disables caching.
type ResolveCell struct {
	mu    sync.Mutex
	key   resolveKey
	valid bool
	r     Renderable
	props *attrs.Map
}

// Resolve is the memoized form of the package-level Resolve. The returned
// props are shared between calls that hit the cache and must be treated as
// read-only.
func (c *ResolveCell) Resolve(name string, p Params) (Renderable, *attrs.Map) {
	if p.Ref != nil && !reflect.TypeOf(p.Ref).Comparable() {
		observeMemo(CacheResolve, false)
		return Resolve(name, p)
	}

	key := resolveKey{
		name:       name,
		ref:        p.Ref,
		def:        p.Default,
		className:  p.ClassName,
		component:  p.Props.Component,
		ownerClass: p.Props.ClassName,
		slots:      mapID(p.Props.Slots),
		slotProps:  mapID(p.Props.SlotProps),
		attrs:      p.Props.Attrs,
		extra:      p.Extra,
		mergeClass: funcID(p.MergeClass),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.key == key {
		observeMemo(CacheResolve, true)
		return c.r, c.props
	}
	observeMemo(CacheResolve, false)
	c.r, c.props = Resolve(name, p)
	c.key, c.valid = key, true
	return c.r, c.props
}

func funcID(fn func(string) string) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
