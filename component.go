package hxslot

import (
	"sync"

	"github.com/a-h/templ"

	"github.com/pthm/hxslot/lib/attrs"
)

// Component declares a slottable component: its name, the slots it
// exposes and the author's defaults for each slot.
//
// Declare components once, at package level, and resolve their slots
// while rendering:
//
//	var Card = hxslot.New("card", "header", "body", "footer").
//	    WithDefault("header", hxslot.Tag("header")).
//	    WithDefault("body", hxslot.Tag("div")).
//	    WithProps("body", attrs.Of("class", "card-body"))
//
//	templ card(o hxslot.Overrides, title string) {
//	    @Card.Render("header", o, nil) {
//	        <h2>{ title }</h2>
//	    }
//	}
//
// Each slot has its own memo Cell, so resolving a slot with unchanged
// overrides returns the same *SlotRenderer.
type Component struct {
	name     string
	slots    []string
	declared map[string]bool
	defaults map[string]Renderable
	props    map[string]*attrs.Map

	mu    sync.Mutex
	cells map[string]*Cell
}

// New declares a component with the given slot names.
func New(name string, slots ...string) *Component {
	c := &Component{
		name:     name,
		slots:    append([]string(nil), slots...),
		declared: make(map[string]bool, len(slots)),
		defaults: make(map[string]Renderable),
		props:    make(map[string]*attrs.Map),
		cells:    make(map[string]*Cell),
	}
	for _, s := range slots {
		checkSlotName(s)
		c.declared[s] = true
	}
	return c
}

// WithDefault sets the renderable used for slot when the consumer supplies
// none.
func (c *Component) WithDefault(slot string, r Renderable) *Component {
	c.defaults[slot] = r
	return c
}

// WithProps sets the author's fixed props for slot.
func (c *Component) WithProps(slot string, props *attrs.Map) *Component {
	c.props[slot] = props
	return c
}

// Name returns the component's name.
func (c *Component) Name() string {
	return c.name
}

// Slots returns the declared slot names in declaration order.
func (c *Component) Slots() []string {
	return append([]string(nil), c.slots...)
}

// Declares reports whether slot was declared.
func (c *Component) Declares(slot string) bool {
	return c.declared[slot]
}

// Default returns the author's default renderable for slot.
func (c *Component) Default(slot string) Renderable {
	return c.defaults[slot]
}

// Slot resolves slot against the consumer's overrides. Undeclared slots
// still resolve; in development mode they log an advisory.
func (c *Component) Slot(slot string, owner Overrides) *SlotRenderer {
	if !c.declared[slot] {
		advise("hxslot: slot not declared by component", "component", c.name, "slot", slot)
	}
	return c.cell(slot).Use(slot, owner, Options{
		Default: c.defaults[slot],
		Props:   c.props[slot],
	})
}

// Render resolves slot and renders it with props.
func (c *Component) Render(slot string, owner Overrides, props *attrs.Map) templ.Component {
	return c.Slot(slot, owner).Render(props)
}

func (c *Component) cell(slot string) *Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	cell, ok := c.cells[slot]
	if !ok {
		cell = &Cell{}
		c.cells[slot] = cell
	}
	return cell
}
