package hxslot

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pthm/hxslot/lib/attrs"
)

// Registry gives renderables stable names so consumer overrides can be
// carried across requests, for example when an HTMX request re-renders a
// single component and must apply the same slot overrides as the full
// page did.
//
//	reg := hxslot.NewRegistry(key)
//	reg.Add(FancyHeader, PlainFooter)
//	token, err := reg.EncodeOverrides(overrides, false)
type Registry struct {
	mu      sync.RWMutex
	encoder *Encoder
	byName  map[string]Renderable
	names   map[Renderable]string
}

// NewRegistry creates a registry whose snapshots are signed or encrypted
// with key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxslot: failed to create encoder: %v", err))
	}
	return &Registry{
		encoder: enc,
		byName:  make(map[string]Renderable),
		names:   make(map[Renderable]string),
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers renderables under their own names (see Renderable.Name).
// Panics on None, Fragment, an invalid tag name or a name collision.
func (reg *Registry) Add(renderables ...Renderable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, r := range renderables {
		reg.register(r.Name(), r)
	}
}

// AddNamed registers r under name. A renderable has at most one name;
// registering it under a second one panics.
func (reg *Registry) AddNamed(name string, r Renderable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.register(name, r)
}

func (reg *Registry) register(name string, r Renderable) {
	if name == "" || r.IsNone() || r.Kind() == KindFragment || (r.Kind() == KindTag && !ValidTagName(r.Name())) {
		panic(fmt.Sprintf("hxslot: cannot register %s under %q", r, name))
	}
	if existing, exists := reg.byName[name]; exists && existing != r {
		panic(fmt.Sprintf("hxslot: name collision for %q", name))
	}
	if prev, exists := reg.names[r]; exists && prev != name {
		panic(fmt.Sprintf("hxslot: %s already registered as %q", r, prev))
	}
	reg.byName[name] = r
	reg.names[r] = name
}

// Lookup returns the renderable registered under name.
func (reg *Registry) Lookup(name string) (Renderable, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.byName[name]
	return r, ok
}

// NameOf returns the name r was registered under.
func (reg *Registry) NameOf(r Renderable) (string, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	name, ok := reg.names[r]
	return name, ok
}

// Names returns all registered names, sorted.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.byName))
	for name := range reg.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// snapshot is the wire form of Overrides.
type snapshot struct {
	Slots     map[string]string     `msgpack:"s,omitempty"`
	SlotProps map[string]*attrs.Map `msgpack:"p,omitempty"`
}

// EncodeOverrides serializes o into a URL-safe token. Slot overrides are
// stored by registered name; func-valued slot props are dropped. If
// sensitive is true the token is encrypted, otherwise signed.
func (reg *Registry) EncodeOverrides(o Overrides, sensitive bool) (string, error) {
	snap := snapshot{SlotProps: map[string]*attrs.Map(o.SlotProps)}
	for slot, r := range o.Slots {
		if r.IsNone() {
			continue
		}
		name, ok := reg.NameOf(r)
		if !ok {
			return "", fmt.Errorf("%w: %s for slot %q", ErrUnknownRenderable, r, slot)
		}
		if snap.Slots == nil {
			snap.Slots = make(map[string]string)
		}
		snap.Slots[slot] = name
	}

	return reg.encoder.Encode(snap, sensitive)
}

// DecodeOverrides reverses EncodeOverrides.
func (reg *Registry) DecodeOverrides(token string, sensitive bool) (Overrides, error) {
	o, err := reg.decodeOverrides(token, sensitive)
	observeSnapshot(err)
	return o, err
}

func (reg *Registry) decodeOverrides(token string, sensitive bool) (Overrides, error) {
	var snap snapshot
	if err := reg.encoder.Decode(token, sensitive, &snap); err != nil {
		return Overrides{}, wrapEncodingError(err)
	}

	var o Overrides
	if len(snap.Slots) > 0 {
		o.Slots = make(Slots, len(snap.Slots))
		for slot, name := range snap.Slots {
			r, ok := reg.Lookup(name)
			if !ok {
				return Overrides{}, fmt.Errorf("%w: %q for slot %q", ErrUnknownRenderable, name, slot)
			}
			o.Slots[slot] = r
		}
	}
	if len(snap.SlotProps) > 0 {
		o.SlotProps = SlotProps(snap.SlotProps)
	}
	return o, nil
}
