// Package hxslot lets templ component authors expose named slots: points
// where the consumer of a component may substitute its own renderable for
// the author's default, with predictable prop merging.
//
// hxslot only decides which renderable and which props reach a rendering
// boundary. It does not manage state, lifecycle or styling.
//
// # Renderables
//
// A Renderable is one of:
//   - None: renders nothing
//   - Tag(name): a native HTML element
//   - Func(name, fn): a component function taking resolved props
//   - Fragment: renders only the children of the call site
//
// Renderables are comparable values, which lets memo cells and the
// Registry key on them.
//
// # Resolving slots
//
// Use resolves a slot in render-function style. It returns a
// *SlotRenderer whose Render method merges call-time props, the
// consumer's slot props and the author's fixed props (later winning) and
// instantiates the resolved renderable:
//
//	header := hxslot.Use("header", overrides, hxslot.Options{
//	    Default: hxslot.Tag("header"),
//	    Props:   attrs.Of("role", "banner"),
//	})
//	header.Render(attrs.Of("id", "top"))
//
// Resolve is the paired style: it returns the renderable and the final
// props, joining class fragments from the author, the consumer and the
// slot props, and gives the reserved "root" slot special treatment.
//
// Component bundles slot declarations with per-slot defaults and memo
// cells:
//
//	var Card = hxslot.New("card", "header", "footer").
//	    WithDefault("header", hxslot.Tag("header"))
//
// # Props
//
// Props travel as *attrs.Map, an insertion-ordered map. lib/merge
// deep-merges them: nested maps merge recursively, everything else is
// replaced by a structural clone, funcs are kept by reference and
// attrs.Undefined overwrites without removing the key. lib/classes joins
// class fragments from strings, numbers, lists and maps of flags.
//
// # Carrying overrides across requests
//
// A Registry names renderables so consumer overrides can be encoded into a
// signed or encrypted token (msgpack payload) and restored by a later
// HTMX request:
//
//	q, _ := reg.Query(overrides, false)      // "s=..."
//	o, err := reg.OverridesFromRequest(r, false)
//
// Tokens can also live server-side in a lib/store Store (in memory or
// Redis), leaving only a short key in the URL; Registry.Middleware restores
// overrides into the request context either way.
//
// SetObserver reports memo cell hits and snapshot decodes; lib/metrics
// exports them to Prometheus.
//
// # Themes
//
// LoadTheme reads slot props from YAML, preserving attribute order.
//
// # Development mode
//
// With HXSLOT_ENV=development (or SetMode(Development)) hxslot logs
// advisories through the logger set with SetLogger: slot names that are
// not plain identifiers, root slots resolved without a ref, and
// undeclared slots. Advisories never change results.
package hxslot
