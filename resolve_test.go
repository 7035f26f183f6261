package hxslot

import (
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/pthm/hxslot/internal/attrstest"
	"github.com/pthm/hxslot/lib/attrs"
	"github.com/pthm/hxslot/lib/classes"
)

type testRef struct{ ID int }

func TestResolveRenderable(t *testing.T) {
	def := Tag("div")
	slotOverride := Tag("section")
	component := Tag("article")

	tests := []struct {
		name   string
		slot   string
		params Params
		expect Renderable
	}{
		{"default", "body", Params{Default: def}, def},
		{"slot override", "body", Params{Default: def, Props: OwnerProps{Slots: Slots{"body": slotOverride}}}, slotOverride},
		{"no default is pass-through", "body", Params{}, Fragment},
		{
			"root component beats slot override",
			RootSlot,
			Params{Default: def, Props: OwnerProps{Component: component, Slots: Slots{RootSlot: slotOverride}}},
			component,
		},
		{"root slot override", RootSlot, Params{Default: def, Props: OwnerProps{Slots: Slots{RootSlot: slotOverride}}}, slotOverride},
		{
			"component ignored outside root",
			"body",
			Params{Default: def, Props: OwnerProps{Component: component}},
			def,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Resolve(tt.slot, tt.params)
			if got != tt.expect {
				t.Errorf("Resolve(%q) renderable = %v, want %v", tt.slot, got, tt.expect)
			}
		})
	}
}

func TestResolveClassOrder(t *testing.T) {
	p := Params{
		ClassName: "author",
		Props: OwnerProps{
			ClassName: "consumer",
			SlotProps: SlotProps{
				RootSlot: attrs.Of("class", "slot-prop"),
				"body":   attrs.Of("class", "body-prop"),
			},
		},
		Extra: attrs.Of("class", "extra"),
		Ref:   &testRef{},
	}

	_, root := Resolve(RootSlot, p)
	if got := root.GetString("class"); got != "author consumer extra slot-prop" {
		t.Errorf("root class = %q", got)
	}

	_, body := Resolve("body", p)
	if got := body.GetString("class"); got != "author extra body-prop" {
		t.Errorf("body class = %q, consumer class must only reach root", got)
	}
}

func TestResolveClassValuesUseClassSemantics(t *testing.T) {
	p := Params{
		ClassName: "btn",
		Extra:     attrs.Of("class", attrs.Of("active", true, "disabled", false)),
		Props: OwnerProps{SlotProps: SlotProps{
			"icon": attrs.Of("class", []any{"i", 0, "j"}),
		}},
	}

	_, props := Resolve("icon", p)
	if got := props.GetString("class"); got != "btn active i j" {
		t.Errorf("class = %q, want %q", got, "btn active i j")
	}
}

func TestResolveMergeClass(t *testing.T) {
	p := Params{
		ClassName:  "p-4 text-sm",
		Props:      OwnerProps{SlotProps: SlotProps{"body": attrs.Of("class", "p-4 m-2")}},
		MergeClass: classes.Dedupe,
	}

	_, props := Resolve("body", p)
	if got := props.GetString("class"); got != "p-4 text-sm m-2" {
		t.Errorf("class = %q", got)
	}

	p.MergeClass = strings.ToUpper
	_, props = Resolve("body", p)
	if got := props.GetString("class"); got != "P-4 TEXT-SM P-4 M-2" {
		t.Errorf("class = %q", got)
	}
}

func TestResolveEmptyClassOmitted(t *testing.T) {
	_, props := Resolve("body", Params{Default: Tag("div")})
	if props.Has("class") {
		t.Errorf("class should be absent when nothing contributes, got %#v", props)
	}

	// An empty merged class leaves whatever the slot props carried.
	p := Params{
		Props:      OwnerProps{SlotProps: SlotProps{"body": attrs.Of("class", "x")}},
		MergeClass: func(string) string { return "" },
	}
	_, props = Resolve("body", p)
	if got := props.GetString("class"); got != "x" {
		t.Errorf("class = %q, want slot prop class kept", got)
	}
}

func TestResolveProps(t *testing.T) {
	ref := &testRef{ID: 1}
	p := Params{
		Ref:       ref,
		ClassName: "root-class",
		Props: OwnerProps{
			Attrs:     attrs.Of("id", "consumer-id", "title", "consumer-title", "data", attrs.Of("a", 1)),
			SlotProps: SlotProps{RootSlot: attrs.Of("title", "slot-title", "data", attrs.Of("b", 2))},
		},
		Extra: attrs.Of("id", "extra-id", "role", "region"),
	}

	_, got := Resolve(RootSlot, p)

	want := attrs.Of(
		"id", "extra-id",
		"title", "slot-title",
		"data", attrs.Of("a", 1, "b", 2),
		"role", "region",
		"class", "root-class",
		"ref", ref,
	)
	if diff := attrstest.Diff(want, got); diff != "" {
		t.Errorf("Resolve() props mismatch (-want +got):\n%s", diff)
	}
	if got.Value("ref") != ref {
		t.Error("ref must be attached by identity, not cloned")
	}
}

func TestResolveNonRootIgnoresOwnerAttrs(t *testing.T) {
	p := Params{
		Props: OwnerProps{Attrs: attrs.Of("id", "consumer-id")},
		Extra: attrs.Of("role", "x"),
	}

	_, got := Resolve("body", p)
	if got.Has("id") {
		t.Errorf("owner attrs leaked into non-root slot: %#v", got)
	}
	if got.Has("ref") {
		t.Errorf("ref should be absent without a handle: %#v", got)
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	slotProps := attrs.Of("class", "s", "data", attrs.Of("a", 1))
	extra := attrs.Of("class", "e")
	p := Params{
		ClassName: "c",
		Props:     OwnerProps{SlotProps: SlotProps{"body": slotProps}},
		Extra:     extra,
	}

	_, got := Resolve("body", p)
	got.Value("data").(*attrs.Map).Set("a", 99)

	if diff := attrstest.Diff(attrs.Of("class", "s", "data", attrs.Of("a", 1)), slotProps); diff != "" {
		t.Errorf("slot props mutated (-want +got):\n%s", diff)
	}
	if diff := attrstest.Diff(attrs.Of("class", "e"), extra); diff != "" {
		t.Errorf("extra mutated (-want +got):\n%s", diff)
	}
}

func TestResolveRendersPassThrough(t *testing.T) {
	r, props := Resolve("wrapper", Params{ClassName: "ignored"})
	result, err := TestRenderChildren(r.Instantiate(props), text("only children"))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if result.HTML != "only children" {
		t.Errorf("HTML = %q", result.HTML)
	}
}

func TestResolveCell(t *testing.T) {
	var cell ResolveCell
	ref := &testRef{}
	slots := Slots{"body": Tag("section")}
	p := Params{Ref: ref, Default: Tag("div"), Props: OwnerProps{Slots: slots}}

	r1, props1 := cell.Resolve("body", p)
	r2, props2 := cell.Resolve("body", p)
	if r1 != r2 || props1 != props2 {
		t.Error("unchanged inputs should return cached results")
	}

	p.ClassName = "changed"
	_, props3 := cell.Resolve("body", p)
	if props3 == props1 {
		t.Error("changed class should recompute")
	}
	if props3.GetString("class") != "changed" {
		t.Errorf("class = %q", props3.GetString("class"))
	}

	p.Props.Slots = Slots{"body": Tag("section")}
	_, props4 := cell.Resolve("body", p)
	if props4 == props3 {
		t.Error("new slots map should recompute")
	}
}

func TestResolveCellUncomparableRef(t *testing.T) {
	var cell ResolveCell
	p := Params{Ref: []int{1}, Default: Tag("div")}

	r, props := cell.Resolve(RootSlot, p)
	if r != Tag("div") {
		t.Errorf("renderable = %v", r)
	}
	if _, ok := props.Value("ref").([]int); !ok {
		t.Errorf("ref = %#v", props.Value("ref"))
	}
}

func TestResolveWithFuncComponent(t *testing.T) {
	var got *attrs.Map
	custom := Func("CustomRoot", func(props *attrs.Map) templ.Component {
		got = props
		return text("custom")
	})

	r, props := Resolve(RootSlot, Params{
		Ref:     &testRef{},
		Default: Tag("div"),
		Props:   OwnerProps{Component: custom, ClassName: "consumer"},
	})
	result, err := TestRender(r.Instantiate(props))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if result.HTML != "custom" || got.GetString("class") != "consumer" {
		t.Errorf("HTML = %q, class = %q", result.HTML, got.GetString("class"))
	}
}
