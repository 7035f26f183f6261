package hxslot

import (
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/pthm/hxslot/internal/attrstest"
	"github.com/pthm/hxslot/lib/attrs"
)

var testKey = []byte("01234567890123456789012345678901")

func fancyHeader() Renderable {
	return Func("FancyHeader", func(*attrs.Map) templ.Component { return text("fancy") })
}

func TestRegistryAddAndLookup(t *testing.T) {
	reg := NewRegistry(testKey)
	fancy := fancyHeader()
	reg.Add(fancy, Tag("aside"))
	reg.AddNamed("plain-footer", Tag("footer"))

	tests := []struct {
		name   string
		expect Renderable
	}{
		{"FancyHeader", fancy},
		{"aside", Tag("aside")},
		{"plain-footer", Tag("footer")},
	}
	for _, tt := range tests {
		got, ok := reg.Lookup(tt.name)
		if !ok || got != tt.expect {
			t.Errorf("Lookup(%q) = %v, %v; want %v", tt.name, got, ok, tt.expect)
		}
	}

	if name, ok := reg.NameOf(fancy); !ok || name != "FancyHeader" {
		t.Errorf("NameOf() = %q, %v", name, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	want := []string{"FancyHeader", "aside", "plain-footer"}
	got := reg.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistryAddIsIdempotent(t *testing.T) {
	reg := NewRegistry(testKey)
	fancy := fancyHeader()
	reg.Add(fancy)
	reg.Add(fancy)

	if len(reg.Names()) != 1 {
		t.Errorf("Names() = %v", reg.Names())
	}

	reg.AddNamed("FancyHeader", fancy)
	if name, _ := reg.NameOf(fancy); name != "FancyHeader" {
		t.Errorf("NameOf() = %q after re-adding under the same name", name)
	}
}

func TestRegistryRejects(t *testing.T) {
	tests := []struct {
		name string
		add  func(reg *Registry)
	}{
		{"none", func(reg *Registry) { reg.Add(None) }},
		{"fragment", func(reg *Registry) { reg.Add(Fragment) }},
		{"empty name", func(reg *Registry) { reg.AddNamed("", Tag("div")) }},
		{"invalid tag", func(reg *Registry) { reg.Add(Tag("img src=x")) }},
		{"collision", func(reg *Registry) {
			reg.Add(fancyHeader())
			reg.Add(fancyHeader())
		}},
		{"second name", func(reg *Registry) {
			reg.Add(Tag("footer"))
			reg.AddNamed("plain-footer", Tag("footer"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.add(NewRegistry(testKey))
		})
	}
}

func TestRegistryOverridesRoundTrip(t *testing.T) {
	reg := NewRegistry(testKey)
	fancy := fancyHeader()
	reg.Add(fancy, Tag("footer"))

	o := Overrides{
		Slots: Slots{"header": fancy, "footer": Tag("footer"), "icon": None},
		SlotProps: SlotProps{
			"header": attrs.Of("class", "h", "title", "t", "onclick", func() {}),
		},
	}

	for _, sensitive := range []bool{false, true} {
		token, err := reg.EncodeOverrides(o, sensitive)
		if err != nil {
			t.Fatalf("EncodeOverrides(sensitive=%v) failed: %v", sensitive, err)
		}

		got, err := reg.DecodeOverrides(token, sensitive)
		if err != nil {
			t.Fatalf("DecodeOverrides(sensitive=%v) failed: %v", sensitive, err)
		}

		if len(got.Slots) != 2 || got.Slots["header"] != fancy || got.Slots["footer"] != Tag("footer") {
			t.Errorf("Slots = %v", got.Slots)
		}
		if diff := attrstest.Diff(attrs.Of("class", "h", "title", "t"), got.SlotProps["header"]); diff != "" {
			t.Errorf("SlotProps mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRegistryEmptyOverrides(t *testing.T) {
	reg := NewRegistry(testKey)

	token, err := reg.EncodeOverrides(Overrides{}, false)
	if err != nil {
		t.Fatalf("EncodeOverrides failed: %v", err)
	}
	got, err := reg.DecodeOverrides(token, false)
	if err != nil {
		t.Fatalf("DecodeOverrides failed: %v", err)
	}
	if got.Slots != nil || got.SlotProps != nil {
		t.Errorf("got %+v, want empty overrides", got)
	}
}

func TestRegistryUnknownRenderable(t *testing.T) {
	reg := NewRegistry(testKey)

	_, err := reg.EncodeOverrides(Overrides{Slots: Slots{"header": Tag("header")}}, false)
	if !errors.Is(err, ErrUnknownRenderable) {
		t.Errorf("EncodeOverrides() error = %v, want ErrUnknownRenderable", err)
	}

	// A token naming something the decoding registry lacks.
	other := NewRegistry(testKey)
	other.Add(Tag("header"))
	token, err := other.EncodeOverrides(Overrides{Slots: Slots{"header": Tag("header")}}, false)
	if err != nil {
		t.Fatalf("EncodeOverrides failed: %v", err)
	}
	if _, err := reg.DecodeOverrides(token, false); !errors.Is(err, ErrUnknownRenderable) {
		t.Errorf("DecodeOverrides() error = %v, want ErrUnknownRenderable", err)
	}
}

func TestRegistryTampering(t *testing.T) {
	reg := NewRegistry(testKey)
	reg.Add(Tag("header"))
	o := Overrides{Slots: Slots{"header": Tag("header")}}

	signed, err := reg.EncodeOverrides(o, false)
	if err != nil {
		t.Fatal(err)
	}
	encrypted, err := reg.EncodeOverrides(o, true)
	if err != nil {
		t.Fatal(err)
	}

	otherKey := NewRegistry([]byte("another key"))
	otherKey.Add(Tag("header"))

	if _, err := otherKey.DecodeOverrides(signed, false); !errors.Is(err, ErrSignatureInvalid) || !IsDecryptionError(err) {
		t.Errorf("wrong key, signed: error = %v", err)
	}
	if _, err := otherKey.DecodeOverrides(encrypted, true); !errors.Is(err, ErrDecryptFailed) || !IsDecryptionError(err) {
		t.Errorf("wrong key, encrypted: error = %v", err)
	}
	if _, err := reg.DecodeOverrides("garbage", false); !errors.Is(err, ErrInvalidFormat) || IsDecryptionError(err) {
		t.Errorf("garbage: error = %v", err)
	}
}
