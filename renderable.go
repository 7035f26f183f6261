package hxslot

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/a-h/templ"

	"github.com/pthm/hxslot/lib/attrs"
)

// Kind identifies the variant of a Renderable.
type Kind uint8

const (
	// KindNone renders nothing.
	KindNone Kind = iota
	// KindTag renders a native HTML element.
	KindTag
	// KindFunc calls a component function.
	KindFunc
	// KindFragment renders only the children it is given.
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindFunc:
		return "func"
	case KindFragment:
		return "fragment"
	}
	return "none"
}

// ComponentFunc builds a templ component from resolved props. Children
// passed by the caller are available through templ.GetChildren(ctx).
type ComponentFunc func(props *attrs.Map) templ.Component

type funcRef struct {
	name string
	fn   ComponentFunc
}

// Renderable is anything a slot can render: nothing, a native tag, a
// component function or a pass-through fragment.
//
// Renderables are comparable. Two Func renderables are equal only when
// they come from the same Func call, so store them in package variables:
//
//	var Card = hxslot.Func("Card", card)
//
// The zero value is None.
type Renderable struct {
	kind Kind
	tag  string
	ref  *funcRef
}

var (
	// None renders nothing.
	None = Renderable{}
	// Fragment renders the children of the call site and nothing else.
	Fragment = Renderable{kind: KindFragment}
)

// Tag returns a renderable for the native element name. A name that is
// not a valid element name (see ValidTagName) renders nothing.
func Tag(name string) Renderable {
	return Renderable{kind: KindTag, tag: name}
}

// Func returns a renderable backed by fn. name is used in logs and as the
// default registry name.
func Func(name string, fn ComponentFunc) Renderable {
	if fn == nil {
		return None
	}
	return Renderable{kind: KindFunc, ref: &funcRef{name: name, fn: fn}}
}

// Kind returns the variant.
func (r Renderable) Kind() Kind {
	return r.kind
}

// IsNone reports whether r renders nothing.
func (r Renderable) IsNone() bool {
	return r.kind == KindNone
}

// Name returns the tag name or component name. None and Fragment have no
// name.
func (r Renderable) Name() string {
	switch r.kind {
	case KindTag:
		return r.tag
	case KindFunc:
		return r.ref.name
	}
	return ""
}

func (r Renderable) String() string {
	if name := r.Name(); name != "" {
		return r.kind.String() + ":" + name
	}
	return r.kind.String()
}

// Instantiate turns r into a templ component rendered with props.
func (r Renderable) Instantiate(props *attrs.Map) templ.Component {
	switch r.kind {
	case KindTag:
		if !ValidTagName(r.tag) {
			advise("hxslot: refusing to render invalid tag name", "tag", r.tag)
			return templ.NopComponent
		}
		return tagComponent(r.tag, props)
	case KindFunc:
		if c := r.ref.fn(props); c != nil {
			return c
		}
	case KindFragment:
		return fragment
	}
	return templ.NopComponent
}

var fragment = templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
	children := templ.GetChildren(ctx)
	return children.Render(templ.ClearChildren(ctx), w)
})

var tagName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// ValidTagName reports whether name is an HTML element name: an ASCII
// letter followed by letters, digits or hyphens.
func ValidTagName(name string) bool {
	return tagName.MatchString(name)
}

// ValidAttrName reports whether name can be written as an HTML attribute
// name: non-empty, without whitespace, control characters or any of
// "'<>/=.
func ValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(`"'<>/=`, r) {
			return false
		}
	}
	return true
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

func tagComponent(tag string, props *attrs.Map) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		tag = strings.ToLower(tag)
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := writeAttributes(w, props); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if voidElements[tag] {
			return nil
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// writeAttributes writes props as HTML attributes in map order. Values
// that have no attribute form (funcs, nested maps, lists, false, nil,
// Undefined), the ref handle and keys that are not attribute names are
// skipped.
func writeAttributes(w io.Writer, props *attrs.Map) error {
	var err error
	props.Each(func(key string, value any) {
		if err != nil || key == attrs.RefKey {
			return
		}
		if !ValidAttrName(key) {
			advise("hxslot: skipping invalid attribute name", "attr", key)
			return
		}
		text, ok := attributeValue(value)
		if !ok {
			return
		}
		if text == nil {
			_, err = io.WriteString(w, " "+templ.EscapeString(key))
			return
		}
		_, err = fmt.Fprintf(w, ` %s="%s"`, templ.EscapeString(key), templ.EscapeString(*text))
	})
	return err
}

// attributeValue returns the attribute text for v. A nil text with ok set
// means a bare boolean attribute.
func attributeValue(v any) (text *string, ok bool) {
	str := func(s string) (*string, bool) { return &s, true }

	switch val := v.(type) {
	case nil, attrs.UndefinedType:
		return nil, false
	case string:
		return str(val)
	case bool:
		return nil, val
	case time.Time:
		return str(val.Format(time.RFC3339))
	case fmt.Stringer:
		return str(val.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return str(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return str(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return str(strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.String:
		return str(rv.String())
	}
	return nil, false
}
