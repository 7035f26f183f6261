package hxslot

import (
	"bytes"
	"context"
	"strings"

	"github.com/a-h/templ"
)

// TestResult holds the output of rendering a component for testing.
type TestResult struct {
	HTML string
}

// TestRender renders a component and returns testable output.
//
// Use this for unit tests of slot resolution when you want to assert on
// the markup a resolved slot produces:
//
//	result, err := hxslot.TestRender(Card.Render("header", overrides, nil))
//	if !result.HTMLContains(`class="card-header"`) {
//	    t.Fatal("missing header class")
//	}
func TestRender(component templ.Component) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), component)
}

// TestRenderWithContext renders a component with a custom context.
//
// Use this when testing components that read values from context, or to
// pass children:
//
//	ctx := templ.WithChildren(context.Background(), body)
//	result, err := hxslot.TestRenderWithContext(ctx, header.Render(nil))
func TestRenderWithContext(ctx context.Context, component templ.Component) (*TestResult, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String()}, nil
}

// TestRenderChildren renders a component with children passed the way
// templ passes a block body.
func TestRenderChildren(component, children templ.Component) (*TestResult, error) {
	return TestRenderWithContext(templ.WithChildren(context.Background(), children), component)
}

// IsEmpty reports whether nothing was rendered.
func (r *TestResult) IsEmpty() bool {
	return r.HTML == ""
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}
