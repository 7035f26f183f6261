package hxslot

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
)

// OverridesParam is the query parameter carrying an override snapshot.
const OverridesParam = "s"

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxslot.Render(w, r, Card.Render("root", overrides, nil))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
//
// Partial re-renders are the requests that need overrides restored from
// a snapshot; full page renders usually build them directly.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
//
// Boosted requests replace the whole page, so they do not inherit the
// snapshot of the page they were issued from.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL returns the URL the browser is on, from the HX-Current-URL
// header. Returns empty string for non-HTMX requests.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TriggerName returns the name attribute of the element that triggered the
// request.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TriggerID returns the id attribute of the element that triggered the
// request.
func TriggerID(r *http.Request) string {
	return r.Header.Get("HX-Trigger")
}

// TargetID returns the id attribute of the element that will receive the
// response (hx-target).
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// requestParam returns the query parameter name from r. Partial HTMX
// requests without it fall back to the page URL in HX-Current-URL.
func requestParam(r *http.Request, name string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	if !IsHTMX(r) || IsBoosted(r) {
		return ""
	}
	current, err := url.Parse(CurrentURL(r))
	if err != nil {
		return ""
	}
	return current.Query().Get(name)
}

// Query returns o as a query string ("s=...") to append to hx-get or
// hx-post URLs.
func (reg *Registry) Query(o Overrides, sensitive bool) (string, error) {
	token, err := reg.EncodeOverrides(o, sensitive)
	if err != nil {
		return "", err
	}
	return url.Values{OverridesParam: {token}}.Encode(), nil
}

// OverridesFromRequest restores overrides from the request's snapshot
// parameter. A partial HTMX request without one uses the parameter of the
// page it was issued from. A request without either yields empty
// Overrides and no error.
func (reg *Registry) OverridesFromRequest(r *http.Request, sensitive bool) (Overrides, error) {
	token := requestParam(r, OverridesParam)
	if token == "" {
		return Overrides{}, nil
	}
	return reg.DecodeOverrides(token, sensitive)
}
