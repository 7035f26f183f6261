// Package hxslotecho provides Echo framework integration for hxslot.
//
// Restore slot overrides on partial re-renders with the middleware:
//
//	e := echo.New()
//	reg := hxslotecho.NewRegistry(hxslotecho.WithKey(key))
//	reg.Add(FancyHeader)
//	e.Use(hxslotecho.Middleware(reg))
//
//	e.GET("/card", func(c echo.Context) error {
//	    return hxslotecho.Render(c, Card(hxslotecho.FromContext(c)))
//	})
package hxslotecho

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxslot"
)

// ContextKey is the echo.Context key the middleware stores overrides under.
const ContextKey = "hxslot.overrides"

// Option configures NewRegistry and Middleware.
type Option func(*options)

type options struct {
	key       []byte
	sensitive bool
}

// WithKey sets the signing and encryption key for the registry.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithSensitive makes the middleware expect encrypted snapshots.
func WithSensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewRegistry creates a registry keyed by WithKey, or by a random key.
func NewRegistry(opts ...Option) *hxslot.Registry {
	o := newOptions(opts)

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxslotecho: failed to generate random key: %v", err))
		}
	}
	return hxslot.NewRegistry(key)
}

// Overrides decodes the request's override snapshot. A request without
// one yields empty Overrides.
func Overrides(c echo.Context, reg *hxslot.Registry, sensitive bool) (hxslot.Overrides, error) {
	return reg.OverridesFromRequest(c.Request(), sensitive)
}

// Middleware decodes the override snapshot of every request and stores it
// under ContextKey. Tampered or unreadable snapshots are rejected with
// 400 Bad Request.
func Middleware(reg *hxslot.Registry, opts ...Option) echo.MiddlewareFunc {
	o := newOptions(opts)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			overrides, err := Overrides(c, reg, o.sensitive)
			if err != nil {
				c.Logger().Warnf("hxslot: rejected override snapshot: %v", err)
				return echo.NewHTTPError(http.StatusBadRequest, "invalid slot overrides")
			}
			c.Set(ContextKey, overrides)
			return next(c)
		}
	}
}

// FromContext returns the overrides stored by Middleware.
func FromContext(c echo.Context) hxslot.Overrides {
	o, _ := c.Get(ContextKey).(hxslot.Overrides)
	return o
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxslotecho.Render(c, myTemplate())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
