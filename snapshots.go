package hxslot

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pthm/hxslot/lib/store"
)

// StoreParam is the query parameter carrying a stored snapshot key.
const StoreParam = "k"

// Save encodes o and keeps the token in st, returning its key.
func (reg *Registry) Save(ctx context.Context, st store.Store, o Overrides, sensitive bool) (string, error) {
	token, err := reg.EncodeOverrides(o, sensitive)
	if err != nil {
		return "", err
	}
	return st.Put(ctx, token)
}

// Load reverses Save.
func (reg *Registry) Load(ctx context.Context, st store.Store, key string, sensitive bool) (Overrides, error) {
	token, err := st.Get(ctx, key)
	if err != nil {
		observeSnapshot(err)
		return Overrides{}, err
	}
	return reg.DecodeOverrides(token, sensitive)
}

// StoredQuery is Query for overrides kept in st: it returns "k=...".
func (reg *Registry) StoredQuery(ctx context.Context, st store.Store, o Overrides, sensitive bool) (string, error) {
	key, err := reg.Save(ctx, st, o, sensitive)
	if err != nil {
		return "", err
	}
	return url.Values{StoreParam: {key}}.Encode(), nil
}

// OverridesFromStore restores overrides from the request's stored snapshot
// key, falling back to OverridesFromRequest when the key is absent. Like
// the token, the key is inherited from HX-Current-URL by partial HTMX
// requests.
func (reg *Registry) OverridesFromStore(r *http.Request, st store.Store, sensitive bool) (Overrides, error) {
	key := requestParam(r, StoreParam)
	if key == "" {
		return reg.OverridesFromRequest(r, sensitive)
	}
	return reg.Load(r.Context(), st, key, sensitive)
}

type overridesKey struct{}

// Middleware restores each request's overrides (from st when non-nil, else
// from the token parameter) into the request context. Unreadable
// snapshots are answered with 400 Bad Request.
//
//	r := chi.NewRouter()
//	r.Use(reg.Middleware(nil, false))
//	r.Get("/card", func(w http.ResponseWriter, r *http.Request) {
//	    hxslot.Render(w, r, Card(hxslot.OverridesFromContext(r.Context())))
//	})
func (reg *Registry) Middleware(st store.Store, sensitive bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var o Overrides
			var err error
			if st != nil {
				o, err = reg.OverridesFromStore(r, st, sensitive)
			} else {
				o, err = reg.OverridesFromRequest(r, sensitive)
			}
			if err != nil {
				Logger().Warn("hxslot: rejected override snapshot",
					"path", r.URL.Path,
					"htmx", IsHTMX(r),
					"trigger", TriggerID(r),
					"trigger_name", TriggerName(r),
					"target", TargetID(r),
					"error", err,
				)
				http.Error(w, "invalid slot overrides", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOverrides(r.Context(), o)))
		})
	}
}

// WithOverrides returns a copy of ctx carrying o.
func WithOverrides(ctx context.Context, o Overrides) context.Context {
	return context.WithValue(ctx, overridesKey{}, o)
}

// OverridesFromContext returns the overrides stored by Middleware or
// WithOverrides, or empty Overrides.
func OverridesFromContext(ctx context.Context) Overrides {
	o, _ := ctx.Value(overridesKey{}).(Overrides)
	return o
}
