package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pthm/hxslot"
	"github.com/pthm/hxslot/lib/metrics"
	"github.com/pthm/hxslot/lib/store"
	"github.com/pthm/hxslot/lib/store/redis"
)

// previewTags are registered so snapshots can override slots with them.
var previewTags = []string{
	"article", "aside", "div", "footer", "header", "main", "nav", "p", "section", "span",
}

const maxTokenBytes = 64 << 10

type previewServer struct {
	theme     hxslot.SlotProps
	reg       *hxslot.Registry
	store     store.Store
	sensitive bool
}

func newPreviewCmd() *cobra.Command {
	var (
		theme     string
		addr      string
		key       string
		redisAddr string
		ttl       time.Duration
		sensitive bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve resolved slots of a theme over HTTP",
		Long: `preview serves GET /slots/{slot} (query: tag, class, s or k),
POST /snapshots (body: override token, answers k=KEY) and GET /metrics.`,
		Example: `  hxslot preview --theme card.yaml --addr :8080
  hxslot preview --theme card.yaml --redis localhost:6379 --ttl 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slotProps, err := hxslot.LoadThemeFile(theme)
			if err != nil {
				return err
			}

			secret := []byte(key)
			if key == "" {
				secret = make([]byte, 32)
				if _, err := rand.Read(secret); err != nil {
					return fmt.Errorf("failed to generate random key: %w", err)
				}
			}

			var st store.Store = store.NewMemory()
			if redisAddr != "" {
				rs := redis.New(redisAddr, "", 0, redis.WithTTL(ttl))
				defer rs.Close()
				st = rs
			}

			promReg := prometheus.NewRegistry()
			hxslot.SetObserver(metrics.New(promReg))
			defer hxslot.SetObserver(nil)

			srv := &http.Server{
				Addr:              addr,
				Handler:           newPreviewHandler(slotProps, newPreviewRegistry(secret), st, sensitive, promReg),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serve(cmd.Context(), srv, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "YAML file mapping slot names to props")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&key, "key", "", "Snapshot signing key (random if empty)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Keep stored snapshots in Redis at this address")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Expiry of snapshots stored in Redis (0 keeps them)")
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "Encrypt snapshots instead of signing them")
	_ = cmd.MarkFlagRequired("theme")
	return cmd
}

func newPreviewRegistry(key []byte) *hxslot.Registry {
	reg := hxslot.NewRegistry(key)
	for _, tag := range previewTags {
		reg.Add(hxslot.Tag(tag))
	}
	return reg
}

func newPreviewHandler(theme hxslot.SlotProps, reg *hxslot.Registry, st store.Store, sensitive bool, gatherer prometheus.Gatherer) http.Handler {
	s := &previewServer{theme: theme, reg: reg, store: st, sensitive: sensitive}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Post("/snapshots", s.handleSnapshot)
	r.Group(func(r chi.Router) {
		r.Use(reg.Middleware(st, sensitive))
		r.Get("/slots/{slot}", s.handleSlot)
	})
	return r
}

func (s *previewServer) handleSlot(w http.ResponseWriter, r *http.Request) {
	o := hxslot.OverridesFromContext(r.Context())
	q := r.URL.Query()

	def := hxslot.Tag("div")
	if tag := q.Get("tag"); tag != "" {
		registered, ok := s.reg.Lookup(tag)
		if !ok {
			http.Error(w, "unknown tag", http.StatusBadRequest)
			return
		}
		def = registered
	}

	rd, props := hxslot.Resolve(chi.URLParam(r, "slot"), hxslot.Params{
		Default:   def,
		ClassName: q.Get("class"),
		Props: hxslot.OwnerProps{
			Slots:     o.Slots,
			SlotProps: hxslot.MergeSlotProps(s.theme, o.SlotProps),
		},
	})
	if err := hxslot.Render(w, r, rd.Instantiate(props)); err != nil {
		hxslot.Logger().Error("preview render failed", "error", err)
	}
}

func (s *previewServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	token := string(body)
	if _, err := s.reg.DecodeOverrides(token, s.sensitive); err != nil {
		http.Error(w, "invalid slot overrides", http.StatusBadRequest)
		return
	}

	key, err := s.store.Put(r.Context(), token)
	if err != nil {
		hxslot.Logger().Error("failed to store snapshot", "error", err)
		http.Error(w, "failed to store snapshot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, url.Values{hxslot.StoreParam: {key}}.Encode())
}

// serve runs srv until ctx is done.
func serve(ctx context.Context, srv *http.Server, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "preview listening on %s\n", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
