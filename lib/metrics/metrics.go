// Package metrics exports hxslot memo and snapshot events as Prometheus
// counters.
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	hxslot.SetObserver(m)
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pthm/hxslot"
	"github.com/pthm/hxslot/lib/store"
)

// Snapshot decode results.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultTampered = "tampered"
	ResultUnknown  = "unknown_renderable"
	ResultMissing  = "missing"
	ResultError    = "error"
)

// Collector implements hxslot.Observer.
type Collector struct {
	memo      *prometheus.CounterVec
	snapshots *prometheus.CounterVec
}

var _ hxslot.Observer = (*Collector)(nil)

// New creates a collector and registers its counters with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		memo: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxslot_memo_lookups_total",
				Help: "Memo cell lookups by cache and result.",
			},
			[]string{"cache", "result"},
		),
		snapshots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxslot_snapshot_decodes_total",
				Help: "Override snapshot decodes by result.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(c.memo, c.snapshots)
	return c
}

// MemoLookup counts a memo hit or miss.
func (c *Collector) MemoLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.memo.WithLabelValues(cache, result).Inc()
}

// SnapshotDecoded counts a decode by result.
func (c *Collector) SnapshotDecoded(err error) {
	c.snapshots.WithLabelValues(Result(err)).Inc()
}

// Result classifies a snapshot decode error.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case hxslot.IsDecryptionError(err):
		return ResultTampered
	case errors.Is(err, hxslot.ErrInvalidFormat):
		return ResultInvalid
	case errors.Is(err, hxslot.ErrUnknownRenderable):
		return ResultUnknown
	case errors.Is(err, store.ErrNotFound):
		return ResultMissing
	}
	return ResultError
}
