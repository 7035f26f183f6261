package hxslot

import "sync/atomic"

// Memo cache names reported to an Observer.
const (
	CacheUse     = "use"
	CacheResolve = "resolve"
)

// Observer receives memo and snapshot events. lib/metrics provides a
// Prometheus implementation.
type Observer interface {
	// MemoLookup is called for every Cell or ResolveCell lookup.
	MemoLookup(cache string, hit bool)
	// SnapshotDecoded is called after every DecodeOverrides with its error.
	SnapshotDecoded(err error)
}

type observerBox struct{ o Observer }

var observer atomic.Pointer[observerBox]

// SetObserver installs o. nil removes the current observer.
func SetObserver(o Observer) {
	if o == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&observerBox{o: o})
}

func observeMemo(cache string, hit bool) {
	if b := observer.Load(); b != nil {
		b.o.MemoLookup(cache, hit)
	}
}

func observeSnapshot(err error) {
	if b := observer.Load(); b != nil {
		b.o.SnapshotDecoded(err)
	}
}
