package hxslot

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/pthm/hxslot/internal/logging"
)

// EnvMode is the environment variable read for the execution mode.
const EnvMode = "HXSLOT_ENV"

// Mode selects development or production behavior. It only gates
// advisories and never changes resolution results.
type Mode int32

const (
	Production Mode = iota
	Development
)

func (m Mode) String() string {
	if m == Development {
		return "development"
	}
	return "production"
}

// ParseMode maps "development" or "dev" (any case) to Development and
// everything else to Production.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return Development
	}
	return Production
}

var (
	modeOnce sync.Once
	mode     atomic.Int32
	logger   atomic.Pointer[slog.Logger]
	nop      = logging.NewNop()
)

// CurrentMode returns the active mode. Unless SetMode was called first, it
// is read from HXSLOT_ENV on first use.
func CurrentMode() Mode {
	modeOnce.Do(func() {
		mode.Store(int32(ParseMode(os.Getenv(EnvMode))))
	})
	return Mode(mode.Load())
}

// SetMode overrides the mode.
func SetMode(m Mode) {
	modeOnce.Do(func() {})
	mode.Store(int32(m))
}

// SetLogger sets the logger advisories are written to. nil restores the
// default, which discards everything.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger in use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// advise logs a non-fatal warning in development mode.
func advise(msg string, args ...any) {
	if CurrentMode() != Development {
		return
	}
	Logger().Warn(msg, args...)
}

// checkSlotName warns about slot names that are not plain identifiers.
func checkSlotName(name string) {
	if !ValidSlotName(name) {
		advise("hxslot: slot name is not a plain identifier", "slot", name)
	}
}

// ValidSlotName reports whether name is non-empty and free of whitespace
// and control characters.
func ValidSlotName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
