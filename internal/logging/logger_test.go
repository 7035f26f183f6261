package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWriterRenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelInfo)

	log.Warn("boom", "error", errors.New("bad"))

	out := buf.String()
	if !strings.Contains(out, "err=bad") {
		t.Errorf("output %q should contain err=bad", out)
	}
	if strings.Contains(out, "error=") {
		t.Errorf("output %q should not contain error=", out)
	}
}

func TestNewWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelWarn)

	log.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestNewNop(t *testing.T) {
	NewNop().Error("discarded")
}
