package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T, on bool) *bytes.Buffer {
	t.Helper()
	prevEnabled, prevLogger := enabled, logger
	t.Cleanup(func() {
		enabled, logger = prevEnabled, prevLogger
	})
	var buf bytes.Buffer
	SetEnabled(on)
	SetOutput(&buf)
	return &buf
}

func TestLogDisabled(t *testing.T) {
	buf := capture(t, false)
	Log("hidden %d", 1)
	LogTiming("op", time.Second)
	LogEnterExit("op")()
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestLogEnabled(t *testing.T) {
	buf := capture(t, true)
	Log("moved %s into %s", "3", "29")
	LogTiming("flatten", 2*time.Millisecond)
	LogEnterExit("reload")()

	out := buf.String()
	for _, want := range []string{prefix, "moved 3 into 29", "flatten took 2ms", "-> reload", "<- reload"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}
}
