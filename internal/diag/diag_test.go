package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerDisabledByDefault(t *testing.T) {
	l := New(false)
	if l.Enabled() {
		t.Fatalf("expected a Logger built with enabled=false to report disabled")
	}
}

func TestLoggerEnabled(t *testing.T) {
	l := New(true)
	if !l.Enabled() {
		t.Fatalf("expected a Logger built with enabled=true to report enabled")
	}
}

func TestWriteReportRendersMetrics(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, IndexStats{TextLen: 100, TunneledLen: 40, Order: 3, NodeCount: 38})

	out := buf.String()
	for _, want := range []string{"text length", "100", "tunneled rows", "40", "de Bruijn order", "3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected report to mention %q, got:\n%s", want, out)
		}
	}
}

func TestWriteReportZeroTextLen(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, IndexStats{})
	if !strings.Contains(buf.String(), "n/a") {
		t.Fatalf("expected a zero-length text to report a n/a ratio")
	}
}
