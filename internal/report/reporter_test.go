package report

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ozzus/ping-monitor/internal/domain"
)

func newTestReporter() (*Reporter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(slog.New(slog.NewTextHandler(buf, nil))), buf
}

func TestReportReachable(t *testing.T) {
	reporter, buf := newTestReporter()

	reporter.Report(domain.NewObservedResult("8.8.8.8", 2, 0, 10*time.Millisecond, 12*time.Millisecond, 15*time.Millisecond))

	line := buf.String()
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, "host reachable")
	assert.Contains(t, line, "host=8.8.8.8")
	assert.Contains(t, line, "packet_loss=0%")
	assert.Contains(t, line, "rtt_min=10ms")
	assert.Contains(t, line, "rtt_avg=12ms")
	assert.Contains(t, line, "rtt_max=15ms")
}

func TestReportUnreachableTimeout(t *testing.T) {
	reporter, buf := newTestReporter()

	// All packets timed out: an error-level line with a fixed 100% loss
	// figure but no failure reason.
	reporter.Report(domain.NewObservedResult("203.0.113.1", 0, 100, 0, 0, 0))

	line := buf.String()
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, "host unreachable")
	assert.Contains(t, line, "host=203.0.113.1")
	assert.Contains(t, line, "packet_loss=100%")
	assert.NotContains(t, line, "error=")
}

func TestReportUnreachableWithReason(t *testing.T) {
	reporter, buf := newTestReporter()

	reporter.Report(domain.NewFailureResult("no.such.host.invalid", "lookup no.such.host.invalid: no such host"))

	line := buf.String()
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, "host unreachable")
	assert.Contains(t, line, "packet_loss=100%")
	assert.Contains(t, line, "no such host")
}

func TestReportCycle(t *testing.T) {
	reporter, buf := newTestReporter()

	report := domain.CycleReport{
		domain.NewObservedResult("first", 1, 0, time.Millisecond, time.Millisecond, time.Millisecond),
		domain.NewFailureResult("second", "boom"),
		domain.NewObservedResult("third", 1, 50, time.Millisecond, time.Millisecond, time.Millisecond),
	}

	reporter.ReportCycle(report)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "host=first")
	assert.Contains(t, lines[1], "host=second")
	assert.Contains(t, lines[2], "host=third")
}
