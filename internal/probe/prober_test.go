package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ozzus/ping-monitor/internal/domain"
)

var testParams = domain.ProbeParameters{
	Timeout: 2 * time.Second,
	Count:   2,
}

func assertInvariants(t *testing.T, result domain.ProbeResult) {
	t.Helper()

	if result.FailureReason != "" {
		assert.False(t, result.Reachable, "failure reason implies unreachable")
	}
	if !result.Reachable {
		assert.Equal(t, float64(100), result.PacketLoss, "unreachable implies 100%% loss")
		assert.Zero(t, result.MinRTT)
		assert.Zero(t, result.AvgRTT)
		assert.Zero(t, result.MaxRTT)
	}
}

func TestProbeUnresolvableHost(t *testing.T) {
	prober := NewProber()

	result := prober.Probe(context.Background(), "no.such.host.invalid", testParams)

	assert.Equal(t, domain.ProbeTarget("no.such.host.invalid"), result.Target)
	assert.False(t, result.Reachable)
	assert.NotEmpty(t, result.FailureReason)
	assertInvariants(t, result)
}

func TestProbeMalformedTarget(t *testing.T) {
	prober := NewProber()

	for _, target := range []string{"", "not a host at all", "500.600.700.800"} {
		result := prober.Probe(context.Background(), domain.ProbeTarget(target), testParams)

		assert.False(t, result.Reachable, "target %q", target)
		assert.NotEmpty(t, result.FailureReason, "target %q", target)
		assertInvariants(t, result)
	}
}

func TestProbeCancelledContext(t *testing.T) {
	prober := NewProber()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := prober.Probe(ctx, "127.0.0.1", testParams)

	assert.False(t, result.Reachable)
	assert.Contains(t, result.FailureReason, "context canceled")
	assertInvariants(t, result)
}

func TestProbeCancelledMidRun(t *testing.T) {
	prober := NewProber()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// Unroutable TEST-NET-3 address with a long deadline: only the
	// cancellation can unblock the run this quickly.
	start := time.Now()
	result := prober.Probe(ctx, "203.0.113.1", domain.ProbeParameters{
		Timeout: 5 * time.Second,
		Count:   3,
	})

	assert.Less(t, time.Since(start), 2*time.Second, "cancellation must cut the run short")
	assert.False(t, result.Reachable)
	assertInvariants(t, result)
}

func TestRunDeadline(t *testing.T) {
	assert.Equal(t, 2*time.Second, runDeadline(domain.ProbeParameters{Timeout: 2 * time.Second, Count: 1}))
	assert.Equal(t, 3*time.Second, runDeadline(domain.ProbeParameters{Timeout: 2 * time.Second, Count: 2}))
	assert.Equal(t, 2*time.Second, runDeadline(domain.ProbeParameters{Timeout: 2 * time.Second, Count: 0}))
}

// requireICMP probes loopback once and skips the test when the environment
// cannot send pings (missing CAP_NET_RAW and a closed ping_group_range).
func requireICMP(t *testing.T) {
	t.Helper()

	result := NewProber().Probe(context.Background(), "127.0.0.1", domain.ProbeParameters{
		Timeout: time.Second,
		Count:   1,
	})
	if result.FailureReason != "" {
		t.Skipf("ICMP not available in this environment: %s", result.FailureReason)
	}
	if !result.Reachable {
		t.Skip("loopback did not answer; skipping ICMP-dependent test")
	}
}

func TestProbeLocalhost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ICMP integration test in short mode")
	}
	requireICMP(t)

	result := NewProber().Probe(context.Background(), "127.0.0.1", testParams)

	require.Empty(t, result.FailureReason)
	assert.True(t, result.Reachable)
	assert.Equal(t, float64(0), result.PacketLoss)
	assert.GreaterOrEqual(t, result.MaxRTT, result.MinRTT)
	assertInvariants(t, result)
}
