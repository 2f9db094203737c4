package probe

import (
	"context"

	"github.com/sourcegraph/conc"

	"ozzus/ping-monitor/internal/domain"
)

// HostProber probes a single target. Implementations must absorb their own
// failures into the returned result.
type HostProber interface {
	Probe(ctx context.Context, target domain.ProbeTarget, params domain.ProbeParameters) domain.ProbeResult
}

// Coordinator fans the probes of one cycle out over goroutines and joins
// them before returning. Cycle latency is bounded by the slowest single
// probe, not by the number of targets.
type Coordinator struct {
	prober HostProber
}

func NewCoordinator(prober HostProber) *Coordinator {
	return &Coordinator{prober: prober}
}

// RunCycle probes every target concurrently and returns exactly one result
// per target, in input order regardless of completion order. Each goroutine
// writes to its own slot, so no locking is needed, and because probers are
// failure-absorbing there is no partial-result or early-abort handling.
func (c *Coordinator) RunCycle(ctx context.Context, targets []domain.ProbeTarget, params domain.ProbeParameters) domain.CycleReport {
	report := make(domain.CycleReport, len(targets))

	var wg conc.WaitGroup
	for i, target := range targets {
		i, target := i, target
		wg.Go(func() {
			report[i] = c.prober.Probe(ctx, target, params)
		})
	}
	wg.Wait()

	return report
}
