package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ping/ping"

	"ozzus/ping-monitor/internal/domain"
)

// packetInterval is the pause between consecutive echo requests of one probe.
const packetInterval = time.Second

// Prober issues one ICMP echo sequence against a single target. It is
// stateless and safe for concurrent use.
type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

// Probe sends params.Count echo requests to target and converts the raw
// outcome into a ProbeResult. Every failure mode is absorbed into the
// result: resolution failures, socket errors and even panics inside the
// ping library become an unreachable result with a failure reason, never an
// error to the caller. A run where all packets timed out is a clean result
// with 100% loss and no failure reason; a cancelled ctx aborts the run and
// yields a failure result carrying the ctx error.
func (p *Prober) Probe(ctx context.Context, target domain.ProbeTarget, params domain.ProbeParameters) (result domain.ProbeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.NewFailureResult(target, fmt.Sprintf("probe panicked: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return domain.NewFailureResult(target, err.Error())
	}

	pinger, err := ping.NewPinger(string(target))
	if err != nil {
		return domain.NewFailureResult(target, err.Error())
	}

	pinger.Count = params.Count
	pinger.Interval = packetInterval
	pinger.Timeout = runDeadline(params)
	pinger.SetPrivileged(params.Privileged)

	// Run blocks until the deadline; Stop unblocks it when ctx is
	// cancelled mid-run. The done channel releases the watcher on the
	// normal path.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()

	if err := pinger.Run(); err != nil {
		return domain.NewFailureResult(target, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return domain.NewFailureResult(target, err.Error())
	}

	stats := pinger.Statistics()
	return domain.NewObservedResult(target, stats.PacketsRecv, stats.PacketLoss, stats.MinRtt, stats.AvgRtt, stats.MaxRtt)
}

// runDeadline bounds the whole echo sequence: one interval between packets
// plus the reply timeout for the last one.
func runDeadline(params domain.ProbeParameters) time.Duration {
	count := params.Count
	if count < 1 {
		count = 1
	}
	return time.Duration(count-1)*packetInterval + params.Timeout
}
