package domain

import "time"

// ProbeTarget is the address of a host to probe: an IPv4/IPv6 literal or a
// hostname.
type ProbeTarget string

// ProbeParameters are shared by every probe within one cycle. They are read
// fresh from configuration at cycle start, so a configuration edit takes
// effect on the next cycle without a restart.
type ProbeParameters struct {
	// Timeout is how long to wait for the reply to a single echo request.
	Timeout time.Duration `json:"timeout"`
	// Count is the number of echo requests sent per probe.
	Count int `json:"count"`
	// Privileged selects raw ICMP sockets instead of unprivileged UDP ones.
	Privileged bool `json:"privileged"`
}

// ProbeResult is the outcome of probing one target once.
//
// Invariants, enforced by the constructors below:
//   - FailureReason != "" implies Reachable == false
//   - Reachable == false implies PacketLoss == 100
//
// A result is created fresh per probe attempt and never mutated afterwards.
type ProbeResult struct {
	Target     ProbeTarget `json:"target"`
	Reachable  bool        `json:"reachable"`
	PacketLoss float64     `json:"packet_loss"`

	// Round-trip statistics; zero when the target is unreachable.
	MinRTT time.Duration `json:"min_rtt"`
	AvgRTT time.Duration `json:"avg_rtt"`
	MaxRTT time.Duration `json:"max_rtt"`

	// FailureReason is set only when probing itself errored (resolution
	// failure, socket permission, transport fault). A clean all-timeout run
	// leaves it empty.
	FailureReason string `json:"failure_reason,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// CycleReport holds one result per target, in the same order as the target
// list the cycle was started with.
type CycleReport []ProbeResult

// NewObservedResult builds a result from observed reply statistics. A run
// where every packet timed out is not an error: it yields an unreachable
// result with 100% loss and no failure reason.
func NewObservedResult(target ProbeTarget, received int, loss float64, minRTT, avgRTT, maxRTT time.Duration) ProbeResult {
	result := ProbeResult{
		Target:    target,
		Timestamp: time.Now(),
	}

	if received <= 0 {
		result.PacketLoss = 100
		return result
	}

	if loss < 0 {
		loss = 0
	}
	if loss > 100 {
		loss = 100
	}

	result.Reachable = true
	result.PacketLoss = loss
	result.MinRTT = minRTT
	result.AvgRTT = avgRTT
	result.MaxRTT = maxRTT
	return result
}

// NewFailureResult builds the result for a probe that could not run at all.
func NewFailureResult(target ProbeTarget, reason string) ProbeResult {
	return ProbeResult{
		Target:        target,
		Reachable:     false,
		PacketLoss:    100,
		FailureReason: reason,
		Timestamp:     time.Now(),
	}
}
