package report

import (
	"fmt"
	"log/slog"

	"ozzus/ping-monitor/internal/domain"
)

// Reporter renders probe results as leveled status lines on the logging
// sink. Sink failures are the sink's concern; Report never fails.
type Reporter struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Reporter {
	return &Reporter{log: log}
}

// Report emits one line per result: informational for reachable hosts with
// the loss figure and round-trip statistics, error-level for unreachable
// ones with the failure reason when probing itself errored.
func (r *Reporter) Report(result domain.ProbeResult) {
	if result.Reachable {
		r.log.Info("host reachable",
			"host", result.Target,
			"packet_loss", formatLoss(result.PacketLoss),
			"rtt_min", result.MinRTT,
			"rtt_avg", result.AvgRTT,
			"rtt_max", result.MaxRTT,
		)
		return
	}

	args := []any{
		"host", result.Target,
		"packet_loss", formatLoss(result.PacketLoss),
	}
	if result.FailureReason != "" {
		args = append(args, "error", result.FailureReason)
	}
	r.log.Error("host unreachable", args...)
}

// ReportCycle emits the lines for a whole cycle, in report order.
func (r *Reporter) ReportCycle(report domain.CycleReport) {
	for _, result := range report {
		r.Report(result)
	}
}

func formatLoss(loss float64) string {
	return fmt.Sprintf("%.0f%%", loss)
}
