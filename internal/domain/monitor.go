package domain

import "time"

// MonitorStatus is a point-in-time snapshot of the monitor loop, served by
// the status API. It carries only current in-memory state; probe results
// themselves live in the log and are never retained across cycles.
type MonitorStatus struct {
	Running     bool      `json:"running"`
	Cycles      uint64    `json:"cycles"`
	Targets     int       `json:"targets"`
	LastCycleAt time.Time `json:"last_cycle_at,omitzero"`
}
