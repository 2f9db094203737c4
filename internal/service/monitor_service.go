package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ozzus/ping-monitor/internal/config"
	"ozzus/ping-monitor/internal/domain"
)

// fallbackDelay is how long the loop waits after a failed cycle before
// retrying. Deliberately shorter than any sensible probe interval.
const fallbackDelay = 10 * time.Second

// ConfigSource supplies a fresh configuration snapshot. It is consulted at
// the start of every cycle so live edits apply without a restart.
type ConfigSource interface {
	Load() (*config.Config, error)
}

// CycleRunner runs all probes of one cycle and returns one result per
// target, in input order.
type CycleRunner interface {
	RunCycle(ctx context.Context, targets []domain.ProbeTarget, params domain.ProbeParameters) domain.CycleReport
}

// Reporter routes the results of one cycle to the logging sink.
type Reporter interface {
	ReportCycle(report domain.CycleReport)
}

// MonitorService drives the probe cycle: load configuration, fan out one
// round of probes, report the results, sleep, repeat. It owns top-level
// error containment; no ordinary runtime error may terminate the loop.
type MonitorService struct {
	source   ConfigSource
	runner   CycleRunner
	reporter Reporter
	log      *slog.Logger

	fallback time.Duration

	mu        sync.RWMutex
	isRunning bool
	cycles    uint64
	targets   int
	lastCycle time.Time
}

type Config struct {
	// FallbackDelay overrides the post-failure retry delay. Zero keeps the
	// built-in constant.
	FallbackDelay time.Duration
}

func NewMonitorService(source ConfigSource, runner CycleRunner, reporter Reporter, log *slog.Logger, cfg Config) *MonitorService {
	if cfg.FallbackDelay <= 0 {
		cfg.FallbackDelay = fallbackDelay
	}

	return &MonitorService{
		source:   source,
		runner:   runner,
		reporter: reporter,
		log:      log,
		fallback: cfg.FallbackDelay,
	}
}

// Run loops until ctx is cancelled, which is the sole way out. A cycle that
// fails (including a panic from the cycle body) is logged at error level and
// followed by the fallback delay instead of the configured interval; the
// loop then carries on. Cancellation logs exactly one shutdown notice and
// returns nil.
func (s *MonitorService) Run(ctx context.Context) error {
	s.setRunning(true)
	defer s.setRunning(false)
	defer s.log.Info("monitoring stopped")

	cfg := s.loadConfig()
	s.log.Info("monitoring started",
		"hosts", len(cfg.Hosts),
		"interval", cfg.GetInterval(),
	)

	for {
		if ctx.Err() != nil {
			return nil
		}

		interval, err := s.runCycle(ctx)
		if err != nil {
			s.log.Error("cycle failed", "error", err)
			interval = s.fallback
		}

		if !s.sleep(ctx, interval) {
			return nil
		}
	}
}

// runCycle executes one full cycle. A panic anywhere in the cycle body is
// converted into an error for the caller to contain.
func (s *MonitorService) runCycle(ctx context.Context) (interval time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()

	cfg := s.loadConfig()
	interval = cfg.GetInterval()

	targets := make([]domain.ProbeTarget, 0, len(cfg.Hosts))
	for _, host := range cfg.Hosts {
		targets = append(targets, domain.ProbeTarget(host))
	}

	s.log.Info("cycle started", "hosts", len(targets))

	report := s.runner.RunCycle(ctx, targets, domain.ProbeParameters{
		Timeout:    cfg.GetTimeout(),
		Count:      cfg.PingCount,
		Privileged: cfg.PingPrivileged,
	})

	s.reporter.ReportCycle(report)

	s.recordCycle(len(targets))
	s.log.Info("cycle finished", "next_check_in", interval)

	return interval, nil
}

// loadConfig never fails: a broken source is logged and replaced by the
// documented defaults.
func (s *MonitorService) loadConfig() *config.Config {
	cfg, err := s.source.Load()
	if err != nil {
		s.log.Warn("using default configuration", "error", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// sleep waits for d or until ctx is cancelled. It reports whether the full
// delay elapsed.
func (s *MonitorService) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *MonitorService) setRunning(running bool) {
	s.mu.Lock()
	s.isRunning = running
	s.mu.Unlock()
}

func (s *MonitorService) recordCycle(targets int) {
	s.mu.Lock()
	s.cycles++
	s.targets = targets
	s.lastCycle = time.Now()
	s.mu.Unlock()
}

// HealthCheck reports whether the monitor loop is running.
func (s *MonitorService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return fmt.Errorf("monitor is not running")
	}
	return nil
}

// GetStatus returns a snapshot of the loop state for the status API.
func (s *MonitorService) GetStatus() domain.MonitorStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.MonitorStatus{
		Running:     s.isRunning,
		Cycles:      s.cycles,
		Targets:     s.targets,
		LastCycleAt: s.lastCycle,
	}
}
