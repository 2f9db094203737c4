package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	apihttp "ozzus/ping-monitor/internal/api/http"
	"ozzus/ping-monitor/internal/config"
	"ozzus/ping-monitor/internal/lib/logger/slogpretty"
	"ozzus/ping-monitor/internal/probe"
	"ozzus/ping-monitor/internal/report"
	"ozzus/ping-monitor/internal/service"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: using default configuration: %v", err)
	}

	logger := setupLogger(cfg.Env, cfg.Log)

	logger.Info("starting ping monitor",
		"env", cfg.Env,
		"hosts", len(cfg.Hosts),
		"interval", cfg.GetInterval(),
	)

	monitor := service.NewMonitorService(
		config.NewFileSource(configPath),
		probe.NewCoordinator(probe.NewProber()),
		report.New(logger),
		logger,
		service.Config{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := monitor.Run(ctx); err != nil {
			logger.Error("monitor failed", "error", err)
			os.Exit(1)
		}
	}()

	var httpServer *nethttp.Server
	if cfg.Server.HealthPort != "" {
		router := apihttp.NewRouter(apihttp.NewHealthController(monitor), logger)
		httpServer = &nethttp.Server{
			Addr:    ":" + cfg.Server.HealthPort,
			Handler: router,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("starting health server", "port", cfg.Server.HealthPort)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				logger.Error("health server failed", "error", err)
				cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down...")
	cancel()

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("health server shutdown failed", "error", err)
		}
	}

	wg.Wait()
	logger.Info("monitor stopped gracefully")
}

func setupLogger(env string, logCfg config.LogConfig) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = setupPrettySlog()
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewTextHandler(newRotatingSink(logCfg), &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = setupPrettySlog()
	}

	return logger
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

// newRotatingSink builds the append-only file sink. Rotation and retention
// are entirely lumberjack's concern; the rest of the process only ever sees
// a logger.
func newRotatingSink(logCfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(logCfg.Dir, logCfg.File),
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAgeDays,
		Compress:   true,
	}
}
