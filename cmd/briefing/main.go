package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deusflow/briefing/internal/app"
	"github.com/deusflow/briefing/internal/config"
	"github.com/deusflow/briefing/internal/logger"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		slog.Error("briefing failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EnableHTTPMonitoring {
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MonitoringPort),
			Handler:           newRouter(metrics.Global),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("starting monitoring server", "port", cfg.MonitoringPort)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("monitoring server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if cfg.ScheduleCron == "" {
		return app.Run(ctx, cfg, log)
	}

	s, err := scheduler.New(cfg.ScheduleCron, func(ctx context.Context) error {
		return app.Run(ctx, cfg, log)
	}, log)
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	s.Run(ctx)
	return nil
}
