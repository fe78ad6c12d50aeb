package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/healthapi"
	"github.com/opsdeck/opsdeck/internal/history"
	httpapp "github.com/opsdeck/opsdeck/internal/http"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/metrics"
	"github.com/opsdeck/opsdeck/internal/refresh"
	"github.com/opsdeck/opsdeck/internal/telemetry"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API and the background refresh loop.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "opsdeck serve"}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := healthapi.New(cfg.HealthAPIURL, cfg.HealthAPIKey)
	if err != nil {
		return err
	}
	agg := telemetry.NewAggregator(cfg.ExcludedDomains)

	var hist *history.Recorder
	var recorder refresh.RunRecorder
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		hist, err = history.NewRecorder(pool)
		if err != nil {
			return err
		}
		recorder = hist
	}

	ctrl := refresh.NewController(client, agg, recorder)

	srv, err := httpapp.NewServer(cfg, ctrl, hist)
	if err != nil {
		return err
	}

	_, metricsErr := metrics.StartServer(ctx, cfg.MetricsAddr)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scheduler := refresh.Scheduler{Controller: ctrl, Interval: cfg.RefreshInterval}
		scheduler.Run(ctx)
		return nil
	})

	g.Go(func() error {
		hb := refresh.Heartbeat{
			Interval: cfg.HeartbeatInterval,
			OnTick: func(now time.Time) {
				status := ctrl.Status()
				if !status.LastRefreshedAt.IsZero() {
					metrics.SnapshotAgeSeconds.Set(now.Sub(status.LastRefreshedAt).Seconds())
				}
			},
		}
		hb.Run(ctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		var cause error
		select {
		case <-ctx.Done():
		case cause = <-metricsErr:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && cause == nil {
			cause = err
		}
		return cause
	})

	return g.Wait()
}
