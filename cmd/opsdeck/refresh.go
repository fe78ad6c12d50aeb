package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/healthapi"
	"github.com/opsdeck/opsdeck/internal/history"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/refresh"
	"github.com/opsdeck/opsdeck/internal/telemetry"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run a one-off refresh against the platform health service.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRefresh()
	},
}

func runRefresh() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "opsdeck refresh"}); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := healthapi.New(cfg.HealthAPIURL, cfg.HealthAPIKey)
	if err != nil {
		return err
	}
	agg := telemetry.NewAggregator(cfg.ExcludedDomains)

	var recorder refresh.RunRecorder
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		hist, err := history.NewRecorder(pool)
		if err != nil {
			return err
		}
		recorder = hist
	}

	ctrl := refresh.NewController(client, agg, recorder)
	if err := ctrl.Refresh(ctx, refresh.TriggerManual); err != nil {
		if errors.Is(err, context.Canceled) {
			return &exitError{code: 130, err: err, silent: true}
		}
		return &exitError{code: 1, err: err}
	}

	view := ctrl.View()
	slog.Info("refresh complete",
		"data_layers", len(view.DisplayDataLayers),
		"managed_jobs", len(view.ManagedContainerJobs),
		"job_links", len(view.JobLinks))
	return nil
}
