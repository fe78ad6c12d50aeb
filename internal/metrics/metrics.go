package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "opsdeck"
)

var (
	refreshDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

	// Refresh Metrics
	RefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Time taken for a health snapshot refresh to complete.",
		Buckets:   refreshDurationBuckets,
	}, []string{"trigger"})

	RefreshRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_runs_total",
		Help:      "Count of refresh executions.",
	}, []string{"trigger", "status"})

	RefreshLastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful refresh.",
	})

	SnapshotAgeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_age_seconds",
		Help:      "Seconds since the published snapshot was fetched.",
	})

	// Reconciliation Metrics
	SnapshotDataLayers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_data_layers",
		Help:      "Number of data layers in the published view.",
	})

	SnapshotManagedJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_managed_jobs",
		Help:      "Number of deduplicated managed container jobs in the published view.",
	})

	SnapshotJobLinks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_job_links",
		Help:      "Number of resolvable job link keys in the published view.",
	})
)
