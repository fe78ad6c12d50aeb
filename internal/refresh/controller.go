// Package refresh manages manual and passive replacement of the cached
// health snapshot feeding the telemetry aggregator.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/healthapi"
	"github.com/opsdeck/opsdeck/internal/metrics"
	"github.com/opsdeck/opsdeck/internal/telemetry"
)

type State string

const (
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
)

type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// Fetcher fetches one complete health snapshot.
type Fetcher interface {
	GetSnapshot(ctx context.Context, opts healthapi.GetOptions) (*telemetry.HealthSnapshot, error)
}

// Run is one finished refresh attempt.
type Run struct {
	ID         string
	Trigger    Trigger
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunRecorder persists finished runs. Recording is best effort; a
// recorder failure never fails the refresh itself.
type RunRecorder interface {
	RecordRun(ctx context.Context, run Run) error
}

// Status is the refresh state surfaced to display components.
type Status struct {
	State           State     `json:"state"`
	LastError       string    `json:"lastError,omitempty"`
	LastRefreshedAt time.Time `json:"lastRefreshedAt"`
}

// Controller owns the cached snapshot. A successful fetch replaces it
// atomically; a failed fetch retains the previous snapshot so the
// dashboard never blanks. Overlapping refreshes are allowed (the caller
// is expected to debounce its own trigger control), but each request
// carries a generation: a completion publishes only while no
// newer-started request has published yet, so a stale response cannot
// clobber fresher data.
type Controller struct {
	fetcher  Fetcher
	agg      *telemetry.Aggregator
	recorder RunRecorder

	mu            sync.Mutex
	snapshot      *telemetry.HealthSnapshot
	lastErr       error
	lastRefreshed time.Time
	inFlight      int
	generation    uint64
	published     uint64
}

func NewController(fetcher Fetcher, agg *telemetry.Aggregator, recorder RunRecorder) *Controller {
	if agg == nil {
		agg = telemetry.NewAggregator(nil)
	}
	return &Controller{fetcher: fetcher, agg: agg, recorder: recorder}
}

// Refresh fetches a snapshot and, on success, publishes it. Manual
// triggers ask the health service to bypass its server-side cache. The
// fetch error, if any, is returned to the caller as well as retained for
// Status.
func (c *Controller) Refresh(ctx context.Context, trigger Trigger) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.inFlight++
	c.mu.Unlock()

	run := Run{ID: uuid.NewString(), Trigger: trigger, StartedAt: time.Now()}
	snapshot, err := c.fetcher.GetSnapshot(ctx, healthapi.GetOptions{
		ForceRefresh: trigger == TriggerManual,
	})
	run.FinishedAt = time.Now()

	c.mu.Lock()
	c.inFlight--
	if err != nil {
		run.Status = RunStatusError
		run.Error = err.Error()
		if gen > c.published {
			c.lastErr = err
		}
	} else {
		run.Status = RunStatusSuccess
		if gen > c.published {
			c.snapshot = snapshot
			c.published = gen
			c.lastRefreshed = run.FinishedAt
			c.lastErr = nil
		} else {
			slog.Debug("discarding stale refresh response",
				"generation", gen, "published", c.published)
			snapshot = nil
		}
	}
	c.mu.Unlock()

	c.observe(run, snapshot)
	c.record(ctx, run)
	return err
}

func (c *Controller) observe(run Run, published *telemetry.HealthSnapshot) {
	trigger := string(run.Trigger)
	metrics.RefreshDuration.WithLabelValues(trigger).Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
	metrics.RefreshRunsTotal.WithLabelValues(trigger, run.Status).Inc()
	if published == nil {
		return
	}
	metrics.RefreshLastSuccessTimestamp.Set(float64(run.FinishedAt.Unix()))
	metrics.SnapshotAgeSeconds.Set(0)

	view := c.agg.View(published)
	metrics.SnapshotDataLayers.Set(float64(len(view.DisplayDataLayers)))
	metrics.SnapshotManagedJobs.Set(float64(len(view.ManagedContainerJobs)))
	metrics.SnapshotJobLinks.Set(float64(len(view.JobLinks)))
}

func (c *Controller) record(ctx context.Context, run Run) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordRun(ctx, run); err != nil {
		slog.Warn("recording refresh run failed", "run_id", run.ID, "err", err)
	}
}

// Snapshot returns the currently published snapshot, nil before the
// first successful refresh.
func (c *Controller) Snapshot() *telemetry.HealthSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// View returns the aggregated view of the published snapshot. This is
// the sole reconciliation entry point for display code.
func (c *Controller) View() *telemetry.AggregatedView {
	return c.agg.View(c.Snapshot())
}

// Status reports the current refresh state for the status indicator.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := StateIdle
	if c.inFlight > 0 {
		state = StateRefreshing
	}
	status := Status{State: state, LastRefreshedAt: c.lastRefreshed}
	if c.lastErr != nil {
		status.LastError = c.lastErr.Error()
	}
	return status
}
