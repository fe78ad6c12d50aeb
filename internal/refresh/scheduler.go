package refresh

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives the passive refresh path. Manual and scheduled
// refreshes share the controller's success and failure handling.
type Scheduler struct {
	Controller *Controller
	Interval   time.Duration
}

func (s *Scheduler) Run(ctx context.Context) {
	if s.Controller == nil || s.Interval <= 0 {
		return
	}

	// Refresh immediately at startup.
	if err := s.Controller.Refresh(ctx, TriggerScheduled); err != nil {
		slog.Error("initial refresh failed", "err", err)
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Controller.Refresh(ctx, TriggerScheduled); err != nil {
				slog.Error("scheduled refresh failed", "err", err)
			}
		}
	}
}
