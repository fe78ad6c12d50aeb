package refresh

import (
	"context"
	"time"
)

// Heartbeat invokes OnTick at a fixed interval until its context is
// cancelled. It drives "time since last refresh" readouts, decoupled
// from the data-fetch interval; owning the run with a scoped context
// guarantees no orphaned ticker keeps writing after the consuming view
// is gone.
type Heartbeat struct {
	Interval time.Duration
	OnTick   func(now time.Time)
}

func (h *Heartbeat) Run(ctx context.Context) {
	if h.OnTick == nil || h.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.OnTick(now)
		}
	}
}
