// Package history persists refresh run bookkeeping to Postgres. It is
// optional: the reconciliation core never depends on it for correctness.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdeck/opsdeck/internal/refresh"
)

const defaultListLimit = 50

type Recorder struct {
	pool *pgxpool.Pool
}

func NewRecorder(pool *pgxpool.Pool) (*Recorder, error) {
	if pool == nil {
		return nil, errors.New("history pool is nil")
	}
	return &Recorder{pool: pool}, nil
}

// RecordRun stores one finished refresh run.
func (r *Recorder) RecordRun(ctx context.Context, run refresh.Run) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_runs (id, triggered_by, status, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, string(run.Trigger), run.Status, run.Error, run.StartedAt, run.FinishedAt,
	)
	return err
}

// RunRecord is one stored refresh run, newest first in listings.
type RunRecord struct {
	ID          string    `db:"id" json:"id"`
	TriggeredBy string    `db:"triggered_by" json:"triggeredBy"`
	Status      string    `db:"status" json:"status"`
	Error       string    `db:"error" json:"error,omitempty"`
	StartedAt   time.Time `db:"started_at" json:"startedAt"`
	FinishedAt  time.Time `db:"finished_at" json:"finishedAt"`
}

// ListRecent returns the most recent runs, newest first.
func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, triggered_by, status, error, started_at, finished_at
		FROM refresh_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[RunRecord])
}
