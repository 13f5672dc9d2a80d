package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/visitmart/internal/db"
	embedsql "github.com/gyeh/visitmart/internal/sql"
)

// Run kinds recorded in warehouse.etl_runs.
const (
	KindWarehouse = "warehouse"
	KindMart      = "mart"
)

// Run statuses recorded in warehouse.etl_runs.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Source describes where a run's input came from.
type Source struct {
	// Name is a file path, or a description such as "generated" for
	// in-process batches.
	Name string
	// SHA256 is the hex digest of the input, empty when not applicable.
	SHA256 string
}

// Run is a registered row of warehouse.etl_runs.
type Run struct {
	ID      uuid.UUID
	Kind    string
	Started time.Time
}

// Preflight registers a new run in warehouse.etl_runs with status running.
// It fails when the schemas have not been migrated.
func Preflight(ctx context.Context, conn db.Conn, log zerolog.Logger, kind string, src Source) (*Run, error) {
	run := &Run{ID: uuid.New(), Kind: kind, Started: time.Now()}

	var sha *string
	if src.SHA256 != "" {
		sha = &src.SHA256
	}
	if _, err := conn.Exec(ctx, embedsql.InsertETLRun, run.ID, kind, src.Name, sha); err != nil {
		return nil, fmt.Errorf("register run: %w", err)
	}

	log.Info().
		Str("run_id", run.ID.String()).
		Str("kind", kind).
		Str("source", src.Name).
		Str("sha256", src.SHA256).
		Msg("run registered")
	return run, nil
}

// Fail marks the run failed. Errors updating the audit row are logged, not
// returned, so the original failure is what the caller sees.
func (r *Run) Fail(ctx context.Context, conn db.Conn, log zerolog.Logger, cause error) {
	msg := cause.Error()
	if _, err := conn.Exec(context.WithoutCancel(ctx), embedsql.FinishETLRun, r.ID, StatusFailed, nil, &msg); err != nil {
		log.Warn().Err(err).Str("run_id", r.ID.String()).Msg("mark run failed")
	}
}
