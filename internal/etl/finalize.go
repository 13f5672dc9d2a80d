package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/visitmart/internal/db"
	embedsql "github.com/gyeh/visitmart/internal/sql"
)

// Analyze refreshes planner statistics for the tables the run loaded.
func (r *Run) Analyze(ctx context.Context, conn db.Conn) error {
	analyze := embedsql.AnalyzeWarehouse
	if r.Kind == KindMart {
		analyze = embedsql.AnalyzeMart
	}
	if _, err := conn.Exec(ctx, analyze); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return nil
}

// Finalize marks the run succeeded with rows as its loaded row count. It
// runs after the load transaction has committed.
func (r *Run) Finalize(ctx context.Context, conn db.Conn, log zerolog.Logger, rows int64) (time.Duration, error) {
	start := time.Now()
	if _, err := conn.Exec(ctx, embedsql.FinishETLRun, r.ID, StatusSucceeded, rows, nil); err != nil {
		return 0, fmt.Errorf("finish run: %w", err)
	}

	dur := time.Since(start)
	log.Info().Dur("duration", dur).Msg("finalize complete")
	return dur, nil
}
