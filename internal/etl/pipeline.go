// Package etl loads visit batches into the warehouse star schema and
// rebuilds the research operations data mart from it.
package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gyeh/visitmart/internal/db"
	"github.com/gyeh/visitmart/internal/mart"
	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/warehouse"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Phases reported in PipelineError.
const (
	PhasePreflight = "preflight"
	PhaseTransform = "transform"
	PhaseExtract   = "extract"
	PhaseTruncate  = "truncate"
	PhaseCopy      = "copy"
	PhaseFinalize  = "finalize"
)

// txError returns the PipelineError raised inside a load transaction. Errors
// from BEGIN or COMMIT are reported as finalize failures.
func txError(err error) *PipelineError {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	return &PipelineError{Phase: PhaseFinalize, Err: err}
}

// LoadWarehouse replaces the contents of the warehouse schema with the star
// built from visits: preflight → transform → truncate → copy → finalize.
// Truncate, copy and ANALYZE share one transaction, so a failed load leaves
// the previous contents in place. The etl_runs row is written outside it.
func LoadWarehouse(ctx context.Context, conn db.Conn, log zerolog.Logger, visits []model.Visit, src Source) (*model.RunSummary, error) {
	totalStart := time.Now()

	run, err := Preflight(ctx, conn, log, KindWarehouse, src)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}
	failTx := func(err error) (*model.RunSummary, error) {
		pe := txError(err)
		run.Fail(ctx, conn, log, pe.Err)
		return nil, pe
	}

	log.Info().Int("visits", len(visits)).Msg("building star schema")
	start := time.Now()
	star := warehouse.Build(visits)
	summary := &model.RunSummary{
		RunID:             run.ID.String(),
		Kind:              KindWarehouse,
		RowsVisits:        int64(len(visits)),
		RowsUnresolvedFK:  int64(star.Unresolved()),
		DurationTransform: time.Since(start),
	}
	if summary.RowsUnresolvedFK > 0 {
		log.Warn().Int64("facts", summary.RowsUnresolvedFK).Msg("facts with unresolved dimension keys")
	}
	for _, c := range star.Conflicts {
		log.Warn().
			Str("table", c.Table).
			Str("key", c.Key).
			Str("kept", c.Kept).
			Str("dropped", c.Dropped).
			Msg("conflicting dimension attribute dropped")
	}

	start = time.Now()
	err = db.WithTx(ctx, conn, func(tx pgx.Tx) error {
		if err := TruncateWarehouse(ctx, tx, log); err != nil {
			return &PipelineError{Phase: PhaseTruncate, Err: err}
		}
		if err := StageStar(ctx, tx, log, star, summary); err != nil {
			return &PipelineError{Phase: PhaseCopy, Err: err}
		}
		summary.DurationCopy = time.Since(start)
		if err := run.Analyze(ctx, tx); err != nil {
			return &PipelineError{Phase: PhaseFinalize, Err: err}
		}
		return nil
	})
	if err != nil {
		return failTx(err)
	}

	dur, err := run.Finalize(ctx, conn, log, summary.RowsFacts)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseFinalize, Err: err}
	}
	summary.DurationFinalize = dur
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Str("run_id", summary.RunID).
		Int64("patients", summary.RowsPatients).
		Int64("facts", summary.RowsFacts).
		Int64("dates", summary.RowsDates).
		Dur("total_duration", summary.DurationTotal).
		Msg("warehouse load complete")

	return summary, nil
}

// BuildMart rebuilds research_operations from the warehouse: preflight →
// extract → transform → truncate → copy → finalize, with the same
// transaction boundary as LoadWarehouse. now stamps
// last_updated and anchors days_since_last_visit.
func BuildMart(ctx context.Context, conn db.Conn, log zerolog.Logger, now time.Time) (*model.RunSummary, []model.PatientSummary, error) {
	totalStart := time.Now()

	run, err := Preflight(ctx, conn, log, KindMart, Source{Name: "warehouse"})
	if err != nil {
		return nil, nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}
	fail := func(phase string, err error) (*model.RunSummary, []model.PatientSummary, error) {
		run.Fail(ctx, conn, log, err)
		return nil, nil, &PipelineError{Phase: phase, Err: err}
	}
	failTx := func(err error) (*model.RunSummary, []model.PatientSummary, error) {
		pe := txError(err)
		run.Fail(ctx, conn, log, pe.Err)
		return nil, nil, pe
	}

	start := time.Now()
	rows, err := Extract(ctx, conn, log)
	if err != nil {
		return fail(PhaseExtract, err)
	}
	summaries := mart.Summarize(rows, now)
	summary := &model.RunSummary{
		RunID:             run.ID.String(),
		Kind:              KindMart,
		RowsExtracted:     int64(len(rows)),
		DurationTransform: time.Since(start),
	}
	for i := range summaries {
		if summaries[i].HighRiskPatient {
			summary.HighRiskPatients++
		}
	}

	start = time.Now()
	err = db.WithTx(ctx, conn, func(tx pgx.Tx) error {
		if err := TruncateMart(ctx, tx, log); err != nil {
			return &PipelineError{Phase: PhaseTruncate, Err: err}
		}
		if err := StageMart(ctx, tx, log, summaries, summary); err != nil {
			return &PipelineError{Phase: PhaseCopy, Err: err}
		}
		summary.DurationCopy = time.Since(start)
		if err := run.Analyze(ctx, tx); err != nil {
			return &PipelineError{Phase: PhaseFinalize, Err: err}
		}
		return nil
	})
	if err != nil {
		return failTx(err)
	}

	dur, err := run.Finalize(ctx, conn, log, summary.RowsSummaries)
	if err != nil {
		return nil, nil, &PipelineError{Phase: PhaseFinalize, Err: err}
	}
	summary.DurationFinalize = dur
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Str("run_id", summary.RunID).
		Int64("rows_extracted", summary.RowsExtracted).
		Int64("summaries", summary.RowsSummaries).
		Int64("high_risk", summary.HighRiskPatients).
		Dur("total_duration", summary.DurationTotal).
		Msg("data mart build complete")

	return summary, summaries, nil
}
