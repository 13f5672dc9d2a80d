package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gyeh/visitmart/internal/db"
	"github.com/gyeh/visitmart/internal/mart"
	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/warehouse"
)

const copyBufferSize = 1024

// copyRows streams rows into table through a channel-backed CopyFromSource.
// A producer goroutine feeds the channel; it stops early if the COPY fails
// or ctx is cancelled.
func copyRows[E any, P interface {
	*E
	db.Row
}](ctx context.Context, conn db.Conn, log zerolog.Logger, table pgx.Identifier, columns []string, rows []E) (int64, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan P, copyBufferSize)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		for i := range rows {
			select {
			case ch <- P(&rows[i]):
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	n, err := conn.CopyFrom(ctx, table, columns, db.NewChannelSource(ch))
	if err != nil {
		cancel()
	}
	prodErr := <-errCh
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", table.Sanitize(), err)
	}
	if prodErr != nil {
		return 0, fmt.Errorf("copy %s producer: %w", table.Sanitize(), prodErr)
	}

	log.Debug().
		Str("table", table.Sanitize()).
		Int64("rows", n).
		Dur("duration", time.Since(start)).
		Msg("copy complete")
	return n, nil
}

// StageStar COPY-loads the dimensions and then the facts, recording row
// counts in summary.
func StageStar(ctx context.Context, conn db.Conn, log zerolog.Logger, star *warehouse.Star, summary *model.RunSummary) error {
	var err error
	if summary.RowsPatients, err = copyRows(ctx, conn, log,
		pgx.Identifier{"warehouse", "dim_patients"}, model.PatientColumns(), star.Patients); err != nil {
		return err
	}
	if summary.RowsDiagnoses, err = copyRows(ctx, conn, log,
		pgx.Identifier{"warehouse", "dim_diagnoses"}, model.DiagnosisColumns(), star.Diagnoses); err != nil {
		return err
	}
	if summary.RowsTreatments, err = copyRows(ctx, conn, log,
		pgx.Identifier{"warehouse", "dim_treatments"}, model.TreatmentColumns(), star.Treatments); err != nil {
		return err
	}
	if summary.RowsFacilities, err = copyRows(ctx, conn, log,
		pgx.Identifier{"warehouse", "dim_facilities"}, model.FacilityColumns(), star.Facilities); err != nil {
		return err
	}
	if summary.RowsDates, err = copyRows(ctx, conn, log,
		pgx.Identifier{"warehouse", "dim_time"}, model.DateColumns(), star.Dates); err != nil {
		return err
	}
	if summary.RowsFacts, err = copyRows(ctx, conn, log,
		pgx.Identifier{"warehouse", "fact_clinical_visits"}, model.FactColumns(), star.Facts); err != nil {
		return err
	}

	log.Info().
		Int64("patients", summary.RowsPatients).
		Int64("diagnoses", summary.RowsDiagnoses).
		Int64("treatments", summary.RowsTreatments).
		Int64("facilities", summary.RowsFacilities).
		Int64("dates", summary.RowsDates).
		Int64("facts", summary.RowsFacts).
		Msg("star schema staged")
	return nil
}

// StageMart COPY-loads the patient summaries and the reference tables.
func StageMart(ctx context.Context, conn db.Conn, log zerolog.Logger, summaries []model.PatientSummary, summary *model.RunSummary) error {
	var err error
	if summary.RowsSummaries, err = copyRows(ctx, conn, log,
		pgx.Identifier{"research_operations", "fact_patient_summary"}, model.SummaryColumns(), summaries); err != nil {
		return err
	}
	interventions, err := copyRows(ctx, conn, log,
		pgx.Identifier{"research_operations", "dim_interventions"}, model.InterventionColumns(), mart.Interventions())
	if err != nil {
		return err
	}
	teams, err := copyRows(ctx, conn, log,
		pgx.Identifier{"research_operations", "dim_care_teams"}, model.CareTeamColumns(), mart.CareTeams())
	if err != nil {
		return err
	}
	summary.RowsReference = interventions + teams

	log.Info().
		Int64("summaries", summary.RowsSummaries).
		Int64("reference_rows", summary.RowsReference).
		Msg("data mart staged")
	return nil
}
