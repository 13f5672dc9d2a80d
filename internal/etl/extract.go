package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/visitmart/internal/db"
	"github.com/gyeh/visitmart/internal/model"
	embedsql "github.com/gyeh/visitmart/internal/sql"
)

// Extract reads every patient joined to its visits and visit dates, ordered
// by patient id then visit date. Patients without visits yield one row with
// nil visit columns.
func Extract(ctx context.Context, conn db.Conn, log zerolog.Logger) ([]model.WarehouseRow, error) {
	start := time.Now()

	rows, err := conn.Query(ctx, embedsql.ExtractPatientVisits)
	if err != nil {
		return nil, fmt.Errorf("query warehouse: %w", err)
	}
	defer rows.Close()

	var out []model.WarehouseRow
	for rows.Next() {
		var r model.WarehouseRow
		if err := rows.Scan(
			&r.PatientID,
			&r.Age,
			&r.AgeGroup,
			&r.Gender,
			&r.Ethnicity,
			&r.InsuranceType,
			&r.VisitID,
			&r.VisitDate,
			&r.TotalCost,
			&r.SatisfactionScore,
			&r.Readmission30Days,
			&r.AdverseEvent,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse row %d: %w", len(out)+1, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read warehouse: %w", err)
	}

	log.Info().
		Int("rows", len(out)).
		Dur("duration", time.Since(start)).
		Msg("warehouse extract complete")
	return out, nil
}
