package model

import "time"

// RunSummary captures metrics from a single ETL run.
type RunSummary struct {
	RunID             string
	Kind              string // "warehouse" or "mart"
	RowsVisits        int64
	RowsPatients      int64
	RowsDiagnoses     int64
	RowsTreatments    int64
	RowsFacilities    int64
	RowsDates         int64
	RowsFacts         int64
	RowsUnresolvedFK  int64
	RowsExtracted     int64
	RowsSummaries     int64
	RowsReference     int64
	HighRiskPatients  int64
	DurationTransform time.Duration
	DurationCopy      time.Duration
	DurationFinalize  time.Duration
	DurationTotal     time.Duration
}
