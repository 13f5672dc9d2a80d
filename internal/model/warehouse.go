package model

import "time"

// PatientDim is a row of warehouse.dim_patients.
type PatientDim struct {
	PatientKey          int64
	PatientID           string
	Age                 int
	Gender              string
	Ethnicity           string
	SocioeconomicStatus string
	InsuranceType       string
	AgeGroup            string
}

// PatientColumns returns the COPY column order for dim_patients.
func PatientColumns() []string {
	return []string{
		"patient_key",
		"patient_id",
		"age",
		"gender",
		"ethnicity",
		"socioeconomic_status",
		"insurance_type",
		"age_group",
	}
}

// CopyValues returns the row values in PatientColumns order.
func (r *PatientDim) CopyValues() []any {
	return []any{
		r.PatientKey,
		r.PatientID,
		r.Age,
		r.Gender,
		r.Ethnicity,
		r.SocioeconomicStatus,
		r.InsuranceType,
		nilIfEmpty(r.AgeGroup),
	}
}

// DiagnosisDim is a row of warehouse.dim_diagnoses.
type DiagnosisDim struct {
	DiagnosisID int64
	Name        string
	ICD10Code   string
	Category    string
}

func DiagnosisColumns() []string {
	return []string{"diagnosis_id", "diagnosis_name", "icd_10_code", "diagnosis_category"}
}

func (r *DiagnosisDim) CopyValues() []any {
	return []any{r.DiagnosisID, r.Name, r.ICD10Code, r.Category}
}

// TreatmentDim is a row of warehouse.dim_treatments.
type TreatmentDim struct {
	TreatmentID int64
	Name        string
	Type        string
}

func TreatmentColumns() []string {
	return []string{"treatment_id", "treatment_name", "treatment_type"}
}

func (r *TreatmentDim) CopyValues() []any {
	return []any{r.TreatmentID, r.Name, r.Type}
}

// FacilityDim is a row of warehouse.dim_facilities.
type FacilityDim struct {
	FacilityID int64
	Name       string
	Type       string
}

func FacilityColumns() []string {
	return []string{"facility_id", "facility_name", "facility_type"}
}

func (r *FacilityDim) CopyValues() []any {
	return []any{r.FacilityID, r.Name, r.Type}
}

// DateDim is a row of warehouse.dim_time, keyed by YYYYMMDD.
type DateDim struct {
	DateID    int32
	FullDate  time.Time
	Year      int
	Quarter   int
	Month     int
	MonthName string
	DayOfWeek string
}

func DateColumns() []string {
	return []string{"date_id", "full_date", "year", "quarter", "month", "month_name", "day_of_week"}
}

func (r *DateDim) CopyValues() []any {
	return []any{r.DateID, r.FullDate, r.Year, r.Quarter, r.Month, r.MonthName, r.DayOfWeek}
}

// FactVisit is a row of warehouse.fact_clinical_visits. Foreign keys are nil
// when the visit's natural key had no matching dimension row.
type FactVisit struct {
	VisitID           int64
	PatientID         string
	DiagnosisID       *int64
	TreatmentID       *int64
	FacilityID        *int64
	DateID            *int32
	LengthOfStayDays  int
	TotalCost         float64
	Readmission30Days int
	SatisfactionScore int
	AdverseEvent      int
	Outcome           string
}

// FactColumns returns the COPY column order for fact_clinical_visits.
func FactColumns() []string {
	return []string{
		"visit_id",
		"patient_id",
		"diagnosis_id",
		"treatment_id",
		"facility_id",
		"date_id",
		"length_of_stay_days",
		"total_cost",
		"readmission_30_days",
		"patient_satisfaction_score",
		"adverse_event",
		"outcome",
	}
}

// CopyValues returns the row values in FactColumns order.
func (r *FactVisit) CopyValues() []any {
	return []any{
		r.VisitID,
		r.PatientID,
		r.DiagnosisID,
		r.TreatmentID,
		r.FacilityID,
		r.DateID,
		r.LengthOfStayDays,
		r.TotalCost,
		r.Readmission30Days,
		r.SatisfactionScore,
		r.AdverseEvent,
		r.Outcome,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
