package model

import "time"

// WarehouseRow is one row of the patient-level warehouse extract:
// dim_patients LEFT JOIN fact_clinical_visits LEFT JOIN dim_time.
// Visit columns are nil for patients without visits.
type WarehouseRow struct {
	PatientID         string
	Age               int
	AgeGroup          string
	Gender            string
	Ethnicity         string
	InsuranceType     string
	VisitID           *int64
	VisitDate         *time.Time
	TotalCost         *float64
	SatisfactionScore *int
	Readmission30Days *int
	AdverseEvent      *int
}

// PatientSummary is a row of research_operations.fact_patient_summary.
type PatientSummary struct {
	PatientID          string
	Age                int
	AgeGroup           string
	Gender             string
	Ethnicity          string
	InsuranceType      string
	TotalVisits        int
	FirstVisitDate     *time.Time
	LastVisitDate      *time.Time
	TotalCost          float64
	AvgSatisfaction    *float64
	Readmissions30Day  int
	AdverseEventsCount int
	DaysSinceLastVisit *int
	ChronicConditions  int
	HighRiskPatient    bool
	LastUpdated        time.Time
}

// SummaryColumns returns the COPY column order for fact_patient_summary.
func SummaryColumns() []string {
	return []string{
		"patient_id",
		"age",
		"age_group",
		"gender",
		"ethnicity",
		"insurance_type",
		"total_visits",
		"first_visit_date",
		"last_visit_date",
		"total_cost",
		"average_satisfaction_score",
		"readmissions_30_day",
		"adverse_events_count",
		"days_since_last_visit",
		"chronic_condition_count",
		"high_risk_patient",
		"last_updated",
	}
}

// CopyValues returns the row values in SummaryColumns order.
func (r *PatientSummary) CopyValues() []any {
	return []any{
		r.PatientID,
		r.Age,
		nilIfEmpty(r.AgeGroup),
		r.Gender,
		r.Ethnicity,
		r.InsuranceType,
		r.TotalVisits,
		r.FirstVisitDate,
		r.LastVisitDate,
		r.TotalCost,
		r.AvgSatisfaction,
		r.Readmissions30Day,
		r.AdverseEventsCount,
		r.DaysSinceLastVisit,
		r.ChronicConditions,
		r.HighRiskPatient,
		r.LastUpdated,
	}
}

// Intervention is a research operations intervention program.
type Intervention struct {
	Name             string
	Type             string
	TargetPopulation string
}

func InterventionColumns() []string {
	return []string{"intervention_name", "intervention_type", "target_population"}
}

func (r *Intervention) CopyValues() []any {
	return []any{r.Name, r.Type, r.TargetPopulation}
}

// CareTeam is a research operations care team.
type CareTeam struct {
	Name         string
	Specialty    string
	FacilityName string
}

func CareTeamColumns() []string {
	return []string{"team_name", "specialty", "facility_name"}
}

func (r *CareTeam) CopyValues() []any {
	return []any{r.Name, r.Specialty, r.FacilityName}
}
