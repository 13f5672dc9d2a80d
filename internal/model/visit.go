package model

import (
	"strconv"
	"time"
)

// DateLayout is the calendar date format used in CSV output.
const DateLayout = "2006-01-02"

// Visit outcomes.
const (
	OutcomeRecovered = "Recovered"
	OutcomeImproved  = "Improved"
	OutcomeUnchanged = "Unchanged"
	OutcomeWorsened  = "Worsened"
)

// Visit is one generated clinical encounter. It is created once by the
// generator and treated as immutable afterwards.
type Visit struct {
	VisitID             int64
	PatientID           string
	Age                 int
	Gender              string
	Ethnicity           string
	SocioeconomicStatus string
	InsuranceType       string
	VisitDate           time.Time
	FacilityName        string
	FacilityType        string
	Diagnosis           string
	ICD10Code           string
	Treatment           string
	Outcome             string
	LengthOfStayDays    int
	TotalCost           float64
	Readmission30Days   int // 0 or 1
	SatisfactionScore   int // 1-10
	AdverseEvent        int // 0 or 1
}

// VisitColumns returns the ordered field names of the visit dataset.
// Order and names are part of the export contract.
func VisitColumns() []string {
	return []string{
		"visit_id",
		"patient_id",
		"age",
		"gender",
		"ethnicity",
		"socioeconomic_status",
		"insurance_type",
		"visit_date",
		"facility_name",
		"facility_type",
		"diagnosis",
		"icd_10_code",
		"treatment",
		"outcome",
		"length_of_stay_days",
		"total_cost",
		"readmission_30_days",
		"patient_satisfaction_score",
		"adverse_event",
	}
}

// Record returns the visit as text fields in VisitColumns order.
func (v *Visit) Record() []string {
	return []string{
		strconv.FormatInt(v.VisitID, 10),
		v.PatientID,
		strconv.Itoa(v.Age),
		v.Gender,
		v.Ethnicity,
		v.SocioeconomicStatus,
		v.InsuranceType,
		v.VisitDate.Format(DateLayout),
		v.FacilityName,
		v.FacilityType,
		v.Diagnosis,
		v.ICD10Code,
		v.Treatment,
		v.Outcome,
		strconv.Itoa(v.LengthOfStayDays),
		strconv.FormatFloat(v.TotalCost, 'f', -1, 64),
		strconv.Itoa(v.Readmission30Days),
		strconv.Itoa(v.SatisfactionScore),
		strconv.Itoa(v.AdverseEvent),
	}
}
