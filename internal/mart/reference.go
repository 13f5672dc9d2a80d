package mart

import (
	"fmt"
	"io"

	"github.com/gyeh/visitmart/internal/model"
)

// Interventions returns the research intervention programs loaded with
// every mart build.
func Interventions() []model.Intervention {
	return []model.Intervention{
		{Name: "Diabetes Management Program", Type: "Preventive", TargetPopulation: "Type 2 Diabetes patients"},
		{Name: "Cardiac Rehabilitation", Type: "Treatment", TargetPopulation: "Heart disease patients"},
		{Name: "High-Risk Patient Monitoring", Type: "Follow-up", TargetPopulation: "Patients with readmissions"},
		{Name: "Mental Health Support Group", Type: "Preventive", TargetPopulation: "Depression/Anxiety patients"},
		{Name: "Medication Adherence Program", Type: "Follow-up", TargetPopulation: "Chronic condition patients"},
	}
}

// CareTeams returns the care teams loaded with every mart build.
func CareTeams() []model.CareTeam {
	return []model.CareTeam{
		{Name: "Primary Care Team A", Specialty: "Primary Care", FacilityName: "University Medical Center"},
		{Name: "Cardiology Team", Specialty: "Cardiology", FacilityName: "Regional Trauma Center"},
		{Name: "Oncology Team", Specialty: "Oncology", FacilityName: "Academic Research Hospital"},
		{Name: "Mental Health Team", Specialty: "Psychiatry", FacilityName: "Community General Hospital"},
		{Name: "Emergency Care Team", Specialty: "Emergency Medicine", FacilityName: "Regional Trauma Center"},
	}
}

// Report is the headline summary of a mart build.
type Report struct {
	Patients           int
	PatientsWithVisits int
	HighRisk           int
	MeanVisits         float64
	WithReadmissions   int
	MeanSatisfaction   float64
	TotalCost          float64
}

// Stats summarizes patient summaries. Mean satisfaction averages the
// patients that have a score.
func Stats(rows []model.PatientSummary) Report {
	var st Report
	st.Patients = len(rows)
	var visits int
	var sat float64
	var satN int
	for i := range rows {
		r := &rows[i]
		visits += r.TotalVisits
		if r.TotalVisits > 0 {
			st.PatientsWithVisits++
		}
		if r.HighRiskPatient {
			st.HighRisk++
		}
		if r.Readmissions30Day > 0 {
			st.WithReadmissions++
		}
		if r.AvgSatisfaction != nil {
			sat += *r.AvgSatisfaction
			satN++
		}
		st.TotalCost += r.TotalCost
	}
	if st.Patients > 0 {
		st.MeanVisits = float64(visits) / float64(st.Patients)
	}
	if satN > 0 {
		st.MeanSatisfaction = sat / float64(satN)
	}
	return st
}

// Print writes the report in plain text.
func (s Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Patients:                   %d\n", s.Patients)
	fmt.Fprintf(w, "Patients with visits:       %d\n", s.PatientsWithVisits)
	if s.Patients > 0 {
		fmt.Fprintf(w, "High-risk patients:         %d (%.1f%%)\n", s.HighRisk, 100*float64(s.HighRisk)/float64(s.Patients))
	} else {
		fmt.Fprintf(w, "High-risk patients:         %d\n", s.HighRisk)
	}
	fmt.Fprintf(w, "Average visits per patient: %.2f\n", s.MeanVisits)
	fmt.Fprintf(w, "Patients with readmissions: %d\n", s.WithReadmissions)
	fmt.Fprintf(w, "Average satisfaction:       %.2f/10\n", s.MeanSatisfaction)
	fmt.Fprintf(w, "Total cost:                 $%.2f\n", s.TotalCost)
}
