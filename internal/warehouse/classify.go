package warehouse

import (
	"strings"
	"time"

	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

// Rule labels a name that contains any of its keywords.
type Rule struct {
	Label    string
	Keywords []string
}

// Matches reports whether name contains one of the rule's keywords.
// Matching is case-sensitive.
func (r Rule) Matches(name string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

const OtherLabel = "Other"

// DiagnosisRules classify diagnosis names, checked in order.
var DiagnosisRules = []Rule{
	{"Cardiovascular", []string{"Heart", "Coronary", "Hypertension", "Atrial"}},
	{"Respiratory", []string{"COPD", "Asthma", "Pneumonia", "Bronchitis"}},
	{"Mental Health", []string{"Depression", "Anxiety"}},
	{"Metabolic", []string{"Diabetes"}},
	{"Musculoskeletal", []string{"Arthritis", "Fracture", "Back Pain"}},
	{"Cancer", []string{"Cancer"}},
}

// TreatmentRules classify treatment names, checked in order.
var TreatmentRules = []Rule{
	{"Surgery", []string{"Surgery", "Appendectomy", "Replacement", "Resection", "Lumpectomy", "Mastectomy"}},
	{"Medication", []string{"Medication", "Antibiotics", "SSRI", "Metformin", "Insulin", "Inhibitor", "Blocker"}},
	{"Therapy", []string{"Therapy", "Counseling", "CBT", "Rehabilitation"}},
	{"Procedure", []string{"Stent", "Injection", "Ablation"}},
	{"Lifestyle", []string{"Lifestyle", "Modifications"}},
}

// Classify returns the label of the first rule matching name, or fallback.
func Classify(rules []Rule, name, fallback string) string {
	for _, r := range rules {
		if r.Matches(name) {
			return r.Label
		}
	}
	return fallback
}

// DiagnosisCategory classifies a diagnosis name.
func DiagnosisCategory(name string) string {
	return Classify(DiagnosisRules, name, OtherLabel)
}

// TreatmentType classifies a treatment name.
func TreatmentType(name string) string {
	return Classify(TreatmentRules, name, OtherLabel)
}

// AgeGroup buckets an age into 0-18, 19-35, 36-50, 51-65 or 66+.
// Negative ages get no group.
func AgeGroup(age int) string {
	switch {
	case age < 0:
		return ""
	case age <= 18:
		// Age 0 lands here although the lowest bin is left-open.
		return "0-18"
	case age <= 35:
		return "19-35"
	case age <= 50:
		return "36-50"
	case age <= 65:
		return "51-65"
	default:
		return "66+"
	}
}

// TimeAttributes derives the dim_time row of a calendar date.
func TimeAttributes(date time.Time) model.DateDim {
	d := normalize.CalendarDate(date)
	return model.DateDim{
		DateID:    normalize.DateKey(d),
		FullDate:  d,
		Year:      d.Year(),
		Quarter:   (int(d.Month())-1)/3 + 1,
		Month:     int(d.Month()),
		MonthName: d.Month().String(),
		DayOfWeek: d.Weekday().String(),
	}
}
