package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gyeh/visitmart/internal/catalog"
)

func TestAgeGroup(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{-1, ""},
		{0, "0-18"},
		{18, "0-18"},
		{19, "19-35"},
		{35, "19-35"},
		{36, "36-50"},
		{50, "36-50"},
		{51, "51-65"},
		{65, "51-65"},
		{66, "66+"},
		{100, "66+"},
		{104, "66+"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, AgeGroup(tt.age), "age %d", tt.age)
	}
}

func TestDiagnosisCategory_Reference(t *testing.T) {
	want := map[string]string{
		"Type 2 Diabetes":                 "Metabolic",
		"Hypertension":                    "Cardiovascular",
		"Depression":                      "Mental Health",
		"Generalized Anxiety Disorder":    "Mental Health",
		"Asthma":                          "Respiratory",
		"Coronary Artery Disease":         "Cardiovascular",
		"COPD":                            "Respiratory",
		"Pneumonia":                       "Respiratory",
		"Osteoarthritis":                  "Other",
		"Hip Fracture":                    "Musculoskeletal",
		"Acute Appendicitis":              "Other",
		"Breast Cancer":                   "Cancer",
		"Colorectal Cancer":               "Cancer",
		"Migraine":                        "Other",
		"Lower Back Pain":                 "Musculoskeletal",
		"Cellulitis":                      "Other",
		"Urinary Tract Infection":         "Other",
		"Acute Bronchitis":                "Respiratory",
		"Gastroesophageal Reflux Disease": "Other",
		"Atrial Fibrillation":             "Cardiovascular",
	}
	for _, d := range catalog.Default().Diagnoses() {
		assert.Equalf(t, want[d], DiagnosisCategory(d), "diagnosis %q", d)
	}
}

func TestClassify_Precedence(t *testing.T) {
	// Matches both Cardiovascular and Cancer; the earlier rule wins.
	assert.Equal(t, "Cardiovascular", DiagnosisCategory("Heart Cancer"))
	// Matching is case-sensitive.
	assert.Equal(t, "Other", DiagnosisCategory("heart failure"))
	assert.Equal(t, "Fallback", Classify(nil, "anything", "Fallback"))
}

func TestTreatmentType(t *testing.T) {
	tests := map[string]string{
		"CABG Surgery":                     "Surgery",
		"Hip Replacement":                  "Surgery",
		"Lumpectomy + Radiation":           "Surgery",
		"Laparoscopic Appendectomy":        "Surgery",
		"Metformin":                        "Medication",
		"ACE Inhibitors":                   "Medication",
		"Beta Blockers":                    "Medication",
		"Antibiotics IV":                   "Medication",
		"Rate Control Medication":          "Medication",
		"Cognitive Behavioral Therapy":     "Therapy",
		"Counseling":                       "Therapy",
		"Cardiac Rehabilitation":           "Therapy",
		"Stent Placement":                  "Procedure",
		"Joint Injection":                  "Procedure",
		"Ablation":                         "Procedure",
		"Lifestyle Changes":                "Lifestyle",
		"Lifestyle Modification Program":   "Lifestyle",
		"Open Reduction Internal Fixation": "Other",
		"Chemotherapy":                     "Other",
		"Supportive Care":                  "Other",
	}
	for name, want := range tests {
		assert.Equalf(t, want, TreatmentType(name), "treatment %q", name)
	}
}

func TestTimeAttributes(t *testing.T) {
	d := TimeAttributes(time.Date(2023, 11, 24, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, int32(20231124), d.DateID)
	assert.Equal(t, time.Date(2023, 11, 24, 0, 0, 0, 0, time.UTC), d.FullDate)
	assert.Equal(t, 2023, d.Year)
	assert.Equal(t, 4, d.Quarter)
	assert.Equal(t, 11, d.Month)
	assert.Equal(t, "November", d.MonthName)
	assert.Equal(t, "Friday", d.DayOfWeek)

	for month, q := range map[time.Month]int{time.January: 1, time.March: 1, time.April: 2, time.July: 3, time.September: 3, time.October: 4} {
		assert.Equal(t, q, TimeAttributes(time.Date(2022, month, 1, 0, 0, 0, 0, time.UTC)).Quarter, month.String())
	}
}
