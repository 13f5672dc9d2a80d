package catalog

// FallbackDiagnosis is assigned when an age matches no band.
const FallbackDiagnosis = "Type 2 Diabetes"

// Profiles is the reference set of 20 diagnosis profiles.
var Profiles = []Profile{
	{
		Diagnosis:    "Type 2 Diabetes",
		Treatments:   []string{"Metformin", "Insulin Therapy", "Lifestyle Modification Program", "Combination Therapy"},
		Cost:         Range{1500, 8000},
		LengthOfStay: DayRange{0, 2},
		SuccessRate:  0.72,
		ICD10:        "E11",
	},
	{
		Diagnosis:    "Hypertension",
		Treatments:   []string{"ACE Inhibitors", "Beta Blockers", "Calcium Channel Blockers", "Lifestyle Changes"},
		Cost:         Range{1000, 4500},
		LengthOfStay: DayRange{0, 1},
		SuccessRate:  0.78,
		ICD10:        "I10",
	},
	{
		Diagnosis:    "Depression",
		Treatments:   []string{"SSRI Medication", "Cognitive Behavioral Therapy", "Counseling", "Combination Therapy"},
		Cost:         Range{800, 5000},
		LengthOfStay: DayRange{0, 0},
		SuccessRate:  0.68,
		ICD10:        "F33",
	},
	{
		Diagnosis:    "Generalized Anxiety Disorder",
		Treatments:   []string{"Anxiolytic Medication", "Cognitive Behavioral Therapy", "Counseling", "Relaxation Techniques"},
		Cost:         Range{900, 4800},
		LengthOfStay: DayRange{0, 0},
		SuccessRate:  0.70,
		ICD10:        "F41.1",
	},
	{
		Diagnosis:    "Asthma",
		Treatments:   []string{"Inhaled Corticosteroids", "Bronchodilators", "Combination Inhaler", "Allergen Avoidance"},
		Cost:         Range{600, 3500},
		LengthOfStay: DayRange{0, 1},
		SuccessRate:  0.82,
		ICD10:        "J45",
	},
	{
		Diagnosis:    "Coronary Artery Disease",
		Treatments:   []string{"Stent Placement", "CABG Surgery", "Medication Management", "Cardiac Rehabilitation"},
		Cost:         Range{25000, 85000},
		LengthOfStay: DayRange{2, 7},
		SuccessRate:  0.75,
		ICD10:        "I25.1",
	},
	{
		Diagnosis:    "COPD",
		Treatments:   []string{"Bronchodilators", "Inhaled Steroids", "Oxygen Therapy", "Pulmonary Rehabilitation"},
		Cost:         Range{3000, 12000},
		LengthOfStay: DayRange{1, 5},
		SuccessRate:  0.65,
		ICD10:        "J44",
	},
	{
		Diagnosis:    "Pneumonia",
		Treatments:   []string{"Antibiotics IV", "Antibiotics Oral", "Oxygen Therapy", "Supportive Care"},
		Cost:         Range{8000, 25000},
		LengthOfStay: DayRange{3, 7},
		SuccessRate:  0.85,
		ICD10:        "J18",
	},
	{
		Diagnosis:    "Osteoarthritis",
		Treatments:   []string{"NSAIDs", "Physical Therapy", "Joint Injection", "Joint Replacement"},
		Cost:         Range{2000, 55000},
		LengthOfStay: DayRange{0, 4},
		SuccessRate:  0.70,
		ICD10:        "M19",
	},
	{
		Diagnosis:    "Hip Fracture",
		Treatments:   []string{"Hip Replacement", "Open Reduction Internal Fixation", "Physical Therapy"},
		Cost:         Range{40000, 80000},
		LengthOfStay: DayRange{4, 8},
		SuccessRate:  0.80,
		ICD10:        "S72.0",
	},
	{
		Diagnosis:    "Acute Appendicitis",
		Treatments:   []string{"Laparoscopic Appendectomy", "Open Appendectomy"},
		Cost:         Range{20000, 45000},
		LengthOfStay: DayRange{1, 3},
		SuccessRate:  0.95,
		ICD10:        "K35",
	},
	{
		Diagnosis:    "Breast Cancer",
		Treatments:   []string{"Lumpectomy + Radiation", "Mastectomy", "Chemotherapy", "Hormone Therapy"},
		Cost:         Range{50000, 150000},
		LengthOfStay: DayRange{1, 5},
		SuccessRate:  0.72,
		ICD10:        "C50",
	},
	{
		Diagnosis:    "Colorectal Cancer",
		Treatments:   []string{"Surgical Resection", "Chemotherapy", "Radiation Therapy", "Combination Therapy"},
		Cost:         Range{60000, 180000},
		LengthOfStay: DayRange{5, 10},
		SuccessRate:  0.68,
		ICD10:        "C18",
	},
	{
		Diagnosis:    "Migraine",
		Treatments:   []string{"Triptans", "Preventive Medication", "Botox Injections", "Lifestyle Modifications"},
		Cost:         Range{500, 3500},
		LengthOfStay: DayRange{0, 0},
		SuccessRate:  0.65,
		ICD10:        "G43",
	},
	{
		Diagnosis:    "Lower Back Pain",
		Treatments:   []string{"Physical Therapy", "Pain Management", "Epidural Injection", "Surgery"},
		Cost:         Range{1500, 35000},
		LengthOfStay: DayRange{0, 3},
		SuccessRate:  0.62,
		ICD10:        "M54.5",
	},
	{
		Diagnosis:    "Cellulitis",
		Treatments:   []string{"Antibiotics Oral", "Antibiotics IV", "Wound Care"},
		Cost:         Range{1200, 8000},
		LengthOfStay: DayRange{0, 4},
		SuccessRate:  0.88,
		ICD10:        "L03",
	},
	{
		Diagnosis:    "Urinary Tract Infection",
		Treatments:   []string{"Antibiotics Oral", "Antibiotics IV", "Increased Hydration"},
		Cost:         Range{500, 4000},
		LengthOfStay: DayRange{0, 2},
		SuccessRate:  0.90,
		ICD10:        "N39.0",
	},
	{
		Diagnosis:    "Acute Bronchitis",
		Treatments:   []string{"Supportive Care", "Bronchodilators", "Cough Suppressants"},
		Cost:         Range{300, 1500},
		LengthOfStay: DayRange{0, 0},
		SuccessRate:  0.85,
		ICD10:        "J20",
	},
	{
		Diagnosis:    "Gastroesophageal Reflux Disease",
		Treatments:   []string{"Proton Pump Inhibitors", "H2 Blockers", "Lifestyle Modifications", "Fundoplication"},
		Cost:         Range{800, 25000},
		LengthOfStay: DayRange{0, 2},
		SuccessRate:  0.75,
		ICD10:        "K21",
	},
	{
		Diagnosis:    "Atrial Fibrillation",
		Treatments:   []string{"Rate Control Medication", "Rhythm Control Medication", "Ablation", "Anticoagulation"},
		Cost:         Range{5000, 45000},
		LengthOfStay: DayRange{1, 4},
		SuccessRate:  0.70,
		ICD10:        "I48",
	},
}

// AgeBands lists age-appropriate diagnoses. Bands are inclusive at both ends.
var AgeBands = []AgeBand{
	{0, 12, []string{"Asthma", "Acute Bronchitis", "Pneumonia"}},
	{13, 18, []string{"Asthma", "Acute Bronchitis", "Migraine", "Lower Back Pain"}},
	{19, 35, []string{"Generalized Anxiety Disorder", "Depression", "Migraine", "Lower Back Pain", "Cellulitis", "Urinary Tract Infection"}},
	{36, 50, []string{"Depression", "Generalized Anxiety Disorder", "Type 2 Diabetes", "Hypertension", "Migraine", "Lower Back Pain", "Osteoarthritis"}},
	{51, 65, []string{"Type 2 Diabetes", "Hypertension", "Coronary Artery Disease", "Osteoarthritis", "COPD", "Breast Cancer", "Colorectal Cancer", "Gastroesophageal Reflux Disease"}},
	{66, 100, []string{"Coronary Artery Disease", "COPD", "Pneumonia", "Hip Fracture", "Osteoarthritis", "Atrial Fibrillation", "Colorectal Cancer", "Urinary Tract Infection"}},
}

// Insurance labels.
const (
	InsurancePrivate   = "Private Insurance"
	InsuranceMedicare  = "Medicare"
	InsuranceMedicaid  = "Medicaid"
	InsuranceUninsured = "Uninsured"
)

// Socioeconomic tiers.
const (
	TierLow    = "Low"
	TierMedium = "Medium"
	TierHigh   = "High"
)

// Weighted is a categorical value with its draw weight.
type Weighted struct {
	Value  string
	Weight float64
}

var (
	Genders = []Weighted{
		{"Male", 0.49},
		{"Female", 0.49},
		{"Non-binary", 0.02},
	}

	Ethnicities = []Weighted{
		{"White", 0.55},
		{"Black", 0.13},
		{"Hispanic", 0.18},
		{"Asian", 0.08},
		{"Indigenous", 0.04},
		{"Other", 0.02},
	}

	SocioeconomicTiers = []string{TierLow, TierMedium, TierHigh}

	InsuranceTypes = []string{InsurancePrivate, InsuranceMedicare, InsuranceMedicaid, InsuranceUninsured}
)

// Facility is a care site and its type.
type Facility struct {
	Name string
	Type string
}

// Facilities is the fixed list of care sites; visits pick one uniformly.
var Facilities = []Facility{
	{"University Medical Center", "Hospital"},
	{"Community General Hospital", "Hospital"},
	{"Regional Trauma Center", "Hospital"},
	{"Suburban Clinic", "Clinic"},
	{"Academic Research Hospital", "Hospital"},
}
