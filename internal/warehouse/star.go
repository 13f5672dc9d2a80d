// Package warehouse reshapes flat visit records into a star schema:
// five deduplicated dimensions and a fact table of foreign keys.
package warehouse

import (
	"slices"

	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

// Dimensions holds the dimension tables of one visit batch. Surrogate keys
// are 1-based and follow first appearance in the batch. Dates are ordered
// by calendar date and keyed by YYYYMMDD.
type Dimensions struct {
	Patients   []model.PatientDim
	Diagnoses  []model.DiagnosisDim
	Treatments []model.TreatmentDim
	Facilities []model.FacilityDim
	Dates      []model.DateDim

	// Conflicts lists natural keys that reappeared with a different
	// attribute. Each distinct dropped value is listed once.
	Conflicts []Conflict
}

// Conflict is a dimension attribute dropped because an earlier visit with
// the same natural key carried a different value.
type Conflict struct {
	Table   string
	Key     string
	Kept    string
	Dropped string
}

// Star is a dimensionalized batch.
type Star struct {
	Dimensions
	Facts []model.FactVisit
}

// Dimensionalize projects visits onto the dimension tables. The first visit
// seen for a natural key supplies that row's attributes. Diagnoses and
// facilities are keyed by name alone because facts resolve them by name;
// a later code or facility type that disagrees is recorded in Conflicts.
func Dimensionalize(visits []model.Visit) *Dimensions {
	d := &Dimensions{}
	patients := map[string]bool{}
	diagnoses := map[string]int{}
	treatments := map[string]bool{}
	facilities := map[string]int{}
	conflicts := map[Conflict]bool{}
	conflict := func(c Conflict) {
		if !conflicts[c] {
			conflicts[c] = true
			d.Conflicts = append(d.Conflicts, c)
		}
	}
	dates := map[int32]bool{}

	for i := range visits {
		v := &visits[i]
		if !patients[v.PatientID] {
			patients[v.PatientID] = true
			d.Patients = append(d.Patients, model.PatientDim{
				PatientKey:          int64(len(d.Patients) + 1),
				PatientID:           v.PatientID,
				Age:                 v.Age,
				Gender:              v.Gender,
				Ethnicity:           v.Ethnicity,
				SocioeconomicStatus: v.SocioeconomicStatus,
				InsuranceType:       v.InsuranceType,
				AgeGroup:            AgeGroup(v.Age),
			})
		}
		if j, ok := diagnoses[v.Diagnosis]; ok {
			if kept := d.Diagnoses[j].ICD10Code; kept != v.ICD10Code {
				conflict(Conflict{Table: "dim_diagnoses", Key: v.Diagnosis, Kept: kept, Dropped: v.ICD10Code})
			}
		} else {
			diagnoses[v.Diagnosis] = len(d.Diagnoses)
			d.Diagnoses = append(d.Diagnoses, model.DiagnosisDim{
				DiagnosisID: int64(len(d.Diagnoses) + 1),
				Name:        v.Diagnosis,
				ICD10Code:   v.ICD10Code,
				Category:    DiagnosisCategory(v.Diagnosis),
			})
		}
		if !treatments[v.Treatment] {
			treatments[v.Treatment] = true
			d.Treatments = append(d.Treatments, model.TreatmentDim{
				TreatmentID: int64(len(d.Treatments) + 1),
				Name:        v.Treatment,
				Type:        TreatmentType(v.Treatment),
			})
		}
		if j, ok := facilities[v.FacilityName]; ok {
			if kept := d.Facilities[j].Type; kept != v.FacilityType {
				conflict(Conflict{Table: "dim_facilities", Key: v.FacilityName, Kept: kept, Dropped: v.FacilityType})
			}
		} else {
			facilities[v.FacilityName] = len(d.Facilities)
			d.Facilities = append(d.Facilities, model.FacilityDim{
				FacilityID: int64(len(d.Facilities) + 1),
				Name:       v.FacilityName,
				Type:       v.FacilityType,
			})
		}
		if key := normalize.DateKey(v.VisitDate); !dates[key] {
			dates[key] = true
			d.Dates = append(d.Dates, TimeAttributes(v.VisitDate))
		}
	}
	slices.SortFunc(d.Dates, func(a, b model.DateDim) int {
		return int(a.DateID) - int(b.DateID)
	})
	return d
}

// BuildFacts resolves each visit's natural keys against dims. A key with no
// dimension row leaves that foreign key nil; the visit is kept.
func BuildFacts(visits []model.Visit, dims *Dimensions) []model.FactVisit {
	diagnoses := make(map[string]int64, len(dims.Diagnoses))
	for _, r := range dims.Diagnoses {
		diagnoses[r.Name] = r.DiagnosisID
	}
	treatments := make(map[string]int64, len(dims.Treatments))
	for _, r := range dims.Treatments {
		treatments[r.Name] = r.TreatmentID
	}
	facilities := make(map[string]int64, len(dims.Facilities))
	for _, r := range dims.Facilities {
		facilities[r.Name] = r.FacilityID
	}
	dates := make(map[int32]bool, len(dims.Dates))
	for _, r := range dims.Dates {
		dates[r.DateID] = true
	}

	facts := make([]model.FactVisit, len(visits))
	for i := range visits {
		v := &visits[i]
		f := model.FactVisit{
			VisitID:           v.VisitID,
			PatientID:         v.PatientID,
			DiagnosisID:       lookup(diagnoses, v.Diagnosis),
			TreatmentID:       lookup(treatments, v.Treatment),
			FacilityID:        lookup(facilities, v.FacilityName),
			LengthOfStayDays:  v.LengthOfStayDays,
			TotalCost:         v.TotalCost,
			Readmission30Days: v.Readmission30Days,
			SatisfactionScore: v.SatisfactionScore,
			AdverseEvent:      v.AdverseEvent,
			Outcome:           v.Outcome,
		}
		if key := normalize.DateKey(v.VisitDate); dates[key] {
			f.DateID = &key
		}
		facts[i] = f
	}
	return facts
}

func lookup[K comparable](m map[K]int64, k K) *int64 {
	id, ok := m[k]
	if !ok {
		return nil
	}
	return &id
}

// Build dimensionalizes visits and resolves their facts.
func Build(visits []model.Visit) *Star {
	dims := Dimensionalize(visits)
	return &Star{Dimensions: *dims, Facts: BuildFacts(visits, dims)}
}

// Unresolved counts facts with at least one nil foreign key.
func (s *Star) Unresolved() int {
	var n int
	for i := range s.Facts {
		f := &s.Facts[i]
		if f.DiagnosisID == nil || f.TreatmentID == nil || f.FacilityID == nil || f.DateID == nil {
			n++
		}
	}
	return n
}
