package warehouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/visitmart/internal/catalog"
	"github.com/gyeh/visitmart/internal/generate"
	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

// fakeVisits builds n visits spread over a small pool of patients so that
// patients repeat, which generated batches never do.
func fakeVisits(seed uint64, n, patients int) []model.Visit {
	f := gofakeit.New(seed)
	cat := catalog.Default()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Visit, n)
	for i := range out {
		age := f.Number(0, 100)
		eligible, _ := cat.Eligible(age)
		dx := f.RandomString(eligible)
		p, _ := cat.ProfileFor(dx)
		fac := catalog.Facilities[f.Number(0, len(catalog.Facilities)-1)]
		out[i] = model.Visit{
			VisitID:             int64(i + 1),
			PatientID:           fmt.Sprintf("P%d", 100000+f.Number(0, patients-1)),
			Age:                 age,
			Gender:              f.RandomString([]string{"Male", "Female", "Non-binary"}),
			Ethnicity:           f.RandomString([]string{"White", "Black", "Hispanic", "Asian"}),
			SocioeconomicStatus: f.RandomString(catalog.SocioeconomicTiers),
			InsuranceType:       f.RandomString(catalog.InsuranceTypes),
			VisitDate:           start.AddDate(0, 0, f.Number(0, 60)),
			FacilityName:        fac.Name,
			FacilityType:        fac.Type,
			Diagnosis:           dx,
			ICD10Code:           p.ICD10,
			Treatment:           f.RandomString(p.Treatments),
			Outcome:             f.RandomString([]string{model.OutcomeRecovered, model.OutcomeImproved, model.OutcomeUnchanged, model.OutcomeWorsened}),
			LengthOfStayDays:    f.Number(p.LengthOfStay.Min, p.LengthOfStay.Max),
			TotalCost:           normalize.Cents(f.Float64Range(p.Cost.Min, p.Cost.Max)),
			Readmission30Days:   f.Number(0, 1),
			SatisfactionScore:   f.Number(1, 10),
			AdverseEvent:        f.Number(0, 1),
		}
	}
	return out
}

func TestDimensionalize_DedupAndKeys(t *testing.T) {
	visits := fakeVisits(1, 400, 60)
	d := Dimensionalize(visits)

	distinct := func(key func(model.Visit) string) int {
		seen := map[string]bool{}
		for _, v := range visits {
			seen[key(v)] = true
		}
		return len(seen)
	}
	assert.Len(t, d.Patients, distinct(func(v model.Visit) string { return v.PatientID }))
	assert.Len(t, d.Diagnoses, distinct(func(v model.Visit) string { return v.Diagnosis }))
	assert.Len(t, d.Treatments, distinct(func(v model.Visit) string { return v.Treatment }))
	assert.Len(t, d.Facilities, distinct(func(v model.Visit) string { return v.FacilityName }))
	assert.Len(t, d.Dates, distinct(func(v model.Visit) string { return v.VisitDate.Format(model.DateLayout) }))

	for i, p := range d.Patients {
		assert.Equal(t, int64(i+1), p.PatientKey)
		assert.Equal(t, AgeGroup(p.Age), p.AgeGroup)
	}
	for i, r := range d.Diagnoses {
		assert.Equal(t, int64(i+1), r.DiagnosisID)
	}
	for i := 1; i < len(d.Dates); i++ {
		assert.Less(t, d.Dates[i-1].DateID, d.Dates[i].DateID)
	}
}

func TestDimensionalize_FirstObservedWins(t *testing.T) {
	day := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	visits := []model.Visit{
		{PatientID: "P1", Age: 30, Gender: "Female", Diagnosis: "Asthma", ICD10Code: "J45", Treatment: "Bronchodilators", FacilityName: "Suburban Clinic", FacilityType: "Clinic", VisitDate: day},
		{PatientID: "P2", Age: 70, Gender: "Male", Diagnosis: "COPD", ICD10Code: "J44", Treatment: "Oxygen Therapy", FacilityName: "Regional Trauma Center", FacilityType: "Hospital", VisitDate: day.AddDate(0, 0, -3)},
		{PatientID: "P1", Age: 31, Gender: "Male", Diagnosis: "Asthma", ICD10Code: "XXX", Treatment: "Bronchodilators", FacilityName: "Suburban Clinic", FacilityType: "Clinic", VisitDate: day},
	}
	d := Dimensionalize(visits)
	require.Len(t, d.Patients, 2)
	assert.Equal(t, "P1", d.Patients[0].PatientID)
	assert.Equal(t, 30, d.Patients[0].Age)
	assert.Equal(t, "Female", d.Patients[0].Gender)
	assert.Equal(t, "19-35", d.Patients[0].AgeGroup)
	assert.Equal(t, "66+", d.Patients[1].AgeGroup)

	require.Len(t, d.Diagnoses, 2)
	assert.Equal(t, "J45", d.Diagnoses[0].ICD10Code)
	assert.Equal(t, "Respiratory", d.Diagnoses[0].Category)

	require.Len(t, d.Conflicts, 1)
	assert.Equal(t, Conflict{Table: "dim_diagnoses", Key: "Asthma", Kept: "J45", Dropped: "XXX"}, d.Conflicts[0])

	require.Len(t, d.Treatments, 2)
	assert.Equal(t, "Other", d.Treatments[0].Type)
	assert.Equal(t, "Therapy", d.Treatments[1].Type)

	// Dates sort by calendar date, not appearance.
	require.Len(t, d.Dates, 2)
	assert.Equal(t, int32(20220428), d.Dates[0].DateID)
	assert.Equal(t, int32(20220501), d.Dates[1].DateID)
}

func TestDimensionalize_FacilityTypeConflict(t *testing.T) {
	day := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	visits := []model.Visit{
		{PatientID: "P1", Diagnosis: "Asthma", FacilityName: "Suburban Clinic", FacilityType: "Clinic", VisitDate: day},
		{PatientID: "P2", Diagnosis: "Asthma", FacilityName: "Suburban Clinic", FacilityType: "Hospital", VisitDate: day},
		{PatientID: "P3", Diagnosis: "Asthma", FacilityName: "Suburban Clinic", FacilityType: "Hospital", VisitDate: day},
	}
	s := Build(visits)
	require.Len(t, s.Facilities, 1)
	assert.Equal(t, "Clinic", s.Facilities[0].Type)
	assert.Equal(t, []Conflict{{Table: "dim_facilities", Key: "Suburban Clinic", Kept: "Clinic", Dropped: "Hospital"}}, s.Conflicts)
	for _, f := range s.Facts {
		require.NotNil(t, f.FacilityID)
		assert.Equal(t, int64(1), *f.FacilityID)
	}
}

func TestDimensionalize_Idempotent(t *testing.T) {
	visits := fakeVisits(2, 300, 40)
	a := Dimensionalize(visits)
	b := Dimensionalize(visits)
	assert.Equal(t, a, b)
}

func TestDimensionalize_OrderOnlyRenamesKeys(t *testing.T) {
	visits := fakeVisits(3, 200, 50)
	reversed := make([]model.Visit, len(visits))
	for i, v := range visits {
		reversed[len(visits)-1-i] = v
	}
	a := Dimensionalize(visits)
	b := Dimensionalize(reversed)

	names := func(rows []model.DiagnosisDim) map[string]string {
		m := map[string]string{}
		for _, r := range rows {
			m[r.Name] = r.Category
		}
		return m
	}
	assert.Equal(t, names(a.Diagnoses), names(b.Diagnoses))
	assert.Len(t, b.Patients, len(a.Patients))
	assert.Len(t, b.Treatments, len(a.Treatments))
	assert.Equal(t, a.Dates, b.Dates)
}

func TestBuildFacts_RoundTrip(t *testing.T) {
	visits, err := generate.Generate(context.Background(), 1000, 42, generate.Options{})
	require.NoError(t, err)
	star := Build(visits)
	require.Len(t, star.Facts, len(visits))
	assert.Zero(t, star.Unresolved())
	assert.Empty(t, star.Conflicts)

	diagnoses := map[int64]model.DiagnosisDim{}
	for _, r := range star.Diagnoses {
		diagnoses[r.DiagnosisID] = r
	}
	treatments := map[int64]string{}
	for _, r := range star.Treatments {
		treatments[r.TreatmentID] = r.Name
	}
	facilities := map[int64]model.FacilityDim{}
	for _, r := range star.Facilities {
		facilities[r.FacilityID] = r
	}
	dates := map[int32]time.Time{}
	for _, r := range star.Dates {
		dates[r.DateID] = r.FullDate
	}

	for i, f := range star.Facts {
		v := visits[i]
		assert.Equal(t, v.VisitID, f.VisitID)
		assert.Equal(t, v.PatientID, f.PatientID)
		assert.Equal(t, v.Diagnosis, diagnoses[*f.DiagnosisID].Name)
		assert.Equal(t, v.ICD10Code, diagnoses[*f.DiagnosisID].ICD10Code)
		assert.Equal(t, v.Treatment, treatments[*f.TreatmentID])
		assert.Equal(t, v.FacilityName, facilities[*f.FacilityID].Name)
		assert.Equal(t, v.FacilityType, facilities[*f.FacilityID].Type)
		assert.Equal(t, v.VisitDate, dates[*f.DateID])
		assert.Equal(t, v.TotalCost, f.TotalCost)
		assert.Equal(t, v.Outcome, f.Outcome)
	}
}

func TestBuildFacts_LeftJoin(t *testing.T) {
	visits := fakeVisits(4, 50, 10)
	dims := Dimensionalize(visits[:1])
	facts := BuildFacts(visits, dims)
	require.Len(t, facts, len(visits))

	first := facts[0]
	require.NotNil(t, first.DiagnosisID)
	require.NotNil(t, first.TreatmentID)
	require.NotNil(t, first.FacilityID)
	require.NotNil(t, first.DateID)

	for i, f := range facts {
		v := visits[i]
		assert.Equal(t, v.VisitID, f.VisitID)
		if v.Diagnosis != visits[0].Diagnosis {
			assert.Nil(t, f.DiagnosisID)
		}
		if v.Treatment != visits[0].Treatment {
			assert.Nil(t, f.TreatmentID)
		}
		if normalize.DateKey(v.VisitDate) != normalize.DateKey(visits[0].VisitDate) {
			assert.Nil(t, f.DateID)
		}
	}
	star := &Star{Dimensions: *dims, Facts: facts}
	assert.Positive(t, star.Unresolved())
}

func TestBuild_Empty(t *testing.T) {
	star := Build(nil)
	assert.Empty(t, star.Patients)
	assert.Empty(t, star.Facts)
	assert.Zero(t, star.Unresolved())
}
