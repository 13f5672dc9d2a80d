package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/visitmart/internal/catalog"
	"github.com/gyeh/visitmart/internal/model"
)

func joined(visits []model.Visit) string {
	var b strings.Builder
	for i := range visits {
		b.WriteString(strings.Join(visits[i].Record(), ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestGenerate_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := Generate(ctx, 500, 42, Options{})
	require.NoError(t, err)
	b, err := Generate(ctx, 500, 42, Options{})
	require.NoError(t, err)
	assert.Equal(t, joined(a), joined(b))

	c, err := Generate(ctx, 500, 43, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, joined(a), joined(c))
}

func TestGenerate_WorkersMatchSequential(t *testing.T) {
	ctx := context.Background()
	seq, err := Generate(ctx, 777, 7, Options{})
	require.NoError(t, err)
	for _, w := range []int{2, 3, 8} {
		par, err := Generate(ctx, 777, 7, Options{Workers: w})
		require.NoError(t, err)
		assert.Equalf(t, joined(seq), joined(par), "workers=%d", w)
	}
}

func TestGenerate_VisitIndependentOfBatchPosition(t *testing.T) {
	g, err := New(catalog.Default(), Options{})
	require.NoError(t, err)
	batch, err := g.Generate(context.Background(), 50, 9)
	require.NoError(t, err)
	v, err := g.Visit(9, 17, 50)
	require.NoError(t, err)
	assert.Equal(t, batch[17], v)
}

func TestGenerate_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Generate(context.Background(), n, 1, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, 10, 1, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = Generate(ctx, 10, 1, Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_CatalogGap(t *testing.T) {
	cat := catalog.New(catalog.Profiles[:1], []catalog.AgeBand{{MinAge: 0, MaxAge: 100, Diagnoses: []string{"Scurvy"}}}, catalog.FallbackDiagnosis)
	_, err := New(cat, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrCatalogGap)
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}

func TestNew_MalformedRange(t *testing.T) {
	bad := catalog.Profiles[0]
	bad.Cost = catalog.Range{Min: 10, Max: 1}
	cat := catalog.New([]catalog.Profile{bad}, []catalog.AgeBand{{MinAge: 0, MaxAge: 100, Diagnoses: []string{bad.Diagnosis}}}, bad.Diagnosis)
	_, err := New(cat, Options{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, catalog.ErrInvalidRange)
}

func TestGenerate_FallbackDiagnosis(t *testing.T) {
	// No band covers any generated age (1-85), so every visit falls back.
	fallback, err := catalog.Default().ProfileFor(catalog.FallbackDiagnosis)
	require.NoError(t, err)
	cat := catalog.New(catalog.Profiles, []catalog.AgeBand{{MinAge: 90, MaxAge: 100, Diagnoses: []string{"Hip Fracture"}}}, catalog.FallbackDiagnosis)
	g, err := New(cat, Options{})
	require.NoError(t, err)
	visits, err := g.Generate(context.Background(), 200, 3)
	require.NoError(t, err)
	for _, v := range visits {
		assert.Equal(t, catalog.FallbackDiagnosis, v.Diagnosis)
		assert.Equal(t, fallback.ICD10, v.ICD10Code)
		assert.Contains(t, fallback.Treatments, v.Treatment)
	}
}

func TestGenerate_Properties(t *testing.T) {
	cat := catalog.Default()
	const n = 5000
	visits, err := Generate(context.Background(), n, 2024, Options{Workers: 4})
	require.NoError(t, err)
	require.Len(t, visits, n)

	seenPatients := map[string]bool{}
	for i, v := range visits {
		assert.Equal(t, int64(i+1), v.VisitID)
		assert.False(t, seenPatients[v.PatientID], "duplicate patient id")
		seenPatients[v.PatientID] = true

		require.GreaterOrEqual(t, v.Age, 1)
		require.LessOrEqual(t, v.Age, 85)

		eligible, ok := cat.Eligible(v.Age)
		require.True(t, ok)
		require.Containsf(t, eligible, v.Diagnosis, "age %d", v.Age)

		p, err := cat.ProfileFor(v.Diagnosis)
		require.NoError(t, err)
		assert.Equal(t, p.ICD10, v.ICD10Code)
		assert.Contains(t, p.Treatments, v.Treatment)

		assert.GreaterOrEqual(t, v.TotalCost, p.Cost.Min*jitterLo-0.005)
		assert.LessOrEqual(t, v.TotalCost, p.Cost.Max*jitterHi+0.005)
		assert.GreaterOrEqual(t, v.LengthOfStayDays, p.LengthOfStay.Min)
		assert.LessOrEqual(t, v.LengthOfStayDays, p.LengthOfStay.Max)

		lo, hi := SatisfactionBand(v.Outcome)
		assert.GreaterOrEqualf(t, v.SatisfactionScore, lo, "outcome %s", v.Outcome)
		assert.LessOrEqualf(t, v.SatisfactionScore, hi, "outcome %s", v.Outcome)

		assert.Contains(t, []int{0, 1}, v.Readmission30Days)
		assert.Contains(t, []int{0, 1}, v.AdverseEvent)
		assert.Contains(t, catalog.Facilities, catalog.Facility{Name: v.FacilityName, Type: v.FacilityType})

		if v.Age >= 65 {
			assert.Equal(t, catalog.InsuranceMedicare, v.InsuranceType)
		} else {
			assert.NotEqual(t, catalog.InsuranceMedicare, v.InsuranceType)
		}
		if v.SocioeconomicStatus == catalog.TierLow && v.Age < 65 {
			assert.Contains(t, []string{catalog.InsuranceMedicaid, catalog.InsuranceUninsured}, v.InsuranceType)
		}
		assert.Equal(t, VisitDate(i, n), v.VisitDate)
	}
}

func TestGenerate_Distributions(t *testing.T) {
	visits, err := Generate(context.Background(), 20000, 11, Options{Workers: 4})
	require.NoError(t, err)
	r := Describe(visits)

	// floor(Beta(2,5)*85)+1 has mean near 24.8.
	assert.InDelta(t, 24.8, r.Age.Mean, 1.0)
	assert.InDelta(t, 0.03, adverseRate(visits), 0.01)

	var male, nonBinary int
	for _, v := range visits {
		switch v.Gender {
		case "Male":
			male++
		case "Non-binary":
			nonBinary++
		}
	}
	assert.InDelta(t, 0.49, float64(male)/float64(len(visits)), 0.02)
	assert.InDelta(t, 0.02, float64(nonBinary)/float64(len(visits)), 0.01)
}

func adverseRate(visits []model.Visit) float64 {
	var n int
	for _, v := range visits {
		n += v.AdverseEvent
	}
	return float64(n) / float64(len(visits))
}

func TestGenerate_ClampDoesNotChangeReferenceOutput(t *testing.T) {
	// Reference probabilities never leave [0, 1], so clamping is a no-op.
	ctx := context.Background()
	a, err := Generate(ctx, 1000, 5, Options{})
	require.NoError(t, err)
	b, err := Generate(ctx, 1000, 5, Options{ClampProbabilities: true})
	require.NoError(t, err)
	assert.Equal(t, joined(a), joined(b))
}

func TestGenerate_SingleVisit(t *testing.T) {
	visits, err := Generate(context.Background(), 1, 42, Options{})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	v := visits[0]
	assert.Equal(t, int64(1), v.VisitID)
	assert.Equal(t, "P100000", v.PatientID)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), v.VisitDate)
}
