package generate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gyeh/visitmart/internal/catalog"
	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

// ErrInvalidArgument is returned for a non-positive patient count or a
// catalog with malformed ranges.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	jitterLo = 0.85
	jitterHi = 1.15

	patientIDBase = 100000
	ctxCheckEvery = 1024
)

// Options tunes generation without changing its statistical contract.
type Options struct {
	// Workers is the number of goroutines drawing visits. Values below 2
	// generate sequentially. Output does not depend on it.
	Workers int
	// ClampProbabilities clamps the adjusted outcome and readmission
	// probabilities to [0, 1].
	ClampProbabilities bool
}

// Generator draws clinical visits from a catalog.
type Generator struct {
	cat  *catalog.Catalog
	opts Options
}

// New validates cat and returns a generator over it.
func New(cat *catalog.Catalog, opts Options) (*Generator, error) {
	if err := cat.Validate(); err != nil {
		if errors.Is(err, catalog.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return &Generator{cat: cat, opts: opts}, nil
}

// Generate draws count visits from the reference catalog.
func Generate(ctx context.Context, count int, seed int64, opts Options) ([]model.Visit, error) {
	g, err := New(catalog.Default(), opts)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, count, seed)
}

// Generate draws count visits. The result is a pure function of count and
// seed. Any failure discards the whole batch.
func (g *Generator) Generate(ctx context.Context, count int, seed int64) ([]model.Visit, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: patient count must be positive, got %d", ErrInvalidArgument, count)
	}
	visits := make([]model.Visit, count)

	if g.opts.Workers < 2 || count < g.opts.Workers {
		for i := range count {
			if i%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			v, err := g.Visit(seed, i, count)
			if err != nil {
				return nil, err
			}
			visits[i] = v
		}
		return visits, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	workers := g.opts.Workers
	for w := range workers {
		eg.Go(func() error {
			for i := w; i < count; i += workers {
				if (i/workers)%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				v, err := g.Visit(seed, i, count)
				if err != nil {
					return err
				}
				visits[i] = v
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return visits, nil
}

// Visit draws visit i of a batch of n. Draws are consumed from the visit's
// own stream in a fixed order: age (six), gender, ethnicity, tier,
// insurance (skipped at 65+), diagnosis, treatment, base cost, jitter,
// length of stay, comorbidity, outcome roll, success pick (on success
// only), readmission, facility, satisfaction, adverse event.
func (g *Generator) Visit(seed int64, i, n int) (model.Visit, error) {
	s := NewStream(seed, i)

	age := int(s.Beta25()*85) + 1
	gender := s.Weighted(catalog.Genders)
	ethnicity := s.Weighted(catalog.Ethnicities)
	tier := Choice(s, catalog.SocioeconomicTiers)
	insurance := AssignInsurance(s, age, tier)

	eligible, _ := g.cat.Eligible(age)
	diagnosis := Choice(s, eligible)
	p, err := g.cat.ProfileFor(diagnosis)
	if err != nil {
		return model.Visit{}, fmt.Errorf("visit %d: %w: %w", i+1, catalog.ErrCatalogGap, err)
	}

	treatment := Choice(s, p.Treatments)
	base := s.Uniform(p.Cost.Min, p.Cost.Max)
	jitter := s.Uniform(jitterLo, jitterHi)
	cost := normalize.Cents(base * jitter)
	los := s.IntRange(p.LengthOfStay.Min, p.LengthOfStay.Max)

	comorbid := s.Bernoulli(comorbidityP)
	rate := SuccessRate(p.SuccessRate, age, insurance != catalog.InsuranceUninsured, comorbid)
	if g.opts.ClampProbabilities {
		rate = clamp01(rate)
	}
	outcome := RollOutcome(s, rate)

	risk := ReadmissionRisk(outcome, age, diagnosis)
	if g.opts.ClampProbabilities {
		risk = clamp01(risk)
	}
	readmitted := s.Bernoulli(risk)

	facility := Choice(s, catalog.Facilities)
	lo, hi := SatisfactionBand(outcome)
	satisfaction := s.IntRange(lo, hi)
	adverse := s.Bernoulli(adverseEventP)

	return model.Visit{
		VisitID:             int64(i) + 1,
		PatientID:           fmt.Sprintf("P%d", patientIDBase+i),
		Age:                 age,
		Gender:              gender,
		Ethnicity:           ethnicity,
		SocioeconomicStatus: tier,
		InsuranceType:       insurance,
		VisitDate:           VisitDate(i, n),
		FacilityName:        facility.Name,
		FacilityType:        facility.Type,
		Diagnosis:           diagnosis,
		ICD10Code:           p.ICD10,
		Treatment:           treatment,
		Outcome:             outcome,
		LengthOfStayDays:    los,
		TotalCost:           cost,
		Readmission30Days:   flag(readmitted),
		SatisfactionScore:   satisfaction,
		AdverseEvent:        flag(adverse),
	}, nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
