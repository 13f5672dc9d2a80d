package generate

import (
	"slices"
	"time"

	"github.com/gyeh/visitmart/internal/catalog"
	"github.com/gyeh/visitmart/internal/model"
)

const (
	medicareAge = 65

	lowTierMedicaidP   = 0.70
	otherTierPrivateP  = 0.85
	comorbidityP       = 0.15
	comorbidityPenalty = 0.10
	uninsuredPenalty   = 0.05
	agePenaltyPerYear  = 0.001
	agePenaltyFrom     = 50
	unchangedBand      = 0.20

	readmitBase         = 0.10
	readmitPoorOutcome  = 0.15
	readmitElderly      = 0.08
	readmitElderlyAbove = 65
	readmitHighRiskDx   = 0.12

	adverseEventP = 0.03

	windowDays = 365 * 3
)

// highReadmitDiagnoses carry extra 30-day readmission risk.
var highReadmitDiagnoses = []string{"COPD", "Coronary Artery Disease", "Pneumonia"}

var windowStart = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

// AssignInsurance applies the coverage rule. Patients aged 65 and over are
// always Medicare and no draw is consumed; otherwise exactly one draw is.
func AssignInsurance(s *Stream, age int, tier string) string {
	if age >= medicareAge {
		return catalog.InsuranceMedicare
	}
	if tier == catalog.TierLow {
		if s.Bernoulli(lowTierMedicaidP) {
			return catalog.InsuranceMedicaid
		}
		return catalog.InsuranceUninsured
	}
	if s.Bernoulli(otherTierPrivateP) {
		return catalog.InsurancePrivate
	}
	return catalog.InsuranceMedicaid
}

// SuccessRate adjusts the profile's base success rate for age, insurance
// and comorbidity. The result is not clamped.
func SuccessRate(base float64, age int, insured, comorbid bool) float64 {
	rate := base
	if age > agePenaltyFrom {
		rate -= float64(age-agePenaltyFrom) * agePenaltyPerYear
	}
	if !insured {
		rate -= uninsuredPenalty
	}
	if comorbid {
		rate -= comorbidityPenalty
	}
	return rate
}

// RollOutcome draws the outcome against an adjusted success rate. A success
// consumes a second draw to pick Recovered or Improved.
func RollOutcome(s *Stream, rate float64) string {
	r := s.Float64()
	switch {
	case r < rate:
		return Choice(s, []string{model.OutcomeRecovered, model.OutcomeImproved})
	case r < rate+unchangedBand:
		return model.OutcomeUnchanged
	default:
		return model.OutcomeWorsened
	}
}

// ReadmissionRisk sums the 30-day readmission risk factors. The result is
// not clamped.
func ReadmissionRisk(outcome string, age int, diagnosis string) float64 {
	risk := readmitBase
	if outcome == model.OutcomeWorsened || outcome == model.OutcomeUnchanged {
		risk += readmitPoorOutcome
	}
	if age > readmitElderlyAbove {
		risk += readmitElderly
	}
	if slices.Contains(highReadmitDiagnoses, diagnosis) {
		risk += readmitHighRiskDx
	}
	return risk
}

// SatisfactionBand returns the inclusive score range for an outcome.
func SatisfactionBand(outcome string) (lo, hi int) {
	switch outcome {
	case model.OutcomeRecovered:
		return 8, 10
	case model.OutcomeImproved:
		return 6, 9
	case model.OutcomeUnchanged:
		return 4, 7
	default:
		return 1, 5
	}
}

// VisitDate spreads visit i of n evenly over the three-year window that
// starts on 2022-01-01.
func VisitDate(i, n int) time.Time {
	return windowStart.AddDate(0, 0, i*windowDays/n)
}

func clamp01(p float64) float64 {
	return min(max(p, 0), 1)
}
