// Package mart aggregates the warehouse to one research summary row per
// patient.
package mart

import (
	"cmp"
	"slices"
	"time"

	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
	"github.com/gyeh/visitmart/internal/warehouse"
)

const (
	chronicVisitThreshold  = 3
	highRiskVisitThreshold = 5
)

// RowsFromStar joins an in-memory star the same way the warehouse extract
// query does: every patient left-joined to its facts and their dates,
// ordered by patient id then visit date with undated rows last.
func RowsFromStar(star *warehouse.Star) []model.WarehouseRow {
	byPatient := make(map[string][]*model.FactVisit, len(star.Patients))
	for i := range star.Facts {
		f := &star.Facts[i]
		byPatient[f.PatientID] = append(byPatient[f.PatientID], f)
	}
	dates := make(map[int32]time.Time, len(star.Dates))
	for _, d := range star.Dates {
		dates[d.DateID] = d.FullDate
	}

	var rows []model.WarehouseRow
	for _, p := range star.Patients {
		base := model.WarehouseRow{
			PatientID:     p.PatientID,
			Age:           p.Age,
			AgeGroup:      p.AgeGroup,
			Gender:        p.Gender,
			Ethnicity:     p.Ethnicity,
			InsuranceType: p.InsuranceType,
		}
		facts := byPatient[p.PatientID]
		if len(facts) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, f := range facts {
			r := base
			r.VisitID = &f.VisitID
			r.TotalCost = &f.TotalCost
			r.SatisfactionScore = &f.SatisfactionScore
			r.Readmission30Days = &f.Readmission30Days
			r.AdverseEvent = &f.AdverseEvent
			if f.DateID != nil {
				if d, ok := dates[*f.DateID]; ok {
					r.VisitDate = &d
				}
			}
			rows = append(rows, r)
		}
	}
	slices.SortStableFunc(rows, func(a, b model.WarehouseRow) int {
		if c := cmp.Compare(a.PatientID, b.PatientID); c != 0 {
			return c
		}
		switch {
		case a.VisitDate == nil && b.VisitDate == nil:
			return 0
		case a.VisitDate == nil:
			return 1
		case b.VisitDate == nil:
			return -1
		}
		return a.VisitDate.Compare(*b.VisitDate)
	})
	return rows
}

type accumulator struct {
	summary  model.PatientSummary
	cost     float64
	satSum   int
	satCount int
}

// Summarize groups warehouse rows by patient id. Demographics come from the
// first row seen for the patient; a row counts as a visit when it carries a
// visit id. now is both the reference for days since last visit and the
// last_updated stamp. Output is sorted by patient id.
func Summarize(rows []model.WarehouseRow, now time.Time) []model.PatientSummary {
	groups := map[string]*accumulator{}
	var order []string

	for i := range rows {
		r := &rows[i]
		acc, ok := groups[r.PatientID]
		if !ok {
			acc = &accumulator{summary: model.PatientSummary{
				PatientID:     r.PatientID,
				Age:           r.Age,
				AgeGroup:      r.AgeGroup,
				Gender:        r.Gender,
				Ethnicity:     r.Ethnicity,
				InsuranceType: r.InsuranceType,
			}}
			groups[r.PatientID] = acc
			order = append(order, r.PatientID)
		}
		if r.VisitID == nil {
			continue
		}
		s := &acc.summary
		s.TotalVisits++
		if r.VisitDate != nil {
			d := *r.VisitDate
			if s.FirstVisitDate == nil || d.Before(*s.FirstVisitDate) {
				s.FirstVisitDate = &d
			}
			if s.LastVisitDate == nil || d.After(*s.LastVisitDate) {
				s.LastVisitDate = &d
			}
		}
		if r.TotalCost != nil {
			acc.cost += *r.TotalCost
		}
		if r.SatisfactionScore != nil {
			acc.satSum += *r.SatisfactionScore
			acc.satCount++
		}
		if r.Readmission30Days != nil {
			s.Readmissions30Day += *r.Readmission30Days
		}
		if r.AdverseEvent != nil {
			s.AdverseEventsCount += *r.AdverseEvent
		}
	}

	slices.Sort(order)
	out := make([]model.PatientSummary, 0, len(order))
	for _, id := range order {
		acc := groups[id]
		s := acc.summary
		s.TotalCost = normalize.Cents(acc.cost)
		if acc.satCount > 0 {
			avg := normalize.RoundHalfEven(float64(acc.satSum)/float64(acc.satCount), 1)
			s.AvgSatisfaction = &avg
		}
		if s.LastVisitDate != nil {
			days := normalize.DaysBetween(*s.LastVisitDate, now)
			s.DaysSinceLastVisit = &days
		}
		if s.TotalVisits >= chronicVisitThreshold {
			s.ChronicConditions++
		}
		if s.Readmissions30Day > 0 {
			s.ChronicConditions++
		}
		s.HighRiskPatient = s.Readmissions30Day > 0 || s.AdverseEventsCount > 0 || s.TotalVisits > highRiskVisitThreshold
		s.LastUpdated = now
		out = append(out, s)
	}
	return out
}

// SummarizeStar is RowsFromStar followed by Summarize.
func SummarizeStar(star *warehouse.Star, now time.Time) []model.PatientSummary {
	return Summarize(RowsFromStar(star), now)
}
