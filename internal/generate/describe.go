package generate

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/gyeh/visitmart/internal/model"
)

// Count is a value and how many visits carry it.
type Count struct {
	Value string
	N     int
}

// AgeStats is the five-number summary of visit ages plus mean and sample
// standard deviation.
type AgeStats struct {
	Mean, Std               float64
	Min, P25, P50, P75, Max float64
}

// Report summarizes a generated batch.
type Report struct {
	Visits          int
	From, To        time.Time
	Age             AgeStats
	TopDiagnoses    []Count
	Outcomes        []Count
	MeanCost        float64
	ReadmissionRate float64
}

// Describe computes the batch report. It returns a zero Report for an empty
// batch.
func Describe(visits []model.Visit) Report {
	var r Report
	if len(visits) == 0 {
		return r
	}
	r.Visits = len(visits)
	r.From, r.To = visits[0].VisitDate, visits[0].VisitDate

	ages := make([]float64, 0, len(visits))
	diagnoses := map[string]int{}
	outcomes := map[string]int{}
	var cost float64
	var readmits int
	for _, v := range visits {
		if v.VisitDate.Before(r.From) {
			r.From = v.VisitDate
		}
		if v.VisitDate.After(r.To) {
			r.To = v.VisitDate
		}
		ages = append(ages, float64(v.Age))
		diagnoses[v.Diagnosis]++
		outcomes[v.Outcome]++
		cost += v.TotalCost
		readmits += v.Readmission30Days
	}
	n := float64(len(visits))
	r.MeanCost = cost / n
	r.ReadmissionRate = float64(readmits) / n
	r.Age = describeAges(ages)

	r.TopDiagnoses = rank(diagnoses)
	if len(r.TopDiagnoses) > 5 {
		r.TopDiagnoses = r.TopDiagnoses[:5]
	}
	r.Outcomes = rank(outcomes)
	return r
}

// rank orders counts descending, ties by value.
func rank(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for v, n := range m {
		out = append(out, Count{Value: v, N: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

func describeAges(ages []float64) AgeStats {
	slices.Sort(ages)
	var sum float64
	for _, a := range ages {
		sum += a
	}
	mean := sum / float64(len(ages))
	var ss float64
	for _, a := range ages {
		ss += (a - mean) * (a - mean)
	}
	st := AgeStats{
		Mean: mean,
		Min:  ages[0],
		P25:  quantile(ages, 0.25),
		P50:  quantile(ages, 0.50),
		P75:  quantile(ages, 0.75),
		Max:  ages[len(ages)-1],
	}
	if len(ages) > 1 {
		st.Std = math.Sqrt(ss / float64(len(ages)-1))
	}
	return st
}

// quantile interpolates linearly between closest ranks of sorted xs.
func quantile(xs []float64, q float64) float64 {
	pos := q * float64(len(xs)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return xs[lo] + (xs[hi]-xs[lo])*(pos-float64(lo))
}

// Print writes the report in plain text.
func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Visits:     %d\n", r.Visits)
	if r.Visits == 0 {
		return
	}
	fmt.Fprintf(w, "Date range: %s to %s\n", r.From.Format(model.DateLayout), r.To.Format(model.DateLayout))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Age distribution:")
	fmt.Fprintf(w, "  mean %.2f  std %.2f\n", r.Age.Mean, r.Age.Std)
	fmt.Fprintf(w, "  min %.0f  25%% %.0f  50%% %.0f  75%% %.0f  max %.0f\n",
		r.Age.Min, r.Age.P25, r.Age.P50, r.Age.P75, r.Age.Max)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top diagnoses:")
	for _, c := range r.TopDiagnoses {
		fmt.Fprintf(w, "  %-34s %6d\n", c.Value, c.N)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outcomes:")
	for _, c := range r.Outcomes {
		fmt.Fprintf(w, "  %-34s %6d\n", c.Value, c.N)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Average cost:            $%.2f\n", r.MeanCost)
	fmt.Fprintf(w, "30-day readmission rate: %.1f%%\n", r.ReadmissionRate*100)
}
