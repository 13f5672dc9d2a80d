// mkfixture writes a small, diverse visit fixture from a larger batch.
// Two-pass: first buckets every visit by the traits tests care about, then
// takes from the buckets in priority order up to --rows.
// Usage: go run ./cmd/mkfixture --patients 20000 --out testdata/visits-small --rows 200
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/gyeh/visitmart/internal/dataset"
	"github.com/gyeh/visitmart/internal/generate"
	"github.com/gyeh/visitmart/internal/model"
)

type bucket struct {
	name  string
	match func(*model.Visit) bool
	want  int
	rows  []int
}

func main() {
	in := flag.String("in", "", "input CSV or Parquet (default: generate)")
	patients := flag.Int("patients", 20000, "visits to generate when --in is empty")
	seed := flag.Int64("seed", 42, "generator seed")
	out := flag.String("out", "testdata/visits-small", "output path without extension")
	maxRows := flag.Int("rows", 200, "max rows to output")
	flag.Parse()

	var visits []model.Visit
	var err error
	if *in != "" {
		visits, err = dataset.ReadVisitsFile(*in)
	} else {
		visits, err = generate.Generate(context.Background(), *patients, *seed, generate.Options{})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load visits: %v\n", err)
		os.Exit(1)
	}

	selected := selectDiverse(visits, *maxRows)

	if err := dataset.WriteVisitsCSVFile(*out+".csv", selected); err != nil {
		fmt.Fprintf(os.Stderr, "write csv: %v\n", err)
		os.Exit(1)
	}
	if err := dataset.WriteVisitsParquet(*out+".parquet", selected); err != nil {
		fmt.Fprintf(os.Stderr, "write parquet: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scanned %d visits, wrote %d to %s.{csv,parquet}\n", len(visits), len(selected), *out)
	generate.Describe(selected).Print(os.Stdout)
}

// selectDiverse returns up to max visits, in their original order, covering
// every diagnosis and outcome plus readmissions, adverse events and
// Medicare patients before filling with ordinary visits.
func selectDiverse(visits []model.Visit, max int) []model.Visit {
	seen := map[string]bool{}
	buckets := []*bucket{
		{name: "diagnosis", want: max, match: func(v *model.Visit) bool {
			if seen["dx:"+v.Diagnosis] {
				return false
			}
			seen["dx:"+v.Diagnosis] = true
			return true
		}},
		{name: "outcome", want: max, match: func(v *model.Visit) bool {
			if seen["outcome:"+v.Outcome] {
				return false
			}
			seen["outcome:"+v.Outcome] = true
			return true
		}},
		{name: "readmission", want: 20, match: func(v *model.Visit) bool { return v.Readmission30Days == 1 }},
		{name: "adverse", want: 15, match: func(v *model.Visit) bool { return v.AdverseEvent == 1 }},
		{name: "medicare", want: 15, match: func(v *model.Visit) bool { return v.Age >= 65 }},
		{name: "general", want: max, match: func(*model.Visit) bool { return true }},
	}

	// Pass 1: place each visit in the first bucket that wants it.
	for i := range visits {
		for _, b := range buckets {
			if len(b.rows) < b.want && b.match(&visits[i]) {
				b.rows = append(b.rows, i)
				break
			}
		}
	}

	// Pass 2: merge buckets in priority order.
	picked := map[int]bool{}
	var idx []int
	for _, b := range buckets {
		for _, i := range b.rows {
			if len(idx) >= max {
				break
			}
			if !picked[i] {
				picked[i] = true
				idx = append(idx, i)
			}
		}
	}
	sort.Ints(idx)

	selected := make([]model.Visit, len(idx))
	for j, i := range idx {
		selected[j] = visits[i]
	}
	return selected
}
