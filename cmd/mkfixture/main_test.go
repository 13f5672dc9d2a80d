package main

import (
	"context"
	"testing"

	"github.com/gyeh/visitmart/internal/generate"
	"github.com/gyeh/visitmart/internal/model"
)

func TestSelectDiverse(t *testing.T) {
	visits, err := generate.Generate(context.Background(), 5000, 42, generate.Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got := selectDiverse(visits, 120)
	if len(got) != 120 {
		t.Fatalf("selected %d visits, want 120", len(got))
	}

	diagnoses := map[string]bool{}
	outcomes := map[string]bool{}
	readmitted := 0
	for i, v := range got {
		if i > 0 && v.VisitID <= got[i-1].VisitID {
			t.Fatalf("selection not in original order at %d", i)
		}
		diagnoses[v.Diagnosis] = true
		outcomes[v.Outcome] = true
		readmitted += v.Readmission30Days
	}
	for _, v := range visits {
		if !diagnoses[v.Diagnosis] {
			t.Errorf("diagnosis %q not covered", v.Diagnosis)
		}
		if !outcomes[v.Outcome] {
			t.Errorf("outcome %q not covered", v.Outcome)
		}
	}
	if readmitted < 20 {
		t.Errorf("only %d readmissions selected", readmitted)
	}
}

func TestSelectDiverse_SmallInput(t *testing.T) {
	visits := []model.Visit{{VisitID: 1, Diagnosis: "Asthma"}, {VisitID: 2, Diagnosis: "Asthma"}}
	if got := selectDiverse(visits, 10); len(got) != 2 {
		t.Errorf("selected %d, want 2", len(got))
	}
}
