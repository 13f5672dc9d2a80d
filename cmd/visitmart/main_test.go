package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyeh/visitmart/internal/dataset"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("visitmart %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestGenerateThenPlan(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "visits.csv")
	parquetPath := filepath.Join(dir, "visits.parquet")

	out := execute(t, "generate", "--patients", "80", "--seed", "7",
		"--output", csvPath, "--parquet", parquetPath, "--log-level", "error")
	if !strings.Contains(out, "Visits:     80") {
		t.Errorf("generate output missing visit count:\n%s", out)
	}

	fromCSV, err := dataset.ReadVisitsFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	fromParquet, err := dataset.ReadVisitsFile(parquetPath)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(fromCSV) != 80 || len(fromParquet) != 80 {
		t.Fatalf("csv=%d parquet=%d visits, want 80", len(fromCSV), len(fromParquet))
	}
	if fromCSV[79] != fromParquet[79] {
		t.Errorf("csv and parquet disagree on last visit")
	}

	out = execute(t, "plan", "--file", csvPath, "--log-level", "error")
	for _, want := range []string{"=== visitmart plan ===", csvPath, "fact_clinical_visits", "80"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
}
