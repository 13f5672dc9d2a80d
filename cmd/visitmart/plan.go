package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/visitmart/internal/exitcode"
	"github.com/gyeh/visitmart/internal/generate"
	"github.com/gyeh/visitmart/internal/warehouse"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: dataset and star schema stats (no writes)",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	addGenerateFlags(f)
	f.String("file", "", "Read visits from a CSV or Parquet file instead of generating")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	visits, src, code, err := loadVisits(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load visits")
		os.Exit(code)
	}

	star := warehouse.Build(visits)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== visitmart plan ===")
	fmt.Fprintf(out, "Source:     %s\n", src.Name)
	fmt.Fprintf(out, "SHA-256:    %s\n", src.SHA256)
	fmt.Fprintln(out)
	generate.Describe(visits).Print(out)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Star schema:")
	fmt.Fprintf(out, "  %-22s %d\n", "dim_patients", len(star.Patients))
	fmt.Fprintf(out, "  %-22s %d\n", "dim_diagnoses", len(star.Diagnoses))
	fmt.Fprintf(out, "  %-22s %d\n", "dim_treatments", len(star.Treatments))
	fmt.Fprintf(out, "  %-22s %d\n", "dim_facilities", len(star.Facilities))
	fmt.Fprintf(out, "  %-22s %d\n", "dim_time", len(star.Dates))
	fmt.Fprintf(out, "  %-22s %d\n", "fact_clinical_visits", len(star.Facts))
	if n := star.Unresolved(); n > 0 {
		fmt.Fprintf(out, "  %-22s %d\n", "unresolved keys", n)
	}
	return nil
}
