package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/visitmart/internal/dataset"
	"github.com/gyeh/visitmart/internal/exitcode"
	"github.com/gyeh/visitmart/internal/generate"
	"github.com/gyeh/visitmart/internal/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic clinical visits as CSV (and optionally Parquet)",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	addGenerateFlags(f)
	f.String("output", "clinical_data.csv", "CSV output path")
	f.String("parquet", "", "Also write visits to this Parquet file")
	rootCmd.AddCommand(generateCmd)
}

// generateVisits runs the generator with the configured options.
func generateVisits(ctx context.Context) ([]model.Visit, error) {
	start := time.Now()
	visits, err := generate.Generate(ctx, cfg.Patients, cfg.Seed, generate.Options{
		Workers:            cfg.Workers,
		ClampProbabilities: cfg.ClampProbabilities,
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("visits", len(visits)).
		Int64("seed", cfg.Seed).
		Int("workers", cfg.Workers).
		Dur("duration", time.Since(start)).
		Msg("visits generated")
	return visits, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	visits, err := generateVisits(ctx)
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		os.Exit(exitcode.GenerateError)
	}

	if err := dataset.WriteVisitsCSVFile(cfg.OutPath, visits); err != nil {
		log.Error().Err(err).Str("path", cfg.OutPath).Msg("write csv failed")
		os.Exit(exitcode.GenerateError)
	}
	log.Info().Str("path", cfg.OutPath).Msg("csv written")

	if cfg.ParquetPath != "" {
		if err := dataset.WriteVisitsParquet(cfg.ParquetPath, visits); err != nil {
			log.Error().Err(err).Str("path", cfg.ParquetPath).Msg("write parquet failed")
			os.Exit(exitcode.GenerateError)
		}
		log.Info().Str("path", cfg.ParquetPath).Msg("parquet written")
	}

	generate.Describe(visits).Print(cmd.OutOrStdout())
	return nil
}
