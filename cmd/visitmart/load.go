package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/visitmart/internal/dataset"
	"github.com/gyeh/visitmart/internal/db"
	"github.com/gyeh/visitmart/internal/etl"
	"github.com/gyeh/visitmart/internal/exitcode"
	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load visits into the warehouse star schema (full refresh)",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	addGenerateFlags(f)
	f.String("file", "", "Load visits from a CSV or Parquet file instead of generating")
	rootCmd.AddCommand(loadCmd)
}

// loadVisits reads cfg.FilePath, or generates a batch when no file is set.
// On failure it also returns the exit code to use.
func loadVisits(ctx context.Context) ([]model.Visit, etl.Source, int, error) {
	if cfg.FilePath == "" {
		visits, err := generateVisits(ctx)
		if err != nil {
			return nil, etl.Source{}, exitcode.GenerateError, err
		}
		records := make([][]string, len(visits))
		for i := range visits {
			records[i] = visits[i].Record()
		}
		src := etl.Source{
			Name:   fmt.Sprintf("generated patients=%d seed=%d", cfg.Patients, cfg.Seed),
			SHA256: normalize.RecordsHash(records),
		}
		return visits, src, exitcode.Success, nil
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, etl.Source{}, exitcode.ValidationError, err
	}
	visits, err := dataset.ReadVisitsFile(cfg.FilePath)
	if err != nil {
		return nil, etl.Source{}, exitcode.ValidationError, err
	}
	log.Info().
		Str("file", cfg.FilePath).
		Str("sha256", sha).
		Int("visits", len(visits)).
		Msg("visits read")
	return visits, etl.Source{Name: cfg.FilePath, SHA256: sha}, exitcode.Success, nil
}

// exitForPipeline logs a pipeline failure and exits with the code for its
// phase.
func exitForPipeline(err error, what string) {
	var pe *etl.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg(what + " failed")
		switch pe.Phase {
		case etl.PhasePreflight:
			os.Exit(exitcode.ValidationError)
		case etl.PhaseTruncate, etl.PhaseCopy:
			os.Exit(exitcode.CopyError)
		default:
			os.Exit(exitcode.TransformError)
		}
	}
	log.Error().Err(err).Msg(what + " failed")
	os.Exit(exitcode.TransformError)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	visits, src, code, err := loadVisits(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load visits")
		os.Exit(code)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := etl.LoadWarehouse(ctx, pool, log, visits, src)
	if err != nil {
		pool.Close()
		exitForPipeline(err, "warehouse load")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Warehouse load complete: %d patients, %d visits, %d dates (%.1fs)\n",
		summary.RowsPatients, summary.RowsFacts, summary.RowsDates, summary.DurationTotal.Seconds())
	return nil
}
