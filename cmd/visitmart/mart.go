package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/visitmart/internal/dataset"
	"github.com/gyeh/visitmart/internal/db"
	"github.com/gyeh/visitmart/internal/etl"
	"github.com/gyeh/visitmart/internal/exitcode"
	"github.com/gyeh/visitmart/internal/mart"
)

var martCmd = &cobra.Command{
	Use:   "mart",
	Short: "Rebuild the research operations data mart from the warehouse",
	RunE:  runMart,
}

func init() {
	f := martCmd.Flags()
	f.String("as-of", "", "Reference time for days since last visit (default now)")
	f.String("parquet", "", "Also write patient summaries to this Parquet file")
	rootCmd.AddCommand(martCmd)
}

func runMart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	asOf, err := cfg.AsOf(time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, rows, err := etl.BuildMart(ctx, pool, log, asOf)
	if err != nil {
		pool.Close()
		exitForPipeline(err, "data mart build")
	}

	if cfg.ParquetPath != "" {
		if err := dataset.WriteSummariesParquet(cfg.ParquetPath, rows); err != nil {
			log.Error().Err(err).Str("path", cfg.ParquetPath).Msg("write parquet failed")
			os.Exit(exitcode.CopyError)
		}
		log.Info().Str("path", cfg.ParquetPath).Msg("summaries written")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Data mart build complete: %d patient summaries (%.1fs)\n",
		summary.RowsSummaries, summary.DurationTotal.Seconds())
	mart.Stats(rows).Print(out)
	return nil
}
