package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gyeh/visitmart/internal/config"
	"github.com/gyeh/visitmart/internal/exitcode"
	"github.com/gyeh/visitmart/internal/logging"
)

var (
	cfg        config.Config
	configPath string
	log        zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "visitmart",
	Short: "Synthetic clinical visits → warehouse → research data mart",
	Long: "Generates synthetic clinical visit records, loads them into a PostgreSQL star schema " +
		"via the COPY protocol, and builds a patient-level research operations data mart.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	d := config.Defaults()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.String("dsn", "", "Postgres connection string (or set VISITMART_DSN / DATABASE_URL)")
	pf.String("log-format", d.LogFormat, "Log format: text or json")
	pf.String("log-level", d.LogLevel, "Log level: debug, info, warn or error")
}

// loadConfig resolves flags, environment and the config file into cfg and
// sets up the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cmd.Flags(), configPath)
	if err != nil {
		l := logging.Setup("text", "info")
		l.Error().Err(err).Msg("load config")
		os.Exit(exitcode.UsageError)
	}
	cfg = *c
	log = logging.Setup(cfg.LogFormat, cfg.LogLevel)
	return nil
}

// addGenerateFlags registers the flags that control visit generation.
func addGenerateFlags(f *pflag.FlagSet) {
	d := config.Defaults()
	f.Int("patients", d.Patients, "Number of visit records to generate")
	f.Int64("seed", d.Seed, "Random seed")
	f.Int("workers", d.Workers, "Generator workers (0 or 1 generates sequentially)")
	f.Bool("clamp-probabilities", d.ClampProbabilities, "Clamp derived probabilities to [0, 1]")
}
