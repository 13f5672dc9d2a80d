package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables that override settings,
// e.g. VISITMART_LOG_LEVEL.
const EnvPrefix = "VISITMART"

// Config holds all runtime configuration for a visitmart run. Keys match
// the command-line flag names.
type Config struct {
	Patients           int    `mapstructure:"patients"`
	Seed               int64  `mapstructure:"seed"`
	Workers            int    `mapstructure:"workers"`
	ClampProbabilities bool   `mapstructure:"clamp-probabilities"`
	OutPath            string `mapstructure:"output"`
	ParquetPath        string `mapstructure:"parquet"`
	FilePath           string `mapstructure:"file"`
	AsOfRaw            string `mapstructure:"as-of"`
	DSN                string `mapstructure:"dsn"`
	LogFormat          string `mapstructure:"log-format"` // "text" or "json"
	LogLevel           string `mapstructure:"log-level"`
}

// Defaults returns the settings used when neither a flag, the environment,
// nor a config file sets a value.
func Defaults() Config {
	return Config{
		Patients:  10000,
		Seed:      42,
		OutPath:   "clinical_data.csv",
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// yamlConfig is the on-disk YAML structure. Pointers distinguish unset keys.
type yamlConfig struct {
	Patients           *int    `yaml:"patients"`
	Seed               *int64  `yaml:"seed"`
	Workers            *int    `yaml:"workers"`
	ClampProbabilities *bool   `yaml:"clamp_probabilities"`
	Output             *string `yaml:"output"`
	Parquet            *string `yaml:"parquet"`
	LogFormat          *string `yaml:"log_format"`
	LogLevel           *string `yaml:"log_level"`
}

// Load resolves the configuration. Precedence, highest first: flags set on
// the command line, environment, the YAML file at path (if any), then
// flag defaults and Defaults.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("patients", d.Patients)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("clamp-probabilities", d.ClampProbabilities)
	v.SetDefault("output", d.OutPath)
	v.SetDefault("parquet", d.ParquetPath)
	v.SetDefault("file", d.FilePath)
	v.SetDefault("as-of", d.AsOfRaw)
	v.SetDefault("dsn", d.DSN)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("log-level", d.LogLevel)

	if err := v.BindEnv("dsn", EnvPrefix+"_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind dsn env: %w", err)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path != "" {
		settings, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("merge config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func decodeFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &yc, nil
}

// readFile returns the keys set in the YAML file, named like the flags.
func readFile(path string) (map[string]any, error) {
	yc, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if yc.Patients != nil {
		m["patients"] = *yc.Patients
	}
	if yc.Seed != nil {
		m["seed"] = *yc.Seed
	}
	if yc.Workers != nil {
		m["workers"] = *yc.Workers
	}
	if yc.ClampProbabilities != nil {
		m["clamp-probabilities"] = *yc.ClampProbabilities
	}
	if yc.Output != nil {
		m["output"] = *yc.Output
	}
	if yc.Parquet != nil {
		m["parquet"] = *yc.Parquet
	}
	if yc.LogFormat != nil {
		m["log-format"] = *yc.LogFormat
	}
	if yc.LogLevel != nil {
		m["log-level"] = *yc.LogLevel
	}
	return m, nil
}

// Validate checks the settings every command shares.
func (c *Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("--workers must not be negative, got %d", c.Workers)
	}
	if c.FilePath != "" {
		if _, err := os.Stat(c.FilePath); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	if _, err := c.AsOf(time.Now()); err != nil {
		return err
	}
	return nil
}

// ValidateGenerate checks the settings used to generate a visit batch.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.FilePath == "" && c.Patients <= 0 {
		return fmt.Errorf("--patients must be positive, got %d", c.Patients)
	}
	return nil
}

// ValidateWithDSN checks the shared settings and the DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn, %s_DSN or DATABASE_URL is required", EnvPrefix)
	}
	return nil
}

// AsOf returns the reference time for the mart build: the --as-of value
// when set (any layout dateparse understands, read as UTC), else now.
func (c *Config) AsOf(now time.Time) (time.Time, error) {
	if strings.TrimSpace(c.AsOfRaw) == "" {
		return now, nil
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(c.AsOfRaw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of %q: %w", c.AsOfRaw, err)
	}
	return t, nil
}
