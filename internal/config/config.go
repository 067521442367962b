// Package config resolves planner settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (including those loaded from .env). Command-line
// flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Where the catalog is read from.
type SourceKind string

const (
	SourceCSV      SourceKind = "csv"
	SourceSQLite   SourceKind = "sqlite"
	SourcePostgres SourceKind = "postgres"
)

func (k SourceKind) IsValid() bool {
	switch k {
	case SourceCSV, SourceSQLite, SourcePostgres:
		return true
	default:
		return false
	}
}

// Accepted ranges for user-supplied run parameters.
const (
	MinTargetKcal = 50
	MaxTargetKcal = 3000
	MinTrials     = 1
	MaxTrials     = 30
)

// Environment variable names.
const (
	EnvConfigFile    = "PLANNER_CONFIG"
	EnvCatalogPath   = "CATALOG_PATH"
	EnvCatalogSource = "CATALOG_SOURCE"
	EnvDBPath        = "DB_PATH"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvTargetKcal    = "TARGET_KCAL"
	EnvTrials        = "TRIALS"
	EnvStrictCatalog = "STRICT_CATALOG"
	EnvMaxPicks      = "MAX_PICKS"
	EnvLogLevel      = "LOG_LEVEL"
	EnvOutputFormat  = "OUTPUT_FORMAT"
	EnvShowChart     = "SHOW_CHART"
	EnvMetricsFile   = "METRICS_FILE"
)

type Config struct {
	CatalogPath   string     `yaml:"catalog_path"`
	CatalogSource SourceKind `yaml:"catalog_source"`
	DBPath        string     `yaml:"db_path"`
	DatabaseURL   string     `yaml:"database_url"`
	TargetKcal    int        `yaml:"target_kcal"`
	Trials        int        `yaml:"trials"`
	StrictCatalog bool       `yaml:"strict_catalog"`
	MaxPicks      int        `yaml:"max_picks"`
	LogLevel      string     `yaml:"log_level"`
	OutputFormat  string     `yaml:"output_format"`
	ShowChart     bool       `yaml:"show_chart"`
	MetricsFile   string     `yaml:"metrics_file"`
}

func Default() Config {
	return Config{
		CatalogPath:   "1000_data_makanan_kalori.csv",
		CatalogSource: SourceCSV,
		DBPath:        "data/catalog.db",
		TargetKcal:    650,
		Trials:        5,
		MaxPicks:      10_000,
		LogLevel:      "info",
		OutputFormat:  "table",
		ShowChart:     true,
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env from the working directory if present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found (using environment variables)")
	}
}

// Load builds a Config from defaults, the optional YAML file at path and the
// environment. An empty path falls back to PLANNER_CONFIG; a missing file at
// an explicitly given path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if strings.TrimSpace(path) != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("load config: parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.CatalogPath = Get(EnvCatalogPath, c.CatalogPath)
	c.CatalogSource = SourceKind(strings.ToLower(Get(EnvCatalogSource, string(c.CatalogSource))))
	c.DBPath = Get(EnvDBPath, c.DBPath)
	c.DatabaseURL = Get(EnvDatabaseURL, c.DatabaseURL)
	c.LogLevel = Get(EnvLogLevel, c.LogLevel)
	c.OutputFormat = Get(EnvOutputFormat, c.OutputFormat)
	c.MetricsFile = Get(EnvMetricsFile, c.MetricsFile)

	var errs []error
	var err error
	if c.TargetKcal, err = envInt(EnvTargetKcal, c.TargetKcal); err != nil {
		errs = append(errs, err)
	}
	if c.Trials, err = envInt(EnvTrials, c.Trials); err != nil {
		errs = append(errs, err)
	}
	if c.MaxPicks, err = envInt(EnvMaxPicks, c.MaxPicks); err != nil {
		errs = append(errs, err)
	}
	if c.StrictCatalog, err = envBool(EnvStrictCatalog, c.StrictCatalog); err != nil {
		errs = append(errs, err)
	}
	if c.ShowChart, err = envBool(EnvShowChart, c.ShowChart); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("load config: %s=%q: %w", key, v, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("load config: %s=%q: %w", key, v, err)
	}
	return b, nil
}

// Validate checks run parameters against the accepted ranges.
func (c Config) Validate() error {
	var errs []error

	if c.TargetKcal < MinTargetKcal || c.TargetKcal > MaxTargetKcal {
		errs = append(errs, fmt.Errorf("target must be between %d and %d kcal, got %d",
			MinTargetKcal, MaxTargetKcal, c.TargetKcal))
	}
	if c.Trials < MinTrials || c.Trials > MaxTrials {
		errs = append(errs, fmt.Errorf("trials must be between %d and %d, got %d",
			MinTrials, MaxTrials, c.Trials))
	}
	if c.MaxPicks < 1 {
		errs = append(errs, fmt.Errorf("max picks must be positive, got %d", c.MaxPicks))
	}
	if !c.CatalogSource.IsValid() {
		errs = append(errs, fmt.Errorf("unknown catalog source %q (supported: csv, sqlite, postgres)", c.CatalogSource))
	}
	if c.CatalogSource == SourcePostgres && strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, fmt.Errorf("%s is required for the postgres catalog source", EnvDatabaseURL))
	}

	return errors.Join(errs...)
}
