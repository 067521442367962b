package cli

import (
	"context"
	"database/sql"
	"diet-menu-planner/internal/adapters/cache"
	"diet-menu-planner/internal/adapters/catalog"
	"diet-menu-planner/internal/adapters/repositories"
	"diet-menu-planner/internal/config"
	"diet-menu-planner/internal/platform/db"
	"diet-menu-planner/internal/ports"
	"diet-menu-planner/internal/services"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
)

// Parsed catalogs live for the whole process.
var catalogCache = cache.NewMemoryCatalogCache()

// Flag names shared by the catalog-reading commands.
const (
	flagCatalog     = "catalog"
	flagSource      = "source"
	flagDBPath      = "db-path"
	flagDatabaseURL = "database-url"
	flagStrict      = "strict"
	flagFormat      = "format"
	flagOutput      = "output"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"f"},
		Usage:   "Output format (table, json, yaml)",
		Sources: cli.EnvVars(config.EnvOutputFormat),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Write output to this file instead of stdout",
	}
}

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagCatalog,
			Aliases: []string{"c"},
			Usage:   "Path to the CSV/TSV food catalog",
			Sources: cli.EnvVars(config.EnvCatalogPath),
		},
		&cli.StringFlag{
			Name:    flagSource,
			Usage:   "Catalog source (csv, sqlite, postgres)",
			Sources: cli.EnvVars(config.EnvCatalogSource),
		},
		&cli.StringFlag{
			Name:    flagDBPath,
			Usage:   "SQLite database holding a seeded catalog",
			Sources: cli.EnvVars(config.EnvDBPath),
		},
		&cli.StringFlag{
			Name:    flagDatabaseURL,
			Usage:   "Postgres connection URL holding a seeded catalog",
			Sources: cli.EnvVars(config.EnvDatabaseURL),
		},
		&cli.BoolFlag{
			Name:    flagStrict,
			Usage:   "Fail on rows with missing or non-numeric calories instead of dropping them",
			Sources: cli.EnvVars(config.EnvStrictCatalog),
		},
	}
}

// applyFlags overlays explicitly set flags (or their env sources) on cfg.
// Flags the command does not declare are never set and are skipped, as are
// empty string values.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	setString(cmd, flagCatalog, &cfg.CatalogPath)
	setString(cmd, flagDBPath, &cfg.DBPath)
	setString(cmd, flagDatabaseURL, &cfg.DatabaseURL)
	setString(cmd, flagFormat, &cfg.OutputFormat)
	setString(cmd, flagMetricsFile, &cfg.MetricsFile)

	source := string(cfg.CatalogSource)
	setString(cmd, flagSource, &source)
	cfg.CatalogSource = config.SourceKind(strings.ToLower(source))

	if cmd.IsSet(flagStrict) {
		cfg.StrictCatalog = cmd.Bool(flagStrict)
	}
	if cmd.IsSet(flagChart) {
		cfg.ShowChart = cmd.Bool(flagChart)
	}
	if cmd.IsSet(flagTarget) {
		cfg.TargetKcal = int(cmd.Int(flagTarget))
	}
	if cmd.IsSet(flagTrials) {
		cfg.Trials = int(cmd.Int(flagTrials))
	}
	if cmd.IsSet(flagMaxPicks) {
		cfg.MaxPicks = int(cmd.Int(flagMaxPicks))
	}
}

func setString(cmd *cli.Command, flag string, dst *string) {
	if !cmd.IsSet(flag) {
		return
	}
	if v := strings.TrimSpace(cmd.String(flag)); v != "" {
		*dst = v
	}
}

// openCatalog builds the catalog provider for the configured source.
// The returned close func releases any database handle.
func openCatalog(cfg config.Config) (ports.CatalogProvider, func(), error) {
	var (
		src    ports.TableSource
		handle *sql.DB
		err    error
	)

	switch cfg.CatalogSource {
	case config.SourceCSV:
		src, err = catalog.NewCSVTableSource(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
	case config.SourceSQLite:
		abs, err := filepath.Abs(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve sqlite path %q: %w", cfg.DBPath, err)
		}
		handle, err = db.OpenSQLite(abs)
		if err != nil {
			return nil, nil, err
		}
		// The ref keys the catalog cache, so it must identify the file, not just its name.
		src = repositories.NewSQLFoodRepository(handle, "sqlite:"+abs)
	case config.SourcePostgres:
		handle, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		src = repositories.NewSQLFoodRepository(handle, postgresLabel(cfg.DatabaseURL))
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	closeFn := func() {
		if handle != nil {
			_ = handle.Close()
		}
	}

	return services.NewCatalogService(src, catalogCache, cfg.StrictCatalog), closeFn, nil
}

// postgresLabel identifies a Postgres catalog by host and database,
// leaving credentials out of logs and reports.
func postgresLabel(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Host == "" {
		return "postgres"
	}
	return "postgres:" + u.Host + u.Path
}

// resolveConfig merges flags into the base config and validates the result.
func resolveConfig(ctx context.Context, cmd *cli.Command) (config.Config, error) {
	cfg := configFrom(ctx)
	applyFlags(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
