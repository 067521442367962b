package main

import (
	"context"
	"database/sql"
	"diet-menu-planner/internal/adapters/catalog"
	"diet-menu-planner/internal/adapters/repositories"
	"diet-menu-planner/internal/config"
	"diet-menu-planner/internal/platform/db"
	"diet-menu-planner/internal/platform/logging"
	"fmt"
	"log/slog"
	"strings"
)

// dbtool initializes the catalog schema and seeds it from a CSV file.
// DATABASE_URL selects Postgres; otherwise the SQLite file at DB_PATH is used.
func main() {
	config.LoadDotEnv()
	logging.SetDefaultStructuredLoggerWithLevel("dbtool", "dev", config.Get(config.EnvLogLevel, "info"))
	fatal := logging.NewLogLogger(slog.LevelError)

	handle, dialect, err := openDB()
	if err != nil {
		fatal.Fatal(err)
	}
	defer handle.Close()

	seedPath := config.Get("SEED_PATH", config.Get(config.EnvCatalogPath, config.Default().CatalogPath))
	if err := initAndSeed(context.Background(), handle, dialect, seedPath); err != nil {
		fatal.Fatal(err)
	}
}

func openDB() (*sql.DB, repositories.Dialect, error) {
	if databaseURL := strings.TrimSpace(config.Get(config.EnvDatabaseURL, "")); databaseURL != "" {
		handle, err := db.Open(databaseURL)
		return handle, repositories.DialectPostgres, err
	}

	dbPath := config.Get(config.EnvDBPath, config.Default().DBPath)
	handle, err := db.OpenSQLite(dbPath)
	return handle, repositories.DialectSQLite, err
}

func initAndSeed(ctx context.Context, handle *sql.DB, dialect repositories.Dialect, seedPath string) error {
	slog.Info("initializing database schema", "dialect", dialect)
	if err := repositories.InitSchema(ctx, handle); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	src, err := catalog.NewCSVTableSource(seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	table, err := src.ReadTable(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	n, err := repositories.SeedFromTable(ctx, handle, dialect, table)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	slog.Info("seeding complete", "source", src.Ref(), "rows", n)

	return nil
}
