package repositories

import (
	"context"
	"database/sql"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/ports"
	"errors"
	"fmt"
	"slices"
)

// SQL flavour used for placeholders and upserts.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) IsValid() bool {
	return d == DialectSQLite || d == DialectPostgres
}

// placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Initialize the catalog schema. Statements are portable between SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCatalogQuery := `
	CREATE TABLE IF NOT EXISTS food_catalog (
		position INTEGER PRIMARY KEY,
		item_name TEXT NOT NULL,
		calorie_value TEXT
	);
	`

	createMetaQuery := `
	CREATE TABLE IF NOT EXISTS catalog_meta (
		id INTEGER PRIMARY KEY,
		revision INTEGER NOT NULL
	);
	`

	seedMetaQuery := `
	INSERT INTO catalog_meta (id, revision)
	SELECT 1, 0
	WHERE NOT EXISTS (SELECT 1 FROM catalog_meta WHERE id = 1);
	`

	statements := []string{
		createCatalogQuery,
		createMetaQuery,
		seedMetaQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored catalog with the rows of table and bump the revision.
//
// Cells are stored raw so the usual coercion rules apply when the catalog is
// read back. Row order becomes the stored position.
func SeedFromTable(ctx context.Context, db *sql.DB, dialect Dialect, table *ports.Table) (int, error) {
	if db == nil {
		return 0, errors.New("seed catalog: DB is nil")
	}
	if !dialect.IsValid() {
		return 0, fmt.Errorf("seed catalog: unknown dialect %q", dialect)
	}
	if table == nil {
		return 0, errors.New("seed catalog: table is nil")
	}

	header := slices.Clone(table.Header)
	nameIdx := slices.Index(header, domain.NameColumn)
	calIdx := slices.Index(header, domain.CalorieColumn)
	if nameIdx < 0 || calIdx < 0 {
		missing := make([]string, 0, 2)
		if nameIdx < 0 {
			missing = append(missing, domain.NameColumn)
		}
		if calIdx < 0 {
			missing = append(missing, domain.CalorieColumn)
		}
		return 0, &domain.SchemaError{Source: "seed", Missing: missing, Found: header}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM food_catalog;`); err != nil {
		return 0, fmt.Errorf("seed catalog: clear food_catalog: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO food_catalog (
		position,
		item_name,
		calorie_value
	)
	VALUES (%s, %s, %s);
	`, dialect.placeholder(1), dialect.placeholder(2), dialect.placeholder(3))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		var calories sql.NullString
		if calIdx < len(row.Cells) {
			calories = sql.NullString{String: row.Cells[calIdx], Valid: true}
		}
		name := ""
		if nameIdx < len(row.Cells) {
			name = row.Cells[nameIdx]
		}

		if _, err := stmt.ExecContext(ctx, i+1, name, calories); err != nil {
			return 0, fmt.Errorf("seed catalog: insert position=%d: %w", i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE catalog_meta SET revision = revision + 1 WHERE id = 1;`); err != nil {
		return 0, fmt.Errorf("seed catalog: bump revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return len(table.Rows), nil
}
