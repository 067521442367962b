package repositories

import (
	"context"
	"database/sql"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/ports"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))
	return db
}

func menuTable(rows ...[]string) *ports.Table {
	t := &ports.Table{Header: []string{"No", domain.NameColumn, domain.CalorieColumn}}
	for i, r := range rows {
		t.Rows = append(t.Rows, ports.Row{Line: i + 2, Cells: r})
	}
	return t
}

func TestSeedAndReadCatalog(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n, err := SeedFromTable(ctx, db, DialectSQLite, menuTable(
		[]string{"1", "Nasi Goreng", "250"},
		[]string{"2", "Es Teh", "abc"},
		[]string{"3", "Kerupuk"},
	))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	repo := NewSQLFoodRepository(db, "sqlite:catalog.db")
	table, err := repo.ReadTable(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.RequiredColumns(), table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Nasi Goreng", "250"}, table.Rows[0].Cells)
	assert.Equal(t, []string{"Es Teh", "abc"}, table.Rows[1].Cells)
	assert.Equal(t, []string{"Kerupuk"}, table.Rows[2].Cells, "missing calorie stays missing")
	assert.Equal(t, 3, table.Rows[2].Line)
}

func TestSeedBumpsFingerprint(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewSQLFoodRepository(db, "sqlite:catalog.db")

	fp0, err := repo.Fingerprint(ctx)
	require.NoError(t, err)

	_, err = SeedFromTable(ctx, db, DialectSQLite, menuTable([]string{"1", "Tahu", "80"}))
	require.NoError(t, err)

	fp1, err := repo.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, fp0, fp1)

	_, err = SeedFromTable(ctx, db, DialectSQLite, menuTable([]string{"1", "Tempe", "150"}))
	require.NoError(t, err)

	table, err := repo.ReadTable(ctx)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1, "reseeding replaces the catalog")
	assert.Equal(t, "Tempe", table.Rows[0].Cells[0])
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, InitSchema(context.Background(), db))
}

func TestSeedRejectsMissingColumns(t *testing.T) {
	db := openTestDB(t)
	table := &ports.Table{Header: []string{domain.NameColumn}}

	_, err := SeedFromTable(context.Background(), db, DialectSQLite, table)

	var se *domain.SchemaError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, []string{domain.CalorieColumn}, se.Missing)
}

func TestSeedRejectsUnknownDialect(t *testing.T) {
	db := openTestDB(t)
	_, err := SeedFromTable(context.Background(), db, Dialect("oracle"), menuTable())
	assert.Error(t, err)
}

func TestDialectPlaceholder(t *testing.T) {
	assert.Equal(t, "?", DialectSQLite.placeholder(2))
	assert.Equal(t, "$2", DialectPostgres.placeholder(2))
}
