package repositories

import (
	"context"
	"database/sql"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/ports"
	"errors"
	"fmt"
)

// SQL-backed implementation of the TableSource port.
// Reads the raw catalog written by SeedFromTable.
type SQLFoodRepository struct {
	DB    *sql.DB
	Label string
}

func NewSQLFoodRepository(db *sql.DB, label string) *SQLFoodRepository {
	return &SQLFoodRepository{DB: db, Label: label}
}

func (s *SQLFoodRepository) Ref() string { return s.Label }

// Fingerprint returns the catalog revision bumped on every seed.
func (s *SQLFoodRepository) Fingerprint(ctx context.Context) (string, error) {
	if s.DB == nil {
		return "", errors.New("sql food repository: DB is nil")
	}

	var revision int64
	err := s.DB.QueryRowContext(ctx, `SELECT revision FROM catalog_meta WHERE id = 1;`).Scan(&revision)
	if err != nil {
		return "", fmt.Errorf("catalog fingerprint: query catalog_meta: %w", err)
	}

	return fmt.Sprintf("rev-%d", revision), nil
}

// Return the stored catalog rows in position order.
func (s *SQLFoodRepository) ReadTable(ctx context.Context) (*ports.Table, error) {
	if s.DB == nil {
		return nil, errors.New("sql food repository: DB is nil")
	}

	query := `
	SELECT
		position,
		item_name,
		calorie_value
	FROM food_catalog
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read catalog: query food_catalog table: %w", err)
	}
	defer rows.Close()

	table := &ports.Table{
		Header: domain.RequiredColumns(),
		Rows:   make([]ports.Row, 0, 64),
	}
	for rows.Next() {
		var pos int
		var name string
		var calories sql.NullString
		if err := rows.Scan(&pos, &name, &calories); err != nil {
			return nil, fmt.Errorf("read catalog: scan row: %w", err)
		}

		cells := []string{name}
		if calories.Valid {
			cells = append(cells, calories.String)
		}
		table.Rows = append(table.Rows, ports.Row{Line: pos, Cells: cells})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: row iteration: %w", err)
	}

	return table, nil
}
