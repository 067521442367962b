// Package catalogtest provides in-memory table sources for tests.
package catalogtest

import (
	"context"
	"diet-menu-planner/internal/ports"
	"fmt"
	"slices"
)

// StaticTableSource serves a fixed in-memory table.
// Replacing its rows bumps the fingerprint, which lets callers exercise
// cache invalidation without touching the filesystem.
type StaticTableSource struct {
	ref      string
	header   []string
	rows     [][]string
	revision int
	reads    int
}

func NewStaticTableSource(ref string, header []string, rows ...[]string) *StaticTableSource {
	return &StaticTableSource{
		ref:      ref,
		header:   slices.Clone(header),
		rows:     cloneRows(rows),
		revision: 1,
	}
}

func (s *StaticTableSource) Ref() string { return s.ref }

func (s *StaticTableSource) Fingerprint(ctx context.Context) (string, error) {
	return fmt.Sprintf("rev-%d", s.revision), nil
}

// ReadTable returns a copy of the table; the header is treated as line 1.
func (s *StaticTableSource) ReadTable(ctx context.Context) (*ports.Table, error) {
	s.reads++

	t := &ports.Table{
		Header: slices.Clone(s.header),
		Rows:   make([]ports.Row, 0, len(s.rows)),
	}
	for i, r := range s.rows {
		t.Rows = append(t.Rows, ports.Row{Line: i + 2, Cells: slices.Clone(r)})
	}
	return t, nil
}

// SetRows replaces the table body and advances the fingerprint.
func (s *StaticTableSource) SetRows(rows ...[]string) {
	s.rows = cloneRows(rows)
	s.revision++
}

// Reads reports how many times ReadTable was called.
func (s *StaticTableSource) Reads() int { return s.reads }

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, slices.Clone(r))
	}
	return out
}
