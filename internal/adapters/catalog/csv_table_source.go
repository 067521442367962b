package catalog

import (
	"context"
	"diet-menu-planner/internal/ports"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CSVTableSource reads a catalog from a CSV file, or a TSV file when the
// extension is .tsv.
type CSVTableSource struct {
	path string
}

func NewCSVTableSource(path string) (*CSVTableSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("csv table source: path must not be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("csv table source: resolve %q: %w", path, err)
	}

	return &CSVTableSource{path: abs}, nil
}

// Ref returns the absolute file path.
func (s *CSVTableSource) Ref() string { return s.path }

// Fingerprint changes whenever the file size or modification time changes.
func (s *CSVTableSource) Fingerprint(ctx context.Context) (string, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", filepath.Base(s.path), err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("stat %s: is a directory", filepath.Base(s.path))
	}

	return fmt.Sprintf("%d-%d", fi.Size(), fi.ModTime().UnixNano()), nil
}

func (s *CSVTableSource) ReadTable(ctx context.Context) (*ports.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(s.path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(s.path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table := &ports.Table{Header: []string{}}
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(s.path), err)
		}

		if first {
			first = false
			// Column names are a fixed contract: only the UTF-8 BOM is removed.
			table.Header = make([]string, len(record))
			for i, h := range record {
				table.Header[i] = strings.TrimPrefix(h, "\ufeff")
			}
			continue
		}

		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		cells := make([]string, len(record))
		for i, c := range record {
			cells[i] = cleanCell(c)
		}
		table.Rows = append(table.Rows, ports.Row{Line: line, Cells: cells})
	}

	return table, nil
}

// cleanCell normalizes a cell to NFKC, strips a leading BOM and control
// characters, and trims surrounding whitespace.
func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
