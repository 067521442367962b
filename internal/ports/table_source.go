package ports

import "context"

// One raw record of a tabular source.
type Row struct {
	// 1-based line (or position) of the record in its origin.
	Line  int
	Cells []string
}

// Raw tabular data as read from a catalog source, before validation.
type Table struct {
	Header []string
	Rows   []Row
}

// Port: a boundary for reading raw catalog tables from files or databases.
type TableSource interface {
	// Stable identity of the source, used as the cache key.
	Ref() string
	// Version marker of the source; a changed value invalidates cached catalogs.
	Fingerprint(ctx context.Context) (string, error)
	// Read the full table in source order.
	ReadTable(ctx context.Context) (*Table, error)
}
