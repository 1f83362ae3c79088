package audit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"
)

// canonicalColumns fixes the order of the known entry fields; columns
// outside this set append after them in sorted order.
var canonicalColumns = []string{
	"timestamp",
	"batch",
	"doc_type",
	"v1_v2",
	"status",
	"notes",
	"decision",
}

// Columns computes the export column set for the given records: the
// union of keys across all records, canonical fields first, remaining
// keys sorted.
func Columns(records []Fields) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for _, col := range canonicalColumns {
		if seen[col] {
			columns = append(columns, col)
			delete(seen, col)
		}
	}

	extra := make([]string, 0, len(seen))
	for col := range seen {
		extra = append(extra, col)
	}
	slices.Sort(extra)

	return append(columns, extra...)
}

// ExportCSV serializes records as CSV text with a header row. The
// column set is computed once from all records before any row is
// written, so every row carries a value for every column; keys missing
// from a record render as blank cells. Empty input yields empty output.
func ExportCSV(records []Fields) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	columns := Columns(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}

	return buf.String(), nil
}
