package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/healthforge/gbdkit/internal/model"
)

// Merger unifies the configured raw extracts into one fact table.
//
// The merge is all-or-nothing: any unreadable or malformed extract fails the
// whole run, because downstream aggregation assumes a complete table.
type Merger struct {
	dir     string
	files   []string
	verbose bool
}

// NewMerger creates a Merger for the configured data directory.
func NewMerger(cfg *model.Config) *Merger {
	return &Merger{
		dir:     cfg.Data.Dir,
		files:   cfg.Data.RawFiles,
		verbose: cfg.Output.Verbose,
	}
}

// Merge loads every extract, tags it, and concatenates the streams into one
// table carrying the union of all source columns in first-seen order. Cells
// for columns a source lacked stay unset (null).
func (m *Merger) Merge() (*model.FactTable, []model.SourceStat, error) {
	merged := &model.FactTable{}
	stats := make([]model.SourceStat, 0, len(m.files))
	seen := make(map[string]bool)

	for _, fname := range m.files {
		path := filepath.Join(m.dir, fname)
		if m.verbose {
			fmt.Fprintf(os.Stderr, "Loading %s ...\n", path)
		}

		table, origin, err := readSource(path, fname)
		if err != nil {
			return nil, nil, fmt.Errorf("merge source %s: %w", fname, err)
		}

		for _, col := range table.Columns {
			if !seen[col] {
				seen[col] = true
				merged.Columns = append(merged.Columns, col)
			}
		}
		merged.Records = append(merged.Records, table.Records...)

		stats = append(stats, model.SourceStat{
			File:          fname,
			Rows:          table.Len(),
			MeasureOrigin: origin,
		})
	}

	if m.verbose {
		fmt.Fprintf(os.Stderr, "Merged %d rows, %d columns\n", merged.Len(), len(merged.Columns))
	}

	return merged, stats, nil
}

// Clean projects the merged table down to the analytical fields: identifier
// columns are dropped, the preferred column order is applied, and any extra
// columns are appended after it. A new table is returned; the input is not
// modified.
func Clean(t *model.FactTable) *model.FactTable {
	drop := make(map[string]bool, len(model.IdentifierColumns))
	for _, c := range model.IdentifierColumns {
		drop[c] = true
	}

	keep := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if !drop[c] {
			keep[c] = true
		}
	}

	columns := make([]string, 0, len(t.Columns))
	inPreferred := make(map[string]bool, len(model.PreferredColumnOrder))
	for _, c := range model.PreferredColumnOrder {
		inPreferred[c] = true
		if keep[c] {
			columns = append(columns, c)
		}
	}
	for _, c := range t.Columns {
		if keep[c] && !inPreferred[c] {
			columns = append(columns, c)
		}
	}

	out := &model.FactTable{
		Columns: columns,
		Records: make([]model.FactRecord, 0, t.Len()),
	}
	for _, rec := range t.Records {
		fields := make(map[string]string, len(columns))
		for _, c := range columns {
			if v, ok := rec.Fields[c]; ok {
				fields[c] = v
			}
		}
		out.Records = append(out.Records, model.FactRecord{Fields: fields})
	}
	return out
}
