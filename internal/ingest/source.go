package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/healthforge/gbdkit/internal/model"
)

// Measure-origin labels reported per source.
const (
	originPassthrough = "passthrough"
	originMeasureName = "measure_name"
	originFilename    = "filename"
)

// ReadTable parses a delimited file into a fact table. Rows become raw
// string cell maps keyed by the header; no value is altered or dropped.
func ReadTable(path string) (*model.FactTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readTable(f, path)
}

func readTable(r io.Reader, name string) (*model.FactTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}

	columns := make([]string, len(header))
	copy(columns, header)

	table := &model.FactTable{Columns: columns}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		table.Records = append(table.Records, model.FactRecord{Fields: fields})
	}

	return table, nil
}

// readSource loads one raw extract, tags every row with source_file and
// guarantees a measure_name_standard column:
//
//  1. already present in the file → passed through unchanged
//  2. measure_name column present → standardized per row
//  3. neither → inferred once from the file name
func readSource(path, filename string) (*model.FactTable, string, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, "", err
	}

	origin := originPassthrough
	hasStandard := table.HasColumn(model.ColMeasureStandard)
	hasMeasure := table.HasColumn(model.ColMeasureName)

	fromFile := ""
	if !hasStandard {
		if hasMeasure {
			origin = originMeasureName
		} else {
			origin = originFilename
			fromFile = MeasureFromFilename(filename)
		}
		table.Columns = append(table.Columns, model.ColMeasureStandard)
	}
	if !table.HasColumn(model.ColSourceFile) {
		table.Columns = append(table.Columns, model.ColSourceFile)
	}

	for _, rec := range table.Records {
		rec.Fields[model.ColSourceFile] = filename
		if hasStandard {
			continue
		}
		if hasMeasure {
			rec.Fields[model.ColMeasureStandard] = StandardizeMeasureName(rec.Fields[model.ColMeasureName])
		} else {
			rec.Fields[model.ColMeasureStandard] = fromFile
		}
	}

	return table, origin, nil
}
