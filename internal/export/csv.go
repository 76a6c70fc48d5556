// Package export serializes tables and filtered views to the delimited and
// database artifacts downstream consumers read.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/query"
)

// WideColumns is the column order of exported wide views.
var WideColumns = []string{"year", "location", "sex", "age_group", "category", "disease", "DALY", "YLL", "YLD"}

// WriteFactCSV writes a fact table preserving its column order. Cells for
// columns a row lacks are written empty.
func WriteFactCSV(w io.Writer, t *model.FactTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Records {
		for i, col := range t.Columns {
			row[i] = rec.Fields[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFactCSVFile writes a fact table to a file.
func WriteFactCSVFile(path string, t *model.FactTable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return WriteFactCSV(f, t)
}

// WriteWideCSV writes a wide view in the fixed export column order. Numeric
// columns are formatted with enough precision to round-trip.
func WriteWideCSV(w io.Writer, rows []model.WideRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(WideColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			r.Location,
			r.Sex,
			r.AgeGroup,
			string(r.Category),
			r.Disease,
			formatNumber(r.DALY),
			formatNumber(r.YLL),
			formatNumber(r.YLD),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWideCSVFile writes a wide view to a file.
func WriteWideCSVFile(path string, rows []model.WideRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return WriteWideCSV(f, rows)
}

// WriteGroupsCSV writes an aggregated view: one column per group key plus
// the metric column.
func WriteGroupsCSV(w io.Writer, keys []string, metric string, groups []query.GroupRow) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, keys...), metric)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range groups {
		row := make([]string, 0, len(keys)+1)
		for _, k := range keys {
			row = append(row, g.Key[k])
		}
		row = append(row, formatNumber(g.Value))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteForecastCSV writes a forecast series as (year, value, kind) rows.
func WriteForecastCSV(w io.Writer, s *model.ForecastSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", string(s.Metric), "type"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range s.Points {
		row := []string{strconv.Itoa(p.Year), formatNumber(p.Value), string(p.Kind)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
