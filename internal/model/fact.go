package model

import (
	"math"
	"strconv"
	"strings"
)

// Standardized measure labels produced by ingestion.
const (
	MeasureDALYs      = "DALYs Rate"
	MeasureYLLs       = "YLLs Rate"
	MeasureDeath      = "Death Rate"
	MeasureIncidence  = "Incidence Rate"
	MeasurePrevalence = "Prevalence Rate"
	MeasureInjury     = "Injury Rate"
	MeasureNCD        = "NCD Rate"
)

// Canonical column names of the unified fact table.
const (
	ColMeasureStandard = "measure_name_standard"
	ColMeasureName     = "measure_name"
	ColLocation        = "location_name"
	ColSex             = "sex_name"
	ColAge             = "age_name"
	ColCause           = "cause_name"
	ColMetricName      = "metric_name"
	ColYear            = "year"
	ColVal             = "val"
	ColUpper           = "upper"
	ColLower           = "lower"
	ColAgeID           = "age_id"
	ColSourceFile      = "source_file"
)

// PreferredColumnOrder is the column order of the CLEAN fact table.
// Columns not listed here are appended after, in their original order.
var PreferredColumnOrder = []string{
	ColMeasureStandard,
	ColMeasureName,
	ColLocation,
	ColSex,
	ColAge,
	ColCause,
	ColMetricName,
	ColYear,
	ColVal,
	ColUpper,
	ColLower,
	ColAgeID,
	ColSourceFile,
}

// IdentifierColumns are internal numeric IDs dropped by the clean projection.
var IdentifierColumns = []string{
	"measure_id",
	"location_id",
	"sex_id",
	"cause_id",
	"metric_id",
}

// FactRecord is one long-form observation: a single (measure, location, sex,
// age, cause, year) row with its rate value. Cells are kept as raw text so the
// merge stage never alters a source value; numeric interpretation happens at
// the point of use.
type FactRecord struct {
	Fields map[string]string
}

// Get returns the raw cell value for a column, or "" when the source file
// lacked that column.
func (r FactRecord) Get(col string) string {
	return r.Fields[col]
}

// Dimension exposes columns as filterable dimensions for the query engine.
func (r FactRecord) Dimension(name string) string {
	return r.Fields[name]
}

// Year parses the year cell. Returns 0 when absent or unparseable.
func (r FactRecord) Year() int {
	s := strings.TrimSpace(r.Fields[ColYear])
	if s == "" {
		return 0
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Val parses the rate value. Returns NaN when absent or unparseable; the
// pivot stage coerces NaN to 0 per the data-quality policy.
func (r FactRecord) Val() float64 {
	return parseCell(r.Fields[ColVal])
}

// Upper parses the upper confidence bound, NaN when absent.
func (r FactRecord) Upper() float64 {
	return parseCell(r.Fields[ColUpper])
}

// Lower parses the lower confidence bound, NaN when absent.
func (r FactRecord) Lower() float64 {
	return parseCell(r.Fields[ColLower])
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// FactTable is the unified long-form fact table: the system of record for all
// downstream computation. Columns carries the union of source columns in
// first-seen order so exports can round-trip the exact layout.
//
// The table is treated as read-only once built; transformations always produce
// a new table.
type FactTable struct {
	Columns []string
	Records []FactRecord
}

// Len returns the number of rows.
func (t *FactTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether a column exists in the table.
func (t *FactTable) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}
