package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Metric names a numeric column of the wide burden table.
type Metric string

const (
	MetricDALY Metric = "DALY"
	MetricYLL  Metric = "YLL"
	MetricYLD  Metric = "YLD"
)

// ParseMetric validates a user-supplied metric name.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DALY":
		return MetricDALY, nil
	case "YLL":
		return MetricYLL, nil
	case "YLD":
		return MetricYLD, nil
	}
	return "", fmt.Errorf("unknown metric %q (want DALY, YLL or YLD)", s)
}

// Dimension names of the wide burden table.
const (
	DimYear     = "year"
	DimSex      = "sex"
	DimAge      = "age_group"
	DimLocation = "location"
	DimCategory = "category"
	DimDisease  = "disease"
)

// WideDimensions lists the six-part dimensional key in canonical order.
var WideDimensions = []string{DimYear, DimSex, DimAge, DimLocation, DimCategory, DimDisease}

// WideRecord is one row of the pivoted burden table: a unique dimensional key
// with its three numeric burden metrics. DALY, YLL and YLD are always concrete
// numbers; an absent source measure is synthesized as 0 rather than null.
type WideRecord struct {
	Year     int
	Sex      string
	AgeGroup string
	Location string
	Category Category
	Disease  string

	DALY float64
	YLL  float64
	YLD  float64
}

// Metric returns the value of a named metric column.
func (r WideRecord) Metric(m Metric) float64 {
	switch m {
	case MetricDALY:
		return r.DALY
	case MetricYLL:
		return r.YLL
	case MetricYLD:
		return r.YLD
	}
	return 0
}

// Dimension exposes key columns as filterable dimensions for the query engine.
// Year is rendered as its decimal string so all dimensions compare uniformly.
func (r WideRecord) Dimension(name string) string {
	switch name {
	case DimYear:
		return strconv.Itoa(r.Year)
	case DimSex:
		return r.Sex
	case DimAge:
		return r.AgeGroup
	case DimLocation:
		return r.Location
	case DimCategory:
		return string(r.Category)
	case DimDisease:
		return r.Disease
	}
	return ""
}
