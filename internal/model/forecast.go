package model

// PointKind tags a forecast series point as observed history or projection.
type PointKind string

const (
	PointObserved PointKind = "Observed"
	PointForecast PointKind = "Forecast"
)

// SeriesPoint is one year of a trend series.
type SeriesPoint struct {
	Year  int       `json:"year"`
	Value float64   `json:"value"`
	Kind  PointKind `json:"kind"`
}

// ForecastSeries is a continuous yearly series spanning the observed history
// and the linear-trend projection beyond it. For any observed year the point
// carries the observed aggregate, never the fitted value; only years past the
// last observed year are projections.
type ForecastSeries struct {
	Metric    Metric        `json:"metric"`
	Slope     float64       `json:"slope"`
	Intercept float64       `json:"intercept"`
	LastYear  int           `json:"last_observed_year"`
	Points    []SeriesPoint `json:"points"`
}

// At returns the point for a given year.
func (s *ForecastSeries) At(year int) (SeriesPoint, bool) {
	for _, p := range s.Points {
		if p.Year == year {
			return p, true
		}
	}
	return SeriesPoint{}, false
}
