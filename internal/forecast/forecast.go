// Package forecast fits a linear trend to a yearly aggregate series and
// extrapolates it. The fit is ordinary least squares with no regularization
// or seasonal component; projections are indicative scenarios, not validated
// statistical forecasts.
package forecast

import (
	"errors"
	"fmt"
	"sort"

	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/query"
)

// MinYears is the minimum number of distinct observed years required before
// a trend is fitted. A 2-point line carries no residual information, so
// shorter histories are reported instead of extrapolated.
const MinYears = 3

// ErrInsufficientHistory marks a series too short to fit. Callers branch on
// it with errors.Is; it is an expected outcome of valid input, not a
// pipeline failure.
var ErrInsufficientHistory = errors.New("insufficient history to fit a trend")

// Project fits value = slope*year + intercept over the observed series and
// evaluates the line for every year from the first observed year through
// horizon inclusive. Years with an observed value keep that value and are
// tagged Observed; the observation always overrides its own prediction.
// Years past the last observed year are tagged Forecast.
func Project(series []query.YearValue, metric model.Metric, horizon int) (*model.ForecastSeries, error) {
	distinct := make(map[int]bool, len(series))
	for _, p := range series {
		distinct[p.Year] = true
	}
	if len(distinct) < MinYears {
		return nil, fmt.Errorf("%w: have %d distinct years, need %d", ErrInsufficientHistory, len(distinct), MinYears)
	}

	obs := make([]query.YearValue, len(series))
	copy(obs, series)
	sort.Slice(obs, func(i, j int) bool { return obs[i].Year < obs[j].Year })

	slope, intercept := fit(obs)

	first := obs[0].Year
	last := obs[len(obs)-1].Year

	observed := make(map[int]float64, len(obs))
	for _, p := range obs {
		observed[p.Year] = p.Value
	}

	out := &model.ForecastSeries{
		Metric:    metric,
		Slope:     slope,
		Intercept: intercept,
		LastYear:  last,
	}
	for year := first; year <= horizon; year++ {
		point := model.SeriesPoint{
			Year:  year,
			Value: slope*float64(year) + intercept,
			Kind:  model.PointForecast,
		}
		if year <= last {
			point.Kind = model.PointObserved
		}
		if v, ok := observed[year]; ok {
			point.Value = v
		}
		out.Points = append(out.Points, point)
	}
	return out, nil
}

// fit computes the least-squares line value = slope*year + intercept.
func fit(obs []query.YearValue) (slope, intercept float64) {
	n := float64(len(obs))
	var sumX, sumY float64
	for _, p := range obs {
		sumX += float64(p.Year)
		sumY += p.Value
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, p := range obs {
		dx := float64(p.Year) - meanX
		sxx += dx * dx
		sxy += dx * (p.Value - meanY)
	}
	if sxx == 0 {
		return 0, meanY
	}
	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept
}
