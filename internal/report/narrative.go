// Package report renders filtered views and forecasts into prose summaries.
// Every figure in the text comes from the query engine; this package only
// formats.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/query"
)

// Context carries the filter selections a narrative describes. Empty or
// "All" selections are phrased as the unconstrained form ("all sexes").
type Context struct {
	Year     string
	Sex      string
	AgeGroup string
	Location string
	Category string
	Disease  string
}

// FormatBigNumber renders a magnitude-scaled figure: 1.2B, 3.4M, 5.6K, or a
// comma-free integer below a thousand. NaN renders as N/A.
func FormatBigNumber(x float64) string {
	if math.IsNaN(x) {
		return "N/A"
	}
	abs := math.Abs(x)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", x/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", x/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", x/1_000)
	default:
		return fmt.Sprintf("%.0f", x)
	}
}

// Summary writes the national-overview narrative for a filtered view.
func Summary(k query.KPIs, topCauses []query.GroupRow, ctx Context) string {
	names := make([]string, 0, len(topCauses))
	for _, g := range topCauses {
		names = append(names, g.Key[model.DimDisease])
	}
	topList := strings.Join(names, ", ")

	domPct := "N/A"
	if k.DominantShare > 0 {
		domPct = fmt.Sprintf("%.1f%%", k.DominantShare*100)
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"In %s, the total DALYs rate burden was approximately %s for %s, %s, in %s.\n\n",
		phrase(ctx.Year, "all years"),
		FormatBigNumber(k.TotalDALY),
		phraseLower(ctx.Sex, "all sexes"),
		phraseLower(ctx.AgeGroup, "all ages"),
		phrase(ctx.Location, "all locations"),
	)
	fmt.Fprintf(&b,
		"%s accounted for about %s of total DALYs rate. The leading causes were: %s.\n\n",
		k.DominantCategory, domPct, topList,
	)
	fmt.Fprintf(&b,
		"YLLs rate was around %s, while YLDs rate was about %s, highlighting the combined impact of premature mortality and non-fatal health loss.",
		FormatBigNumber(k.TotalYLL),
		FormatBigNumber(k.TotalYLD),
	)
	return b.String()
}

// ForecastSummary writes the trend-projection narrative: observed change over
// the historical window and the projected value at the horizon.
func ForecastSummary(s *model.ForecastSeries, horizon int, ctx Context) string {
	if len(s.Points) == 0 {
		return ""
	}

	startYear := s.Points[0].Year
	startVal := s.Points[0].Value
	endYear := s.LastYear
	endVal := startVal
	if p, ok := s.At(endYear); ok {
		endVal = p.Value
	}
	projVal := endVal
	if p, ok := s.At(horizon); ok {
		projVal = p.Value
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"Between %d and %d, the %s rate changed from approximately %.2f to %.2f for %s, %s, in %s, category = %s, disease = %s.\n\n",
		startYear, endYear, s.Metric, startVal, endVal,
		phraseLower(ctx.Sex, "all sexes"),
		phraseLower(ctx.AgeGroup, "all ages"),
		phrase(ctx.Location, "all locations"),
		phrase(ctx.Category, "all categories"),
		phrase(ctx.Disease, "all diseases"),
	)
	if startVal != 0 {
		pct := (endVal - startVal) / startVal * 100
		fmt.Fprintf(&b, "This represents a %+.1f%% change over the observed period.\n\n", pct)
	}
	fmt.Fprintf(&b,
		"Assuming the historical linear trend continues, the projected %s rate for %d is about %.2f.\n\n",
		s.Metric, horizon, projVal,
	)
	b.WriteString("These are trend-based projections only and should be interpreted with caution. They do not account for new interventions, shocks, or changes in risk factor profiles.")
	return b.String()
}

func phrase(selected, unconstrained string) string {
	if selected == "" || selected == query.All {
		return unconstrained
	}
	return selected
}

func phraseLower(selected, unconstrained string) string {
	if selected == "" || selected == query.All {
		return unconstrained
	}
	return strings.ToLower(selected)
}
