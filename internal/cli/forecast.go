package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthforge/gbdkit/internal/export"
	"github.com/healthforge/gbdkit/internal/forecast"
	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/query"
	"github.com/healthforge/gbdkit/internal/report"
)

var (
	fHorizon   int
	fMetric    string
	fCSV       string
	fNarrative bool
	fLLM       bool
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project a yearly burden series with a linear trend",
	Long: `Forecast aggregates the filtered wide table per year, fits an ordinary
least-squares line over the observed series, and extrapolates it to the
horizon year. Observed years always report their observed aggregate, never
the fitted value; only later years are projections.

At least 3 distinct observed years are required; shorter histories are
reported rather than extrapolated. Projections are indicative scenarios,
not validated statistical forecasts.

Example:
  gbdkit forecast --to 2030
  gbdkit forecast --to 2030 --metric YLD --location Lagos --csv proj.csv`,
	Args: cobra.NoArgs,
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	// Forecast reuses the query filter flags so a projection describes the
	// same slice a query would.
	forecastCmd.Flags().StringSliceVar(&qSexes, "sex", nil, "filter by sex")
	forecastCmd.Flags().StringSliceVar(&qAges, "age", nil, "filter by age group")
	forecastCmd.Flags().StringSliceVar(&qLocations, "location", nil, "filter by location")
	forecastCmd.Flags().StringSliceVar(&qCategories, "category", nil, "filter by high-level category")
	forecastCmd.Flags().StringSliceVar(&qDiseases, "disease", nil, "filter by disease (cause)")

	forecastCmd.Flags().IntVar(&fHorizon, "to", 2030, "forecast up to this year")
	forecastCmd.Flags().StringVar(&fMetric, "metric", "DALY", "metric to project (DALY, YLL, YLD)")
	forecastCmd.Flags().StringVar(&fCSV, "csv", "", "write the observed+projected series to this CSV path")
	forecastCmd.Flags().BoolVar(&fNarrative, "narrative", false, "print a prose summary of the projection")
	forecastCmd.Flags().BoolVar(&fLLM, "llm", false, "polish the narrative with the configured LLM provider")
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	metric, err := model.ParseMetric(fMetric)
	if err != nil {
		return err
	}

	wide, err := newStore(cfg).Wide()
	if err != nil {
		return err
	}

	filtered := query.Apply(wide, buildSpec())
	if len(filtered) == 0 {
		fmt.Println("No rows match the selected filters.")
		return nil
	}

	series := query.YearSeries(filtered, metric)
	projected, err := forecast.Project(series, metric, fHorizon)
	if errors.Is(err, forecast.ErrInsufficientHistory) {
		fmt.Printf("Not enough historical years to fit a stable trend: %v\n", err)
		fmt.Println("Observed series:")
		for _, p := range series {
			fmt.Printf("  %d  %s\n", p.Year, report.FormatBigNumber(p.Value))
		}
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Linear trend: %s = %.4f * year %+.4f\n\n", metric, projected.Slope, projected.Intercept)
	fmt.Printf("%-6s %-14s %s\n", "Year", string(metric), "Type")
	for _, p := range projected.Points {
		fmt.Printf("%-6d %-14.2f %s\n", p.Year, p.Value, p.Kind)
	}

	if fCSV != "" {
		if err := writeForecastCSV(fCSV, projected); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", fCSV)
	}

	if fNarrative || fLLM {
		narrative := report.ForecastSummary(projected, fHorizon, queryContext())
		fmt.Println()
		fmt.Println(narrative)

		if fLLM {
			if err := printPolished(cfg, narrative); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: LLM polish failed: %v\n", err)
			}
		}
	}

	return nil
}

func writeForecastCSV(path string, s *model.ForecastSeries) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return export.WriteForecastCSV(f, s)
}
