package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/healthforge/gbdkit/internal/export"
	"github.com/healthforge/gbdkit/internal/llm"
	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/query"
	"github.com/healthforge/gbdkit/internal/report"
)

var (
	qYears      []string
	qSexes      []string
	qAges       []string
	qLocations  []string
	qCategories []string
	qDiseases   []string
	qMetric     string
	qGroupBy    []string
	qMean       bool
	qTop        int
	qCSV        string
	qJSON       bool
	qNarrative  bool
	qLLM        bool
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter and aggregate the wide burden table",
	Long: `Query applies equality filters over the wide burden table, reports the
headline figures (total DALY/YLL/YLD, dominant category and its share), and
optionally aggregates a metric across chosen dimensions.

Filters compose as a logical AND; within one dimension several accepted
values may be given. The sentinel "All" leaves a dimension unconstrained.
A filter combination matching no rows is a valid, empty result.

Example:
  gbdkit query --year 2019 --location Lagos
  gbdkit query --year 2019 --metric YLD --group-by disease --top 10
  gbdkit query --sex Male --group-by year --mean --csv trend.csv`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	// Filter flags
	queryCmd.Flags().StringSliceVar(&qYears, "year", nil, "filter by year(s)")
	queryCmd.Flags().StringSliceVar(&qSexes, "sex", nil, "filter by sex")
	queryCmd.Flags().StringSliceVar(&qAges, "age", nil, "filter by age group")
	queryCmd.Flags().StringSliceVar(&qLocations, "location", nil, "filter by location")
	queryCmd.Flags().StringSliceVar(&qCategories, "category", nil, "filter by high-level category")
	queryCmd.Flags().StringSliceVar(&qDiseases, "disease", nil, "filter by disease (cause)")

	// Aggregation flags
	queryCmd.Flags().StringVar(&qMetric, "metric", "DALY", "metric to aggregate (DALY, YLL, YLD)")
	queryCmd.Flags().StringSliceVar(&qGroupBy, "group-by", nil, "dimensions to group by (year, sex, age_group, location, category, disease)")
	queryCmd.Flags().BoolVar(&qMean, "mean", false, "average per group instead of summing")
	queryCmd.Flags().IntVar(&qTop, "top", 0, "keep only the N largest groups")

	// Output flags
	queryCmd.Flags().StringVar(&qCSV, "csv", "", "write the filtered (or grouped) view to this CSV path")
	queryCmd.Flags().BoolVar(&qJSON, "json", false, "print the result as a JSON report instead of text")
	queryCmd.Flags().BoolVar(&qNarrative, "narrative", false, "print a prose summary of the filtered view")
	queryCmd.Flags().BoolVar(&qLLM, "llm", false, "polish the narrative with the configured LLM provider")
}

// buildSpec translates filter flags into an engine spec.
func buildSpec() query.Spec {
	return query.NewSpec().
		Where(model.DimYear, qYears...).
		Where(model.DimSex, qSexes...).
		Where(model.DimAge, qAges...).
		Where(model.DimLocation, qLocations...).
		Where(model.DimCategory, qCategories...).
		Where(model.DimDisease, qDiseases...)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	metric, err := model.ParseMetric(qMetric)
	if err != nil {
		return err
	}

	wide, err := newStore(cfg).Wide()
	if err != nil {
		return err
	}

	spec := buildSpec()
	filtered := query.Apply(wide, spec)
	if len(filtered) == 0 && !qJSON {
		fmt.Println("No rows match the selected filters.")
		return nil
	}

	kpis := query.ComputeKPIs(filtered)

	var groups []query.GroupRow
	if len(qGroupBy) > 0 {
		if qMean {
			groups = query.GroupMean(filtered, qGroupBy, query.MetricOf(metric))
		} else {
			groups = query.GroupSum(filtered, qGroupBy, query.MetricOf(metric))
		}
		groups = query.TopN(groups, qGroupBy, qTop)
	}

	var narrative string
	if qNarrative || qLLM {
		diseaseKeys := []string{model.DimDisease}
		top := query.TopN(query.GroupSum(filtered, diseaseKeys, query.MetricOf(model.MetricDALY)), diseaseKeys, 3)
		narrative = report.Summary(kpis, top, queryContext())
	}

	if qCSV != "" {
		if err := writeQueryCSV(qCSV, string(metric), filtered, groups); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", qCSV)
	}

	if qJSON {
		return printJSONReport(cfg, spec, metric, len(filtered), kpis, narrative)
	}

	fmt.Printf("Rows:        %d\n", len(filtered))
	fmt.Printf("Total DALYs: %s\n", report.FormatBigNumber(kpis.TotalDALY))
	fmt.Printf("Total YLLs:  %s\n", report.FormatBigNumber(kpis.TotalYLL))
	fmt.Printf("Total YLDs:  %s\n", report.FormatBigNumber(kpis.TotalYLD))
	fmt.Printf("Dominant category: %s (%.1f%% of total DALYs)\n", kpis.DominantCategory, kpis.DominantShare*100)

	if len(groups) > 0 {
		fmt.Println()
		for _, g := range groups {
			fmt.Printf("%-50s %s\n", g.Label(qGroupBy), report.FormatBigNumber(g.Value))
		}
	}

	if narrative != "" {
		fmt.Println()
		fmt.Println(narrative)

		if qLLM {
			if err := printPolished(cfg, narrative); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: LLM polish failed: %v\n", err)
			}
		}
	}

	return nil
}

// printJSONReport emits the machine-readable form of a query result. The
// LLM-polished summary, when requested, rides along in a separate field so
// consumers can always tell computed figures from generated prose.
func printJSONReport(cfg *model.Config, spec query.Spec, metric model.Metric, rows int, kpis query.KPIs, narrative string) error {
	qr := model.QueryReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Filters:     spec.Constraints(),
		Metric:      metric,
		Rows:        rows,
		TotalDALY:   kpis.TotalDALY,
		TotalYLL:    kpis.TotalYLL,
		TotalYLD:    kpis.TotalYLD,

		DominantCategory: kpis.DominantCategory,
		DominantShare:    kpis.DominantShare,
		Narrative:        narrative,
	}

	if qLLM && narrative != "" {
		summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}
		if summarizer.IsEnabled() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			summary, err := summarizer.Polish(ctx, narrative)
			if err != nil {
				qr.LLM = &model.LLMSummary{Warnings: []string{err.Error()}}
			} else {
				qr.LLM = summary
			}
		}
	}

	out, err := json.MarshalIndent(qr, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// queryContext turns the filter flags into narrative phrasing; only
// single-valued selections are named, everything else reads as "all".
func queryContext() report.Context {
	return report.Context{
		Year:     singleOrAll(qYears),
		Sex:      singleOrAll(qSexes),
		AgeGroup: singleOrAll(qAges),
		Location: singleOrAll(qLocations),
		Category: singleOrAll(qCategories),
		Disease:  singleOrAll(qDiseases),
	}
}

func singleOrAll(values []string) string {
	if len(values) == 1 {
		return values[0]
	}
	return query.All
}

func writeQueryCSV(path, metric string, filtered []model.WideRecord, groups []query.GroupRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if len(groups) > 0 {
		return export.WriteGroupsCSV(f, qGroupBy, metric, groups)
	}
	return export.WriteWideCSV(f, filtered)
}

func printPolished(cfg *model.Config, narrative string) error {
	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}
	if !summarizer.IsEnabled() {
		return fmt.Errorf("no LLM provider configured (set llm.provider or GBDKIT_LLM_PROVIDER)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := summarizer.Polish(ctx, narrative)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(summary.SummaryMD)
	return nil
}
