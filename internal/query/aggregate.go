package query

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/healthforge/gbdkit/internal/model"
)

// GroupRow is one aggregated cell: the values of the group keys plus the
// reduced metric.
type GroupRow struct {
	Key   map[string]string
	Value float64
	Count int
}

// Label joins the key values in key order, for display.
func (g GroupRow) Label(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, g.Key[k])
	}
	return strings.Join(parts, " / ")
}

// GroupSum sums a metric per distinct combination of group keys. Groups come
// back in first-seen row order; summation is the only defined reduction
// because key tuples are not unique across source files.
func GroupSum[T Row](rows []T, keys []string, metric func(T) float64) []GroupRow {
	return groupReduce(rows, keys, metric, false)
}

// GroupMean averages a metric per group. Used only where the semantics
// genuinely intend an average, such as flattening per-state trend lines
// derived from rows that mix sexes and ages.
func GroupMean[T Row](rows []T, keys []string, metric func(T) float64) []GroupRow {
	return groupReduce(rows, keys, metric, true)
}

func groupReduce[T Row](rows []T, keys []string, metric func(T) float64, mean bool) []GroupRow {
	if len(rows) == 0 {
		return nil
	}

	grouped := make(map[string]int)
	groups := make([]GroupRow, 0)

	for _, r := range rows {
		composite := compositeKey(r, keys)
		idx, ok := grouped[composite]
		if !ok {
			key := make(map[string]string, len(keys))
			for _, k := range keys {
				key[k] = r.Dimension(k)
			}
			idx = len(groups)
			grouped[composite] = idx
			groups = append(groups, GroupRow{Key: key})
		}

		v := metric(r)
		if math.IsNaN(v) {
			v = 0
		}
		groups[idx].Value += v
		groups[idx].Count++
	}

	if mean {
		for i := range groups {
			if groups[i].Count > 0 {
				groups[i].Value /= float64(groups[i].Count)
			}
		}
	}
	return groups
}

func compositeKey[T Row](r T, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, r.Dimension(k))
	}
	return strings.Join(parts, "\x1f")
}

// SortByValueDesc orders groups by descending value, ties broken by the
// first key for determinism.
func SortByValueDesc(groups []GroupRow, keys []string) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value > groups[j].Value
		}
		return groups[i].Label(keys) < groups[j].Label(keys)
	})
}

// TopN returns the first n groups after sorting by descending value.
func TopN(groups []GroupRow, keys []string, n int) []GroupRow {
	out := make([]GroupRow, len(groups))
	copy(out, groups)
	SortByValueDesc(out, keys)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Dominant returns the largest group and its share of the grand total.
// The share is 0 when the grand total is 0 or negative, never a division
// fault; ok is false when there are no groups at all.
func Dominant(groups []GroupRow, keys []string) (top GroupRow, share float64, ok bool) {
	if len(groups) == 0 {
		return GroupRow{}, 0, false
	}

	sorted := make([]GroupRow, len(groups))
	copy(sorted, groups)
	SortByValueDesc(sorted, keys)

	var total float64
	for _, g := range sorted {
		total += g.Value
	}

	top = sorted[0]
	if total > 0 {
		share = top.Value / total
	}
	return top, share, true
}

// MetricOf returns an accessor for a wide-table metric column.
func MetricOf(m model.Metric) func(model.WideRecord) float64 {
	return func(r model.WideRecord) float64 { return r.Metric(m) }
}

// ValOf reads the val column of a long-table row, coercing missing or
// unparseable cells to 0.
func ValOf(r model.FactRecord) float64 {
	v := r.Val()
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// YearSeries aggregates a metric per year over wide rows and returns the
// (year, sum) pairs sorted by year ascending. This is the input shape the
// trend forecaster consumes.
func YearSeries(rows []model.WideRecord, m model.Metric) []YearValue {
	groups := GroupSum(rows, []string{model.DimYear}, MetricOf(m))
	out := make([]YearValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, YearValue{Year: atoiSafe(g.Key[model.DimYear]), Value: g.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// YearValue is one point of a yearly aggregate series.
type YearValue struct {
	Year  int
	Value float64
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
