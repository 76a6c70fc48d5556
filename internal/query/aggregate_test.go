package query

import (
	"math"
	"testing"

	"github.com/healthforge/gbdkit/internal/model"
)

func TestGroupSum_SumsPerKeyInFirstSeenOrder(t *testing.T) {
	rows := sampleWide()
	keys := []string{model.DimLocation}

	groups := GroupSum(rows, keys, MetricOf(model.MetricDALY))
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key[model.DimLocation] != "Lagos" || groups[0].Value != 190 {
		t.Errorf("group[0] = %v %v, want Lagos 190", groups[0].Key, groups[0].Value)
	}
	if groups[1].Key[model.DimLocation] != "Kano" || groups[1].Value != 65 {
		t.Errorf("group[1] = %v %v, want Kano 65", groups[1].Key, groups[1].Value)
	}
}

// Summing each partition of the rows and then summing per group must agree
// with summing the whole slice at once.
func TestGroupSum_PartitionAssociativity(t *testing.T) {
	rows := sampleWide()
	keys := []string{model.DimLocation}

	whole := GroupSum(rows, keys, MetricOf(model.MetricDALY))

	partial := make(map[string]float64)
	for _, part := range [][]model.WideRecord{rows[:1], rows[1:3], rows[3:]} {
		for _, g := range GroupSum(part, keys, MetricOf(model.MetricDALY)) {
			partial[g.Key[model.DimLocation]] += g.Value
		}
	}

	for _, g := range whole {
		if got := partial[g.Key[model.DimLocation]]; math.Abs(got-g.Value) > 1e-9 {
			t.Errorf("partitioned sum for %s = %v, whole = %v",
				g.Key[model.DimLocation], got, g.Value)
		}
	}
}

func TestGroupSum_CompositeKeys(t *testing.T) {
	rows := sampleWide()
	keys := []string{model.DimLocation, model.DimSex}

	groups := GroupSum(rows, keys, MetricOf(model.MetricDALY))
	if len(groups) != 4 {
		t.Fatalf("expected 4 composite groups, got %d", len(groups))
	}
	if got := groups[0].Label(keys); got != "Lagos / Male" {
		t.Errorf("first label = %q, want %q", got, "Lagos / Male")
	}
}

func TestGroupSum_EmptyInput(t *testing.T) {
	if got := GroupSum(nil, []string{model.DimSex}, MetricOf(model.MetricDALY)); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
}

func TestGroupMean_AveragesPerGroup(t *testing.T) {
	rows := sampleWide()
	groups := GroupMean(rows, []string{model.DimLocation}, MetricOf(model.MetricDALY))
	if groups[0].Value != 95 {
		t.Errorf("Lagos mean = %v, want 95", groups[0].Value)
	}
	if groups[1].Value != 32.5 {
		t.Errorf("Kano mean = %v, want 32.5", groups[1].Value)
	}
}

func TestTopN_SortsDescAndTruncates(t *testing.T) {
	rows := sampleWide()
	keys := []string{model.DimDisease}
	groups := GroupSum(rows, keys, MetricOf(model.MetricDALY))

	top := TopN(groups, keys, 2)
	if len(top) != 2 {
		t.Fatalf("TopN returned %d groups, want 2", len(top))
	}
	if top[0].Key[model.DimDisease] != "Malaria" {
		t.Errorf("top group = %v, want Malaria", top[0].Key)
	}
	if top[1].Key[model.DimDisease] != "Stroke" {
		t.Errorf("second group = %v, want Stroke", top[1].Key)
	}

	// TopN operates on a copy.
	if groups[0].Key[model.DimDisease] != "Malaria" || len(groups) != 3 {
		t.Errorf("TopN mutated its input: %v", groups)
	}
}

func TestSortByValueDesc_TiesBreakByLabel(t *testing.T) {
	keys := []string{model.DimDisease}
	groups := []GroupRow{
		{Key: map[string]string{model.DimDisease: "Stroke"}, Value: 10},
		{Key: map[string]string{model.DimDisease: "Asthma"}, Value: 10},
	}
	SortByValueDesc(groups, keys)
	if groups[0].Key[model.DimDisease] != "Asthma" {
		t.Errorf("tie not broken by label: %v", groups)
	}
}

func TestDominant_ShareBounds(t *testing.T) {
	keys := []string{model.DimCategory}
	groups := GroupSum(sampleWide(), keys, MetricOf(model.MetricDALY))

	top, share, ok := Dominant(groups, keys)
	if !ok {
		t.Fatal("Dominant reported no groups")
	}
	if top.Key[model.DimCategory] != string(model.CategoryCommunicable) {
		t.Errorf("dominant = %v", top.Key)
	}
	if share <= 0 || share > 1 {
		t.Errorf("share = %v, want in (0, 1]", share)
	}
	want := 190.0 / 255.0
	if math.Abs(share-want) > 1e-12 {
		t.Errorf("share = %v, want %v", share, want)
	}
}

func TestDominant_ZeroTotalYieldsZeroShare(t *testing.T) {
	keys := []string{model.DimCategory}
	groups := []GroupRow{
		{Key: map[string]string{model.DimCategory: "A"}, Value: 0},
		{Key: map[string]string{model.DimCategory: "B"}, Value: 0},
	}
	if _, share, ok := Dominant(groups, keys); !ok || share != 0 {
		t.Errorf("zero total: share = %v ok = %v, want 0 true", share, ok)
	}

	if _, _, ok := Dominant(nil, keys); ok {
		t.Error("Dominant over no groups must report ok = false")
	}
}

func TestGroupSum_LongRowsWithValOf(t *testing.T) {
	rows := []model.FactRecord{
		{Fields: map[string]string{model.ColLocation: "Lagos", model.ColVal: "10"}},
		{Fields: map[string]string{model.ColLocation: "Lagos", model.ColVal: "junk"}},
		{Fields: map[string]string{model.ColLocation: "Kano", model.ColVal: "4.5"}},
	}

	groups := GroupSum(rows, []string{model.ColLocation}, ValOf)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Value != 10 {
		t.Errorf("Lagos sum = %v, want 10 (bad cell coerces to 0)", groups[0].Value)
	}
	if groups[1].Value != 4.5 {
		t.Errorf("Kano sum = %v, want 4.5", groups[1].Value)
	}
}

func TestYearSeries_SortedAscending(t *testing.T) {
	rows := []model.WideRecord{
		wideRow(2020, "Both", "All ages", "Lagos", model.CategoryNCD, "Stroke", 30, 20),
		wideRow(2018, "Both", "All ages", "Lagos", model.CategoryNCD, "Stroke", 10, 5),
		wideRow(2019, "Both", "All ages", "Lagos", model.CategoryNCD, "Stroke", 20, 10),
		wideRow(2018, "Both", "All ages", "Kano", model.CategoryNCD, "Stroke", 4, 2),
	}

	series := YearSeries(rows, model.MetricDALY)
	if len(series) != 3 {
		t.Fatalf("expected 3 years, got %d", len(series))
	}
	wantYears := []int{2018, 2019, 2020}
	wantVals := []float64{14, 20, 30}
	for i := range series {
		if series[i].Year != wantYears[i] || series[i].Value != wantVals[i] {
			t.Errorf("series[%d] = %+v, want {%d %v}", i, series[i], wantYears[i], wantVals[i])
		}
	}
}

func TestComputeKPIs(t *testing.T) {
	k := ComputeKPIs(sampleWide())
	if k.TotalDALY != 255 {
		t.Errorf("TotalDALY = %v, want 255", k.TotalDALY)
	}
	if k.TotalYLL != 160 {
		t.Errorf("TotalYLL = %v, want 160", k.TotalYLL)
	}
	if k.TotalYLD != 95 {
		t.Errorf("TotalYLD = %v, want 95", k.TotalYLD)
	}
	if k.DominantCategory != string(model.CategoryCommunicable) {
		t.Errorf("DominantCategory = %q", k.DominantCategory)
	}
	if k.DominantShare <= 0 || k.DominantShare > 1 {
		t.Errorf("DominantShare = %v out of range", k.DominantShare)
	}
}

func TestComputeKPIs_EmptyView(t *testing.T) {
	k := ComputeKPIs(nil)
	if k.TotalDALY != 0 || k.DominantCategory != "N/A" || k.DominantShare != 0 {
		t.Errorf("empty view KPIs = %+v", k)
	}
}
