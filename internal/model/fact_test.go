package model

import (
	"math"
	"testing"
)

func TestFactRecord_NumericCells(t *testing.T) {
	r := FactRecord{Fields: map[string]string{
		ColYear:  "2019",
		ColVal:   "123.45",
		ColUpper: " 130.0 ",
		ColLower: "junk",
	}}

	if r.Year() != 2019 {
		t.Errorf("Year = %d, want 2019", r.Year())
	}
	if r.Val() != 123.45 {
		t.Errorf("Val = %v, want 123.45", r.Val())
	}
	if r.Upper() != 130 {
		t.Errorf("Upper = %v, want 130 (whitespace tolerated)", r.Upper())
	}
	if !math.IsNaN(r.Lower()) {
		t.Errorf("Lower = %v, want NaN for unparseable cell", r.Lower())
	}
}

func TestFactRecord_AbsentCells(t *testing.T) {
	r := FactRecord{Fields: map[string]string{}}

	if r.Get(ColLocation) != "" {
		t.Error("Get on absent column should be empty")
	}
	if r.Year() != 0 {
		t.Errorf("Year = %d, want 0", r.Year())
	}
	if !math.IsNaN(r.Val()) {
		t.Errorf("Val = %v, want NaN", r.Val())
	}
}

func TestFactRecord_FloatYear(t *testing.T) {
	r := FactRecord{Fields: map[string]string{ColYear: "2019.0"}}
	if r.Year() != 2019 {
		t.Errorf("Year = %d, want 2019 for a float-formatted cell", r.Year())
	}
}

func TestParseMetric(t *testing.T) {
	for in, want := range map[string]Metric{
		"DALY": MetricDALY,
		"daly": MetricDALY,
		" yll": MetricYLL,
		"Yld":  MetricYLD,
	} {
		got, err := ParseMetric(in)
		if err != nil || got != want {
			t.Errorf("ParseMetric(%q) = %v %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseMetric("QALY"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestWideRecord_Dimension(t *testing.T) {
	w := WideRecord{
		Year: 2019, Sex: "Male", AgeGroup: "All ages",
		Location: "Lagos", Category: CategoryNCD, Disease: "Stroke",
	}

	cases := map[string]string{
		DimYear:     "2019",
		DimSex:      "Male",
		DimAge:      "All ages",
		DimLocation: "Lagos",
		DimCategory: string(CategoryNCD),
		DimDisease:  "Stroke",
	}
	for dim, want := range cases {
		if got := w.Dimension(dim); got != want {
			t.Errorf("Dimension(%q) = %q, want %q", dim, got, want)
		}
	}
	if w.Dimension("nope") != "" {
		t.Error("unknown dimension should be empty")
	}
}

func TestForecastSeries_At(t *testing.T) {
	s := &ForecastSeries{Points: []SeriesPoint{
		{Year: 2019, Value: 5, Kind: PointObserved},
		{Year: 2020, Value: 7, Kind: PointForecast},
	}}

	p, ok := s.At(2020)
	if !ok || p.Value != 7 || p.Kind != PointForecast {
		t.Errorf("At(2020) = %+v %v", p, ok)
	}
	if _, ok := s.At(1999); ok {
		t.Error("At on absent year reported a hit")
	}
}
