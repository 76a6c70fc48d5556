package export

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/query"
)

func TestWriteFactCSV_PreservesColumnOrderAndBlanks(t *testing.T) {
	table := &model.FactTable{
		Columns: []string{"measure_name_standard", "location_name", "year", "val", "upper"},
		Records: []model.FactRecord{
			{Fields: map[string]string{
				"measure_name_standard": "DALYs Rate",
				"location_name":         "Lagos",
				"year":                  "2019",
				"val":                   "100.5",
				"upper":                 "110",
			}},
			{Fields: map[string]string{
				"measure_name_standard": "YLLs Rate",
				"location_name":         "Kano",
				"year":                  "2019",
				"val":                   "60",
				// no upper: the cell must come out empty
			}},
		},
	}

	var buf bytes.Buffer
	if err := WriteFactCSV(&buf, table); err != nil {
		t.Fatalf("WriteFactCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "measure_name_standard,location_name,year,val,upper" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "DALYs Rate,Lagos,2019,100.5,110" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "YLLs Rate,Kano,2019,60," {
		t.Errorf("row 2 = %q (missing cell should be empty)", lines[2])
	}
}

func TestWriteWideCSV(t *testing.T) {
	rows := []model.WideRecord{
		{
			Year: 2019, Sex: "Both", AgeGroup: "All ages", Location: "Lagos",
			Category: model.CategoryCommunicable, Disease: "Malaria",
			DALY: 100, YLL: 60.25, YLD: 39.75,
		},
	}

	var buf bytes.Buffer
	if err := WriteWideCSV(&buf, rows); err != nil {
		t.Fatalf("WriteWideCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != strings.Join(WideColumns, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2019,Lagos,Both,All ages,Communicable diseases,Malaria,100,60.25,39.75" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteWideCSVFile(t *testing.T) {
	rows := []model.WideRecord{
		{Year: 2019, Location: "Lagos", Category: model.CategoryNCD, Disease: "Stroke", DALY: 40, YLL: 30, YLD: 10},
	}

	path := t.TempDir() + "/wide.csv"
	if err := WriteWideCSVFile(path, rows); err != nil {
		t.Fatalf("WriteWideCSVFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != strings.Join(WideColumns, ",") {
		t.Errorf("wide file content: %q", string(data))
	}
}

func TestWriteGroupsCSV(t *testing.T) {
	keys := []string{model.DimCategory}
	groups := []query.GroupRow{
		{Key: map[string]string{model.DimCategory: "Communicable diseases"}, Value: 190},
		{Key: map[string]string{model.DimCategory: "Injuries"}, Value: 25},
	}

	var buf bytes.Buffer
	if err := WriteGroupsCSV(&buf, keys, "DALY", groups); err != nil {
		t.Fatalf("WriteGroupsCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"category,DALY",
		"Communicable diseases,190",
		"Injuries,25",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWriteForecastCSV(t *testing.T) {
	s := &model.ForecastSeries{
		Metric: model.MetricDALY,
		Points: []model.SeriesPoint{
			{Year: 2017, Value: 60, Kind: model.PointObserved},
			{Year: 2018, Value: 65, Kind: model.PointForecast},
		},
	}

	var buf bytes.Buffer
	if err := WriteForecastCSV(&buf, s); err != nil {
		t.Fatalf("WriteForecastCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"year,DALY,type",
		"2017,60,Observed",
		"2018,65,Forecast",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWriteFactCSVFile_RoundTrip(t *testing.T) {
	table := &model.FactTable{
		Columns: []string{"a", "b"},
		Records: []model.FactRecord{
			{Fields: map[string]string{"a": "1", "b": "x, y"}},
		},
	}

	path := t.TempDir() + "/out.csv"
	if err := WriteFactCSVFile(path, table); err != nil {
		t.Fatalf("WriteFactCSVFile failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteFactCSV(&buf, table); err != nil {
		t.Fatal(err)
	}
	// Quoting of the embedded comma is csv-library behavior; just confirm the
	// file writer and the stream writer agree.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != buf.String() {
		t.Errorf("file content %q differs from stream content %q", data, buf.String())
	}
}
