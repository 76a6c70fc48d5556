package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/healthforge/gbdkit/internal/ingest"
	"github.com/healthforge/gbdkit/internal/model"
)

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()

	daly := "measure_name,location_name,sex_name,age_name,cause_name,year,val,measure_id,cause_id\n" +
		"DALYs (Disability-Adjusted Life Years),Lagos,Both,All ages,Malaria,2019,100,2,345\n"
	yll := "location_name,sex_name,age_name,cause_name,year,val\n" +
		"Lagos,Both,All ages,Malaria,2019,60\n"
	if err := os.WriteFile(filepath.Join(dir, "DALYs_Rate.csv"), []byte(daly), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "YLLs_rate.csv"), []byte(yll), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Data.Dir = dir
	cfg.Data.RawFiles = []string{"DALYs_Rate.csv", "YLLs_rate.csv"}

	p := NewPipeline(cfg)
	report, err := p.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.RunID == "" {
		t.Error("report missing run ID")
	}
	if report.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", report.TotalRows)
	}
	if len(report.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(report.Sources))
	}
	if report.Sources[1].MeasureOrigin != "filename" {
		t.Errorf("YLL source origin = %q, want filename", report.Sources[1].MeasureOrigin)
	}

	raw, err := ingest.ReadTable(report.RawPath)
	if err != nil {
		t.Fatalf("read raw artifact: %v", err)
	}
	if !raw.HasColumn("measure_id") {
		t.Error("raw artifact lost the identifier columns")
	}

	clean, err := ingest.ReadTable(report.CleanPath)
	if err != nil {
		t.Fatalf("read clean artifact: %v", err)
	}
	if clean.HasColumn("measure_id") || clean.HasColumn("cause_id") {
		t.Error("clean artifact kept identifier columns")
	}
	if clean.Len() != 2 {
		t.Errorf("clean rows = %d, want 2", clean.Len())
	}
	if got := clean.Records[1].Get(model.ColMeasureStandard); got != model.MeasureYLLs {
		t.Errorf("clean row 1 measure = %q, want %q", got, model.MeasureYLLs)
	}
	if clean.Columns[0] != model.ColMeasureStandard {
		t.Errorf("clean first column = %q, want %q", clean.Columns[0], model.ColMeasureStandard)
	}
}

func TestPipeline_RunWithSQLite(t *testing.T) {
	dir := t.TempDir()
	daly := "location_name,sex_name,age_name,cause_name,year,val\n" +
		"Lagos,Both,All ages,Malaria,2019,100\n"
	if err := os.WriteFile(filepath.Join(dir, "DALYs_Rate.csv"), []byte(daly), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Data.Dir = dir
	cfg.Data.RawFiles = []string{"DALYs_Rate.csv"}

	p := NewPipeline(cfg)
	p.SQLitePath = filepath.Join(dir, "gbd.db")

	report, err := p.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.SQLitePath != p.SQLitePath {
		t.Errorf("report SQLitePath = %q", report.SQLitePath)
	}
	if _, err := os.Stat(p.SQLitePath); err != nil {
		t.Errorf("sqlite artifact not written: %v", err)
	}
}

func TestPipeline_AbortsOnMissingSource(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	cfg.Data.RawFiles = []string{"DALYs_Rate.csv"}

	if _, err := NewPipeline(cfg).Run(); err == nil {
		t.Fatal("expected Run to fail on a missing source")
	}
	if _, err := os.Stat(cfg.Data.RawPath()); !os.IsNotExist(err) {
		t.Error("raw artifact written despite failed merge")
	}
}
