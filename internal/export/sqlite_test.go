package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/healthforge/gbdkit/internal/model"
)

func TestWriteSQLite(t *testing.T) {
	fact := &model.FactTable{
		Columns: []string{"measure_name_standard", "location_name", "year", "val", "upper"},
		Records: []model.FactRecord{
			{Fields: map[string]string{
				"measure_name_standard": "DALYs Rate",
				"location_name":         "Lagos",
				"year":                  "2019",
				"val":                   "100",
			}},
			{Fields: map[string]string{
				"measure_name_standard": "YLLs Rate",
				"location_name":         "Lagos",
				"year":                  "2019",
				"val":                   "60",
				"upper":                 "70",
			}},
		},
	}
	wide := []model.WideRecord{
		{
			Year: 2019, Sex: "Both", AgeGroup: "All ages", Location: "Lagos",
			Category: model.CategoryCommunicable, Disease: "Malaria",
			DALY: 100, YLL: 60, YLD: 40,
		},
	}

	path := filepath.Join(t.TempDir(), "gbd.db")
	if err := WriteSQLite(path, fact, wide); err != nil {
		t.Fatalf("WriteSQLite failed: %v", err)
	}

	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM fact`).Scan(&n); err != nil {
		t.Fatalf("count fact: %v", err)
	}
	if n != 2 {
		t.Errorf("fact rows = %d, want 2", n)
	}

	// The first row had no upper cell: it must be NULL, not "".
	if err := db.QueryRow(`SELECT COUNT(*) FROM fact WHERE upper IS NULL`).Scan(&n); err != nil {
		t.Fatalf("count null upper: %v", err)
	}
	if n != 1 {
		t.Errorf("NULL upper rows = %d, want 1", n)
	}

	var daly, yld float64
	var disease string
	row := db.QueryRow(`SELECT disease, daly, yld FROM wide WHERE year = 2019`)
	if err := row.Scan(&disease, &daly, &yld); err != nil {
		t.Fatalf("read wide: %v", err)
	}
	if disease != "Malaria" || daly != 100 || yld != 40 {
		t.Errorf("wide row = %s %v %v", disease, daly, yld)
	}
}

func TestWriteSQLite_ReplacesExistingTables(t *testing.T) {
	fact := &model.FactTable{
		Columns: []string{"location_name", "val"},
		Records: []model.FactRecord{
			{Fields: map[string]string{"location_name": "Lagos", "val": "1"}},
		},
	}

	path := filepath.Join(t.TempDir(), "gbd.db")
	if err := WriteSQLite(path, fact, nil); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	fact.Records = append(fact.Records, model.FactRecord{
		Fields: map[string]string{"location_name": "Kano", "val": "2"},
	})
	if err := WriteSQLite(path, fact, nil); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM fact`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("fact rows after rewrite = %d, want 2", n)
	}
}
