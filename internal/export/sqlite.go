package export

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/healthforge/gbdkit/internal/model"
)

// WriteSQLite writes the clean fact table and its wide pivot into a SQLite
// database, replacing any existing fact/wide tables. This is the columnar
// artifact for consumers who prefer SQL over re-parsing CSV.
func WriteSQLite(path string, fact *model.FactTable, wide []model.WideRecord) (err error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = writeFactTable(tx, fact); err != nil {
		return err
	}
	if err = writeWideTable(tx, wide); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func writeFactTable(tx *sql.Tx, fact *model.FactTable) error {
	if _, err := tx.Exec(`DROP TABLE IF EXISTS fact`); err != nil {
		return fmt.Errorf("drop fact: %w", err)
	}

	cols := make([]string, 0, len(fact.Columns))
	params := make([]string, 0, len(fact.Columns))
	for _, c := range fact.Columns {
		cols = append(cols, quoteIdent(c)+" TEXT")
		params = append(params, "?")
	}
	create := fmt.Sprintf("CREATE TABLE fact (%s)", strings.Join(cols, ", "))
	if _, err := tx.Exec(create); err != nil {
		return fmt.Errorf("create fact: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO fact VALUES (%s)", strings.Join(params, ", "))
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare fact insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(fact.Columns))
	for _, rec := range fact.Records {
		for i, c := range fact.Columns {
			if v, ok := rec.Fields[c]; ok {
				args[i] = v
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert fact row: %w", err)
		}
	}
	return nil
}

func writeWideTable(tx *sql.Tx, wide []model.WideRecord) error {
	if _, err := tx.Exec(`DROP TABLE IF EXISTS wide`); err != nil {
		return fmt.Errorf("drop wide: %w", err)
	}

	create := `CREATE TABLE wide (
		year INTEGER NOT NULL,
		sex TEXT NOT NULL,
		age_group TEXT NOT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		disease TEXT NOT NULL,
		daly REAL NOT NULL,
		yll REAL NOT NULL,
		yld REAL NOT NULL
	)`
	if _, err := tx.Exec(create); err != nil {
		return fmt.Errorf("create wide: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO wide VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare wide insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range wide {
		_, err := stmt.Exec(r.Year, r.Sex, r.AgeGroup, r.Location, string(r.Category), r.Disease, r.DALY, r.YLL, r.YLD)
		if err != nil {
			return fmt.Errorf("insert wide row: %w", err)
		}
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
