package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthforge/gbdkit/internal/pipeline"
)

var sqliteOut string

// prepareCmd represents the prepare command
var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Merge the raw extracts into the unified fact table artifacts",
	Long: `Prepare loads every configured raw CSV extract, tags it with provenance,
standardizes the measure taxonomy, and merges everything into one fact table.

Two artifacts are written to the data directory:
- the RAW merged table (all source rows, minimally enriched)
- the CLEAN table (identifier columns dropped, fixed column order)

The merge is all-or-nothing: a missing or malformed extract aborts the run.

Example:
  gbdkit prepare
  gbdkit prepare --data-dir ./data --sqlite ./data/gbd.db`,
	Args: cobra.NoArgs,
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().StringVar(&sqliteOut, "sqlite", "", "also write a SQLite artifact (fact + wide tables) to this path")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	p := pipeline.NewPipeline(cfg)
	p.SQLitePath = sqliteOut

	report, err := p.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Prepare run %s\n", report.RunID)
	fmt.Printf("Merged %d rows from %d sources\n", report.TotalRows, len(report.Sources))
	fmt.Printf("RAW:   %s\n", report.RawPath)
	fmt.Printf("CLEAN: %s\n", report.CleanPath)
	if report.SQLitePath != "" {
		fmt.Printf("SQLite: %s\n", report.SQLitePath)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Done.")
	}
	return nil
}
