// Package pipeline orchestrates the data-preparation cycle: merge the raw
// extracts, project the clean table, and write the unified artifacts.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/healthforge/gbdkit/internal/export"
	"github.com/healthforge/gbdkit/internal/ingest"
	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/pivot"
)

// Pipeline runs the complete prepare cycle. Any failing step aborts the run:
// partial artifacts are never written over good ones out of order.
type Pipeline struct {
	merger *ingest.Merger
	config *model.Config

	// SQLitePath, when set, additionally writes the SQLite artifact.
	SQLitePath string
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{
		merger: ingest.NewMerger(cfg),
		config: cfg,
	}
}

// Run executes one prepare cycle and reports what was produced.
func (p *Pipeline) Run() (*model.PrepareReport, error) {
	report := &model.PrepareReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	// 1. Merge all raw extracts into the unified fact table
	merged, stats, err := p.merger.Merge()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	report.Sources = stats
	report.TotalRows = merged.Len()

	// 2. Persist the RAW artifact
	rawPath := p.config.Data.RawPath()
	if err := export.WriteFactCSVFile(rawPath, merged); err != nil {
		return nil, fmt.Errorf("write raw table: %w", err)
	}
	report.RawPath = rawPath

	// 3. Clean projection: drop identifier columns, fix column order
	cleaned := ingest.Clean(merged)

	// 4. Persist the CLEAN artifact
	cleanPath := p.config.Data.CleanPath()
	if err := export.WriteFactCSVFile(cleanPath, cleaned); err != nil {
		return nil, fmt.Errorf("write clean table: %w", err)
	}
	report.CleanPath = cleanPath

	// 5. Optional SQLite artifact (clean table plus its wide pivot)
	if p.SQLitePath != "" {
		wide, err := pivot.Build(cleaned)
		if err != nil {
			return nil, fmt.Errorf("pivot for sqlite artifact: %w", err)
		}
		if err := export.WriteSQLite(p.SQLitePath, cleaned, wide); err != nil {
			return nil, fmt.Errorf("write sqlite artifact: %w", err)
		}
		report.SQLitePath = p.SQLitePath
	}

	if p.config.Output.Verbose {
		for _, s := range report.Sources {
			fmt.Fprintf(os.Stderr, "  %-28s %7d rows (measure via %s)\n", s.File, s.Rows, s.MeasureOrigin)
		}
		fmt.Fprintf(os.Stderr, "Saved RAW merged table to %s\n", report.RawPath)
		fmt.Fprintf(os.Stderr, "Saved CLEAN fact table to %s\n", report.CleanPath)
	}

	return report, nil
}
