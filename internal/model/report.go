package model

import "time"

// PrepareReport summarizes one data-preparation run: which extracts were
// merged, how many rows each contributed, and where the artifacts landed.
type PrepareReport struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`

	Sources []SourceStat `json:"sources"`

	TotalRows  int    `json:"total_rows"`
	RawPath    string `json:"raw_path"`
	CleanPath  string `json:"clean_path"`
	SQLitePath string `json:"sqlite_path,omitempty"`
}

// SourceStat records the contribution of one raw extract.
type SourceStat struct {
	File string `json:"file"`
	Rows int    `json:"rows"`

	// MeasureOrigin says how measure_name_standard was obtained:
	// "passthrough", "measure_name" or "filename".
	MeasureOrigin string `json:"measure_origin"`
}

// QueryReport is the render-ready outcome of one filtered query, suitable for
// printing or serializing alongside the narrative.
type QueryReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Filters map[string][]string `json:"filters,omitempty"`
	Metric  Metric              `json:"metric"`

	Rows      int     `json:"rows"`
	TotalDALY float64 `json:"total_daly"`
	TotalYLL  float64 `json:"total_yll"`
	TotalYLD  float64 `json:"total_yld"`

	DominantCategory string  `json:"dominant_category"`
	DominantShare    float64 `json:"dominant_share"`

	Narrative string `json:"narrative,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"`
}

// LLMSummary contains the optional LLM-polished narrative.
// It is clearly separated from the computed figures and never feeds back
// into them.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
