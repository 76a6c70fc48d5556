package model

import "time"

// Config holds the full gbdkit configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Cache  CacheConfig  `yaml:"cache"`
	Output OutputConfig `yaml:"output"`
	LLM    LLMConfig    `yaml:"llm"`
}

// DataConfig locates the raw extracts and the unified artifacts.
type DataConfig struct {
	// Dir is the directory containing the raw per-measure CSV extracts.
	Dir string `yaml:"dir"`

	// RawFiles are the extract file names merged into the fact table,
	// in merge order.
	RawFiles []string `yaml:"raw_files"`

	// RawOut is the file name of the merged RAW artifact.
	RawOut string `yaml:"raw_out"`

	// CleanOut is the file name of the CLEAN artifact consumed by queries.
	CleanOut string `yaml:"clean_out"`
}

// CleanPath returns the full path of the CLEAN fact table.
func (d DataConfig) CleanPath() string {
	return d.Dir + "/" + d.CleanOut
}

// RawPath returns the full path of the RAW merged table.
func (d DataConfig) RawPath() string {
	return d.Dir + "/" + d.RawOut
}

// CacheConfig controls the memoized table cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// OutputConfig controls operator-facing output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// LLMConfig configures the optional narrative polish step.
// Disabled unless Provider is set; it never affects computed numbers.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`

	// RequestsPerMinute rate-limits API calls.
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "data",
			RawFiles: []string{
				"DALYs_Rate.csv",
				"Death_rate.csv",
				"Incidence_rate.csv",
				"Prevelance_rate.csv",
				"YLLs_rate.csv",
				"Injuries_Rate.csv",
				"NCD_Rate.csv",
				"Maternal Disorder.csv",
				"Neonatal Disorder.csv",
			},
			RawOut:   "Unified_GBD_Fact_Table_RAW.csv",
			CleanOut: "Unified_GBD_Fact_Table_CLEAN.csv",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose: false,
		},
		LLM: LLMConfig{
			Provider:          "",
			Timeout:           30,
			MaxTokens:         600,
			RequestsPerMinute: 20,
		},
	}
}
