package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/healthforge/gbdkit/internal/cache"
	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/store"
)

// loadConfig resolves the effective configuration: defaults, overridden by
// config file and GBDKIT_* environment values, overridden by flags.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("data.dir"); v != "" {
		cfg.Data.Dir = v
	}
	if files := viper.GetStringSlice("data.raw_files"); len(files) > 0 {
		cfg.Data.RawFiles = files
	}
	if v := viper.GetString("data.raw_out"); v != "" {
		cfg.Data.RawOut = v
	}
	if v := viper.GetString("data.clean_out"); v != "" {
		cfg.Data.CleanOut = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")

	cfg.Output.Verbose = verbose || viper.GetBool("verbose")
	return cfg
}

// newStore builds the memoized table store for the CLEAN artifact.
func newStore(cfg *model.Config) *store.Store {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return store.New(cfg.Data.CleanPath(), c, cfg.Cache.TTL)
}
