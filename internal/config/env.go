package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. TYREREC_CATALOG_PATH.
const EnvPrefix = "TYREREC"

type envOverrides struct {
	CatalogPath   string `split_words:"true"`
	CatalogFormat string `split_words:"true"`
	K             int    `split_words:"true"`
	Metric        string `split_words:"true"`
	LogLevel      string `split_words:"true"`
	LogFormat     string `split_words:"true"`
	LogFile       string `split_words:"true"`
}

// applyEnv overlays set environment variables onto cfg.
func applyEnv(cfg *AppConfig) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Catalog.Path, env.CatalogPath)
	set(&cfg.Catalog.Format, env.CatalogFormat)
	set(&cfg.Index.Metric, env.Metric)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Log.Format, env.LogFormat)
	set(&cfg.Log.File, env.LogFile)
	if env.K != 0 {
		cfg.Index.K = env.K
	}
	return nil
}
