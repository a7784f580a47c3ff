package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogConfig locates the catalog source.
type CatalogConfig struct {
	Path   string `yaml:"path" validate:"required"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=csv parquet"`
}

// IndexConfig selects and configures the neighbor index.
type IndexConfig struct {
	Type   string `yaml:"type" validate:"oneof=bruteforce"`
	Metric string `yaml:"metric" validate:"oneof=euclidean hamming"`
	K      int    `yaml:"k" validate:"min=1"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
	File   string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Index   IndexConfig   `yaml:"index"`
	Log     LogConfig     `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults. Environment overrides are applied and the result validated.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finish(defaultConfig())
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return finish(&cfg)
}

// LoadDefault tries ./tyrerec.yaml first, then ~/.config/tyrerec/config.yaml.
// If neither exists, it writes defaults to ~/.config/tyrerec/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "tyrerec.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	out, err := finish(cfg)
	return out, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func finish(cfg *AppConfig) (*AppConfig, error) {
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tyrerec", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Catalog: CatalogConfig{Path: "Car_Tyres_Dataset.csv"},
		Index:   IndexConfig{Type: "bruteforce", Metric: "euclidean", K: 5},
		Log:     LogConfig{Level: "info", Format: "console"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = def.Catalog.Path
	}
	if cfg.Index.Type == "" {
		cfg.Index.Type = def.Index.Type
	}
	if cfg.Index.Metric == "" {
		cfg.Index.Metric = def.Index.Metric
	}
	if cfg.Index.K == 0 {
		cfg.Index.K = def.Index.K
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
