// Package config loads the application configuration from YAML with
// IRSEARCH_* environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"irsearch/internal/index"
)

// DataConfig says where documents come from.
type DataConfig struct {
	Dir         string `yaml:"dir"`
	Extension   string `yaml:"extension"`
	Concurrency int    `yaml:"concurrency"`
}

// IndexConfig controls tokenization and term weighting.
type IndexConfig struct {
	Weighting     string `yaml:"weighting"`
	Stopwords     bool   `yaml:"stopwords"`
	Stemming      bool   `yaml:"stemming"`
	PreviewLength int    `yaml:"preview_length"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	TopK        int `yaml:"top_k"`
	MaxDistance int `yaml:"max_distance"`
}

// SummaryConfig controls the corpus summary shown in the UI.
type SummaryConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// LoggingConfig controls log level and output format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data    DataConfig    `yaml:"data"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Summary SummaryConfig `yaml:"summary"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Load reads a config from path. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}
	applyEnvOverrides(cfg)
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/irsearch/config.yaml.
// If neither exists, it writes defaults to ~/.config/irsearch/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
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
	if err := Save(userPath, defaultConfig()); err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
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

// Validate rejects values the engine cannot run with.
func (c *AppConfig) Validate() error {
	if _, err := index.ParseWeighting(c.Index.Weighting); err != nil {
		return fmt.Errorf("index.weighting: %w", err)
	}
	if c.Search.TopK <= 0 {
		return fmt.Errorf("search.top_k must be positive, got %d", c.Search.TopK)
	}
	if c.Search.MaxDistance < 0 {
		return fmt.Errorf("search.max_distance must not be negative, got %d", c.Search.MaxDistance)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// IndexOptions converts the config into index settings.
func (c *AppConfig) IndexOptions() index.Config {
	w, _ := index.ParseWeighting(c.Index.Weighting)
	return index.Config{
		Weighting:     w,
		PreviewLength: c.Index.PreviewLength,
		MaxDistance:   c.Search.MaxDistance,
	}
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "irsearch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Data:    DataConfig{Dir: "data", Extension: ".txt", Concurrency: 8},
		Index:   IndexConfig{Weighting: "raw", PreviewLength: 200},
		Search:  SearchConfig{TopK: 10, MaxDistance: 2},
		Summary: SummaryConfig{MaxSentences: 3},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.Extension == "" {
		cfg.Data.Extension = ".txt"
	}
	if cfg.Index.Weighting == "" {
		cfg.Index.Weighting = "raw"
	}
	if cfg.Index.PreviewLength == 0 {
		cfg.Index.PreviewLength = 200
	}
	if cfg.Summary.MaxSentences == 0 {
		cfg.Summary.MaxSentences = 3
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// applyEnvOverrides reads IRSEARCH_* environment variables and overrides
// the corresponding config fields.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("IRSEARCH_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("IRSEARCH_DATA_EXTENSION"); v != "" {
		cfg.Data.Extension = v
	}
	if v := os.Getenv("IRSEARCH_INDEX_WEIGHTING"); v != "" {
		cfg.Index.Weighting = v
	}
	if v := os.Getenv("IRSEARCH_INDEX_STOPWORDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Index.Stopwords = b
		}
	}
	if v := os.Getenv("IRSEARCH_INDEX_STEMMING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Index.Stemming = b
		}
	}
	if v := os.Getenv("IRSEARCH_SEARCH_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.TopK = n
		}
	}
	if v := os.Getenv("IRSEARCH_SEARCH_MAX_DISTANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxDistance = n
		}
	}
	if v := os.Getenv("IRSEARCH_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("IRSEARCH_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("IRSEARCH_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
}
