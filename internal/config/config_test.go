package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irsearch/internal/index"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  dir: corpus
index:
  weighting: length
  stopwords: true
search:
  top_k: 3
logging:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "corpus", cfg.Data.Dir)
	assert.Equal(t, ".txt", cfg.Data.Extension)
	assert.Equal(t, "length", cfg.Index.Weighting)
	assert.True(t, cfg.Index.Stopwords)
	assert.False(t, cfg.Index.Stemming)
	assert.Equal(t, 3, cfg.Search.TopK)
	assert.Equal(t, 2, cfg.Search.MaxDistance)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)

	opts := cfg.IndexOptions()
	assert.Equal(t, index.WeightingLength, opts.Weighting)
	assert.Equal(t, 200, opts.PreviewLength)
	assert.Equal(t, 2, opts.MaxDistance)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IRSEARCH_DATA_DIR", "/srv/docs")
	t.Setenv("IRSEARCH_INDEX_WEIGHTING", "max")
	t.Setenv("IRSEARCH_INDEX_STEMMING", "true")
	t.Setenv("IRSEARCH_SEARCH_TOP_K", "25")
	t.Setenv("IRSEARCH_SEARCH_MAX_DISTANCE", "not-a-number")
	t.Setenv("IRSEARCH_METRICS_ADDR", ":9100")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs", cfg.Data.Dir)
	assert.Equal(t, "max", cfg.Index.Weighting)
	assert.True(t, cfg.Index.Stemming)
	assert.Equal(t, 25, cfg.Search.TopK)
	assert.Equal(t, 2, cfg.Search.MaxDistance)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*AppConfig){
		"weighting":    func(c *AppConfig) { c.Index.Weighting = "bm25" },
		"top_k":        func(c *AppConfig) { c.Search.TopK = 0 },
		"max_distance": func(c *AppConfig) { c.Search.MaxDistance = -1 },
		"format":       func(c *AppConfig) { c.Logging.Format = "xml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, defaultConfig().Validate())
}

func TestSaveAndLoadDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "irsearch", "config.yaml"), path)
	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, path)

	cfg.Search.TopK = 7
	require.NoError(t, Save(path, cfg))
	reloaded, _, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Search.TopK)
}
