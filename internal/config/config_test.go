package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(DimensionsEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 1500*time.Millisecond, cfg.AnswerDelay())
}

func TestParse_ClampsAndDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
chunker:
  delimiter: ""
index:
  dimensions: 42
retrieval:
  top_k: 0
  answer_delay_ms: -5
log:
  level: ""
`))
	require.NoError(t, err)
	require.Equal(t, ".", cfg.Chunker.Delimiter)
	require.Equal(t, 8, cfg.Index.Dimensions)
	require.Equal(t, 3, cfg.Retrieval.TopK)
	require.Equal(t, 0, cfg.Retrieval.AnswerDelayMS)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 256, cfg.Embedder.CacheSize)

	cfg, err = Parse([]byte("index:\n  dimensions: 1\n"))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Index.Dimensions)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("index: [unterminated"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("index:\n  dimensions: 4\n"), 0o644))

	t.Setenv(DimensionsEnv, "6")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Index.Dimensions)

	t.Setenv(DimensionsEnv, "100")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Index.Dimensions)

	t.Setenv(DimensionsEnv, "six")
	_, err = Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(DimensionsEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Index.Dimensions = 7
	cfg.Synthesizer.Template = "Q=%s C=%s"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
