package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"ragpipe/internal/domain"
)

// DimensionsEnv overrides index.dimensions when set.
const DimensionsEnv = "RAG_DIMENSIONS"

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type      string `yaml:"type"`
	CacheSize int    `yaml:"cache_size"`
}

// IndexConfig configures the vector index.
type IndexConfig struct {
	Dimensions int `yaml:"dimensions"`
}

// RetrievalConfig configures ranking and answer delivery.
type RetrievalConfig struct {
	TopK          int `yaml:"top_k"`
	AnswerDelayMS int `yaml:"answer_delay_ms"`
}

// SynthesizerConfig configures the answer template.
type SynthesizerConfig struct {
	Type     string `yaml:"type"`
	Template string `yaml:"template,omitempty"`
}

// LogConfig is passed to the process logger on startup.
type LogConfig struct {
	File      string `yaml:"file"`
	Level     string `yaml:"level"`
	FileCount int    `yaml:"file_count"`
	FileSize  int    `yaml:"file_size"`
	KeepDays  int    `yaml:"keep_days"`
	Console   bool   `yaml:"console"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Index       IndexConfig       `yaml:"index"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Synthesizer SynthesizerConfig `yaml:"synthesizer"`
	Log         LogConfig         `yaml:"log"`
}

// AnswerDelay returns the simulated generation latency.
func (c *AppConfig) AnswerDelay() time.Duration {
	return time.Duration(c.Retrieval.AnswerDelayMS) * time.Millisecond
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if err := applyEnv(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/rag/config.yaml.
// If neither exists, it writes defaults to ~/.config/rag/config.yaml and returns them.
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
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
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

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rag", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Chunker:     ChunkerConfig{Delimiter: "."},
		Embedder:    EmbedderConfig{Type: "hash", CacheSize: 256},
		Index:       IndexConfig{Dimensions: 4},
		Retrieval:   RetrievalConfig{TopK: 3, AnswerDelayMS: 1500},
		Synthesizer: SynthesizerConfig{Type: "template"},
		Log:         LogConfig{Level: "info", Console: true},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.Delimiter == "" {
		cfg.Chunker.Delimiter = "."
	}
	if cfg.Embedder.CacheSize < 0 {
		cfg.Embedder.CacheSize = 0
	}
	cfg.Index.Dimensions = domain.ClampDimensions(cfg.Index.Dimensions)
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.AnswerDelayMS < 0 {
		cfg.Retrieval.AnswerDelayMS = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func applyEnv(cfg *AppConfig) error {
	raw := os.Getenv(DimensionsEnv)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", DimensionsEnv, err)
	}
	cfg.Index.Dimensions = domain.ClampDimensions(n)
	return nil
}
