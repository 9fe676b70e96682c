package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Config holds the world generation run configuration.
type Config struct {
	Seed          int64   `json:"seed"`
	GeneratorType string  `json:"generator_type"` // "layered" or "flat"
	NoiseBackend  string  `json:"noise_backend"`  // "simplex" or "perlin"
	Scatter       string  `json:"scatter"`        // "poisson" or "jitter"
	TreeSpacing   float64 `json:"tree_spacing"`   // in pixels
	ChunkWidth    int     `json:"chunk_width"`    // 0 = from params
	ChunkHeight   int     `json:"chunk_height"`   // 0 = from params
	WorldChunksX  int     `json:"world_chunks_x"`
	WorldChunksY  int     `json:"world_chunks_y"`
	AssetsDir     string  `json:"assets_dir"`  // "" = embedded templates
	ParamsFile    string  `json:"params_file"` // "" = default params
	Workers       int     `json:"workers"`
	LogLevel      string  `json:"log_level"`
	OutDir        string  `json:"out_dir"`
	PreviewPath   string  `json:"preview_path"` // "" = no preview
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GeneratorType: "layered",
		NoiseBackend:  "simplex",
		Scatter:       "poisson",
		TreeSpacing:   90,
		WorldChunksX:  8,
		WorldChunksY:  10,
		Workers:       4,
		LogLevel:      "info",
		OutDir:        "./out",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["noise"] {
		cfg.NoiseBackend = fromFile.NoiseBackend
	}
	if !explicitFlags["scatter"] {
		cfg.Scatter = fromFile.Scatter
	}
	if !explicitFlags["tree-spacing"] {
		cfg.TreeSpacing = fromFile.TreeSpacing
	}
	if !explicitFlags["chunk-width"] {
		cfg.ChunkWidth = fromFile.ChunkWidth
	}
	if !explicitFlags["chunk-height"] {
		cfg.ChunkHeight = fromFile.ChunkHeight
	}
	if !explicitFlags["chunks-x"] {
		cfg.WorldChunksX = fromFile.WorldChunksX
	}
	if !explicitFlags["chunks-y"] {
		cfg.WorldChunksY = fromFile.WorldChunksY
	}
	if !explicitFlags["assets"] {
		cfg.AssetsDir = fromFile.AssetsDir
	}
	if !explicitFlags["params"] {
		cfg.ParamsFile = fromFile.ParamsFile
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["out"] {
		cfg.OutDir = fromFile.OutDir
	}
	if !explicitFlags["preview"] {
		cfg.PreviewPath = fromFile.PreviewPath
	}
}

// Load reads a JSON config file on top of the defaults. Fields missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.WorldChunksX <= 0 || c.WorldChunksY <= 0 {
		return fmt.Errorf("world size %dx%d chunks must be positive", c.WorldChunksX, c.WorldChunksY)
	}
	if c.ChunkWidth < 0 || c.ChunkHeight < 0 {
		return fmt.Errorf("chunk size %dx%d must not be negative", c.ChunkWidth, c.ChunkHeight)
	}
	if c.TreeSpacing <= 0 {
		return fmt.Errorf("tree spacing %v must be positive", c.TreeSpacing)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers %d must be positive", c.Workers)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
