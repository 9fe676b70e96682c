package gen

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params holds the generation tuning. Frequencies are divisors: a sample at
// world pixel (px, py) reads noise at (px/freq, py/freq).
type Params struct {
	ChunkWidth  int `yaml:"chunk_width"`
	ChunkHeight int `yaml:"chunk_height"`

	Caves   CaveParams    `yaml:"caves"`
	Ores    []OreRule     `yaml:"ores"`
	Cobble  CobbleParams  `yaml:"cobble"`
	Clouds  CloudParams   `yaml:"clouds"`
	Trees   TreeParams    `yaml:"trees"`
	Terrain TerrainParams `yaml:"terrain"`
}

// CaveParams drives the terrain carving pass.
type CaveParams struct {
	LargeFreq  float64 `yaml:"large_freq"`
	HugeFreq   float64 `yaml:"huge_freq"`
	DetailFreq float64 `yaml:"detail_freq"`
	DetailAmp  float64 `yaml:"detail_amp"`

	// Depth in pixels at which the void threshold reaches 1.0.
	DepthScale   float64 `yaml:"depth_scale"`
	MaxThreshold float64 `yaml:"max_threshold"`

	LiquidFreq      float64 `yaml:"liquid_freq"`
	LiquidThreshold float64 `yaml:"liquid_threshold"`
	// Probability that a qualifying void cell is filled with liquid.
	LiquidChance float64 `yaml:"liquid_chance"`
	// Chunks with row greater than this get lava instead of water.
	LavaBelowChunkRow int `yaml:"lava_below_chunk_row"`

	ErosionFreq float64 `yaml:"erosion_freq"`
	ErosionBias float64 `yaml:"erosion_bias"`

	LargeChannel   float64 `yaml:"large_channel"`
	HugeChannel    float64 `yaml:"huge_channel"`
	DetailChannel  float64 `yaml:"detail_channel"`
	LiquidChannel  float64 `yaml:"liquid_channel"`
	ErosionChannel float64 `yaml:"erosion_channel"`
}

// OreRule converts smooth stone to Material where the sampled noise is
// below Threshold. Rules are checked in order; the first match wins.
type OreRule struct {
	Material  string  `yaml:"material"`
	Freq      float64 `yaml:"freq"`
	Threshold float64 `yaml:"threshold"`
	Channel   float64 `yaml:"channel"`
}

// CobbleParams drives the surface exposure pass. The search radius is
// Base + floor(Spread * n) + Extra with n in [0, 1].
type CobbleParams struct {
	Base    int     `yaml:"base"`
	Spread  int     `yaml:"spread"`
	Extra   int     `yaml:"extra"`
	Freq    float64 `yaml:"freq"`
	Channel float64 `yaml:"channel"`
}

// CloudParams drives atmospheric structure placement.
type CloudParams struct {
	// Only chunks with row below this get clouds.
	MaxChunkRow int     `yaml:"max_chunk_row"`
	Chance      float64 `yaml:"chance"`
	Variants    int     `yaml:"variants"`
	Prefix      string  `yaml:"prefix"`
}

// TreeParams drives vegetation placement.
type TreeParams struct {
	// Extra chunks queried around the chunk for overhanging trees.
	MarginChunks int `yaml:"margin_chunks"`
}

// TerrainParams drives the base terrain fillers. SurfaceOctaves of 0 or 1
// samples the surface noise once.
type TerrainParams struct {
	SurfaceY           int     `yaml:"surface_y"`
	SurfaceAmp         float64 `yaml:"surface_amp"`
	SurfaceFreq        float64 `yaml:"surface_freq"`
	SurfaceChannel     float64 `yaml:"surface_channel"`
	SurfaceOctaves     int     `yaml:"surface_octaves"`
	SurfacePersistence float64 `yaml:"surface_persistence"`
	SoftDirtDepth      int     `yaml:"soft_dirt_depth"`
	DirtDepth          int     `yaml:"dirt_depth"`
	SandFreq           float64 `yaml:"sand_freq"`
	SandThreshold      float64 `yaml:"sand_threshold"`
	SandChannel        float64 `yaml:"sand_channel"`
	BiomeFreq          float64 `yaml:"biome_freq"`
	TempChannel        float64 `yaml:"temp_channel"`
	RainChannel        float64 `yaml:"rain_channel"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		ChunkWidth:  100,
		ChunkHeight: 100,
		Caves: CaveParams{
			LargeFreq:         64,
			HugeFreq:          150,
			DetailFreq:        16,
			DetailAmp:         0.1,
			DepthScale:        1000,
			MaxThreshold:      0.95,
			LiquidFreq:        250,
			LiquidThreshold:   0.7,
			LiquidChance:      1.0 / 3.0,
			LavaBelowChunkRow: 5,
			ErosionFreq:       64,
			ErosionBias:       0.25,
			LargeChannel:      0,
			HugeChannel:       1000,
			DetailChannel:     2000,
			LiquidChannel:     3000,
			ErosionChannel:    4000,
		},
		Ores: []OreRule{
			{Material: "GOLD_ORE", Freq: 48, Threshold: 0.25, Channel: 5000},
			{Material: "IRON_ORE", Freq: 32, Threshold: 0.20, Channel: 6000},
		},
		Cobble: CobbleParams{
			Base:    6,
			Spread:  5,
			Extra:   5,
			Freq:    32,
			Channel: 7000,
		},
		Clouds: CloudParams{
			MaxChunkRow: 2,
			Chance:      0.5,
			Variants:    11,
			Prefix:      "cloud_",
		},
		Trees: TreeParams{
			MarginChunks: 1,
		},
		Terrain: TerrainParams{
			SurfaceY:           600,
			SurfaceAmp:         60,
			SurfaceFreq:        300,
			SurfaceChannel:     8000,
			SurfaceOctaves:     4,
			SurfacePersistence: 0.5,
			SoftDirtDepth:      6,
			DirtDepth:          40,
			SandFreq:           40,
			SandThreshold:      0.8,
			SandChannel:        9000,
			BiomeFreq:          800,
			TempChannel:        10000,
			RainChannel:        11000,
		},
	}
}

// LoadParams reads a YAML tuning file. Fields missing from the file keep
// their default values.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the tuning can drive generation.
func (p Params) Validate() error {
	var errs []error
	if p.ChunkWidth <= 0 || p.ChunkHeight <= 0 {
		errs = append(errs, fmt.Errorf("chunk size %dx%d must be positive", p.ChunkWidth, p.ChunkHeight))
	}
	positive := map[string]float64{
		"caves.large_freq":     p.Caves.LargeFreq,
		"caves.huge_freq":      p.Caves.HugeFreq,
		"caves.detail_freq":    p.Caves.DetailFreq,
		"caves.depth_scale":    p.Caves.DepthScale,
		"caves.liquid_freq":    p.Caves.LiquidFreq,
		"caves.erosion_freq":   p.Caves.ErosionFreq,
		"cobble.freq":          p.Cobble.Freq,
		"terrain.surface_freq": p.Terrain.SurfaceFreq,
		"terrain.sand_freq":    p.Terrain.SandFreq,
		"terrain.biome_freq":   p.Terrain.BiomeFreq,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	for name, v := range map[string]float64{
		"caves.liquid_chance": p.Caves.LiquidChance,
		"clouds.chance":       p.Clouds.Chance,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", name, v))
		}
	}
	for i, o := range p.Ores {
		if o.Material == "" || o.Freq <= 0 {
			errs = append(errs, fmt.Errorf("ores[%d]: material and positive freq required", i))
		}
	}
	if p.Cobble.Base < 0 || p.Cobble.Spread < 0 || p.Cobble.Extra < 0 {
		errs = append(errs, errors.New("cobble radius terms must not be negative"))
	}
	if p.Clouds.Chance > 0 && p.Clouds.Variants <= 0 {
		errs = append(errs, errors.New("clouds.variants must be positive when clouds are enabled"))
	}
	if p.Trees.MarginChunks < 0 {
		errs = append(errs, errors.New("trees.margin_chunks must not be negative"))
	}
	if p.Terrain.SoftDirtDepth < 0 || p.Terrain.DirtDepth < p.Terrain.SoftDirtDepth {
		errs = append(errs, errors.New("terrain: need 0 <= soft_dirt_depth <= dirt_depth"))
	}
	if p.Terrain.SurfaceOctaves < 0 || p.Terrain.SurfacePersistence < 0 {
		errs = append(errs, errors.New("terrain: surface octaves and persistence must not be negative"))
	}
	return errors.Join(errs...)
}
