package gen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams invalid: %v", err)
	}
}

func TestLoadParamsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	yml := `
chunk_width: 64
caves:
  liquid_chance: 0.5
  lava_below_chunk_row: 3
ores:
  - material: IRON_ORE
    freq: 20
    threshold: 0.3
    channel: 42
clouds:
  variants: 4
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	def := DefaultParams()
	if p.ChunkWidth != 64 || p.ChunkHeight != def.ChunkHeight {
		t.Errorf("chunk = %dx%d, want 64x%d", p.ChunkWidth, p.ChunkHeight, def.ChunkHeight)
	}
	if p.Caves.LiquidChance != 0.5 || p.Caves.LavaBelowChunkRow != 3 {
		t.Errorf("caves = %+v", p.Caves)
	}
	if p.Caves.LargeFreq != def.Caves.LargeFreq {
		t.Errorf("LargeFreq = %v, want default %v", p.Caves.LargeFreq, def.Caves.LargeFreq)
	}
	if len(p.Ores) != 1 || p.Ores[0].Material != "IRON_ORE" || p.Ores[0].Channel != 42 {
		t.Errorf("ores = %+v", p.Ores)
	}
	if p.Clouds.Variants != 4 || p.Clouds.Prefix != "cloud_" {
		t.Errorf("clouds = %+v", p.Clouds)
	}
}

func TestLoadParamsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadParams(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	tests := map[string]string{
		"syntax":        "caves: [",
		"chance":        "caves:\n  liquid_chance: 2\n",
		"zero freq":     "cobble:\n  freq: 0\n",
		"chunk":         "chunk_height: -1\n",
		"dirt depths":   "terrain:\n  soft_dirt_depth: 50\n  dirt_depth: 10\n",
		"cloud variant": "clouds:\n  variants: 0\n",
		"octaves":       "terrain:\n  surface_octaves: -2\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadParams(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
