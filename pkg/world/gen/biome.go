package gen

import "github.com/OCharnyshevich/sandworld/pkg/world/noise"

// Biome selects the surface layering of a terrain column.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeHighlands
)

var biomeNames = [...]string{"plains", "desert", "highlands"}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// BiomeSelector picks biomes from temperature and rainfall noise fields.
type BiomeSelector struct {
	noise noise.Source
	freq  float64
	temp  float64
	rain  float64
}

// NewBiomeSelector creates a BiomeSelector reading the terrain channels.
func NewBiomeSelector(src noise.Source, tp TerrainParams) *BiomeSelector {
	return &BiomeSelector{
		noise: src,
		freq:  tp.BiomeFreq,
		temp:  tp.TempChannel,
		rain:  tp.RainChannel,
	}
}

// BiomeAt returns the biome for the column at world pixel x.
func (bs *BiomeSelector) BiomeAt(px int) Biome {
	x := float64(px) / bs.freq
	temp := bs.noise.Sample(x, 0, bs.temp)
	rain := bs.noise.Sample(x, 0, bs.rain)

	switch {
	case temp > 0.65 && rain < 0.4:
		return BiomeDesert
	case temp < 0.35:
		return BiomeHighlands
	default:
		return BiomePlains
	}
}
