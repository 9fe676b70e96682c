package gen

import (
	"math"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/noise"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// Filler lays down the base terrain of a chunk before it is populated.
// Every cell of buf must be written.
type Filler interface {
	Fill(buf *tile.Buffer, cx, cy int)
}

// Layered fills a rolling landscape: sky above a noise surface line, a
// biome-dependent crust, a dirt band and stone below, with sand pockets.
type Layered struct {
	noise   noise.Source
	surface noise.Octaves
	biomes  *BiomeSelector
	pal     Palette
	tp      TerrainParams
}

// NewLayered creates a Layered filler.
func NewLayered(src noise.Source, pal Palette, tp TerrainParams) *Layered {
	return &Layered{
		noise:   src,
		surface: noise.Octaves{Src: src, Count: tp.SurfaceOctaves, Persistence: tp.SurfacePersistence},
		biomes:  NewBiomeSelector(src, tp),
		pal:     pal,
		tp:      tp,
	}
}

// SurfaceAt returns the world pixel row of the first ground cell in the
// column at world pixel x.
func (l *Layered) SurfaceAt(px int) int {
	n := l.surface.Sample(float64(px)/l.tp.SurfaceFreq, 0, l.tp.SurfaceChannel)
	surface := l.tp.SurfaceY + int(math.Round(l.tp.SurfaceAmp*(2*n-1)))
	if l.biomes.BiomeAt(px) == BiomeHighlands {
		surface -= l.tp.DirtDepth
	}
	return surface
}

func (l *Layered) Fill(buf *tile.Buffer, cx, cy int) {
	ox, oy := cx*buf.W, cy*buf.H
	nothing := l.pal.Nothing.Instance()

	for x := 0; x < buf.W; x++ {
		px := ox + x
		surface := l.SurfaceAt(px)
		biome := l.biomes.BiomeAt(px)

		for y := 0; y < buf.H; y++ {
			py := oy + y
			depth := py - surface
			if depth < 0 {
				buf.Set(x, y, nothing)
				continue
			}
			buf.Set(x, y, l.column(biome, px, py, depth).Instance())
		}
	}
}

func (l *Layered) column(biome Biome, px, py, depth int) *material.Material {
	tp := l.tp
	if depth >= tp.SoftDirtDepth {
		s := l.noise.Sample(float64(px)/tp.SandFreq, float64(py)/tp.SandFreq, tp.SandChannel)
		if s > tp.SandThreshold {
			return l.pal.Sand
		}
	}

	switch biome {
	case BiomeDesert:
		if depth < tp.DirtDepth/2 {
			return l.pal.Sand
		}
	case BiomeHighlands:
		return l.pal.SmoothStone
	}

	switch {
	case depth < tp.SoftDirtDepth:
		return l.pal.SoftDirt
	case depth < tp.DirtDepth:
		return l.pal.SmoothDirt
	default:
		return l.pal.SmoothStone
	}
}

// Flat fills fixed horizontal layers: sky above SurfaceY, a soft dirt crust,
// a dirt band and stone.
type Flat struct {
	pal Palette
	tp  TerrainParams
}

// NewFlat creates a Flat filler.
func NewFlat(pal Palette, tp TerrainParams) *Flat {
	return &Flat{pal: pal, tp: tp}
}

func (f *Flat) Fill(buf *tile.Buffer, cx, cy int) {
	oy := cy * buf.H
	for y := 0; y < buf.H; y++ {
		depth := oy + y - f.tp.SurfaceY
		var m *material.Material
		switch {
		case depth < 0:
			m = f.pal.Nothing
		case depth < f.tp.SoftDirtDepth:
			m = f.pal.SoftDirt
		case depth < f.tp.DirtDepth:
			m = f.pal.SmoothDirt
		default:
			m = f.pal.SmoothStone
		}
		v := m.Instance()
		for x := 0; x < buf.W; x++ {
			buf.Set(x, y, v)
		}
	}
}
