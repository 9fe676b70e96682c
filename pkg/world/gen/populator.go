package gen

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/noise"
	"github.com/OCharnyshevich/sandworld/pkg/world/scatter"
	"github.com/OCharnyshevich/sandworld/pkg/world/structure"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// ErrBufferSize is returned when a tile buffer does not match the chunk size.
var ErrBufferSize = errors.New("tile buffer does not match chunk size")

// World is the read-only context a chunk is populated against. All of its
// collaborators must be safe for concurrent use.
type World struct {
	Noise     noise.Source
	Points    scatter.Distribution
	Space     scatter.Space // pixel extent of one normalized unit
	Templates structure.Source
	Materials *material.Registry
	Params    Params
	Seed      int64

	// Rand overrides the per-chunk random source. Nil means ChunkRand(Seed).
	Rand RandFactory
}

// PlacedStructure is a structure left for the caller to composite, at
// world pixel (X, Y). The template origin goes at that position.
type PlacedStructure struct {
	Template *structure.Template
	X, Y     int
}

type oreRule struct {
	OreRule
	mat *material.Material
}

// Populator carves, seeds and decorates chunk tile buffers.
type Populator struct {
	noise     noise.Source
	points    scatter.Distribution
	space     scatter.Space
	templates structure.Source
	params    Params
	seed      int64
	rand      RandFactory

	pal  Palette
	ores []oreRule
}

// NewPopulator resolves the materials w refers to and checks its tuning.
func NewPopulator(w World) (*Populator, error) {
	switch {
	case w.Noise == nil:
		return nil, errors.New("populator: nil noise source")
	case w.Points == nil:
		return nil, errors.New("populator: nil point distribution")
	case w.Templates == nil:
		return nil, errors.New("populator: nil template source")
	case w.Materials == nil:
		return nil, errors.New("populator: nil material registry")
	case w.Space.W <= 0 || w.Space.H <= 0:
		return nil, fmt.Errorf("populator: invalid point space %+v", w.Space)
	}
	if err := w.Params.Validate(); err != nil {
		return nil, fmt.Errorf("populator: %w", err)
	}
	pal, err := NewPalette(w.Materials)
	if err != nil {
		return nil, err
	}

	p := &Populator{
		noise:     w.Noise,
		points:    w.Points,
		space:     w.Space,
		templates: w.Templates,
		params:    w.Params,
		seed:      w.Seed,
		rand:      w.Rand,
		pal:       pal,
	}
	if p.rand == nil {
		p.rand = ChunkRand(w.Seed)
	}
	for _, o := range w.Params.Ores {
		m, err := w.Materials.ByName(o.Material)
		if err != nil {
			return nil, fmt.Errorf("populator: ore: %w", err)
		}
		p.ores = append(p.ores, oreRule{OreRule: o, mat: m})
	}
	return p, nil
}

// Populate builds a Populator for w and runs it on a single chunk.
func Populate(buf *tile.Buffer, cx, cy int, w *World) ([]PlacedStructure, error) {
	p, err := NewPopulator(*w)
	if err != nil {
		return nil, err
	}
	return p.Populate(buf, cx, cy)
}

// Palette returns the materials the populator works with.
func (p *Populator) Palette() Palette { return p.pal }

// Params returns the tuning the populator was built with.
func (p *Populator) Params() Params { return p.params }

// Populate runs the generation passes over buf, the tiles of chunk (cx, cy),
// in place. Clouds are not baked into buf; they are returned for the caller
// to composite. On error buf may be partially populated.
func (p *Populator) Populate(buf *tile.Buffer, cx, cy int) ([]PlacedStructure, error) {
	if buf.W != p.params.ChunkWidth || buf.H != p.params.ChunkHeight || len(buf.Cells) != buf.W*buf.H {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrBufferSize,
			buf.W, buf.H, p.params.ChunkWidth, p.params.ChunkHeight)
	}

	p.carve(buf, cx, cy)
	p.seedOres(buf, cx, cy)
	p.weather(buf, cx, cy)

	placed, err := p.clouds(cx, cy)
	if err != nil {
		return nil, err
	}

	p.plantTrees(buf, cx, cy)
	return placed, nil
}

// origin returns the world pixel position of chunk (cx, cy).
func (p *Populator) origin(cx, cy int) (int, int) {
	return cx * p.params.ChunkWidth, cy * p.params.ChunkHeight
}

// sample reads the noise channel at world pixel (px, py) scaled by freq.
func (p *Populator) sample(px, py, freq, channel float64) float64 {
	return p.noise.Sample(px/freq, py/freq, channel)
}
