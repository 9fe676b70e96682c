package gen

import (
	"fmt"

	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// Filler kinds accepted by NewFiller.
const (
	FillerLayered = "layered"
	FillerFlat    = "flat"
)

// Chunk holds the generated tiles of one chunk and the structures left for
// the caller to composite.
type Chunk struct {
	X, Y       int
	Tiles      *tile.Buffer
	Structures []PlacedStructure
}

// Generator produces chunks deterministically: base terrain from a Filler,
// then the populator passes.
type Generator struct {
	filler Filler
	pop    *Populator
}

// NewGenerator creates a Generator.
func NewGenerator(filler Filler, pop *Populator) *Generator {
	return &Generator{filler: filler, pop: pop}
}

// NewFiller returns the base terrain filler named by kind. An empty kind
// selects the layered filler.
func NewFiller(kind string, pop *Populator) (Filler, error) {
	tp := pop.params.Terrain
	switch kind {
	case "", FillerLayered:
		return NewLayered(pop.noise, pop.pal, tp), nil
	case FillerFlat:
		return NewFlat(pop.pal, tp), nil
	default:
		return nil, fmt.Errorf("unknown filler %q", kind)
	}
}

// Generate allocates, fills and populates chunk (cx, cy).
func (g *Generator) Generate(cx, cy int) (*Chunk, error) {
	p := g.pop.params
	buf := tile.New(p.ChunkWidth, p.ChunkHeight, g.pop.pal.Nothing.Instance())
	g.filler.Fill(buf, cx, cy)

	placed, err := g.pop.Populate(buf, cx, cy)
	if err != nil {
		return nil, err
	}
	return &Chunk{X: cx, Y: cy, Tiles: buf, Structures: placed}, nil
}

// ChunkSize returns the chunk dimensions in pixels.
func (g *Generator) ChunkSize() (int, int) {
	return g.pop.params.ChunkWidth, g.pop.params.ChunkHeight
}
