package gen

import (
	"fmt"
	"strconv"
)

// clouds places at most one cloud for chunks near the top of the world.
// Clouds render as a separate layer so they are returned, not stamped.
func (p *Populator) clouds(cx, cy int) ([]PlacedStructure, error) {
	c := p.params.Clouds
	if cy >= c.MaxChunkRow {
		return nil, nil
	}

	rng := p.rand(cx, cy, saltClouds)
	if rng.Float64() >= c.Chance {
		return nil, nil
	}

	ox, oy := p.origin(cx, cy)
	x := ox + rng.IntN(p.params.ChunkWidth)
	y := oy + rng.IntN(p.params.ChunkHeight)
	name := c.Prefix + strconv.Itoa(rng.IntN(c.Variants))

	tpl, err := p.templates.Template(name)
	if err != nil {
		return nil, fmt.Errorf("chunk (%d,%d): cloud: %w", cx, cy, err)
	}
	return []PlacedStructure{{Template: tpl, X: x, Y: y}}, nil
}
