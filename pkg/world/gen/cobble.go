package gen

import (
	"math"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// weather turns smooth stone and dirt into their cobble variants when an
// exposed cell lies within a noise-driven radius. The search never leaves
// the chunk.
func (p *Populator) weather(buf *tile.Buffer, cx, cy int) {
	ox, oy := p.origin(cx, cy)

	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			var to *material.Material
			switch cell := buf.At(x, y); {
			case cell.Is(p.pal.SmoothStone):
				to = p.pal.CobbleStone
			case cell.Is(p.pal.SmoothDirt):
				to = p.pal.CobbleDirt
			default:
				continue
			}

			dist := p.cobbleRadius(float64(ox+x), float64(oy+y))
			if _, _, ok := p.firstExposure(buf, x, y, dist); ok {
				buf.Set(x, y, to.Instance())
			}
		}
	}
}

// cobbleRadius is Base + floor(Spread*n) + Extra with n clamped to [0, 1].
func (p *Populator) cobbleRadius(px, py float64) int {
	c := p.params.Cobble
	n := p.sample(px, py, c.Freq, c.Channel)
	n = max(0, min(1, n))
	return c.Base + int(math.Floor(float64(c.Spread)*n)) + c.Extra
}

// firstExposure scans the square of radius dist around (x, y), dx outer and
// dy inner, both ascending, and returns the first exposed cell. Positions
// outside buf are skipped.
func (p *Populator) firstExposure(buf *tile.Buffer, x, y, dist int) (int, int, bool) {
	for dx := -dist; dx <= dist; dx++ {
		nx := x + dx
		if nx < 0 || nx >= buf.W {
			continue
		}
		for dy := -dist; dy <= dist; dy++ {
			ny := y + dy
			if ny < 0 || ny >= buf.H {
				continue
			}
			if p.exposed(buf.At(nx, ny)) {
				return nx, ny, true
			}
		}
	}
	return 0, 0, false
}

// exposed reports whether c is open air or loose sand other than soft dirt.
func (p *Populator) exposed(c material.Instance) bool {
	switch c.Physics() {
	case material.Air:
		return true
	case material.Sand:
		return !c.Is(p.pal.SoftDirt)
	}
	return false
}
