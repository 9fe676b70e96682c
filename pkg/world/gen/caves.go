package gen

import (
	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// carve hollows out caves in solid terrain. Three noise fields of different
// scale are summed and compared against a threshold that grows with depth,
// so caves are rare near the surface and common deep down. Some void cells
// become liquid pools; solid cells that survive can still be eroded.
func (p *Populator) carve(buf *tile.Buffer, cx, cy int) {
	c := p.params.Caves
	rng := p.rand(cx, cy, saltLiquid)
	ox, oy := p.origin(cx, cy)

	nothing := p.pal.Nothing.Instance()
	liquid := p.pal.Water.Instance()
	if cy > c.LavaBelowChunkRow {
		liquid = p.pal.Lava.Instance()
	}

	for y := 0; y < buf.H; y++ {
		py := float64(oy + y)
		depth := py / c.DepthScale
		threshold := min(c.MaxThreshold, depth)

		for x := 0; x < buf.W; x++ {
			cell := buf.At(x, y)
			if cell.Physics() != material.Solid || cell.Is(p.pal.Cloud) {
				continue
			}
			px := float64(ox + x)

			large := p.sample(px, py, c.LargeFreq, c.LargeChannel)
			huge := p.sample(px, py, c.HugeFreq, c.HugeChannel)
			detail := c.DetailAmp * p.sample(px, py, c.DetailFreq, c.DetailChannel)

			if large+huge+detail < threshold {
				v := nothing
				if p.sample(px, py, c.LiquidFreq, c.LiquidChannel) > c.LiquidThreshold &&
					rng.Float64() < c.LiquidChance {
					v = liquid
				}
				buf.Set(x, y, v)
				continue
			}

			if p.sample(px, py, c.ErosionFreq, c.ErosionChannel)-c.ErosionBias > depth {
				buf.Set(x, y, nothing)
			}
		}
	}
}
