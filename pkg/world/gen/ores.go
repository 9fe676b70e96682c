package gen

import "github.com/OCharnyshevich/sandworld/pkg/world/tile"

// seedOres converts smooth stone into ore. Each rule samples its own noise
// channel; the first rule under its threshold claims the cell.
func (p *Populator) seedOres(buf *tile.Buffer, cx, cy int) {
	if len(p.ores) == 0 {
		return
	}
	ox, oy := p.origin(cx, cy)

	for y := 0; y < buf.H; y++ {
		py := float64(oy + y)
		for x := 0; x < buf.W; x++ {
			if !buf.At(x, y).Is(p.pal.SmoothStone) {
				continue
			}
			px := float64(ox + x)
			for _, o := range p.ores {
				if p.sample(px, py, o.Freq, o.Channel) < o.Threshold {
					buf.Set(x, y, o.mat.Instance())
					break
				}
			}
		}
	}
}
