package gen

import (
	"github.com/OCharnyshevich/sandworld/pkg/world/structure"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// plantTrees stamps a tree at every scatter anchor whose tree can reach the
// chunk, including anchors in the neighbouring chunks. Each tree is built
// from its anchor's world position so overhanging canopies match across
// chunk borders. It returns the number of cells written.
func (p *Populator) plantTrees(buf *tile.Buffer, cx, cy int) int {
	w, h := p.params.ChunkWidth, p.params.ChunkHeight
	m := p.params.Trees.MarginChunks
	ox, oy := p.origin(cx, cy)

	area := p.space.Normalize(ox-m*w, oy-m*h, ox+(m+1)*w, oy+(m+1)*h)
	mats := structure.TreeMaterials{
		Nothing: p.pal.Nothing,
		Wood:    p.pal.TreeWood,
		Leaves:  p.pal.TreeLeaves,
	}

	written := 0
	for _, pt := range p.points.Within(area) {
		ax, ay := p.space.ToPixel(pt)
		lx, ly := ax-ox, ay-oy

		// Trees are w×h with the origin at the bottom center.
		left, top := lx-w/2, ly-(h-1)
		if left >= w || left+w <= 0 || top >= h || top+h <= 0 {
			continue
		}

		tree := structure.BuildTree(mats, w, h, structure.TreeSeed(p.seed, ax, ay))
		written += tree.Stamp(buf, lx, ly)
	}
	return written
}
