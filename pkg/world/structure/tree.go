package structure

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
)

// TreeMaterials are the materials a procedural tree is built from.
type TreeMaterials struct {
	Nothing *material.Material
	Wood    *material.Material
	Leaves  *material.Material
}

// TreeSeed derives a tree seed from the world seed and the anchor's world
// pixel position, so a tree overhanging several chunks is identical in each.
func TreeSeed(worldSeed int64, px, py int) int64 {
	h := uint64(worldSeed) ^ uint64(int64(px))*0x9e3779b97f4a7c15 ^ uint64(int64(py))*0xc2b2ae3d27d4eb4f
	h = (h ^ (h >> 33)) * 0xff51afd7ed558ccd
	h = (h ^ (h >> 33)) * 0xc4ceb9fe1a85ec53
	return int64(h ^ (h >> 33))
}

// BuildTree builds a w×h tree template from seed. The origin is the base of
// the trunk at the bottom center, so stamping at an anchor grows the tree
// upward from it.
func BuildTree(mats TreeMaterials, w, h int, seed int64) *Template {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x7265656c))
	t := &Template{
		Name:    "tree_" + strconv.FormatInt(seed, 16),
		W:       w,
		H:       h,
		OriginX: w / 2,
		OriginY: h - 1,
		cells:   make([]material.Instance, w*h),
	}
	empty := mats.Nothing.Instance()
	for i := range t.cells {
		t.cells[i] = empty
	}

	baseX, baseY := float64(t.OriginX), float64(t.OriginY)
	trunkH := float64(h) * (0.35 + rng.Float64()*0.2)
	trunkW := 2 + rng.IntN(3) // 2-4
	topY := baseY - trunkH

	type limb struct{ x0, y0, x1, y1, width float64 }
	limbs := []limb{{baseX, baseY, baseX + (rng.Float64()-0.5)*4, topY, float64(trunkW)}}
	crowns := [][3]float64{{limbs[0].x1, topY, float64(h) * (0.12 + rng.Float64()*0.05)}}

	branches := 2 + rng.IntN(3) // 2-4
	for i := range branches {
		// Alternate sides so the canopy stays balanced.
		dir := 1.0
		if i%2 == 1 {
			dir = -1.0
		}
		along := 0.45 + rng.Float64()*0.45
		sx := baseX + (limbs[0].x1-baseX)*along
		sy := baseY - trunkH*along
		length := float64(h) * (0.12 + rng.Float64()*0.12)
		ang := math.Pi/4 + rng.Float64()*math.Pi/6
		ex := sx + dir*math.Cos(ang)*length
		ey := sy - math.Sin(ang)*length
		limbs = append(limbs, limb{sx, sy, ex, ey, math.Max(1, float64(trunkW)-1)})
		crowns = append(crowns, [3]float64{ex, ey, float64(h) * (0.07 + rng.Float64()*0.05)})
	}

	for _, c := range crowns {
		t.fillBlob(rng, c[0], c[1], c[2], mats.Leaves)
	}
	wood := mats.Wood.Instance()
	for _, l := range limbs {
		t.drawLine(l.x0, l.y0, l.x1, l.y1, l.width, wood)
	}
	return t
}

// fillBlob paints a ragged disc of leaves around (cx, cy).
func (t *Template) fillBlob(rng *rand.Rand, cx, cy, r float64, leaves *material.Material) {
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := max(y0, 0); y <= min(y1, t.H-1); y++ {
		for x := max(x0, 0); x <= min(x1, t.W-1); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d := math.Sqrt(dx*dx+dy*dy) / r
			if d > 1 || (d > 0.8 && rng.IntN(3) == 0) {
				continue
			}
			// Slight shade variation per leaf.
			shade := uint32(rng.IntN(24))
			col := leaves.Color
			g := (col >> 16) & 0xFF
			if g > shade {
				g -= shade
			}
			t.cells[x+y*t.W] = leaves.InstanceColor(col&^(0xFF<<16) | g<<16)
		}
	}
}

// drawLine paints a thick segment from (x0, y0) to (x1, y1).
func (t *Template) drawLine(x0, y0, x1, y1, width float64, v material.Instance) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0)))) + 1
	half := width / 2
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		cx := x0 + (x1-x0)*f
		cy := y0 + (y1-y0)*f
		for y := int(math.Floor(cy - half)); y <= int(math.Floor(cy+half)); y++ {
			for x := int(math.Floor(cx - half + 0.5)); x < int(math.Floor(cx-half+0.5))+int(math.Max(1, width)); x++ {
				if x < 0 || x >= t.W || y < 0 || y >= t.H {
					continue
				}
				t.cells[x+y*t.W] = v
			}
		}
	}
}
