package scatter

import "math"

// Jitter is a procedural distribution over unbounded normalized space. The
// plane is cut into square cells of side Cell; each cell holds at most one
// point, present with probability Prob, at a hashed offset inside the cell.
// Queries are pure functions of the seed, so no state is precomputed.
type Jitter struct {
	Seed int64
	Cell float64
	Prob float64
}

// Within returns the points inside r sorted by (Y, X).
func (j Jitter) Within(r Rect) []Point {
	if r.Validate() != nil || j.Cell <= 0 || j.Prob <= 0 {
		return nil
	}
	gx0 := int(math.Floor(r.MinX / j.Cell))
	gx1 := int(math.Floor(r.MaxX / j.Cell))
	gy0 := int(math.Floor(r.MinY / j.Cell))
	gy1 := int(math.Floor(r.MaxY / j.Cell))

	threshold := uint64(math.Min(j.Prob, 1) * (1 << 20))
	var out []Point
	for gy := gy0; gy <= gy1; gy++ {
		for gx := gx0; gx <= gx1; gx++ {
			h := hash2(j.Seed, gx, gy)
			if h&(1<<20-1) >= threshold {
				continue
			}
			ox := float64((h>>20)&0xFFFFF) / (1 << 20)
			oy := float64((h>>40)&0xFFFFF) / (1 << 20)
			p := Point{X: (float64(gx) + ox) * j.Cell, Y: (float64(gy) + oy) * j.Cell}
			if r.Contains(p) {
				out = append(out, p)
			}
		}
	}
	sortPoints(out)
	return out
}

func hash2(seed int64, x, y int) uint64 {
	h := uint64(seed)
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h = mix64(h)
	h ^= uint64(int64(y)) * 0xc2b2ae3d27d4eb4f
	return mix64(h)
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
