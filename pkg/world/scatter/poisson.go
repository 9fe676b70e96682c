package scatter

import (
	"math"
	"math/rand/v2"
	"sort"
)

// poissonAttempts is k in Bridson's algorithm.
const poissonAttempts = 30

// Poisson is a precomputed Poisson-disc distribution over the unit square:
// no two points are closer than the minimum distance. Points are bucketed
// into a grid for rectangle queries.
type Poisson struct {
	minDist float64
	cell    float64
	cols    int
	rows    int
	buckets [][]Point
	n       int
}

// NewPoisson samples the unit square with Bridson's algorithm using a
// seeded generator. minDist must be positive.
func NewPoisson(seed int64, minDist float64) *Poisson {
	if minDist <= 0 {
		minDist = 0.01
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	cell := minDist / math.Sqrt2
	cols := int(math.Ceil(1 / cell))
	rows := cols
	grid := make([]int, cols*rows)
	for i := range grid {
		grid[i] = -1
	}

	var pts []Point
	var active []int
	add := func(p Point) {
		gx, gy := int(p.X/cell), int(p.Y/cell)
		grid[gx+gy*cols] = len(pts)
		active = append(active, len(pts))
		pts = append(pts, p)
	}
	farEnough := func(p Point) bool {
		gx, gy := int(p.X/cell), int(p.Y/cell)
		for y := max(gy-2, 0); y <= min(gy+2, rows-1); y++ {
			for x := max(gx-2, 0); x <= min(gx+2, cols-1); x++ {
				idx := grid[x+y*cols]
				if idx < 0 {
					continue
				}
				dx, dy := pts[idx].X-p.X, pts[idx].Y-p.Y
				if dx*dx+dy*dy < minDist*minDist {
					return false
				}
			}
		}
		return true
	}

	add(Point{X: rng.Float64(), Y: rng.Float64()})
	for len(active) > 0 {
		ai := rng.IntN(len(active))
		base := pts[active[ai]]
		found := false
		for range poissonAttempts {
			ang := rng.Float64() * 2 * math.Pi
			r := minDist * (1 + rng.Float64())
			p := Point{X: base.X + r*math.Cos(ang), Y: base.Y + r*math.Sin(ang)}
			if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
				continue
			}
			if farEnough(p) {
				add(p)
				found = true
				break
			}
		}
		if !found {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	d := &Poisson{
		minDist: minDist,
		cell:    cell,
		cols:    cols,
		rows:    rows,
		buckets: make([][]Point, cols*rows),
		n:       len(pts),
	}
	for _, p := range pts {
		gx, gy := int(p.X/cell), int(p.Y/cell)
		d.buckets[gx+gy*cols] = append(d.buckets[gx+gy*cols], p)
	}
	return d
}

// Len returns the number of sampled points.
func (d *Poisson) Len() int { return d.n }

// MinDist returns the minimum distance between points.
func (d *Poisson) MinDist() float64 { return d.minDist }

// Within returns the points inside r sorted by (Y, X).
func (d *Poisson) Within(r Rect) []Point {
	if r.Validate() != nil {
		return nil
	}
	x0 := clampInt(int(math.Floor(r.MinX/d.cell)), 0, d.cols-1)
	x1 := clampInt(int(math.Floor(r.MaxX/d.cell)), 0, d.cols-1)
	y0 := clampInt(int(math.Floor(r.MinY/d.cell)), 0, d.rows-1)
	y1 := clampInt(int(math.Floor(r.MaxY/d.cell)), 0, d.rows-1)

	var out []Point
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			for _, p := range d.buckets[x+y*d.cols] {
				if r.Contains(p) {
					out = append(out, p)
				}
			}
		}
	}
	sortPoints(out)
	return out
}

func sortPoints(pts []Point) {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
