// Package scatter answers point distribution queries: which anchor points of
// a scatter pattern fall inside a rectangle of normalized space.
package scatter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRect is returned for rectangles with non-positive extent or
// non-finite bounds.
var ErrInvalidRect = errors.New("invalid rect")

// Point is a location in normalized space.
type Point struct{ X, Y float64 }

// Rect is a half-open rectangle [MinX,MaxX)×[MinY,MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Validate rejects empty or non-finite rectangles.
func (r Rect) Validate() error {
	for _, v := range [...]float64{r.MinX, r.MinY, r.MaxX, r.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrInvalidRect, r)
		}
	}
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return fmt.Errorf("%w: %+v", ErrInvalidRect, r)
	}
	return nil
}

// Distribution is a read-only scatter of points. Within must be safe for
// concurrent use and return points in a stable order.
type Distribution interface {
	Within(r Rect) []Point
}

// Space maps world pixels to normalized space: one normalized unit spans
// W pixels horizontally and H pixels vertically.
type Space struct{ W, H float64 }

// Normalize converts a pixel rectangle to normalized space.
func (s Space) Normalize(minX, minY, maxX, maxY int) Rect {
	return Rect{
		MinX: float64(minX) / s.W,
		MinY: float64(minY) / s.H,
		MaxX: float64(maxX) / s.W,
		MaxY: float64(maxY) / s.H,
	}
}

// ToPixel converts a normalized point to integer pixel coordinates,
// flooring toward negative infinity.
func (s Space) ToPixel(p Point) (int, int) {
	return int(math.Floor(p.X * s.W)), int(math.Floor(p.Y * s.H))
}
