// Package structure holds immutable material stamps (trees, clouds) and the
// sources that resolve them by name.
package structure

import (
	"fmt"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

// Template is an immutable w×h grid of cells with an origin offset. Cells
// with AIR physics are transparent: stamping never writes them.
type Template struct {
	Name    string
	W, H    int
	OriginX int
	OriginY int
	cells   []material.Instance
}

// New builds a template from row-major cells. The slice is copied.
func New(name string, w, h, originX, originY int, cells []material.Instance) (*Template, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("template %s: invalid size %dx%d", name, w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("template %s: %d cells, want %d", name, len(cells), w*h)
	}
	t := &Template{
		Name:    name,
		W:       w,
		H:       h,
		OriginX: originX,
		OriginY: originY,
		cells:   make([]material.Instance, len(cells)),
	}
	copy(t.cells, cells)
	return t, nil
}

// At returns the cell at template-local (x, y).
func (t *Template) At(x, y int) material.Instance {
	return t.cells[x+y*t.W]
}

// Solid returns the number of non-transparent cells.
func (t *Template) Solid() int {
	n := 0
	for _, c := range t.cells {
		if c.Physics() != material.Air {
			n++
		}
	}
	return n
}

// Stamp paints t onto dst with the template origin at (x, y) in dst-local
// coordinates. Transparent cells and cells falling outside dst are skipped;
// every other destination cell is overwritten. It returns the number of
// cells written.
func (t *Template) Stamp(dst *tile.Buffer, x, y int) int {
	left := x - t.OriginX
	top := y - t.OriginY

	// Clip the template rectangle to the destination once.
	tx0, ty0 := max(0, -left), max(0, -top)
	tx1, ty1 := min(t.W, dst.W-left), min(t.H, dst.H-top)

	written := 0
	for ty := ty0; ty < ty1; ty++ {
		row := ty * t.W
		for tx := tx0; tx < tx1; tx++ {
			c := t.cells[row+tx]
			if c.Physics() == material.Air {
				continue
			}
			if dst.Set(left+tx, top+ty, c) {
				written++
			}
		}
	}
	return written
}
