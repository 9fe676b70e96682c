package tile

import "github.com/OCharnyshevich/sandworld/pkg/world/material"

// Buffer holds the material cells of one chunk.
// Index = x + y*W.
type Buffer struct {
	W, H  int
	Cells []material.Instance
}

// New allocates a w×h buffer with every cell set to fill.
func New(w, h int, fill material.Instance) *Buffer {
	b := &Buffer{W: w, H: h, Cells: make([]material.Instance, w*h)}
	b.Fill(fill)
	return b
}

// Index returns the flat index of (x, y). The caller must check InBounds.
func (b *Buffer) Index(x, y int) int {
	return x + y*b.W
}

// InBounds reports whether (x, y) lies inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the cell at the given local coordinates.
// x must be in [0,W), y must be in [0,H).
func (b *Buffer) At(x, y int) material.Instance {
	return b.Cells[x+y*b.W]
}

// Set writes a cell if (x, y) is inside the buffer and reports whether it did.
func (b *Buffer) Set(x, y int, v material.Instance) bool {
	if !b.InBounds(x, y) {
		return false
	}
	b.Cells[x+y*b.W] = v
	return true
}

// Fill sets every cell to v.
func (b *Buffer) Fill(v material.Instance) {
	for i := range b.Cells {
		b.Cells[i] = v
	}
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{W: b.W, H: b.H, Cells: make([]material.Instance, len(b.Cells))}
	copy(c.Cells, b.Cells)
	return c
}

// Equal reports whether both buffers have the same size and identical cells.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.W != o.W || b.H != o.H || len(b.Cells) != len(o.Cells) {
		return false
	}
	for i := range b.Cells {
		if b.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells hold m.
func (b *Buffer) Count(m *material.Material) int {
	n := 0
	for _, c := range b.Cells {
		if c.Is(m) {
			n++
		}
	}
	return n
}
