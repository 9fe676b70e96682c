package world

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/structure"
)

var previewSky = color.NRGBA{R: 138, G: 190, B: 235, A: 255}

// RenderPreview draws region r as a PNG, one pixel per tile, with cloud
// structures composited over the terrain. Missing chunks are generated.
func (w *World) RenderPreview(out io.Writer, r Region) error {
	img, err := w.Preview(r)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

// Preview renders region r into an image whose origin is the world pixel
// origin of chunk (r.MinX, r.MinY).
func (w *World) Preview(r Region) (*image.NRGBA, error) {
	if r.Chunks() == 0 {
		return nil, fmt.Errorf("empty preview region %+v", r)
	}
	cw, ch := w.generator.ChunkSize()
	ox, oy := r.MinX*cw, r.MinY*ch

	bounds := image.Rect(0, 0, (r.MaxX-r.MinX)*cw, (r.MaxY-r.MinY)*ch)
	img := image.NewNRGBA(bounds)
	draw.Draw(img, bounds, &image.Uniform{previewSky}, image.Point{}, draw.Src)

	terrain := image.NewNRGBA(bounds)
	for cy := r.MinY; cy < r.MaxY; cy++ {
		for cx := r.MinX; cx < r.MaxX; cx++ {
			c, err := w.GetOrGenerateChunk(cx, cy)
			if err != nil {
				return nil, err
			}
			left, top := cx*cw-ox, cy*ch-oy
			for y := 0; y < ch; y++ {
				for x := 0; x < cw; x++ {
					terrain.SetNRGBA(left+x, top+y, toNRGBA(c.Tiles.At(x, y)))
				}
			}
		}
	}
	draw.Draw(img, bounds, terrain, image.Point{}, draw.Over)

	for _, s := range w.Structures(r) {
		drawTemplate(img, s.Template, s.X-ox, s.Y-oy)
	}
	return img, nil
}

// drawTemplate composites t with its origin at image position (x, y).
func drawTemplate(dst draw.Image, t *structure.Template, x, y int) {
	src := image.NewNRGBA(image.Rect(0, 0, t.W, t.H))
	for ty := 0; ty < t.H; ty++ {
		for tx := 0; tx < t.W; tx++ {
			if c := t.At(tx, ty); c.Physics() != material.Air {
				src.SetNRGBA(tx, ty, toNRGBA(c))
			}
		}
	}
	at := image.Rect(x-t.OriginX, y-t.OriginY, x-t.OriginX+t.W, y-t.OriginY+t.H)
	draw.Draw(dst, at, src, image.Point{}, draw.Over)
}

func toNRGBA(c material.Instance) color.NRGBA {
	v := c.Color
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
