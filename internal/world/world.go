package world

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/sandworld/pkg/world/gen"
	"github.com/OCharnyshevich/sandworld/pkg/world/material"
)

// ChunkPos identifies a chunk by its grid coordinates.
type ChunkPos struct{ X, Y int }

// Region is a half-open range of chunk coordinates [MinX,MaxX)×[MinY,MaxY).
type Region struct {
	MinX, MinY, MaxX, MaxY int
}

// Chunks returns the number of chunks in r.
func (r Region) Chunks() int {
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return 0
	}
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// Generator produces chunks. *gen.Generator implements it.
type Generator interface {
	Generate(cx, cy int) (*gen.Chunk, error)
	ChunkSize() (int, int)
}

// World caches generated chunks and generates missing ones on demand.
type World struct {
	mu        sync.RWMutex
	generator Generator
	chunks    map[ChunkPos]*gen.Chunk
	log       *slog.Logger
}

// New creates a new World with the given generator.
func New(generator Generator, log *slog.Logger) *World {
	return &World{
		generator: generator,
		chunks:    make(map[ChunkPos]*gen.Chunk),
		log:       log,
	}
}

// GetOrGenerateChunk returns the chunk at the given coordinates,
// generating and caching it if needed.
func (w *World) GetOrGenerateChunk(cx, cy int) (*gen.Chunk, error) {
	pos := ChunkPos{X: cx, Y: cy}

	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c, nil
	}
	w.mu.RUnlock()

	c, err := w.generator.Generate(cx, cy)
	if err != nil {
		return nil, fmt.Errorf("generate chunk (%d,%d): %w", cx, cy, err)
	}

	w.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := w.chunks[pos]; ok {
		w.mu.Unlock()
		return existing, nil
	}
	w.chunks[pos] = c
	w.mu.Unlock()

	w.log.Debug("generated chunk", "x", cx, "y", cy, "structures", len(c.Structures))
	return c, nil
}

// MaterialAt returns the tile at world pixel (x, y), generating its chunk
// if needed.
func (w *World) MaterialAt(x, y int) (material.Instance, error) {
	cw, ch := w.generator.ChunkSize()
	cx, cy := floorDiv(x, cw), floorDiv(y, ch)
	c, err := w.GetOrGenerateChunk(cx, cy)
	if err != nil {
		return material.Instance{}, err
	}
	return c.Tiles.At(x-cx*cw, y-cy*ch), nil
}

// Structures returns the placed structures of every loaded chunk in r,
// ordered by chunk row then column.
func (w *World) Structures(r Region) []gen.PlacedStructure {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []gen.PlacedStructure
	for cy := r.MinY; cy < r.MaxY; cy++ {
		for cx := r.MinX; cx < r.MaxX; cx++ {
			if c, ok := w.chunks[ChunkPos{cx, cy}]; ok {
				out = append(out, c.Structures...)
			}
		}
	}
	return out
}

// Unload drops a cached chunk. It reports whether the chunk was loaded.
func (w *World) Unload(cx, cy int) bool {
	pos := ChunkPos{X: cx, Y: cy}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.chunks[pos]; !ok {
		return false
	}
	delete(w.chunks, pos)
	return true
}

// Loaded returns the positions of all cached chunks in row-major order.
func (w *World) Loaded() []ChunkPos {
	w.mu.RLock()
	out := make([]ChunkPos, 0, len(w.chunks))
	for pos := range w.chunks {
		out = append(out, pos)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Pregenerate generates every chunk in r with at most workers chunks in
// flight. It stops at the first error or when ctx is cancelled, and returns
// the number of chunks generated before that.
func (w *World) Pregenerate(ctx context.Context, r Region, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu   sync.Mutex
		done int
	)
loop:
	for cy := r.MinY; cy < r.MaxY; cy++ {
		for cx := r.MinX; cx < r.MaxX; cx++ {
			if gctx.Err() != nil {
				break loop
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if _, err := w.GetOrGenerateChunk(cx, cy); err != nil {
					return err
				}
				mu.Lock()
				done++
				mu.Unlock()
				return nil
			})
		}
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	w.log.Info("pregenerated region", "chunks", done, "total", r.Chunks(), "workers", workers)
	return done, err
}

// Stats counts the tiles of every loaded chunk in r by material name.
func (w *World) Stats(r Region) map[string]int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	counts := make(map[string]int)
	for cy := r.MinY; cy < r.MaxY; cy++ {
		for cx := r.MinX; cx < r.MaxX; cx++ {
			c, ok := w.chunks[ChunkPos{cx, cy}]
			if !ok {
				continue
			}
			for _, cell := range c.Tiles.Cells {
				counts[cell.Mat.Name]++
			}
		}
	}
	return counts
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
