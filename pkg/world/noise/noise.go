// Package noise provides seeded coherent noise sources. A source samples
// two spatial coordinates plus a channel coordinate; distinct channels give
// uncorrelated fields from a single seed.
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source samples coherent noise. Sample returns a value in [0, 1] and must be
// safe for concurrent use.
type Source interface {
	Sample(x, y, channel float64) float64
}

// Backend names accepted by New.
const (
	BackendSimplex = "simplex"
	BackendPerlin  = "perlin"
)

// New creates a seeded Source for the named backend.
func New(backend string, seed int64) (Source, error) {
	switch backend {
	case "", BackendSimplex:
		return NewSimplex(seed), nil
	case BackendPerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// Simplex is OpenSimplex noise normalized to [0, 1].
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates a Simplex source from a seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

func (s *Simplex) Sample(x, y, channel float64) float64 {
	return clamp01(s.n.Eval3(x, y, channel))
}

// perlinGain stretches go-perlin output, which stays within about ±0.7 for
// these parameters, so the remapped field spans [0, 1] like Simplex.
const perlinGain = 1.5

// Perlin is classic Perlin noise stretched and remapped to [0, 1].
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a Perlin source from a seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (p *Perlin) Sample(x, y, channel float64) float64 {
	return clamp01((p.p.Noise3D(x, y, channel)*perlinGain + 1) / 2)
}

// Constant returns the same value everywhere.
type Constant float64

func (c Constant) Sample(_, _, _ float64) float64 { return float64(c) }

// Octaves layers several octaves of src for natural-looking fields.
// The result stays in [0, 1].
type Octaves struct {
	Src         Source
	Count       int
	Persistence float64
}

func (o Octaves) Sample(x, y, channel float64) float64 {
	if o.Count <= 1 {
		return o.Src.Sample(x, y, channel)
	}
	var total, maxVal float64
	amplitude, frequency := 1.0, 1.0
	for range o.Count {
		total += o.Src.Sample(x*frequency, y*frequency, channel) * amplitude
		maxVal += amplitude
		amplitude *= o.Persistence
		frequency *= 2.0
	}
	return total / maxVal
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
