package noise

import (
	"math"
	"testing"
)

func backends(seed int64) map[string]Source {
	return map[string]Source{
		BackendSimplex: NewSimplex(seed),
		BackendPerlin:  NewPerlin(seed),
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := backends(12345)
	b := backends(12345)

	for name := range a {
		for i := 0; i < 100; i++ {
			x := float64(i) * 0.15
			y := float64(i) * 0.25
			c := float64(i%4) * 1000
			if a[name].Sample(x, y, c) != b[name].Sample(x, y, c) {
				t.Fatalf("%s not deterministic at (%f, %f, %f)", name, x, y, c)
			}
		}
	}
}

func TestSampleRange(t *testing.T) {
	for name, src := range backends(42) {
		for i := 0; i < 10000; i++ {
			x := float64(i)*0.37 - 500
			y := float64(i)*0.53 - 500
			v := src.Sample(x, y, float64(i%7)*313)
			if v < 0 || v > 1 {
				t.Fatalf("%s Sample(%f, %f) = %f, out of [0,1]", name, x, y, v)
			}
		}
	}
}

// Generation thresholds sit near both ends of [0, 1], so every backend has
// to reach them.
func TestSampleSpreadReachesThresholds(t *testing.T) {
	for name, src := range backends(42) {
		low, high := 0, 0
		for i := 0; i < 10000; i++ {
			v := src.Sample(float64(i)*0.37-500, float64(i)*0.53-500, float64(i%7)*313)
			if v < 0.25 {
				low++
			}
			if v > 0.75 {
				high++
			}
		}
		if low < 10 || high < 10 {
			t.Errorf("%s: %d samples below 0.25 and %d above 0.75, want at least 10 each", name, low, high)
		}
	}
}

func TestChannelsAreIndependent(t *testing.T) {
	src := NewSimplex(7)

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if src.Sample(x, y, 1000) != src.Sample(x, y, 2000) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different channels should produce different noise")
	}
}

func TestDifferentSeedsDifferentNoise(t *testing.T) {
	ng1 := NewSimplex(1)
	ng2 := NewSimplex(2)

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if ng1.Sample(x, y, 0) != ng2.Sample(x, y, 0) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different noise")
	}
}

func TestNewBackends(t *testing.T) {
	for _, name := range []string{"", BackendSimplex, BackendPerlin} {
		if _, err := New(name, 1); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
	if _, err := New("worley", 1); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestConstant(t *testing.T) {
	c := Constant(0.5)
	if c.Sample(1, 2, 3) != 0.5 || c.Sample(-100, 9, 0) != 0.5 {
		t.Fatal("Constant should ignore coordinates")
	}
}

func TestOctavesRangeAndSmoothness(t *testing.T) {
	o := Octaves{Src: NewSimplex(456), Count: 4, Persistence: 0.5}

	prev := o.Sample(0, 0, 0)
	step := 0.01
	for i := 1; i < 1000; i++ {
		x := float64(i) * step
		curr := o.Sample(x, 0, 0)
		if curr < 0 || curr > 1 {
			t.Fatalf("Octaves = %f, out of [0,1]", curr)
		}
		if diff := math.Abs(curr - prev); diff > 0.1 {
			t.Fatalf("noise changed too rapidly at x=%f: diff=%f", x, diff)
		}
		prev = curr
	}
}

func TestOctavesSingleIsSource(t *testing.T) {
	src := NewSimplex(9)
	o := Octaves{Src: src, Count: 1}
	if o.Sample(1.5, 2.5, 0) != src.Sample(1.5, 2.5, 0) {
		t.Fatal("single octave should pass through")
	}
}
