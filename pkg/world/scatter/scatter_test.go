package scatter

import (
	"errors"
	"math"
	"testing"
)

func TestRectValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		ok   bool
	}{
		{"unit", Rect{0, 0, 1, 1}, true},
		{"negative origin", Rect{-0.5, -0.5, 0.1, 0.1}, true},
		{"empty x", Rect{0.5, 0, 0.5, 1}, false},
		{"inverted y", Rect{0, 1, 1, 0}, false},
		{"nan", Rect{math.NaN(), 0, 1, 1}, false},
		{"inf", Rect{0, 0, math.Inf(1), 1}, false},
	}
	for _, tt := range tests {
		err := tt.r.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidRect) {
			t.Errorf("%s: err = %v, want ErrInvalidRect", tt.name, err)
		}
	}
}

func TestSpaceRoundTrip(t *testing.T) {
	s := Space{W: 6400, H: 3200}
	r := s.Normalize(-100, 0, 200, 100)
	if r.MinX != -100.0/6400 || r.MaxY != 100.0/3200 {
		t.Fatalf("Normalize = %+v", r)
	}
	x, y := s.ToPixel(Point{X: 150.5 / 6400, Y: 99.9 / 3200})
	if x != 150 || y != 99 {
		t.Errorf("ToPixel = (%d,%d), want (150,99)", x, y)
	}
	x, _ = s.ToPixel(Point{X: -0.5 / 6400})
	if x != -1 {
		t.Errorf("ToPixel floors negative coordinates: got %d, want -1", x)
	}
}

func TestPoissonMinimumDistance(t *testing.T) {
	d := NewPoisson(42, 0.05)
	pts := d.Within(Rect{0, 0, 1, 1})
	if len(pts) != d.Len() {
		t.Fatalf("full query returned %d points, want %d", len(pts), d.Len())
	}
	if len(pts) < 100 {
		t.Fatalf("expected a dense distribution, got %d points", len(pts))
	}
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			dx, dy := pts[i].X-pts[j].X, pts[i].Y-pts[j].Y
			if math.Sqrt(dx*dx+dy*dy) < d.MinDist() {
				t.Fatalf("points %v and %v closer than %f", pts[i], pts[j], d.MinDist())
			}
		}
	}
}

func TestPoissonDeterministic(t *testing.T) {
	a := NewPoisson(7, 0.03).Within(Rect{0.2, 0.2, 0.6, 0.5})
	b := NewPoisson(7, 0.03).Within(Rect{0.2, 0.2, 0.6, 0.5})
	if len(a) != len(b) {
		t.Fatalf("len %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPoissonWithinMatchesBruteForce(t *testing.T) {
	d := NewPoisson(3, 0.04)
	all := d.Within(Rect{0, 0, 1, 1})
	r := Rect{0.13, 0.27, 0.58, 0.61}

	want := 0
	for _, p := range all {
		if r.Contains(p) {
			want++
		}
	}
	got := d.Within(r)
	if len(got) != want {
		t.Fatalf("Within returned %d points, brute force %d", len(got), want)
	}
	for _, p := range got {
		if !r.Contains(p) {
			t.Fatalf("point %v outside %+v", p, r)
		}
	}
}

func TestPoissonOutsideUnitSquare(t *testing.T) {
	d := NewPoisson(1, 0.05)
	if pts := d.Within(Rect{1.5, 1.5, 2, 2}); len(pts) != 0 {
		t.Fatalf("expected no points outside the unit square, got %d", len(pts))
	}
	if pts := d.Within(Rect{1, 1, 0, 0}); pts != nil {
		t.Fatalf("invalid rect should yield nil, got %v", pts)
	}
}

func TestJitterConsistentAcrossQueries(t *testing.T) {
	j := Jitter{Seed: 99, Cell: 0.1, Prob: 0.6}

	whole := j.Within(Rect{-1, -1, 1, 1})
	left := j.Within(Rect{-1, -1, 0, 1})
	right := j.Within(Rect{0, -1, 1, 1})
	if len(whole) != len(left)+len(right) {
		t.Fatalf("split query mismatch: %d != %d + %d", len(whole), len(left), len(right))
	}
	seen := make(map[Point]bool, len(whole))
	for _, p := range whole {
		seen[p] = true
	}
	for _, p := range append(left, right...) {
		if !seen[p] {
			t.Fatalf("point %v from split query missing in whole query", p)
		}
	}
}

func TestJitterDensity(t *testing.T) {
	j := Jitter{Seed: 5, Cell: 0.01, Prob: 0.5}
	n := len(j.Within(Rect{0, 0, 1, 1}))
	// 10 000 cells at p=0.5.
	if n < 4500 || n > 5500 {
		t.Fatalf("got %d points, want about 5000", n)
	}
	if pts := (Jitter{Seed: 5, Cell: 0.01}).Within(Rect{0, 0, 1, 1}); len(pts) != 0 {
		t.Fatalf("zero probability should yield no points, got %d", len(pts))
	}
}
