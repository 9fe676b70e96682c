package structure

import (
	"testing"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/tile"
)

type testMats struct {
	reg     *material.Registry
	nothing *material.Material
	stone   *material.Material
	wood    *material.Material
	leaves  *material.Material
	cloud   *material.Material
}

func loadMats(t *testing.T) testMats {
	t.Helper()
	r, err := material.Default()
	if err != nil {
		t.Fatalf("material.Default: %v", err)
	}
	get := func(name string) *material.Material {
		m, err := r.ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		return m
	}
	return testMats{
		reg:     r,
		nothing: r.Nothing(),
		stone:   get("SMOOTH_STONE"),
		wood:    get("TREE_WOOD"),
		leaves:  get("TREE_LEAVES"),
		cloud:   get("CLOUD"),
	}
}

// trunkTemplate is 3×3 with a solid middle column and AIR elsewhere.
func trunkTemplate(t *testing.T, m testMats) *Template {
	t.Helper()
	a, w := m.nothing.Instance(), m.wood.Instance()
	tpl, err := New("trunk", 3, 3, 0, 0, []material.Instance{
		a, w, a,
		a, w, a,
		a, w, a,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tpl
}

func TestStampTrunkIntoEmptyBuffer(t *testing.T) {
	m := loadMats(t)
	buf := tile.New(10, 10, m.nothing.Instance())

	n := trunkTemplate(t, m).Stamp(buf, 5, 5)
	if n != 3 {
		t.Fatalf("Stamp wrote %d cells, want 3", n)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := m.nothing
			if x == 6 && y >= 5 && y <= 7 {
				want = m.wood
			}
			if got := buf.At(x, y); !got.Is(want) {
				t.Errorf("cell (%d,%d) = %s, want %s", x, y, got.Mat, want)
			}
		}
	}
}

func TestStampTransparencyKeepsDestination(t *testing.T) {
	m := loadMats(t)
	buf := tile.New(10, 10, m.stone.Instance())

	trunkTemplate(t, m).Stamp(buf, 5, 5)
	for _, p := range [][2]int{{5, 5}, {7, 5}, {5, 7}, {7, 7}} {
		if got := buf.At(p[0], p[1]); !got.Is(m.stone) {
			t.Errorf("transparent cell overwrote (%d,%d) with %s", p[0], p[1], got.Mat)
		}
	}
	if !buf.At(6, 6).Is(m.wood) {
		t.Error("trunk cell should overwrite stone")
	}
}

func TestStampClipsToBounds(t *testing.T) {
	m := loadMats(t)
	w := m.wood.Instance()
	cells := make([]material.Instance, 25)
	for i := range cells {
		cells[i] = w
	}
	tpl, err := New("block", 5, 5, 2, 2, cells)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name  string
		x, y  int
		wrote int
	}{
		{"inside", 4, 4, 25},
		{"top-left corner", 0, 0, 9},
		{"bottom-right corner", 9, 9, 9},
		{"left edge", -2, 4, 5},
		{"far outside", 50, -50, 0},
	}
	for _, tt := range tests {
		buf := tile.New(10, 10, m.nothing.Instance())
		if got := tpl.Stamp(buf, tt.x, tt.y); got != tt.wrote {
			t.Errorf("%s: wrote %d, want %d", tt.name, got, tt.wrote)
		}
		if got := buf.Count(m.wood); got != tt.wrote {
			t.Errorf("%s: buffer holds %d wood cells, want %d", tt.name, got, tt.wrote)
		}
	}
}

func TestNewRejectsBadShape(t *testing.T) {
	m := loadMats(t)
	if _, err := New("x", 0, 3, 0, 0, nil); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := New("x", 2, 2, 0, 0, []material.Instance{m.wood.Instance()}); err == nil {
		t.Error("expected error for cell count mismatch")
	}
}

func TestNewCopiesCells(t *testing.T) {
	m := loadMats(t)
	cells := []material.Instance{m.wood.Instance()}
	tpl, err := New("x", 1, 1, 0, 0, cells)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cells[0] = m.stone.Instance()
	if !tpl.At(0, 0).Is(m.wood) {
		t.Fatal("template shares cell storage with caller")
	}
}

func TestBuildTreeDeterministic(t *testing.T) {
	m := loadMats(t)
	mats := TreeMaterials{Nothing: m.nothing, Wood: m.wood, Leaves: m.leaves}

	a := BuildTree(mats, 100, 100, 42)
	b := BuildTree(mats, 100, 100, 42)
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			t.Fatalf("cell %d differs between identical seeds", i)
		}
	}

	c := BuildTree(mats, 100, 100, 43)
	same := true
	for i := range a.cells {
		if a.cells[i] != c.cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different trees")
	}
}

func TestBuildTreeShape(t *testing.T) {
	m := loadMats(t)
	tpl := BuildTree(TreeMaterials{Nothing: m.nothing, Wood: m.wood, Leaves: m.leaves}, 100, 80, 7)

	if tpl.W != 100 || tpl.H != 80 {
		t.Fatalf("size = %dx%d, want 100x80", tpl.W, tpl.H)
	}
	if tpl.OriginX != 50 || tpl.OriginY != 79 {
		t.Fatalf("origin = (%d,%d), want (50,79)", tpl.OriginX, tpl.OriginY)
	}
	if !tpl.At(tpl.OriginX, tpl.OriginY).Is(m.wood) {
		t.Error("trunk base should be wood")
	}

	var wood, leaves, empty int
	for y := 0; y < tpl.H; y++ {
		for x := 0; x < tpl.W; x++ {
			switch c := tpl.At(x, y); {
			case c.Is(m.wood):
				wood++
			case c.Is(m.leaves):
				leaves++
			case c.Physics() == material.Air:
				empty++
			default:
				t.Fatalf("unexpected material %s at (%d,%d)", c.Mat, x, y)
			}
		}
	}
	if wood == 0 || leaves == 0 || empty == 0 {
		t.Fatalf("wood=%d leaves=%d empty=%d, want all non-zero", wood, leaves, empty)
	}
	if tpl.Solid() != wood+leaves {
		t.Errorf("Solid() = %d, want %d", tpl.Solid(), wood+leaves)
	}
}

func TestTreeSeedDependsOnPosition(t *testing.T) {
	if TreeSeed(1, 10, 20) != TreeSeed(1, 10, 20) {
		t.Fatal("TreeSeed not deterministic")
	}
	if TreeSeed(1, 10, 20) == TreeSeed(1, 20, 10) {
		t.Error("swapped coordinates should give a different seed")
	}
	if TreeSeed(1, 10, 20) == TreeSeed(2, 10, 20) {
		t.Error("different world seeds should give a different seed")
	}
}
