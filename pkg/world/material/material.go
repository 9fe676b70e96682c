package material

import (
	"fmt"
	"strconv"
	"strings"
)

// PhysicsType is the coarse simulation class of a material.
type PhysicsType uint8

const (
	Air PhysicsType = iota
	Solid
	Sand
	Liquid
	Gas
	Passable
)

var physicsNames = [...]string{
	Air:      "AIR",
	Solid:    "SOLID",
	Sand:     "SAND",
	Liquid:   "LIQUID",
	Gas:      "GAS",
	Passable: "PASSABLE",
}

func (p PhysicsType) String() string {
	if int(p) < len(physicsNames) {
		return physicsNames[p]
	}
	return "PhysicsType(" + strconv.Itoa(int(p)) + ")"
}

// ParsePhysics maps a catalog physics name to its PhysicsType.
func ParsePhysics(s string) (PhysicsType, error) {
	for i, name := range physicsNames {
		if name == s {
			return PhysicsType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown physics type %q", s)
}

// Material is an immutable material definition from the catalog.
type Material struct {
	ID      uint16
	Name    string
	Physics PhysicsType
	Color   uint32 // 0xRRGGBBAA
	Ore     bool
}

// Instance returns a cell value of m carrying the base color.
func (m *Material) Instance() Instance {
	return Instance{Mat: m, Color: m.Color}
}

// InstanceColor returns a cell value of m with an explicit color, used for
// textured structures whose pixels keep their own shade.
func (m *Material) InstanceColor(c uint32) Instance {
	return Instance{Mat: m, Color: c}
}

func (m *Material) String() string { return m.Name }

// Instance is one tile buffer cell.
type Instance struct {
	Mat   *Material
	Color uint32
}

// Is reports whether the cell holds material m. Identity is by material id.
func (i Instance) Is(m *Material) bool {
	return i.Mat != nil && m != nil && i.Mat.ID == m.ID
}

// Physics returns the physics type of the referenced material. A zero
// Instance reports Air.
func (i Instance) Physics() PhysicsType {
	if i.Mat == nil {
		return Air
	}
	return i.Mat.Physics
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
