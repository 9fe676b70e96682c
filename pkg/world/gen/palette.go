package gen

import (
	"fmt"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
)

// Palette is the set of named materials generation depends on.
type Palette struct {
	Nothing     *material.Material
	SmoothStone *material.Material
	CobbleStone *material.Material
	SmoothDirt  *material.Material
	CobbleDirt  *material.Material
	SoftDirt    *material.Material
	Sand        *material.Material
	Water       *material.Material
	Lava        *material.Material
	Cloud       *material.Material
	TreeWood    *material.Material
	TreeLeaves  *material.Material
}

// NewPalette resolves the generation materials from reg.
func NewPalette(reg *material.Registry) (Palette, error) {
	var p Palette
	for name, dst := range map[string]**material.Material{
		"SMOOTH_STONE": &p.SmoothStone,
		"COBBLE_STONE": &p.CobbleStone,
		"SMOOTH_DIRT":  &p.SmoothDirt,
		"COBBLE_DIRT":  &p.CobbleDirt,
		"SOFT_DIRT":    &p.SoftDirt,
		"SAND":         &p.Sand,
		"WATER":        &p.Water,
		"LAVA":         &p.Lava,
		"CLOUD":        &p.Cloud,
		"TREE_WOOD":    &p.TreeWood,
		"TREE_LEAVES":  &p.TreeLeaves,
	} {
		m, err := reg.ByName(name)
		if err != nil {
			return p, fmt.Errorf("palette: %w", err)
		}
		*dst = m
	}
	p.Nothing = reg.Nothing()
	return p, nil
}
