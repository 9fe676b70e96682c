package material

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Nothing is the catalog name of the empty material. It always has id 0.
const Nothing = "NOTHING"

// ErrUnknownMaterial is returned when a name is not present in the registry.
var ErrUnknownMaterial = errors.New("unknown material")

//go:embed catalog/materials.json
var defaultCatalog []byte

//go:embed catalog/materials.schema.json
var catalogSchema string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("materials.schema.json", catalogSchema)
	})
	return schema, schemaErr
}

type catalogEntry struct {
	Name    string `json:"name"`
	Physics string `json:"physics"`
	Color   string `json:"color"`
	Ore     bool   `json:"ore,omitempty"`
}

// Registry holds the material palette. It is read-only after construction
// and safe for concurrent use.
type Registry struct {
	byID   []*Material
	byName map[string]*Material
}

// LoadCatalog validates raw against the catalog schema and builds a
// registry from it. NOTHING is forced to palette id 0; the remaining
// materials keep catalog order.
func LoadCatalog(raw []byte) (*Registry, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	var entries []catalogEntry
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	r := &Registry{byName: make(map[string]*Material, len(entries))}
	ordered := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Name == Nothing {
			ordered = append([]catalogEntry{e}, ordered...)
		} else {
			ordered = append(ordered, e)
		}
	}
	if len(ordered) == 0 || ordered[0].Name != Nothing {
		return nil, fmt.Errorf("catalog: missing %s", Nothing)
	}

	for i, e := range ordered {
		if _, dup := r.byName[e.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate material %s", e.Name)
		}
		phys, err := ParsePhysics(e.Physics)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", e.Name, err)
		}
		if i == 0 && phys != Air {
			return nil, fmt.Errorf("catalog: %s must have AIR physics, got %s", Nothing, phys)
		}
		col, err := ParseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", e.Name, err)
		}
		m := &Material{
			ID:      uint16(i),
			Name:    e.Name,
			Physics: phys,
			Color:   col,
			Ore:     e.Ore,
		}
		r.byID = append(r.byID, m)
		r.byName[m.Name] = m
	}
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the registry built from the embedded catalog.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = LoadCatalog(defaultCatalog)
	})
	return defaultReg, defaultErr
}

// ByName looks up a material by catalog name.
func (r *Registry) ByName(name string) (*Material, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMaterial, name)
	}
	return m, nil
}

// ByID looks up a material by palette id.
func (r *Registry) ByID(id uint16) (*Material, bool) {
	if int(id) >= len(r.byID) {
		return nil, false
	}
	return r.byID[id], true
}

// Nothing returns the empty material.
func (r *Registry) Nothing() *Material { return r.byID[0] }

func (r *Registry) Len() int { return len(r.byID) }

// Names returns material names in palette order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.byID))
	for i, m := range r.byID {
		names[i] = m.Name
	}
	return names
}
