package structure

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"path"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
)

// ErrTemplateNotFound is returned when a source has no template for a name.
var ErrTemplateNotFound = errors.New("template not found")

// Source resolves templates by logical name. Implementations must be safe
// for concurrent use.
type Source interface {
	Template(name string) (*Template, error)
}

// Library is an in-memory Source.
type Library map[string]*Template

func (l Library) Template(name string) (*Template, error) {
	t, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

//go:embed manifest.schema.json
var manifestSchemaText string

//go:embed assets/*.json
var embeddedAssets embed.FS

var (
	manifestOnce   sync.Once
	manifestSchema *jsonschema.Schema
	manifestErr    error
)

func compiledManifestSchema() (*jsonschema.Schema, error) {
	manifestOnce.Do(func() {
		manifestSchema, manifestErr = jsonschema.CompileString("manifest.schema.json", manifestSchemaText)
	})
	return manifestSchema, manifestErr
}

type manifest struct {
	Name     string            `json:"name"`
	Origin   []int             `json:"origin"`
	Rows     []string          `json:"rows"`
	Legend   map[string]string `json:"legend"`
	Colors   map[string]string `json:"colors"`
	Image    string            `json:"image"`
	Material string            `json:"material"`
}

// FSSource loads templates from manifests in a file system: <name>.json or
// the zstd-compressed <name>.json.zst. Loaded templates are cached.
type FSSource struct {
	fsys fs.FS
	reg  *material.Registry

	mu    sync.RWMutex
	cache map[string]*Template
}

// NewFSSource creates a source reading manifests from fsys.
func NewFSSource(fsys fs.FS, reg *material.Registry) *FSSource {
	return &FSSource{fsys: fsys, reg: reg, cache: make(map[string]*Template)}
}

// Embedded returns a source over the built-in template pack (cloud_0 to
// cloud_10).
func Embedded(reg *material.Registry) *FSSource {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err) // static path
	}
	return NewFSSource(sub, reg)
}

// Template resolves name, loading and caching it on first use.
func (s *FSSource) Template(name string) (*Template, error) {
	s.mu.RLock()
	t, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := s.load(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := s.cache[name]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.cache[name] = t
	s.mu.Unlock()
	return t, nil
}

// Names lists every manifest name available in the file system.
func (s *FSSource) Names() ([]string, error) {
	var names []string
	for _, pattern := range []string{"*.json", "*.json.zst"} {
		matches, err := fs.Glob(s.fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			names = append(names, trimManifestExt(m))
		}
	}
	return names, nil
}

func trimManifestExt(p string) string {
	for _, ext := range []string{".json.zst", ".json"} {
		if len(p) > len(ext) && p[len(p)-len(ext):] == ext {
			return p[:len(p)-len(ext)]
		}
	}
	return p
}

func (s *FSSource) load(name string) (*Template, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: invalid name %q", ErrTemplateNotFound, name)
	}
	raw, err := s.readManifest(name)
	if err != nil {
		return nil, err
	}
	t, err := s.decode(name, raw)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return t, nil
}

func (s *FSSource) readManifest(name string) ([]byte, error) {
	raw, err := fs.ReadFile(s.fsys, name+".json")
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	f, err := s.fsys.Open(name + ".json.zst")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress template %s: %w", name, err)
	}
	defer dec.Close()
	raw, err = io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress template %s: %w", name, err)
	}
	return raw, nil
}

func (s *FSSource) decode(name string, raw []byte) (*Template, error) {
	sch, err := compiledManifestSchema()
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	ox, oy := 0, 0
	if len(m.Origin) == 2 {
		ox, oy = m.Origin[0], m.Origin[1]
	}
	if m.Name == "" {
		m.Name = name
	}

	if m.Image != "" {
		return s.decodeImage(m, name, ox, oy)
	}
	return s.decodeRows(m, ox, oy)
}

func (s *FSSource) decodeRows(m manifest, ox, oy int) (*Template, error) {
	w, h := len(m.Rows[0]), len(m.Rows)
	legend := make(map[byte]material.Instance, len(m.Legend))
	for sym, matName := range m.Legend {
		if len(sym) != 1 {
			return nil, fmt.Errorf("legend symbol %q must be a single ASCII character", sym)
		}
		mat, err := s.reg.ByName(matName)
		if err != nil {
			return nil, fmt.Errorf("legend %q: %w", sym, err)
		}
		inst := mat.Instance()
		if hex, ok := m.Colors[sym]; ok {
			col, err := material.ParseColor(hex)
			if err != nil {
				return nil, fmt.Errorf("color %q: %w", sym, err)
			}
			inst.Color = col
		}
		legend[sym[0]] = inst
	}
	for sym := range m.Colors {
		if _, ok := m.Legend[sym]; !ok {
			return nil, fmt.Errorf("color for symbol %q not in legend", sym)
		}
	}

	empty := s.reg.Nothing().Instance()
	cells := make([]material.Instance, 0, w*h)
	for y, row := range m.Rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			ch := row[x]
			if ch == '.' || ch == ' ' {
				cells = append(cells, empty)
				continue
			}
			inst, ok := legend[ch]
			if !ok {
				return nil, fmt.Errorf("row %d col %d: symbol %q not in legend", y, x, ch)
			}
			cells = append(cells, inst)
		}
	}
	return New(m.Name, w, h, ox, oy, cells)
}

func (s *FSSource) decodeImage(m manifest, name string, ox, oy int) (*Template, error) {
	mat, err := s.reg.ByName(m.Material)
	if err != nil {
		return nil, err
	}
	imgPath := path.Join(path.Dir(name), m.Image)
	raw, err := fs.ReadFile(s.fsys, imgPath)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", imgPath, err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", imgPath, err)
	}
	return templateFromImage(m.Name, img, mat, s.reg.Nothing(), ox, oy)
}

// templateFromImage maps opaque pixels (alpha >= 128) to mat keeping the
// pixel color; everything else is transparent.
func templateFromImage(name string, img image.Image, mat, nothing *material.Material, ox, oy int) (*Template, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cells := make([]material.Instance, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a>>8 < 128 {
				cells = append(cells, nothing.Instance())
				continue
			}
			col := (r>>8)<<24 | (g>>8)<<16 | (bl>>8)<<8 | a>>8
			cells = append(cells, mat.InstanceColor(col))
		}
	}
	return New(name, w, h, ox, oy, cells)
}
