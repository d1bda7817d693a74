package levels

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed *.json
var LevelsFS embed.FS

//go:embed schema/level.schema.json
var schemaJSON []byte

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color,omitempty"`
}

// Entity is a spawn marker in tile coordinates.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("level.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile("level.schema.json")
})

// LoadLevelFromFS loads an embedded level by basename; the .json suffix is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// LoadLevel loads a level from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Open prefers a file on disk and falls back to the embedded level of the same name.
func Open(name string) (*Level, error) {
	if _, err := os.Stat(name); err == nil {
		return LoadLevel(name)
	}
	return LoadLevelFromFS(name)
}

// Names lists the embedded levels in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Parse validates raw level JSON against the level schema and decodes it.
func Parse(data []byte) (*Level, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile level schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d cells, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// HasPhysics reports whether tiles on layer idx collide. Levels without
// layer metadata treat every layer as solid.
func (l *Level) HasPhysics(idx int) bool {
	if l == nil || idx < 0 || idx >= len(l.Layers) {
		return false
	}
	if len(l.LayerMeta) == 0 {
		return true
	}
	if idx >= len(l.LayerMeta) {
		return false
	}
	return l.LayerMeta[idx].HasPhysics
}

// Solid reports whether any physics layer has a tile at (x, y).
func (l *Level) Solid(x, y int) bool {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	idx := y*l.Width + x
	for i, layer := range l.Layers {
		if !l.HasPhysics(i) {
			continue
		}
		if layer[idx] != 0 {
			return true
		}
	}
	return false
}

// Spawn returns the first entity of the given type.
func (l *Level) Spawn(kind string) (Entity, bool) {
	if l == nil {
		return Entity{}, false
	}
	for _, e := range l.Entities {
		if strings.EqualFold(e.Type, kind) {
			return e, true
		}
	}
	return Entity{}, false
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
