package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilepath/pathfind"
)

// ErrInvalidSpec wraps every decode or validation failure of a prefab.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

var validate = validator.New()

// LoadSpec reads, decodes and validates a prefab file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// ParseSpec decodes YAML into T and runs its validate tags.
func ParseSpec[T any](data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("%w: unmarshal: %v", ErrInvalidSpec, err)
	}
	if err := validate.Struct(&spec); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return spec, nil
}

// NavigationSpec tunes graph construction.
type NavigationSpec struct {
	JumpDistance     int  `yaml:"jump_distance" validate:"required,gt=0,lte=64"`
	JumpHeight       int  `yaml:"jump_height" validate:"required,gt=0,lte=64"`
	MaxFallScanDepth int  `yaml:"max_fall_scan_depth" validate:"gte=0,lte=10000"`
	DebugGraph       bool `yaml:"debug_graph"`
}

func (s NavigationSpec) Config() pathfind.Config {
	return pathfind.Config{
		JumpDistance:     s.JumpDistance,
		JumpHeight:       s.JumpHeight,
		MaxFallScanDepth: s.MaxFallScanDepth,
	}
}

func LoadNavigationSpec() (NavigationSpec, error) {
	return LoadSpec[NavigationSpec]("navigation.yaml")
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor parses a hex colour or a colour name.
func ParseColor(s string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return named, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", s)
	}
	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color %s: %w", s, err)
		}
		rgba[i] = v
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
