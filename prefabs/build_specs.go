package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilepath/movement"
)

// EntityBuildSpec is a prefab made of named component blocks.
type EntityBuildSpec struct {
	Name       string         `yaml:"name" validate:"required"`
	Components map[string]any `yaml:"components" validate:"required,min=1"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component block into T and
// validates it. A nil block decodes to the zero value.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	out, err := ParseSpec[T](b)
	if err != nil {
		return zero, fmt.Errorf("decode component: %w", err)
	}
	return out, nil
}

type AgentTagComponentSpec struct {
	Kind string `yaml:"kind" validate:"required,oneof=player skeleton"`
}

type PhysicsBodyComponentSpec struct {
	Width  float64 `yaml:"width" validate:"gt=0,lte=64"`
	Height float64 `yaml:"height" validate:"gt=0,lte=64"`
}

// MovementComponentSpec mirrors movement.Tuning. Jump velocities point up,
// so they must be negative.
type MovementComponentSpec struct {
	Speed               float64 `yaml:"speed" validate:"gt=0"`
	JumpVelocity        float64 `yaml:"jump_velocity" validate:"lt=0"`
	SmallJumpVelocity   float64 `yaml:"small_jump_velocity" validate:"lt=0"`
	TinyJumpVelocity    float64 `yaml:"tiny_jump_velocity" validate:"lt=0"`
	JumpHeightThreshold float64 `yaml:"jump_height_threshold" validate:"gte=0"`
	ArriveTolerance     float64 `yaml:"arrive_tolerance" validate:"gt=0"`
	Deceleration        float64 `yaml:"deceleration" validate:"gte=0"`
}

func (s MovementComponentSpec) Tuning() movement.Tuning {
	t := movement.Tuning{
		Speed:               s.Speed,
		JumpVelocity:        s.JumpVelocity,
		SmallJumpVelocity:   s.SmallJumpVelocity,
		TinyJumpVelocity:    s.TinyJumpVelocity,
		JumpHeightThreshold: s.JumpHeightThreshold,
		ArriveTolerance:     s.ArriveTolerance,
		Deceleration:        s.Deceleration,
	}
	if t.Deceleration == 0 {
		t.Deceleration = t.Speed
	}
	return t
}

type ClickSourceComponentSpec struct{}

type ChaseSourceComponentSpec struct {
	RepathFrames int    `yaml:"repath_frames" validate:"gt=0"`
	Quarry       string `yaml:"quarry" validate:"required,oneof=player skeleton"`
	StartActive  bool   `yaml:"start_active"`
}

type DebugColorComponentSpec struct {
	Color *YAMLColor `yaml:"color"`
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}
