package entity

import (
	"fmt"

	"github.com/milk9111/tilepath/ecs"
)

// NewAgentAt builds the named prefab and places it at x, y.
func NewAgentAt(w *ecs.World, prefab string, x, y float64, opts ...BuildOption) (ecs.Entity, error) {
	entity, err := BuildEntity(w, prefab, opts...)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	return entity, nil
}

func NewPlayerAt(w *ecs.World, x, y float64, opts ...BuildOption) (ecs.Entity, error) {
	return NewAgentAt(w, "player.yaml", x, y, opts...)
}

func NewSkeletonAt(w *ecs.World, x, y float64, opts ...BuildOption) (ecs.Entity, error) {
	return NewAgentAt(w, "skeleton.yaml", x, y, opts...)
}
