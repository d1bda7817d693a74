package entity

import (
	"fmt"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/ecs"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/tilemap"
)

// LoadLevelToWorld adds the level bounds entity and spawns one agent per
// level entity marker. Markers are tile coordinates; agents start at the
// centre of their tile. Marker types name prefabs.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, grid *tilemap.TileMap, opts ...BuildOption) ([]ecs.Entity, error) {
	if w == nil || lvl == nil || grid == nil {
		return nil, fmt.Errorf("load level: world, level and grid are required")
	}

	tileSize := grid.TileSize()
	bounds := w.CreateEntity()
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * tileSize,
		Height: float64(lvl.Height) * tileSize,
	}); err != nil {
		return nil, err
	}

	opts = append([]BuildOption{WithGrid(grid)}, opts...)
	spawned := make([]ecs.Entity, 0, len(lvl.Entities))
	for _, marker := range lvl.Entities {
		pos := grid.MapToLocal(common.Cell{X: marker.X, Y: marker.Y})
		e, err := NewAgentAt(w, marker.Type, pos.X, pos.Y, opts...)
		if err != nil {
			return nil, fmt.Errorf("load level: spawn %s at (%d, %d): %w", marker.Type, marker.X, marker.Y, err)
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}
