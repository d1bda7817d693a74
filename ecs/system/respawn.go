package system

import (
	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/ecs"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/movement"
	"github.com/milk9111/tilepath/physics"
)

type RespawnSystem struct {
	world *physics.World
}

func NewRespawnSystem(world *physics.World) *RespawnSystem { return &RespawnSystem{world: world} }

// Update performs pending respawn requests. It should run after the
// PhysicsSystem so requests raised by this tick's step are handled at once.
func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
		if !ok || !safe.Initialized {
			return
		}

		t.X, t.Y = safe.X, safe.Y
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			if s.world != nil {
				s.world.Teleport(body.Body, t.Vec())
			}
			body.Velocity = common.Vec{}
			body.Grounded = false
		}
		if pf, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind()); ok && pf.Executor != nil {
			pf.Executor.Clear()
			pf.Intent = movement.Intent{}
		}

		w.Events().Push(ecs.Event{Type: ecs.EventRespawn, Entity: e, Data: t.Vec()})
	})
}
