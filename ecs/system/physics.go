package system

import (
	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/ecs"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/physics"
)

// PhysicsSystem mirrors PhysicsBody entities into a physics.World, applies
// follower intents, steps the world and copies body state back.
type PhysicsSystem struct {
	world  *physics.World
	dt     float64
	bodies map[ecs.Entity]physics.BodyID
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		world:  world,
		dt:     1.0 / common.TickRate,
		bodies: make(map[ecs.Entity]physics.BodyID),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}

	ps.syncBodies(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.PathFollowerComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, pf *component.PathFollower) {
		ps.world.SetVelocity(body.Body, common.Vec{X: pf.Intent.VelocityX, Y: pf.Intent.VelocityY})
	})

	ps.world.Step(ps.dt)

	floor, hasBounds := levelFloor(w)
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		state, ok := ps.world.State(body.Body)
		if !ok {
			return
		}
		t.X, t.Y = state.Position.X, state.Position.Y
		body.Velocity = state.Velocity
		body.Grounded = state.Grounded

		if state.Grounded {
			if safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind()); ok {
				safe.X, safe.Y = t.X, t.Y
				safe.Initialized = true
			}
		}

		fell := ps.world.Below(state.Position)
		if hasBounds {
			fell = state.Position.Y > floor
		}
		if fell && !ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		}
	})
}

// syncBodies creates bodies for new entities and drops bodies whose entity
// is gone or no longer has a PhysicsBody.
func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for e, id := range ps.bodies {
		if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			ps.world.RemoveAgent(id)
			delete(ps.bodies, e)
		}
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if id, ok := ps.bodies[e]; ok {
			body.Body = id
			return
		}
		body.Body = ps.world.AddAgent(t.Vec(), body.Width, body.Height)
		ps.bodies[e] = body.Body
	})
}

// levelFloor is the y past which a body counts as fallen out of the level.
func levelFloor(w *ecs.World) (float64, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, false
	}
	bounds, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Height <= 0 {
		return 0, false
	}
	return bounds.Height + common.TileSize, true
}
