package system

import (
	"log/slog"

	"github.com/milk9111/tilepath/ecs"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/movement"
)

// PathRequestSystem polls every follower's waypoint source and hands the
// executor a fresh path when the source yields a goal.
type PathRequestSystem struct {
	pather movement.Pather
	logger *slog.Logger
}

func NewPathRequestSystem(pather movement.Pather, logger *slog.Logger) *PathRequestSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PathRequestSystem{pather: pather, logger: logger}
}

func (s *PathRequestSystem) SetPather(p movement.Pather) {
	if s == nil {
		return
	}
	s.pather = p
}

func (s *PathRequestSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.pather == nil {
		return
	}

	ecs.ForEach3(w,
		component.PathFollowerComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, pf *component.PathFollower, t *component.Transform, body *component.PhysicsBody) {
			if pf.Executor == nil || pf.Source == nil {
				return
			}
			requested, err := movement.Repath(pf.Source, s.pather, pf.Executor, bodyState(t, body))
			if !requested {
				return
			}
			pf.Requests++
			if err != nil {
				s.logger.Warn("path request failed", "entity", e, "err", err)
				return
			}
			waypoints := pf.Executor.Remaining()
			if !pf.Executor.Idle() {
				waypoints++
			}
			w.Events().Push(ecs.Event{Type: ecs.EventRepath, Entity: e, Data: waypoints})
		})
}

// PathFollowSystem advances every executor by one tick and leaves the result
// in PathFollower.Intent for the physics system.
type PathFollowSystem struct{}

func NewPathFollowSystem() *PathFollowSystem { return &PathFollowSystem{} }

func (s *PathFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PathFollowerComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, pf *component.PathFollower, t *component.Transform, body *component.PhysicsBody) {
			if pf.Executor == nil {
				pf.Intent = movement.Intent{VelocityY: body.Velocity.Y}
				return
			}
			wasFollowing := !pf.Executor.Idle()
			pf.Intent = pf.Executor.Advance(bodyState(t, body))
			if pf.Intent.Jumped {
				w.Events().Push(ecs.Event{Type: ecs.EventJump, Entity: e, Data: pf.Intent.Jump})
			}
			if wasFollowing && pf.Executor.Idle() {
				w.Events().Push(ecs.Event{Type: ecs.EventArrived, Entity: e})
			}
		})
}

func bodyState(t *component.Transform, body *component.PhysicsBody) movement.BodyState {
	return movement.BodyState{
		Position: t.Vec(),
		Velocity: body.Velocity,
		Grounded: body.Grounded,
	}
}
