// Package movement turns a waypoint path into per-tick movement intents for a
// platforming agent: which way to run and when, and how hard, to jump.
package movement

import (
	"log/slog"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/pathfind"
)

// BodyState is what the executor reads from the physics body each tick.
type BodyState struct {
	Position common.Vec
	Velocity common.Vec
	Grounded bool
}

// Intent is the executor's output for one tick. VelocityY is the body's
// current vertical velocity unless Jumped is set.
type Intent struct {
	Direction int
	VelocityX float64
	Jump      JumpTier
	VelocityY float64
	Jumped    bool
	// Reached is set on the tick a waypoint was consumed.
	Reached bool
}

// Executor follows one path. Player and enemy agents share it and differ
// only in Tuning and in where their paths come from.
type Executor struct {
	tuning   Tuning
	path     pathfind.Path
	previous Target
	target   Target
	logger   *slog.Logger
}

func NewExecutor(tuning Tuning, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{tuning: tuning, logger: logger}
}

func (e *Executor) Tuning() Tuning { return e.tuning }

// SetPath replaces the remaining waypoints and moves on to the first one.
func (e *Executor) SetPath(p pathfind.Path) {
	e.path = p
	e.next()
}

// Clear drops the path and both targets.
func (e *Executor) Clear() {
	e.path = pathfind.Path{}
	e.previous = NoTarget()
	e.target = NoTarget()
}

func (e *Executor) Target() Target   { return e.target }
func (e *Executor) Previous() Target { return e.previous }

// Remaining counts waypoints not yet targeted.
func (e *Executor) Remaining() int { return e.path.Len() }

func (e *Executor) Idle() bool { return !e.target.IsSet() }

// Path returns the remaining waypoints in travel order.
func (e *Executor) Path() []pathfind.Point { return e.path.Points() }

func (e *Executor) next() {
	p, ok := e.path.Pop()
	if !ok {
		e.previous = NoTarget()
		e.target = NoTarget()
		return
	}
	e.previous = e.target
	e.target = At(p)
}

// Advance runs one fixed tick.
func (e *Executor) Advance(body BodyState) Intent {
	in := Intent{VelocityY: body.Velocity.Y}

	if target, ok := e.target.Point(); ok {
		switch {
		case body.Position.X < target.Position.X-e.tuning.ArriveTolerance:
			in.Direction = 1
		case body.Position.X > target.Position.X+e.tuning.ArriveTolerance:
			in.Direction = -1
		case body.Grounded:
			e.next()
			in.Reached = true
			if tier := DecideJump(e.previous, e.target, e.tuning.JumpHeightThreshold); tier != NoJump {
				in.Jump = tier
				in.Jumped = true
				in.VelocityY = e.tuning.Velocity(tier)
				e.logger.Debug("jump", "tier", tier, "from", e.previous, "to", e.target)
			}
		}
	}

	if in.Direction != 0 {
		in.VelocityX = float64(in.Direction) * e.tuning.Speed
	} else {
		in.VelocityX = common.MoveToward(body.Velocity.X, 0, e.tuning.Deceleration)
	}
	return in
}
