package movement

import (
	"fmt"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/pathfind"
)

// WaypointSource decides when an agent asks for a new path and where to.
type WaypointSource interface {
	// Goal is polled once per tick.
	Goal(body BodyState) (common.Vec, bool)
}

// Pather answers path queries. *pathfind.PathFinder implements it.
type Pather interface {
	RequestPath(start, goal common.Vec) (pathfind.Path, error)
}

// Repath polls src and, when it yields a goal, hands the executor a fresh
// path from the body's position. It reports whether a path was requested.
func Repath(src WaypointSource, pather Pather, exec *Executor, body BodyState) (bool, error) {
	goal, ok := src.Goal(body)
	if !ok {
		return false, nil
	}
	path, err := pather.RequestPath(body.Position, goal)
	if err != nil {
		return true, fmt.Errorf("request path to %s: %w", goal, err)
	}
	exec.SetPath(path)
	return true, nil
}

// ClickSource yields the last clicked position. A click that arrives while
// the agent is airborne is dropped.
type ClickSource struct {
	pending common.Vec
	queued  bool
}

func (c *ClickSource) Click(pos common.Vec) {
	c.pending = pos
	c.queued = true
}

func (c *ClickSource) Goal(body BodyState) (common.Vec, bool) {
	if !c.queued {
		return common.Vec{}, false
	}
	c.queued = false
	if !body.Grounded {
		return common.Vec{}, false
	}
	return c.pending, true
}

// Snapper converts between world positions and cells.
type Snapper interface {
	LocalToMap(v common.Vec) common.Cell
	MapToLocal(c common.Cell) common.Vec
}

// ChaseSource re-targets another agent every RepathFrames ticks while active.
// The goal is the centre of the cell the quarry stands in.
type ChaseSource struct {
	RepathFrames int
	Quarry       func() (common.Vec, bool)
	Grid         Snapper

	active bool
	frames int
}

func (c *ChaseSource) Start() {
	c.active = true
	c.frames = 0
}

func (c *ChaseSource) Stop() { c.active = false }

func (c *ChaseSource) Toggle() {
	if c.active {
		c.Stop()
		return
	}
	c.Start()
}

func (c *ChaseSource) Active() bool { return c.active }

func (c *ChaseSource) Goal(body BodyState) (common.Vec, bool) {
	if !c.active || c.Quarry == nil || c.Grid == nil {
		return common.Vec{}, false
	}
	c.frames++
	if c.frames < max(c.RepathFrames, 1) {
		return common.Vec{}, false
	}
	c.frames = 0
	if !body.Grounded {
		return common.Vec{}, false
	}
	pos, ok := c.Quarry()
	if !ok {
		return common.Vec{}, false
	}
	return c.Grid.MapToLocal(c.Grid.LocalToMap(pos)), true
}
