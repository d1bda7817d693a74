// Package physics runs agent bodies against the static tile layer using
// chipmunk. It only supplies gravity, collision response and a grounded flag.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepath/common"
)

const (
	collisionTypeAgent cp.CollisionType = iota + 1
	collisionTypeAgentGround
	collisionTypeSolid
)

const groundGraceFrames = 6

// Solids is the static collision layer.
type Solids interface {
	Size() (int, int)
	TileSize() float64
	Occupied(c common.Cell) bool
}

type Wall int

const (
	WallNone Wall = iota
	WallLeft
	WallRight
)

// BodyID names an agent body. Ids are never reused by a World.
type BodyID int

// State is a body snapshot. Grounded reflects a floor contact during the last
// step; Grace counts the frames left after the last such contact.
type State struct {
	Position common.Vec
	Velocity common.Vec
	Grounded bool
	Grace    int
	Wall     Wall
}

type agentBody struct {
	body   *cp.Body
	shape  *cp.Shape
	ground *cp.Shape
	width  float64
	height float64

	grounded    bool
	groundGrace int
	wall        Wall
}

// World owns a chipmunk space. It is not safe for concurrent use.
type World struct {
	space  *cp.Space
	solids Solids

	bodies       map[BodyID]*agentBody
	agentShapes  map[*cp.Shape]BodyID
	groundShapes map[*cp.Shape]BodyID
	nextID       BodyID
	staticShapes int

	handlersReady bool
}

func NewWorld(solids Solids) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	w := &World{
		space:        space,
		solids:       solids,
		bodies:       make(map[BodyID]*agentBody),
		agentShapes:  make(map[*cp.Shape]BodyID),
		groundShapes: make(map[*cp.Shape]BodyID),
	}
	w.buildStaticShapes()
	w.setupHandlers()
	return w
}

func (w *World) Space() *cp.Space { return w.space }

// StaticShapes counts the merged tile boxes and bound segments.
func (w *World) StaticShapes() int { return w.staticShapes }

func (w *World) buildStaticShapes() {
	if w.solids == nil {
		return
	}
	width, height := w.solids.Size()
	if width <= 0 || height <= 0 {
		return
	}
	size := w.solids.TileSize()
	solid := func(x, y int) bool {
		return w.solids.Occupied(common.Cell{X: x, Y: y})
	}

	// Merge contiguous solid tiles into rectangles, width first then height.
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			if !solid(x, y) {
				processed[idx] = true
				continue
			}

			rw := 1
			for x+rw < width && !processed[y*width+x+rw] && solid(x+rw, y) {
				rw++
			}
			rh := 1
		heightLoop:
			for y+rh < height {
				for xi := x; xi < x+rw; xi++ {
					if processed[(y+rh)*width+xi] || !solid(xi, y+rh) {
						break heightLoop
					}
				}
				rh++
			}

			x0 := float64(x) * size
			y0 := float64(y) * size
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(rw)*size, T: y0 + float64(rh)*size}
			shape := cp.NewBox2(w.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetCollisionType(collisionTypeSolid)
			w.space.AddShape(shape)
			w.staticShapes++

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}

	// Side walls keep agents inside the level. The bottom stays open so that
	// bodies falling off the map can be detected and respawned.
	worldW := float64(width) * size
	worldH := float64(height) * size
	for _, seg := range []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: -worldH}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: -worldH}, b: cp.Vector{X: worldW, Y: worldH}},
	} {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		w.space.AddShape(shape)
		w.staticShapes++
	}
}

func (w *World) setupHandlers() {
	if w.handlersReady {
		return
	}

	wallHandler := w.space.NewCollisionHandler(collisionTypeAgent, collisionTypeSolid)
	wallHandler.UserData = w
	wallHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		id, agentIsA := world.agentShapes[shapeA]
		if !agentIsA {
			var okB bool
			id, okB = world.agentShapes[shapeB]
			if !okB {
				return true
			}
		}
		ab := world.bodies[id]
		if ab == nil {
			return true
		}
		n := arb.Normal()
		if !agentIsA {
			n = n.Neg()
		}
		if n.X < -0.5 {
			ab.wall = WallLeft
		} else if n.X > 0.5 {
			ab.wall = WallRight
		}
		return true
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypeAgentGround, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		id, okA := world.groundShapes[shapeA]
		if !okA {
			var okB bool
			id, okB = world.groundShapes[shapeB]
			if !okB {
				return true
			}
		}
		// Only floors count: the normal must point down from the sensor.
		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		if n.Y <= 0.5 {
			return true
		}
		if ab := world.bodies[id]; ab != nil {
			ab.grounded = true
			ab.groundGrace = groundGraceFrames
		}
		return true
	}

	// Agents pass through each other.
	agentHandler := w.space.NewCollisionHandler(collisionTypeAgent, collisionTypeAgent)
	agentHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	w.handlersReady = true
}

// AddAgent creates a dynamic box centred on pos.
func (w *World) AddAgent(pos common.Vec, width, height float64) BodyID {
	if width <= 0 || height <= 0 {
		width, height = common.TileSize*0.75, common.TileSize*0.9
	}
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetAngle(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeAgent)

	ground := cp.NewBox2(body, cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeAgentGround)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.space.AddShape(ground)

	w.nextID++
	id := w.nextID
	w.bodies[id] = &agentBody{body: body, shape: shape, ground: ground, width: width, height: height}
	w.agentShapes[shape] = id
	w.groundShapes[ground] = id
	return id
}

func (w *World) RemoveAgent(id BodyID) bool {
	ab, ok := w.bodies[id]
	if !ok {
		return false
	}
	w.space.RemoveShape(ab.shape)
	w.space.RemoveShape(ab.ground)
	w.space.RemoveBody(ab.body)
	delete(w.agentShapes, ab.shape)
	delete(w.groundShapes, ab.ground)
	delete(w.bodies, id)
	return true
}

func (w *World) SetVelocity(id BodyID, v common.Vec) bool {
	ab, ok := w.bodies[id]
	if !ok {
		return false
	}
	ab.body.SetVelocity(v.X, v.Y)
	return true
}

// Teleport moves a body and stops it.
func (w *World) Teleport(id BodyID, pos common.Vec) bool {
	ab, ok := w.bodies[id]
	if !ok {
		return false
	}
	ab.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	ab.body.SetVelocity(0, 0)
	ab.grounded = false
	ab.groundGrace = 0
	return true
}

func (w *World) State(id BodyID) (State, bool) {
	ab, ok := w.bodies[id]
	if !ok {
		return State{}, false
	}
	p := ab.body.Position()
	v := ab.body.Velocity()
	return State{
		Position: common.Vec{X: p.X, Y: p.Y},
		Velocity: common.Vec{X: v.X, Y: v.Y},
		Grounded: ab.grounded,
		Grace:    ab.groundGrace,
		Wall:     ab.wall,
	}, true
}

// Step clears contact state and advances the space by dt seconds.
func (w *World) Step(dt float64) {
	for _, ab := range w.bodies {
		if ab.groundGrace > 0 {
			ab.groundGrace--
		}
		ab.grounded = false
		ab.wall = WallNone
	}
	w.space.Step(dt)
}

// Below reports whether pos is under the bottom of the level.
func (w *World) Below(pos common.Vec) bool {
	if w.solids == nil {
		return false
	}
	_, height := w.solids.Size()
	return pos.Y > float64(height)*w.solids.TileSize()+w.solids.TileSize()
}
