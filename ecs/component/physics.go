package component

import (
	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/physics"
)

// PhysicsBody links an entity to its chipmunk body. Body is zero until the
// physics system creates it; the other state is copied back after each step.
type PhysicsBody struct {
	Body     physics.BodyID
	Width    float64
	Height   float64
	Velocity common.Vec
	Grounded bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
