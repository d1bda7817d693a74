package component

import "github.com/milk9111/tilepath/common"

// Transform is the world position of an entity's centre.
type Transform struct {
	X float64
	Y float64
}

func (t Transform) Vec() common.Vec {
	return common.Vec{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()
