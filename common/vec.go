package common

import (
	"fmt"
	"math"
)

// Vec is a world-space position in pixels. Y grows downward.
type Vec struct {
	X float64
	Y float64
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec) DistanceTo(o Vec) float64 {
	return v.Sub(o).Length()
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}

// Cell is an integer (column, row) address into a tile grid.
type Cell struct {
	X int
	Y int
}

func (c Cell) Offset(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// DistanceTo is the Euclidean distance between two cells in grid units.
func (c Cell) DistanceTo(o Cell) float64 {
	return math.Hypot(float64(c.X-o.X), float64(c.Y-o.Y))
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}
