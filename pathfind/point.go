package pathfind

import (
	"fmt"
	"strings"

	"github.com/milk9111/tilepath/common"
)

// Flags classify a traversal point. A point may carry several.
type Flags uint8

const (
	LeftEdge Flags = 1 << iota
	RightEdge
	LeftWall
	RightWall
	FallTile
	// PositionPoint marks a synthetic point standing for a literal request
	// position rather than a grid-derived node.
	PositionPoint
)

// PositionPointID is the id of every synthetic point. Graph ids are never negative.
const PositionPointID int64 = -1

var flagNames = []struct {
	flag Flags
	name string
}{
	{LeftEdge, "left-edge"},
	{RightEdge, "right-edge"},
	{LeftWall, "left-wall"},
	{RightWall, "right-wall"},
	{FallTile, "fall"},
	{PositionPoint, "position"},
}

// Any reports whether f has at least one of the bits in mask.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	parts := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Point is a node of the traversal graph, or a synthetic start/goal point.
type Point struct {
	ID       int64
	Position common.Vec
	Cell     common.Cell
	Flags    Flags
}

func (p Point) IsLeftEdge() bool      { return p.Flags.Any(LeftEdge) }
func (p Point) IsRightEdge() bool     { return p.Flags.Any(RightEdge) }
func (p Point) IsLeftWall() bool      { return p.Flags.Any(LeftWall) }
func (p Point) IsRightWall() bool     { return p.Flags.Any(RightWall) }
func (p Point) IsFallTile() bool      { return p.Flags.Any(FallTile) }
func (p Point) IsPositionPoint() bool { return p.Flags.Any(PositionPoint) }

func (p Point) String() string {
	if p.IsPositionPoint() {
		return fmt.Sprintf("pos%s %s", p.Position, p.Flags)
	}
	return fmt.Sprintf("#%d%s %s", p.ID, p.Cell, p.Flags)
}
