package movement

import (
	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/pathfind"
)

// JumpTier selects the vertical impulse of a jump.
type JumpTier int

const (
	NoJump JumpTier = iota
	TinyJump
	SmallJump
	FullJump
)

func (t JumpTier) String() string {
	switch t {
	case TinyJump:
		return "tiny"
	case SmallJump:
		return "small"
	case FullJump:
		return "full"
	default:
		return "none"
	}
}

// TierFor maps an absolute row difference to a tier.
func TierFor(rows int) JumpTier {
	switch common.AbsInt(rows) {
	case 0, 1:
		return TinyJump
	case 2:
		return SmallJump
	default:
		return FullJump
	}
}

// DecideJump reports the jump needed to travel from previous to target, or
// NoJump when walking or falling covers it. heightThreshold is in world units.
func DecideJump(previous, target Target, heightThreshold float64) JumpTier {
	prev, ok := previous.Point()
	if !ok {
		return NoJump
	}
	next, ok := target.Point()
	if !ok || next.IsPositionPoint() {
		return NoJump
	}

	descending := prev.Position.Y < next.Position.Y
	if descending && prev.Position.DistanceTo(next.Position) < heightThreshold {
		return NoJump
	}
	if descending && next.IsFallTile() {
		return NoJump
	}

	climbing := prev.Position.Y > next.Position.Y
	if climbing || rightEdgeToLeftEdge(prev, next) || leftEdgeToRightEdge(prev, next) {
		return TierFor(next.Cell.Y - prev.Cell.Y)
	}
	return NoJump
}

func rightEdgeToLeftEdge(prev, next pathfind.Point) bool {
	return prev.IsRightEdge() && next.IsLeftEdge() &&
		prev.Position.Y <= next.Position.Y &&
		prev.Position.X < next.Position.X
}

func leftEdgeToRightEdge(prev, next pathfind.Point) bool {
	return prev.IsLeftEdge() && next.IsRightEdge() &&
		prev.Position.Y <= next.Position.Y &&
		prev.Position.X > next.Position.X
}
