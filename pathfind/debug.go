package pathfind

// Snapshot is a read-only copy of the graph for overlays and tooling.
type Snapshot struct {
	Points []Point
	Edges  []Edge
}

func (pf *PathFinder) Snapshot() Snapshot {
	return Snapshot{Points: pf.Points(), Edges: pf.Edges()}
}

// Marker picks the overlay category for a point. Edges win over walls, and
// plain fall landings come last.
func Marker(p Point) string {
	switch {
	case p.IsPositionPoint():
		return "position"
	case p.IsLeftEdge() && p.IsRightEdge():
		return "both-edges"
	case p.IsLeftEdge():
		return "left-edge"
	case p.IsRightEdge():
		return "right-edge"
	case p.IsLeftWall() || p.IsRightWall():
		return "wall"
	case p.IsFallTile():
		return "fall"
	default:
		return "none"
	}
}
