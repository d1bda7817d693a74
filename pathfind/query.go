package pathfind

import "github.com/milk9111/tilepath/common"

// RequestPath returns waypoints from start to goal. The first and last graph
// nodes are swapped for the literal positions when those are closer to the
// neighbouring node, and the goal position always ends the path. An empty
// graph or an unreachable goal yields an empty path.
func (pf *PathFinder) RequestPath(start, goal common.Vec) (Path, error) {
	if pf.graph.Len() == 0 {
		return Path{}, nil
	}
	from, ok := pf.graph.ClosestPoint(start)
	if !ok {
		return Path{}, nil
	}
	to, ok := pf.graph.ClosestPoint(goal)
	if !ok {
		return Path{}, nil
	}
	ids := pf.graph.IDPath(from, to)
	if len(ids) == 0 {
		pf.logger.Debug("no path", "start", start, "goal", goal)
		return Path{}, nil
	}

	startPoint := pf.PositionPoint(start)
	goalPoint := pf.PositionPoint(goal)
	travel := make([]Point, 0, len(ids)+2)

	if len(ids) > 1 {
		for i, id := range ids {
			cur, err := pf.lookup(id)
			if err != nil {
				return Path{}, err
			}
			switch i {
			case 0:
				next, err := pf.lookup(ids[1])
				if err != nil {
					return Path{}, err
				}
				if start.DistanceTo(next.Position) < cur.Position.DistanceTo(next.Position) {
					travel = append(travel, startPoint)
					continue
				}
			case len(ids) - 1:
				prev, err := pf.lookup(ids[i-1])
				if err != nil {
					return Path{}, err
				}
				if goal.DistanceTo(prev.Position) < cur.Position.DistanceTo(prev.Position) {
					continue
				}
			}
			travel = append(travel, cur)
		}
	}
	travel = append(travel, goalPoint)
	return NewPath(travel), nil
}

// PositionPoint wraps a literal position as a synthetic point. When the
// position stands on ground it also gets the edge and wall flags a registered
// point in that cell would carry.
func (pf *PathFinder) PositionPoint(pos common.Vec) Point {
	cell := pf.grid.LocalToMap(pos)
	p := Point{ID: PositionPointID, Position: pos, Cell: cell, Flags: PositionPoint}
	if !pf.grid.Occupied(cell.Offset(0, 1)) {
		return p
	}
	if pf.grid.Occupied(cell.Offset(-1, 0)) {
		p.Flags |= LeftWall
	}
	if pf.grid.Occupied(cell.Offset(1, 0)) {
		p.Flags |= RightWall
	}
	if !pf.grid.Occupied(cell.Offset(-1, 1)) {
		p.Flags |= LeftEdge
	}
	if !pf.grid.Occupied(cell.Offset(1, 1)) {
		p.Flags |= RightEdge
	}
	return p
}
