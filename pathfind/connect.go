package pathfind

import (
	"fmt"
	"sort"

	"github.com/milk9111/tilepath/common"
)

// EdgeKind names the rule that produced a connection.
type EdgeKind int

const (
	EdgeWalk EdgeKind = iota
	EdgePlatformJump
	EdgeDiagonalJump
	EdgeFall
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeWalk:
		return "walk"
	case EdgePlatformJump:
		return "platform_jump"
	case EdgeDiagonalJump:
		return "diagonal_jump"
	case EdgeFall:
		return "fall"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// Edge records one connection handed to the search graph.
type Edge struct {
	From, To      int64
	Kind          EdgeKind
	Bidirectional bool
}

type edgeKey struct {
	from, to int64
	kind     EdgeKind
}

// Edges returns every recorded connection ordered by endpoints and kind.
func (pf *PathFinder) Edges() []Edge {
	out := make([]Edge, 0, len(pf.edges))
	for _, e := range pf.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Connect applies every connection rule to the registered points. Repeated
// calls leave the graph and edge set unchanged.
func (pf *PathFinder) Connect() error {
	points := pf.Points()
	for _, p1 := range points {
		if err := pf.connectHorizontal(p1, points); err != nil {
			return err
		}
		for _, p2 := range points {
			if err := pf.connectJumps(p1, p2); err != nil {
				return err
			}
		}
		if err := pf.connectFall(p1); err != nil {
			return err
		}
	}
	return nil
}

func (pf *PathFinder) link(from, to Point, kind EdgeKind, bidirectional bool) error {
	if err := pf.graph.Connect(from.ID, to.ID, bidirectional); err != nil {
		return fmt.Errorf("%w: %s -> %s: %v", ErrRegistryCorrupt, from, to, err)
	}
	key := edgeKey{from: from.ID, to: to.ID, kind: kind}
	if prev, ok := pf.edges[key]; ok && prev.Bidirectional {
		return nil
	}
	pf.edges[key] = Edge{From: from.ID, To: to.ID, Kind: kind, Bidirectional: bidirectional}
	return nil
}

// connectHorizontal joins a left-side point to the nearest right-side point
// to its right on the same row, if every cell between them is walkable.
func (pf *PathFinder) connectHorizontal(p1 Point, points []Point) error {
	if !p1.Flags.Any(LeftEdge | LeftWall | FallTile) {
		return nil
	}
	var (
		best  Point
		found bool
	)
	for _, p2 := range points {
		if p2.ID == p1.ID || p2.Cell.Y != p1.Cell.Y || p2.Cell.X <= p1.Cell.X {
			continue
		}
		if !p2.Flags.Any(RightEdge | RightWall | FallTile) {
			continue
		}
		if !found || p2.Cell.X < best.Cell.X {
			best, found = p2, true
		}
	}
	if !found || !pf.walkable(p1, best) {
		return nil
	}
	return pf.link(p1, best, EdgeWalk, true)
}

// walkable reports whether each cell from a up to, not including, b is empty
// with solid ground beneath.
func (pf *PathFinder) walkable(a, b Point) bool {
	for x := a.Cell.X; x < b.Cell.X; x++ {
		c := a.Cell
		c.X = x
		if pf.grid.Occupied(c) || !pf.grid.Occupied(c.Offset(0, 1)) {
			return false
		}
	}
	return true
}

func (pf *PathFinder) connectJumps(p1, p2 Point) error {
	if p1.ID == p2.ID {
		return nil
	}
	dist := p1.Cell.DistanceTo(p2.Cell)
	jd := float64(pf.cfg.JumpDistance)

	switch {
	case p1.IsRightEdge() && p2.IsLeftEdge() &&
		p2.Cell.Y == p1.Cell.Y && p2.Cell.X > p1.Cell.X && dist < jd+1:
		return pf.link(p1, p2, EdgePlatformJump, true)
	case p1.IsRightEdge() && p2.IsLeftEdge() &&
		p2.Cell.Y > p1.Cell.Y && p2.Cell.X > p1.Cell.X && dist < jd:
		return pf.link(p1, p2, EdgeDiagonalJump, true)
	case p1.IsLeftEdge() && p2.IsRightEdge() &&
		p2.Cell.Y > p1.Cell.Y && p2.Cell.X < p1.Cell.X && dist < jd:
		return pf.link(p1, p2, EdgeDiagonalJump, true)
	}
	return nil
}

// connectFall links an edge to the landing found below it. Drops of at most
// JumpHeight rows can be jumped back up; taller ones are one-way.
func (pf *PathFinder) connectFall(p1 Point) error {
	if !p1.Flags.Any(LeftEdge | RightEdge) {
		return nil
	}
	if p1.IsLeftEdge() {
		if err := pf.connectFallSide(p1, sideLeft); err != nil {
			return err
		}
	}
	if p1.IsRightEdge() {
		if err := pf.connectFallSide(p1, sideRight); err != nil {
			return err
		}
	}
	return nil
}

func (pf *PathFinder) connectFallSide(p1 Point, dir side) error {
	landing, ok := fallLanding(pf.grid, p1.Cell, dir, pf.cfg.MaxFallScanDepth)
	if !ok {
		return nil
	}
	id, ok := pf.byCell[landing]
	if !ok {
		return fmt.Errorf("%w: no fall point registered at %s", ErrRegistryCorrupt, landing)
	}
	p2, err := pf.lookup(id)
	if err != nil {
		return err
	}
	if p2.ID == p1.ID {
		return nil
	}
	bidirectional := common.AbsInt(p2.Cell.Y-p1.Cell.Y) <= pf.cfg.JumpHeight
	return pf.link(p1, p2, EdgeFall, bidirectional)
}
