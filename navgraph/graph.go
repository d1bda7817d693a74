// Package navgraph is a weighted point graph with optional one-way edges.
// Edge cost is the Euclidean distance between point positions and shortest
// paths are found with A* through github.com/beefsack/go-astar.
package navgraph

import (
	"errors"
	"fmt"
	"math"
	"sort"

	astar "github.com/beefsack/go-astar"
	"github.com/milk9111/tilepath/common"
)

var ErrUnknownPoint = errors.New("navgraph: unknown point")

// Graph is not safe for concurrent mutation. Concurrent IDPath calls on a
// graph that is no longer mutated are fine.
type Graph struct {
	nodes  map[int64]*node
	nextID int64
}

// node implements astar.Pather.
type node struct {
	id  int64
	pos common.Vec
	out map[int64]*node
}

func New() *Graph {
	return &Graph{nodes: make(map[int64]*node)}
}

// NextID returns an id that has never been used by this graph.
func (g *Graph) NextID() int64 {
	return g.nextID
}

// AddPoint inserts a point, or moves it when the id already exists.
func (g *Graph) AddPoint(id int64, pos common.Vec) {
	if n, ok := g.nodes[id]; ok {
		n.pos = pos
		return
	}
	g.nodes[id] = &node{id: id, pos: pos, out: make(map[int64]*node)}
	if id >= g.nextID {
		g.nextID = id + 1
	}
}

func (g *Graph) HasPoint(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) PointPosition(id int64) (common.Vec, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return common.Vec{}, false
	}
	return n.pos, true
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// IDs returns every point id in ascending order.
func (g *Graph) IDs() []int64 {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Connect adds the edge from->to, and to->from when bidirectional is set.
// Connecting an existing edge again is a no-op.
func (g *Graph) Connect(from, to int64, bidirectional bool) error {
	a, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPoint, from)
	}
	b, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPoint, to)
	}
	if from == to {
		return nil
	}
	a.out[to] = b
	if bidirectional {
		b.out[from] = a
	}
	return nil
}

// Connected reports whether the edge from->to can be traversed.
func (g *Graph) Connected(from, to int64) bool {
	a, ok := g.nodes[from]
	if !ok {
		return false
	}
	_, ok = a.out[to]
	return ok
}

// Neighbors returns the ids reachable from id in one step, ascending.
func (g *Graph) Neighbors(id int64) []int64 {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.neighborIDs()
}

// ArcCount is the number of directed arcs; a bidirectional edge counts twice.
func (g *Graph) ArcCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.out)
	}
	return total
}

// ClosestPoint returns the point nearest to pos. Ties go to the lower id.
func (g *Graph) ClosestPoint(pos common.Vec) (int64, bool) {
	if len(g.nodes) == 0 {
		return 0, false
	}
	found := false
	var best int64
	bestDist := math.Inf(1)
	for id, n := range g.nodes {
		d := n.pos.DistanceTo(pos)
		if !found || d < bestDist || (d == bestDist && id < best) {
			best = id
			bestDist = d
			found = true
		}
	}
	return best, found
}

// IDPath returns the cheapest id sequence from -> to, both included, or nil
// when no route exists.
func (g *Graph) IDPath(from, to int64) []int64 {
	a, ok := g.nodes[from]
	if !ok {
		return nil
	}
	b, ok := g.nodes[to]
	if !ok {
		return nil
	}
	path, _, found := astar.Path(a, b)
	if !found {
		return nil
	}
	// go-astar returns the goal first.
	ids := make([]int64, len(path))
	for i, p := range path {
		ids[len(path)-1-i] = p.(*node).id
	}
	return ids
}

func (n *node) neighborIDs() []int64 {
	ids := make([]int64, 0, len(n.out))
	for id := range n.out {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (n *node) PathNeighbors() []astar.Pather {
	ids := n.neighborIDs()
	out := make([]astar.Pather, 0, len(ids))
	for _, id := range ids {
		out = append(out, n.out[id])
	}
	return out
}

func (n *node) PathNeighborCost(to astar.Pather) float64 {
	return n.pos.DistanceTo(to.(*node).pos)
}

func (n *node) PathEstimatedCost(to astar.Pather) float64 {
	return n.pos.DistanceTo(to.(*node).pos)
}
