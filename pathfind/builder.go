package pathfind

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/milk9111/tilepath/common"
)

// PathFinder owns the point registry for one grid and drives the search graph.
// Build it once per level; it is not safe for concurrent mutation.
type PathFinder struct {
	grid   Grid
	graph  SearchGraph
	cfg    Config
	logger *slog.Logger

	points map[int64]*Point
	byCell map[common.Cell]int64
	edges  map[edgeKey]Edge
	built  bool
}

type Option func(*PathFinder)

func WithLogger(logger *slog.Logger) Option {
	return func(pf *PathFinder) {
		if logger != nil {
			pf.logger = logger
		}
	}
}

// New returns an empty PathFinder. Zero config fields take their defaults.
func New(grid Grid, graph SearchGraph, cfg Config, opts ...Option) *PathFinder {
	pf := &PathFinder{
		grid:   grid,
		graph:  graph,
		cfg:    cfg.withDefaults(),
		logger: slog.Default(),
		points: make(map[int64]*Point),
		byCell: make(map[common.Cell]int64),
		edges:  make(map[edgeKey]Edge),
	}
	for _, opt := range opts {
		opt(pf)
	}
	return pf
}

// Stats summarizes a built graph.
type Stats struct {
	Points int
	Edges  int
	ByKind map[EdgeKind]int
}

// BuildGraph classifies the grid, registers points and connects them. It runs
// once; later calls return the existing stats without touching the graph.
func (pf *PathFinder) BuildGraph() (Stats, error) {
	if pf.built {
		return pf.Stats(), nil
	}
	for _, v := range Classify(pf.grid, pf.cfg.MaxFallScanDepth) {
		pf.register(v)
	}
	if err := pf.Connect(); err != nil {
		return Stats{}, fmt.Errorf("connect points: %w", err)
	}
	pf.built = true

	stats := pf.Stats()
	pf.logger.Info("navigation graph built",
		"points", stats.Points,
		"edges", stats.Edges,
		"jump_distance", pf.cfg.JumpDistance,
		"jump_height", pf.cfg.JumpHeight,
	)
	return stats, nil
}

// register merges a vote into the point at its cell, creating the point and
// its graph node on first sight.
func (pf *PathFinder) register(v Vote) {
	if id, ok := pf.byCell[v.Cell]; ok {
		pf.points[id].Flags |= v.Flags
		return
	}
	id := pf.graph.NextID()
	pos := pf.grid.MapToLocal(v.Cell)
	pf.graph.AddPoint(id, pos)
	pf.points[id] = &Point{ID: id, Position: pos, Cell: v.Cell, Flags: v.Flags}
	pf.byCell[v.Cell] = id
}

func (pf *PathFinder) Config() Config { return pf.cfg }

func (pf *PathFinder) Built() bool { return pf.built }

// Point returns the registered point with the given id.
func (pf *PathFinder) Point(id int64) (Point, bool) {
	p, ok := pf.points[id]
	if !ok {
		return Point{}, false
	}
	return *p, true
}

// PointAt returns the registered point at a cell.
func (pf *PathFinder) PointAt(c common.Cell) (Point, bool) {
	id, ok := pf.byCell[c]
	if !ok {
		return Point{}, false
	}
	return pf.Point(id)
}

// Points returns every registered point ordered by id.
func (pf *PathFinder) Points() []Point {
	out := make([]Point, 0, len(pf.points))
	for _, p := range pf.points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (pf *PathFinder) Stats() Stats {
	s := Stats{Points: len(pf.points), Edges: len(pf.edges), ByKind: make(map[EdgeKind]int)}
	for k := range pf.edges {
		s.ByKind[k.kind]++
	}
	return s
}

func (pf *PathFinder) lookup(id int64) (Point, error) {
	p, ok := pf.points[id]
	if !ok {
		return Point{}, fmt.Errorf("%w: no point for id %d", ErrRegistryCorrupt, id)
	}
	return *p, nil
}
