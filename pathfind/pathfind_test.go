package pathfind

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/navgraph"
	"github.com/milk9111/tilepath/tilemap"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, cfg Config, rows ...string) (*PathFinder, *tilemap.TileMap) {
	t.Helper()
	grid := tilemap.FromRows(rows...)
	pf := New(grid, navgraph.New(), cfg)
	_, err := pf.BuildGraph()
	require.NoError(t, err)
	return pf, grid
}

func findEdge(pf *PathFinder, from, to common.Cell, kind EdgeKind) (Edge, bool) {
	a, ok := pf.PointAt(from)
	if !ok {
		return Edge{}, false
	}
	b, ok := pf.PointAt(to)
	if !ok {
		return Edge{}, false
	}
	for _, e := range pf.Edges() {
		if e.Kind == kind && e.From == a.ID && e.To == b.ID {
			return e, true
		}
	}
	return Edge{}, false
}

func TestClassifySingleTilePlatform(t *testing.T) {
	pf, _ := build(t, Config{},
		".....",
		"..#..",
		"#####",
	)

	cases := []struct {
		cell  common.Cell
		flags Flags
	}{
		{common.Cell{X: 2, Y: 0}, LeftEdge | RightEdge},
		{common.Cell{X: 1, Y: 1}, FallTile | RightWall},
		{common.Cell{X: 3, Y: 1}, FallTile | LeftWall},
		{common.Cell{X: 0, Y: 1}, LeftEdge},
		{common.Cell{X: 4, Y: 1}, RightEdge},
	}
	for _, tc := range cases {
		p, ok := pf.PointAt(tc.cell)
		require.True(t, ok, "no point at %s", tc.cell)
		require.Equal(t, tc.flags, p.Flags, "flags at %s", tc.cell)
	}
	require.Len(t, pf.Points(), len(cases))

	_, ok := findEdge(pf, common.Cell{X: 0, Y: 1}, common.Cell{X: 1, Y: 1}, EdgeWalk)
	require.True(t, ok, "walk onto the fall landing")
	_, ok = findEdge(pf, common.Cell{X: 1, Y: 1}, common.Cell{X: 3, Y: 1}, EdgeWalk)
	require.False(t, ok, "walk through the raised tile")
}

func TestPointsSitAboveGround(t *testing.T) {
	pf, grid := build(t, Config{},
		"..........",
		"....##....",
		"##......##",
		"##########",
	)
	seen := make(map[common.Cell]bool)
	for _, p := range pf.Points() {
		require.False(t, seen[p.Cell], "duplicate point at %s", p.Cell)
		seen[p.Cell] = true
		require.False(t, grid.Occupied(p.Cell), "point inside solid %s", p.Cell)
		require.True(t, grid.Occupied(p.Cell.Offset(0, 1)), "point %s not on ground", p.Cell)
		require.Equal(t, grid.MapToLocal(p.Cell), p.Position)
	}
}

func TestFlatPlatformWalksWithoutJumps(t *testing.T) {
	pf, grid := build(t, Config{},
		"..........",
		"..........",
		"##########",
	)
	stats := pf.Stats()
	require.Equal(t, 2, stats.Points)
	require.Zero(t, stats.ByKind[EdgePlatformJump])
	require.Zero(t, stats.ByKind[EdgeDiagonalJump])
	require.Equal(t, 1, stats.ByKind[EdgeWalk])

	start := grid.MapToLocal(common.Cell{X: 0, Y: 1})
	goal := grid.MapToLocal(common.Cell{X: 9, Y: 1})
	path, err := pf.RequestPath(start, goal)
	require.NoError(t, err)

	pts := path.Points()
	require.Len(t, pts, 3)
	for i := 1; i < len(pts); i++ {
		require.GreaterOrEqual(t, pts[i].Position.X, pts[i-1].Position.X)
		require.Equal(t, pts[0].Cell.Y, pts[i].Cell.Y)
	}
	last := pts[len(pts)-1]
	require.True(t, last.IsPositionPoint())
	require.Equal(t, goal, last.Position)
}

func TestRequestPathSplicesEndpoints(t *testing.T) {
	pf, _ := build(t, Config{},
		"..........",
		"..........",
		"##########",
	)

	// Both literal positions lie between the two nodes.
	path, err := pf.RequestPath(common.Vec{X: 100, Y: 48}, common.Vec{X: 200, Y: 48})
	require.NoError(t, err)
	pts := path.Points()
	require.Len(t, pts, 2)
	require.True(t, pts[0].IsPositionPoint())
	require.Equal(t, common.Vec{X: 100, Y: 48}, pts[0].Position)
	require.Equal(t, common.Vec{X: 200, Y: 48}, pts[1].Position)

	// Both resolve to the same node.
	path, err = pf.RequestPath(common.Vec{X: 20, Y: 48}, common.Vec{X: 30, Y: 48})
	require.NoError(t, err)
	require.Equal(t, 1, path.Len())
	only, _ := path.Pop()
	require.Equal(t, common.Vec{X: 30, Y: 48}, only.Position)
}

func TestRequestPathSameStartAndGoal(t *testing.T) {
	pf, grid := build(t, Config{},
		"..........",
		"##########",
	)
	for _, p := range []common.Vec{
		grid.MapToLocal(common.Cell{X: 0, Y: 0}),
		{X: 150, Y: 20},
		{X: -500, Y: 900},
	} {
		path, err := pf.RequestPath(p, p)
		require.NoError(t, err)
		require.LessOrEqual(t, path.Len(), 1)
	}

	empty := New(tilemap.FromRows("...."), navgraph.New(), Config{})
	_, err := empty.BuildGraph()
	require.NoError(t, err)
	path, err := empty.RequestPath(common.Vec{}, common.Vec{})
	require.NoError(t, err)
	require.Zero(t, path.Len())
}

func TestPlatformJumpReach(t *testing.T) {
	for gap := 1; gap <= 7; gap++ {
		rows := []string{
			strings.Repeat(".", 6+gap),
			"###" + strings.Repeat(".", gap) + "###",
		}
		pf, _ := build(t, Config{}, rows...)

		right := common.Cell{X: 2, Y: 0}
		left := common.Cell{X: 3 + gap, Y: 0}
		dist := right.DistanceTo(left)
		want := dist < float64(DefaultJumpDistance+1)

		e, ok := findEdge(pf, right, left, EdgePlatformJump)
		require.Equal(t, want, ok, "gap %d distance %.0f", gap, dist)
		if ok {
			require.True(t, e.Bidirectional)
		}
	}
}

func TestFallDirection(t *testing.T) {
	for h := 1; h <= 7; h++ {
		rows := []string{"......", "###..."}
		for len(rows) < h+1 {
			rows = append(rows, "......")
		}
		rows = append(rows, "...###")
		pf, _ := build(t, Config{}, rows...)

		edge := common.Cell{X: 2, Y: 0}
		landing := common.Cell{X: 3, Y: h}
		p, ok := pf.PointAt(landing)
		require.True(t, ok, "drop %d: no landing", h)
		require.True(t, p.IsFallTile())

		e, ok := findEdge(pf, edge, landing, EdgeFall)
		require.True(t, ok, "drop %d: no fall edge", h)
		require.Equal(t, h <= DefaultJumpHeight, e.Bidirectional, "drop %d", h)
	}
}

func TestTallFallIsOneWay(t *testing.T) {
	pf, grid := build(t, Config{},
		"......",
		"###...",
		"......",
		"......",
		"......",
		"......",
		"......",
		"...###",
	)
	top := grid.MapToLocal(common.Cell{X: 2, Y: 0})
	bottom := grid.MapToLocal(common.Cell{X: 3, Y: 6})

	down, err := pf.RequestPath(top, bottom)
	require.NoError(t, err)
	require.NotZero(t, down.Len())

	up, err := pf.RequestPath(bottom, top)
	require.NoError(t, err)
	require.Zero(t, up.Len())
}

func TestFallScanDepthBound(t *testing.T) {
	rows := []string{
		"......",
		"###...",
		"......",
		"......",
		"......",
		"......",
		"......",
		"...###",
	}
	edge := common.Cell{X: 2, Y: 0}
	floor := common.Cell{X: 3, Y: 6}

	deep, _ := build(t, Config{}, rows...)
	_, ok := findEdge(deep, edge, floor, EdgeFall)
	require.True(t, ok)

	shallow, _ := build(t, Config{MaxFallScanDepth: 3}, rows...)
	p, ok := shallow.PointAt(floor)
	require.True(t, ok, "floor point comes from its own surface")
	require.False(t, p.IsFallTile())
	_, ok = findEdge(shallow, edge, floor, EdgeFall)
	require.False(t, ok)
	for _, e := range shallow.Edges() {
		require.NotEqual(t, EdgeFall, e.Kind, "edge %v", e)
	}
}

func TestDiagonalJumpDownLeft(t *testing.T) {
	pf, _ := build(t, Config{},
		"..........",
		"......####",
		"###.......",
	)
	e, ok := findEdge(pf, common.Cell{X: 6, Y: 0}, common.Cell{X: 2, Y: 1}, EdgeDiagonalJump)
	require.True(t, ok)
	require.True(t, e.Bidirectional)
}

// orphanGraph reports a node the registry never saw at the end of every path.
type orphanGraph struct {
	*navgraph.Graph
}

func (g orphanGraph) IDPath(from, to int64) []int64 {
	return append(g.Graph.IDPath(from, to), 999)
}

func TestRequestPathUnknownID(t *testing.T) {
	grid := tilemap.FromRows(
		"......",
		"######",
	)
	pf := New(grid, orphanGraph{navgraph.New()}, Config{})
	_, err := pf.BuildGraph()
	require.NoError(t, err)

	start := grid.MapToLocal(common.Cell{X: 1, Y: 0})
	goal := grid.MapToLocal(common.Cell{X: 4, Y: 0})
	_, err = pf.RequestPath(start, goal)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRegistryCorrupt))
	require.Contains(t, err.Error(), "999")
}

func TestConnectIsIdempotent(t *testing.T) {
	rows := []string{
		"....................",
		"........###.........",
		"###.............####",
		"....####............",
		"....................",
		"####################",
	}
	pf, _ := build(t, Config{}, rows...)
	before := pf.Snapshot()
	require.NotEmpty(t, before.Edges)

	require.NoError(t, pf.Connect())
	require.NoError(t, pf.Connect())
	require.Equal(t, before, pf.Snapshot())

	again, _ := build(t, Config{}, rows...)
	require.Equal(t, before, again.Snapshot())

	stats, err := pf.BuildGraph()
	require.NoError(t, err)
	require.Equal(t, len(before.Points), stats.Points)
}

func TestGapScenarioJumpsDown(t *testing.T) {
	rows := []string{
		"..........",
		"..........",
		"###.......",
		".......###",
	}
	start := common.Cell{X: 0, Y: 1}
	goal := common.Cell{X: 9, Y: 2}

	// At the default reach the lower platform is out of range.
	short, grid := build(t, Config{}, rows...)
	path, err := short.RequestPath(grid.MapToLocal(start), grid.MapToLocal(goal))
	require.NoError(t, err)
	require.Zero(t, path.Len())

	pf, grid := build(t, Config{JumpDistance: 6}, rows...)
	path, err = pf.RequestPath(grid.MapToLocal(start), grid.MapToLocal(goal))
	require.NoError(t, err)

	pts := path.Points()
	require.Len(t, pts, 5)
	require.Equal(t, start, pts[0].Cell)
	require.True(t, pts[0].IsLeftEdge())
	require.Equal(t, common.Cell{X: 2, Y: 1}, pts[1].Cell)
	require.True(t, pts[1].IsRightEdge())
	require.Equal(t, common.Cell{X: 7, Y: 2}, pts[2].Cell)
	require.True(t, pts[2].IsLeftEdge())
	require.Equal(t, goal, pts[3].Cell)
	require.True(t, pts[4].IsPositionPoint())

	e, ok := findEdge(pf, pts[1].Cell, pts[2].Cell, EdgeDiagonalJump)
	require.True(t, ok)
	require.True(t, e.Bidirectional)
	require.Equal(t, 1, pts[2].Cell.Y-pts[1].Cell.Y)
}

func TestPositionPointGroundFlags(t *testing.T) {
	pf, grid := build(t, Config{},
		"......",
		"#.....",
		"######",
	)
	p := pf.PositionPoint(grid.MapToLocal(common.Cell{X: 1, Y: 1}))
	require.Equal(t, PositionPointID, p.ID)
	require.True(t, p.IsPositionPoint())
	require.True(t, p.IsLeftWall())
	require.False(t, p.IsLeftEdge())

	edge := pf.PositionPoint(grid.MapToLocal(common.Cell{X: 5, Y: 1}))
	require.True(t, edge.IsRightEdge())
	require.False(t, edge.IsLeftEdge(), "ground continues below-left")

	air := pf.PositionPoint(common.Vec{X: 100, Y: 10})
	require.Equal(t, PositionPoint, air.Flags)
}

func TestPathStackOrder(t *testing.T) {
	travel := []Point{{ID: 1}, {ID: 2}, {ID: 3}}
	path := NewPath(travel)
	require.Equal(t, 3, path.Len())
	require.Equal(t, travel, path.Points())
	top, ok := path.Peek()
	require.True(t, ok)
	require.Equal(t, int64(1), top.ID)

	for _, want := range travel {
		got, ok := path.Pop()
		require.True(t, ok)
		require.Equal(t, want.ID, got.ID)
	}
	_, ok = path.Pop()
	require.False(t, ok)
	require.True(t, path.Empty())
}

func TestMarker(t *testing.T) {
	require.Equal(t, "both-edges", Marker(Point{Flags: LeftEdge | RightEdge}))
	require.Equal(t, "left-edge", Marker(Point{Flags: LeftEdge | FallTile}))
	require.Equal(t, "wall", Marker(Point{Flags: RightWall | FallTile}))
	require.Equal(t, "fall", Marker(Point{Flags: FallTile}))
	require.Equal(t, "left-edge|fall", (LeftEdge | FallTile).String())
}
