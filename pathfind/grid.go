package pathfind

import "github.com/milk9111/tilepath/common"

// Grid is the collision layer the graph is built from.
type Grid interface {
	Occupied(c common.Cell) bool
	MapToLocal(c common.Cell) common.Vec
	LocalToMap(v common.Vec) common.Cell
	UsedCells() []common.Cell
}

// SearchGraph stores the traversal graph and answers shortest-path queries.
// navgraph.Graph is the implementation used outside tests.
type SearchGraph interface {
	NextID() int64
	AddPoint(id int64, pos common.Vec)
	Connect(from, to int64, bidirectional bool) error
	ClosestPoint(pos common.Vec) (int64, bool)
	IDPath(from, to int64) []int64
	Len() int
}
