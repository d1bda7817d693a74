package pathfind

import "github.com/milk9111/tilepath/common"

// Vote asks the registry to mark a cell with flags. Several votes for the same
// cell merge into one point.
type Vote struct {
	Cell  common.Cell
	Flags Flags
}

type side int

const (
	sideLeft  side = -1
	sideRight side = 1
)

// Classify walks every solid surface tile and returns the point votes it
// produces, in tile order. Only tiles with empty space above are surfaces; the
// vote always targets the cell above the tile.
func Classify(grid Grid, maxFallScanDepth int) []Vote {
	var votes []Vote
	for _, tile := range grid.UsedCells() {
		votes = append(votes, classifyTile(grid, tile, maxFallScanDepth)...)
	}
	return votes
}

func classifyTile(grid Grid, tile common.Cell, maxFallScanDepth int) []Vote {
	above := tile.Offset(0, -1)
	if grid.Occupied(above) {
		return nil
	}

	var votes []Vote
	leftEdge := !grid.Occupied(tile.Offset(-1, 0))
	rightEdge := !grid.Occupied(tile.Offset(1, 0))
	if leftEdge {
		votes = append(votes, Vote{Cell: above, Flags: LeftEdge})
	}
	if rightEdge {
		votes = append(votes, Vote{Cell: above, Flags: RightEdge})
	}
	if grid.Occupied(tile.Offset(-1, -1)) {
		votes = append(votes, Vote{Cell: above, Flags: LeftWall})
	}
	if grid.Occupied(tile.Offset(1, -1)) {
		votes = append(votes, Vote{Cell: above, Flags: RightWall})
	}

	// A one-tile platform is both edges and can drop off either side.
	if leftEdge {
		if landing, ok := fallLanding(grid, above, sideLeft, maxFallScanDepth); ok {
			votes = append(votes, Vote{Cell: landing, Flags: FallTile})
		}
	}
	if rightEdge {
		if landing, ok := fallLanding(grid, above, sideRight, maxFallScanDepth); ok {
			votes = append(votes, Vote{Cell: landing, Flags: FallTile})
		}
	}
	return votes
}

// fallLanding scans down the column beside an edge point and returns the first
// empty cell that sits on something solid.
func fallLanding(grid Grid, point common.Cell, dir side, maxDepth int) (common.Cell, bool) {
	scan := point.Offset(int(dir), 0)
	if grid.Occupied(scan) {
		return common.Cell{}, false
	}
	for i := 0; i < maxDepth; i++ {
		if grid.Occupied(scan.Offset(0, 1)) {
			return scan, true
		}
		scan.Y++
	}
	return common.Cell{}, false
}
